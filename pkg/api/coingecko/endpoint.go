package coingecko

import (
	"context"
	"fmt"

	"github.com/veleo-lab/backend/pkg/api"
)

// IEndpoint queries the coingecko public API for token market data.
type IEndpoint interface {
	GetSimplePrice(ctx context.Context, id, vsCurrency string) (price, change24h float64, err error)
	GetMarketChart(ctx context.Context, id, vsCurrency string, days int) ([]PricePoint, error)
}

type PricePoint struct {
	Timestamp int64   `json:"timestamp"`
	Price     float64 `json:"price"`
}

type endpoint struct {
	generator api.Generator
}

func New(domain string) *endpoint {
	return &endpoint{generator: api.NewGenerator(domain)}
}

func (e *endpoint) GetSimplePrice(
	ctx context.Context, id, vsCurrency string,
) (float64, float64, error) {
	resp, err := e.generator.New("/simple/price").
		Query(api.Parameter{
			"ids":                 id,
			"vs_currencies":       vsCurrency,
			"include_24hr_change": "true",
		}).
		GET(ctx)
	if err != nil {
		return 0, 0, err
	}

	if resp.Code != 200 {
		return 0, 0, fmt.Errorf("coingecko responded with status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return 0, 0, fmt.Errorf("unexpected response shape")
	}

	token, err := body.GetJSON(id)
	if err != nil {
		return 0, 0, err
	}

	price, err := token.GetFloat64(vsCurrency)
	if err != nil {
		return 0, 0, err
	}

	change, err := token.GetFloat64(vsCurrency + "_24h_change")
	if err != nil {
		return 0, 0, err
	}

	return price, change, nil
}

func (e *endpoint) GetMarketChart(
	ctx context.Context, id, vsCurrency string, days int,
) ([]PricePoint, error) {
	resp, err := e.generator.New("/coins/%s/market_chart", id).
		Query(api.Parameter{
			"vs_currency": vsCurrency,
			"days":        fmt.Sprintf("%d", days),
		}).
		GET(ctx)
	if err != nil {
		return nil, err
	}

	if resp.Code != 200 {
		return nil, fmt.Errorf("coingecko responded with status %d", resp.Code)
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return nil, fmt.Errorf("unexpected response shape")
	}

	prices, err := body.GetArray("prices")
	if err != nil {
		return nil, err
	}

	points := make([]PricePoint, 0, len(prices))
	for i := range prices {
		pair, err := prices.GetArray(i)
		if err != nil {
			return nil, err
		}

		ts, err := pair.GetFloat64(0)
		if err != nil {
			return nil, err
		}

		price, err := pair.GetFloat64(1)
		if err != nil {
			return nil, err
		}

		points = append(points, PricePoint{Timestamp: int64(ts), Price: price})
	}

	return points, nil
}
