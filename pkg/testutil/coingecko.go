package testutil

import (
	"context"

	"github.com/veleo-lab/backend/pkg/api/coingecko"
	"github.com/veleo-lab/backend/pkg/errorx"
)

type MockCoingeckoEndpoint struct {
	GetSimplePriceFunc func(ctx context.Context, id, vsCurrency string) (float64, float64, error)
	GetMarketChartFunc func(ctx context.Context, id, vsCurrency string, days int) ([]coingecko.PricePoint, error)
}

func (m *MockCoingeckoEndpoint) GetSimplePrice(
	ctx context.Context, id, vsCurrency string,
) (float64, float64, error) {
	if m.GetSimplePriceFunc != nil {
		return m.GetSimplePriceFunc(ctx, id, vsCurrency)
	}

	return 0, 0, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockCoingeckoEndpoint) GetMarketChart(
	ctx context.Context, id, vsCurrency string, days int,
) ([]coingecko.PricePoint, error) {
	if m.GetMarketChartFunc != nil {
		return m.GetMarketChartFunc(ctx, id, vsCurrency, days)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}
