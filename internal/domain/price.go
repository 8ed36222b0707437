package domain

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"github.com/veleo-lab/backend/internal/common"
	"github.com/veleo-lab/backend/internal/model"
	"github.com/veleo-lab/backend/pkg/api/coingecko"
	"github.com/veleo-lab/backend/pkg/errorx"
	"github.com/veleo-lab/backend/pkg/xcontext"
	"github.com/veleo-lab/backend/pkg/xredis"
)

const (
	priceTokenID    = "aleo"
	priceVsCurrency = "usd"
	priceChartDays  = 7
)

type PriceDomain interface {
	GetAleoPrice(context.Context, *model.GetAleoPriceRequest) (*model.GetAleoPriceResponse, error)
}

type priceDomain struct {
	coingeckoEndpoint coingecko.IEndpoint
	redisClient       xredis.Client
}

func NewPriceDomain(
	coingeckoEndpoint coingecko.IEndpoint,
	redisClient xredis.Client,
) *priceDomain {
	return &priceDomain{
		coingeckoEndpoint: coingeckoEndpoint,
		redisClient:       redisClient,
	}
}

func (d *priceDomain) GetAleoPrice(
	ctx context.Context, req *model.GetAleoPriceRequest,
) (*model.GetAleoPriceResponse, error) {
	key := common.RedisKeyAleoPrice(priceVsCurrency)

	var cached model.GetAleoPriceResponse
	err := d.redisClient.GetObj(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}

	if !errors.Is(err, redis.Nil) {
		xcontext.Logger(ctx).Warnf("Cannot read price cache: %v", err)
	}

	price, change, err := d.coingeckoEndpoint.GetSimplePrice(ctx, priceTokenID, priceVsCurrency)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get price from coingecko: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Price feed is unavailable")
	}

	chart, err := d.coingeckoEndpoint.GetMarketChart(ctx, priceTokenID, priceVsCurrency, priceChartDays)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get market chart from coingecko: %v", err)
		return nil, errorx.New(errorx.Unavailable, "Price feed is unavailable")
	}

	history := []model.PricePoint{}
	for _, p := range chart {
		history = append(history, model.PricePoint{Timestamp: p.Timestamp, Price: p.Price})
	}

	resp := &model.GetAleoPriceResponse{
		Price:     price,
		Change24h: change,
		History:   history,
	}

	ttl := xcontext.Configs(ctx).Price.CacheTTL
	if err := d.redisClient.SetObj(ctx, key, resp, ttl); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot write price cache: %v", err)
	}

	return resp, nil
}
