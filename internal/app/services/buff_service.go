package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/skinvault/market-core/internal/app/errors"
	"github.com/skinvault/market-core/internal/app/models"
	"github.com/skinvault/market-core/internal/infrastructures"
	"github.com/skinvault/market-core/pkg/retryhttp"
)

const BuffSource = "buff"

// buffCurrency is the only currency Buff quotes in.
const buffCurrency = "CNY"

type BuffService struct {
	client *infrastructures.BuffClient
}

func NewBuffService(buffClient *infrastructures.BuffClient) *BuffService {
	return &BuffService{
		client: buffClient,
	}
}

// GetQuote fetches the goods info for one Buff goods id and normalizes it.
// Buff answers HTTP 200 with a non-"OK" code for business failures (login
// required, unknown goods, maintenance); those surface as ApiError.
func (s *BuffService) GetQuote(ctx context.Context, goodsID string) (*models.Quote, error) {
	info, err := buffGet[models.BuffGoodsInfo](ctx, s.client, "/api/market/goods/info", goodsID)
	if err != nil {
		return nil, err
	}

	buyPrice, err := decimal.NewFromString(info.Data.SellMinPrice)
	if err != nil {
		return nil, errors.NewApiError(BuffSource, "", fmt.Sprintf("bad sell_min_price %q: %v", info.Data.SellMinPrice, err))
	}
	sellPrice, err := decimal.NewFromString(info.Data.BuyMaxPrice)
	if err != nil {
		return nil, errors.NewApiError(BuffSource, "", fmt.Sprintf("bad buy_max_price %q: %v", info.Data.BuyMaxPrice, err))
	}

	return &models.Quote{
		Source:    BuffSource,
		ItemName:  info.Data.Name,
		BuyPrice:  buyPrice,
		SellPrice: sellPrice,
		Volume:    info.Data.SellNum,
		Currency:  buffCurrency,
		Timestamp: time.Now().UTC(),
	}, nil
}

// GetOrderBook fetches the depth for one goods id, sorts both sides into
// invariant order regardless of upstream ordering and computes the spread as
// best ask minus best bid.
func (s *BuffService) GetOrderBook(ctx context.Context, goodsID string) (*models.OrderBook, error) {
	depth, err := buffGet[models.BuffDepth](ctx, s.client, "/api/market/goods/depth", goodsID)
	if err != nil {
		return nil, err
	}

	bids, err := s.convertOrders(depth.Data.BuyOrders)
	if err != nil {
		return nil, err
	}
	asks, err := s.convertOrders(depth.Data.SellOrders)
	if err != nil {
		return nil, err
	}

	// Bids descending, asks ascending.
	sort.Slice(bids, func(i, j int) bool { return bids[i].Price.GreaterThan(bids[j].Price) })
	sort.Slice(asks, func(i, j int) bool { return asks[i].Price.LessThan(asks[j].Price) })

	spread := decimal.Zero
	if len(bids) > 0 && len(asks) > 0 {
		spread = asks[0].Price.Sub(bids[0].Price)
	}

	return &models.OrderBook{
		Source:    BuffSource,
		ItemName:  depth.Data.Name,
		Bids:      bids,
		Asks:      asks,
		Spread:    spread,
		Currency:  buffCurrency,
		Timestamp: time.Now().UTC(),
	}, nil
}

// buffGet performs one envelope-wrapped GET against the Buff API.
func buffGet[T any](ctx context.Context, client *infrastructures.BuffClient, path, goodsID string) (*models.BuffResponse[T], error) {
	resp, err := client.HTTP.Do(ctx, retryhttp.Request{
		Method: http.MethodGet,
		Path:   path,
		Query: map[string]string{
			"game":     "csgo",
			"goods_id": goodsID,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("buff %s: %w", path, err)
	}

	var envelope models.BuffResponse[T]
	if err := json.Unmarshal(resp.Data, &envelope); err != nil {
		return nil, errors.NewApiError(BuffSource, "", fmt.Sprintf("malformed response from %s: %v", path, err))
	}
	if envelope.Code != "OK" {
		return nil, errors.NewApiError(BuffSource, envelope.Code, envelope.Msg)
	}
	return &envelope, nil
}

func (s *BuffService) convertOrders(orders []models.BuffOrder) ([]models.PriceLevel, error) {
	levels := make([]models.PriceLevel, 0, len(orders))
	for _, order := range orders {
		price, err := decimal.NewFromString(order.Price)
		if err != nil {
			return nil, errors.NewApiError(BuffSource, "", fmt.Sprintf("bad order price %q: %v", order.Price, err))
		}
		levels = append(levels, models.PriceLevel{Price: price, Quantity: order.Num})
	}
	return levels, nil
}
