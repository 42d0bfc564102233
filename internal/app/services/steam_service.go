package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skinvault/market-core/internal/app/errors"
	"github.com/skinvault/market-core/internal/app/models"
	"github.com/skinvault/market-core/internal/app/pkg"
	"github.com/skinvault/market-core/internal/infrastructures"
	"github.com/skinvault/market-core/pkg/retryhttp"
)

const SteamSource = "steam"

// steamCurrencyIDs maps ISO currency codes to Steam's numeric currency ids.
var steamCurrencyIDs = map[string]string{
	"USD": "1",
	"GBP": "2",
	"EUR": "3",
	"CHF": "4",
	"RUB": "5",
	"CNY": "23",
}

type SteamService struct {
	client *infrastructures.SteamClient
}

func NewSteamService(steamClient *infrastructures.SteamClient) *SteamService {
	return &SteamService{
		client: steamClient,
	}
}

// GetQuote fetches the Steam community market price overview for an item and
// normalizes it. Steam reports success=false in the body on an HTTP 200 for
// unknown items or throttled sessions; that surfaces as an ApiError, not a
// transport failure.
func (s *SteamService) GetQuote(ctx context.Context, marketHashName, currency string) (*models.Quote, error) {
	if currency == "" {
		currency = "USD"
	}
	currencyID, ok := steamCurrencyIDs[currency]
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported steam currency %q", currency))
	}

	resp, err := s.client.HTTP.Do(ctx, retryhttp.Request{
		Method: http.MethodGet,
		Path:   "/market/priceoverview/",
		Query: map[string]string{
			"appid":            "730",
			"currency":         currencyID,
			"market_hash_name": marketHashName,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("steam priceoverview: %w", err)
	}

	var overview models.SteamPriceOverviewResponse
	if err := json.Unmarshal(resp.Data, &overview); err != nil {
		return nil, errors.NewApiError(SteamSource, "", fmt.Sprintf("malformed priceoverview response: %v", err))
	}

	if !overview.Success {
		return nil, errors.NewApiError(SteamSource, "", "priceoverview returned success=false")
	}

	buyPrice, err := pkg.ParsePrice(overview.LowestPrice)
	if err != nil {
		return nil, errors.NewApiError(SteamSource, "", fmt.Sprintf("bad lowest_price: %v", err))
	}

	// Steam has no bid side in this endpoint; the median sale price is the
	// closest stand-in for proceeds of an instant sell.
	sellPrice := buyPrice
	if overview.MedianPrice != "" {
		sellPrice, err = pkg.ParsePrice(overview.MedianPrice)
		if err != nil {
			return nil, errors.NewApiError(SteamSource, "", fmt.Sprintf("bad median_price: %v", err))
		}
	}

	volume, err := pkg.ParseVolume(overview.Volume)
	if err != nil {
		return nil, errors.NewApiError(SteamSource, "", fmt.Sprintf("bad volume: %v", err))
	}

	return &models.Quote{
		Source:    SteamSource,
		ItemName:  marketHashName,
		BuyPrice:  buyPrice,
		SellPrice: sellPrice,
		Volume:    volume,
		Currency:  currency,
		Timestamp: time.Now().UTC(),
	}, nil
}
