package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skinvault/market-core/internal/app/errors"
	"github.com/skinvault/market-core/internal/infrastructures"
	"github.com/skinvault/market-core/pkg/retryhttp"
)

func newTestSteamService(baseURL string) *SteamService {
	return NewSteamService(&infrastructures.SteamClient{
		HTTP: retryhttp.NewClient(retryhttp.Config{
			BaseURL:       baseURL,
			Timeout:       time.Second,
			MaxRetries:    retryhttp.NoRetries,
			RetryDelay:    time.Millisecond,
			MaxRetryDelay: time.Millisecond,
		}),
	})
}

func TestSteamGetQuoteNormalizesPriceOverview(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"appid":            r.URL.Query().Get("appid"),
			"currency":         r.URL.Query().Get("currency"),
			"market_hash_name": r.URL.Query().Get("market_hash_name"),
		}
		w.Write([]byte(`{"success":true,"lowest_price":"$2.34","volume":"1,234","median_price":"$2.40"}`))
	}))
	defer server.Close()

	service := newTestSteamService(server.URL)
	quote, err := service.GetQuote(context.Background(), "AK-47 | Redline (Field-Tested)", "")

	require.NoError(t, err)
	assert.Equal(t, "730", gotQuery["appid"])
	assert.Equal(t, "1", gotQuery["currency"], "empty currency defaults to USD")
	assert.Equal(t, "AK-47 | Redline (Field-Tested)", gotQuery["market_hash_name"])

	assert.Equal(t, SteamSource, quote.Source)
	assert.Equal(t, "2.34", quote.BuyPrice.String())
	assert.Equal(t, "2.4", quote.SellPrice.String())
	assert.EqualValues(t, 1234, quote.Volume)
	assert.Equal(t, "USD", quote.Currency)
	assert.False(t, quote.Timestamp.IsZero())
}

func TestSteamGetQuoteParsesEuropeanFormatting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "3", r.URL.Query().Get("currency"))
		w.Write([]byte(`{"success":true,"lowest_price":"2,34€","volume":"58"}`))
	}))
	defer server.Close()

	service := newTestSteamService(server.URL)
	quote, err := service.GetQuote(context.Background(), "item", "EUR")

	require.NoError(t, err)
	assert.Equal(t, "2.34", quote.BuyPrice.String())
	assert.Equal(t, "2.34", quote.SellPrice.String(), "missing median falls back to the lowest price")
	assert.Equal(t, "EUR", quote.Currency)
}

func TestSteamGetQuoteSuccessFalseIsApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer server.Close()

	service := newTestSteamService(server.URL)
	_, err := service.GetQuote(context.Background(), "item", "USD")

	var apiErr *errors.ApiError
	require.ErrorAs(t, err, &apiErr, "business failure on HTTP 200 is a domain error, not a transport error")
	assert.Equal(t, SteamSource, apiErr.Provider)
}

func TestSteamGetQuoteMalformedBodyIsApiError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	service := newTestSteamService(server.URL)
	_, err := service.GetQuote(context.Background(), "item", "USD")

	var apiErr *errors.ApiError
	require.ErrorAs(t, err, &apiErr)
}

func TestSteamGetQuoteUnsupportedCurrency(t *testing.T) {
	service := newTestSteamService("http://localhost:0")
	_, err := service.GetQuote(context.Background(), "item", "XAU")

	var validationErr *errors.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestSteamGetQuoteTransportFailureIsHttpError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	service := newTestSteamService(server.URL)
	_, err := service.GetQuote(context.Background(), "item", "USD")

	var httpErr *retryhttp.Error
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
}
