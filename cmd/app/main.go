package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/skinvault/market-core/injector"
	"github.com/skinvault/market-core/internal/app/models"
	"github.com/skinvault/market-core/internal/infrastructures"
	"golang.org/x/sync/errgroup"
)

// fetchConcurrency caps concurrent item fetches; per-provider admission is
// still governed by the rate limiters.
const fetchConcurrency = 4

// quoteFetcher is the slice of MarketService the fetch loop needs.
type quoteFetcher interface {
	GetAllQuotes(ctx context.Context, request models.QuoteRequest) ([]models.Quote, error)
}

// fetchAll fetches quotes for every item key with bounded concurrency.
// Item-level failures are logged and skipped; one failed item must not stop
// the rest.
func fetchAll(ctx context.Context, fetcher quoteFetcher, items []string) ([]models.Quote, error) {
	var mu sync.Mutex
	var collected []models.Quote

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, item := range items {
		item := item
		g.Go(func() error {
			quotes, err := fetcher.GetAllQuotes(ctx, models.QuoteRequest{ItemKey: item})
			if err != nil {
				logrus.WithField("item", item).Errorf("fetch failed: %v", err)
				return nil
			}
			mu.Lock()
			collected = append(collected, quotes...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return collected, nil
}

func main() {
	infrastructures.LoadConfig()

	app, err := injector.InitializeApplication()
	if err != nil {
		logrus.Fatalf("Failed to initialize application: %v", err)
	}

	items := os.Args[1:]
	if len(items) == 0 {
		logrus.Fatal("usage: app <item key> [<item key> ...]")
	}

	ctx := context.Background()

	collected, err := fetchAll(ctx, app.MarketService, items)
	if err != nil {
		logrus.Fatalf("fetch worker failed: %v", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	for _, quote := range collected {
		if err := encoder.Encode(quote); err != nil {
			logrus.Fatalf("failed to emit quote: %v", err)
		}
	}

	snapshot, err := app.MarketService.QuotaSnapshot(ctx)
	if err != nil {
		logrus.Warnf("failed to read quota snapshot: %v", err)
		return
	}
	for provider, status := range snapshot {
		fields := logrus.Fields{
			"provider":        provider,
			"daily_used":      status.Daily.Used,
			"daily_remaining": status.Daily.Remaining,
		}
		if status.Monthly != nil {
			fields["monthly_used"] = status.Monthly.Used
			fields["monthly_remaining"] = status.Monthly.Remaining
		}
		logrus.WithFields(fields).Info("provider quota status")
	}
}
