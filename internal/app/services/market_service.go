package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/skinvault/market-core/internal/app/errors"
	"github.com/skinvault/market-core/internal/app/models"
	"github.com/skinvault/market-core/internal/infrastructures"
	"github.com/skinvault/market-core/pkg/quota"
	"github.com/skinvault/market-core/pkg/ratelimit"
	"github.com/skinvault/market-core/pkg/retryhttp"
)

// MarketService fans a single logical item request out to all configured
// marketplaces and collects best-effort results. A missing quote from one
// marketplace must never block quotes from the others.
type MarketService struct {
	steam   *SteamService
	buff    *BuffService
	limits  *infrastructures.Limits
	tracker quota.Tracker
	valid   *infrastructures.Validator
}

func NewMarketService(
	steamService *SteamService,
	buffService *BuffService,
	limits *infrastructures.Limits,
	tracker quota.Tracker,
	valid *infrastructures.Validator,
) *MarketService {
	return &MarketService{
		steam:   steamService,
		buff:    buffService,
		limits:  limits,
		tracker: tracker,
		valid:   valid,
	}
}

// providerCall is one provider's gated fetch within a fan-out.
type providerCall struct {
	name   string
	handle ratelimit.Handler[*models.Quote]
}

// GetAllQuotes returns normalized quotes from every provider that responds.
// A single provider's failure (rate-limit denial, transport error, parse
// error) is logged and omitted; only when every provider fails does the call
// fail, with an AggregateError bundling each provider's failure.
func (s *MarketService) GetAllQuotes(ctx context.Context, request models.QuoteRequest) ([]models.Quote, error) {
	if err := s.valid.Validate(request); err != nil {
		return nil, err
	}

	calls := s.buildCalls(request)

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		quotes   []models.Quote
		failures = make(map[string]error)
	)

	for _, call := range calls {
		call := call
		wg.Add(1)
		go func() {
			defer wg.Done()
			q, err := call.handle(ctx)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures[call.name] = err
				logrus.WithFields(logrus.Fields{
					"provider": call.name,
					"item":     request.ItemKey,
					"kind":     classifyError(err),
				}).Warnf("provider quote failed: %v", err)
				return
			}
			quotes = append(quotes, *q)
		}()
	}
	wg.Wait()

	if len(quotes) == 0 && len(failures) > 0 {
		return nil, errors.NewAggregateError(failures)
	}
	return quotes, nil
}

// buildCalls assembles the gated per-provider fetches. Steam always runs,
// falling back to the item key as market hash name; Buff only runs when the
// request carries a goods id.
func (s *MarketService) buildCalls(request models.QuoteRequest) []providerCall {
	calls := make([]providerCall, 0, 2)

	steamName := request.SteamMarketHashName
	if steamName == "" {
		steamName = request.ItemKey
	}
	calls = append(calls, providerCall{
		name: SteamSource,
		handle: ratelimit.Guard(s.limits.Steam, SteamSource, func(ctx context.Context) (*models.Quote, error) {
			s.trackQuota(ctx, SteamSource, s.limits.SteamQuota)
			return s.steam.GetQuote(ctx, steamName, request.Currency)
		}),
	})

	if request.BuffGoodsID != "" {
		calls = append(calls, providerCall{
			name: BuffSource,
			handle: ratelimit.Guard(s.limits.Buff, BuffSource, func(ctx context.Context) (*models.Quote, error) {
				s.trackQuota(ctx, BuffSource, s.limits.BuffQuota)
				return s.buff.GetQuote(ctx, request.BuffGoodsID)
			}),
		})
	}

	return calls
}

// trackQuota records usage and warns when a ceiling is reached. Quota
// accounting is advisory: an exhausted quota is alerted on, not enforced.
func (s *MarketService) trackQuota(ctx context.Context, provider string, config quota.Config) {
	status, err := s.tracker.TrackUsage(ctx, provider, config)
	if err != nil {
		logrus.WithField("provider", provider).Warnf("quota tracking failed: %v", err)
		return
	}
	if status.Daily.Remaining == 0 {
		logrus.WithFields(logrus.Fields{
			"provider": provider,
			"used":     status.Daily.Used,
			"limit":    status.Daily.Limit,
			"reset_at": status.Daily.ResetAt,
		}).Warn("daily quota exhausted")
	}
	if status.Monthly != nil && status.Monthly.Remaining == 0 {
		logrus.WithFields(logrus.Fields{
			"provider": provider,
			"used":     status.Monthly.Used,
			"limit":    status.Monthly.Limit,
			"reset_at": status.Monthly.ResetAt,
		}).Warn("monthly quota exhausted")
	}
}

// QuotaSnapshot returns the current per-provider quota status without
// incrementing any counter.
func (s *MarketService) QuotaSnapshot(ctx context.Context) (map[string]quota.Status, error) {
	snapshot := make(map[string]quota.Status, 2)

	steamStatus, err := s.tracker.GetStatus(ctx, SteamSource, s.limits.SteamQuota)
	if err != nil {
		return nil, fmt.Errorf("steam quota status: %w", err)
	}
	snapshot[SteamSource] = steamStatus

	buffStatus, err := s.tracker.GetStatus(ctx, BuffSource, s.limits.BuffQuota)
	if err != nil {
		return nil, fmt.Errorf("buff quota status: %w", err)
	}
	snapshot[BuffSource] = buffStatus

	return snapshot, nil
}

// classifyError labels a provider failure for diagnostics.
func classifyError(err error) string {
	var rateErr *ratelimit.Error
	if stderrors.As(err, &rateErr) {
		return "rate_limit"
	}
	var httpErr *retryhttp.Error
	if stderrors.As(err, &httpErr) {
		return "http"
	}
	var apiErr *errors.ApiError
	if stderrors.As(err, &apiErr) {
		return "api"
	}
	var validationErr *errors.ValidationError
	if stderrors.As(err, &validationErr) {
		return "validation"
	}
	return "unknown"
}
