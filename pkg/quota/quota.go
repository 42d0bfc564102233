package quota

import (
	"context"
	"time"
)

// Config defines the quota ceilings for one provider.
type Config struct {
	// DailyQuota is the number of requests allowed per UTC calendar day
	DailyQuota int64
	// MonthlyQuota is the number of requests allowed per UTC calendar month.
	// Zero disables monthly tracking.
	MonthlyQuota int64
}

// PeriodStatus describes usage within one quota epoch.
type PeriodStatus struct {
	Used      int64
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// Status is the combined daily/monthly usage for a provider. Monthly is nil
// when no monthly quota is configured.
type Status struct {
	Daily   PeriodStatus
	Monthly *PeriodStatus
}

// Tracker defines the interface for quota accounting implementations.
//
// Tracking is observational: it never denies a request by itself. Quotas
// represent contractual ceilings that get checked and alerted on, while the
// rate limiter handles real-time throttling.
type Tracker interface {
	// TrackUsage increments the active counters and returns the new status
	TrackUsage(ctx context.Context, provider string, config Config) (Status, error)
	// GetStatus returns the current status without incrementing
	GetStatus(ctx context.Context, provider string, config Config) (Status, error)
}

// nextDay returns the next UTC day boundary strictly after t.
func nextDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// nextMonth returns the first instant of the next calendar month (UTC).
func nextMonth(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
}

func remaining(limit, used int64) int64 {
	if r := limit - used; r > 0 {
		return r
	}
	return 0
}
