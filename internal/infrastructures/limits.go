package infrastructures

import (
	"github.com/redis/go-redis/v9"
	"github.com/skinvault/market-core/pkg/quota"
	"github.com/skinvault/market-core/pkg/ratelimit"
)

// Limits bundles each provider's admission controls. Rate-limit windows and
// quota counters are keyed independently per provider and never share state.
type Limits struct {
	Steam      ratelimit.Limiter
	Buff       ratelimit.Limiter
	SteamQuota quota.Config
	BuffQuota  quota.Config
}

// NewLimits builds the per-provider limiters against the shared counter store.
func NewLimits(redisClient *redis.Client) *Limits {
	return &Limits{
		Steam: ratelimit.NewRedisLimiter(redisClient, ratelimit.Config{
			MaxRequests: Config.STEAM_MAX_REQUESTS,
			Window:      Config.STEAM_WINDOW,
			KeyPrefix:   "ratelimit:steam",
		}),
		Buff: ratelimit.NewRedisLimiter(redisClient, ratelimit.Config{
			MaxRequests: Config.BUFF_MAX_REQUESTS,
			Window:      Config.BUFF_WINDOW,
			KeyPrefix:   "ratelimit:buff",
		}),
		SteamQuota: quota.Config{
			DailyQuota:   Config.STEAM_DAILY_QUOTA,
			MonthlyQuota: Config.STEAM_MONTHLY_QUOTA,
		},
		BuffQuota: quota.Config{
			DailyQuota:   Config.BUFF_DAILY_QUOTA,
			MonthlyQuota: Config.BUFF_MONTHLY_QUOTA,
		},
	}
}
