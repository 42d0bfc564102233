//go:build wireinject
// +build wireinject

package injector

import (
	"github.com/google/wire"
	"github.com/skinvault/market-core/internal/app/services"
	"github.com/skinvault/market-core/internal/infrastructures"
	"github.com/skinvault/market-core/pkg/quota"
)

// Infrastructure providers
var infrastructureSet = wire.NewSet(
	infrastructures.NewRedisClient,
	infrastructures.NewValidator,
	infrastructures.NewSteamClient,
	infrastructures.NewBuffClient,
	infrastructures.NewLimits,
	wire.Bind(new(quota.Tracker), new(*quota.RedisTracker)),
	quota.NewRedisTracker,
)

// Service providers
var serviceSet = wire.NewSet(
	services.NewSteamService,
	services.NewBuffService,
	services.NewMarketService,
	wire.Struct(new(Application), "*"),
)

// InitializeApplication initializes the application with all its dependencies
func InitializeApplication() (*Application, error) {
	wire.Build(
		infrastructureSet,
		serviceSet,
	)
	return &Application{}, nil
}
