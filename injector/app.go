package injector

import (
	"github.com/skinvault/market-core/internal/app/services"
)

// Application represents the main application container for market-core.
// The composing process owns the lifecycle of everything inside it.
type Application struct {
	MarketService *services.MarketService
	SteamService  *services.SteamService
	BuffService   *services.BuffService
}
