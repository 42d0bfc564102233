package infrastructures

import (
	"github.com/skinvault/market-core/pkg/retryhttp"
)

type SteamConfig struct {
	BaseURL string
	APIKey  string
}

type SteamClient struct {
	HTTP   *retryhttp.Client
	Config SteamConfig
}

// NewSteamClient creates the Steam market HTTP client. The API key is read
// once at construction; rotation requires reconstruction.
func NewSteamClient() *SteamClient {
	config := SteamConfig{
		BaseURL: Config.STEAM_BASE_URL,
		APIKey:  Config.STEAM_API_KEY,
	}

	headers := map[string]string{
		"Accept": "application/json",
	}
	if config.APIKey != "" {
		headers["Authorization"] = "Bearer " + config.APIKey
	}

	return &SteamClient{
		HTTP: retryhttp.NewClient(retryhttp.Config{
			BaseURL:       config.BaseURL,
			Timeout:       Config.HTTP_TIMEOUT,
			MaxRetries:    Config.HTTP_MAX_RETRIES,
			RetryDelay:    Config.HTTP_RETRY_DELAY,
			MaxRetryDelay: Config.HTTP_MAX_RETRY_DELAY,
			Headers:       headers,
		}),
		Config: config,
	}
}
