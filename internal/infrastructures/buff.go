package infrastructures

import (
	"github.com/skinvault/market-core/pkg/retryhttp"
)

type BuffConfig struct {
	BaseURL string
	APIKey  string
}

type BuffClient struct {
	HTTP   *retryhttp.Client
	Config BuffConfig
}

// NewBuffClient creates the Buff market HTTP client. Buff authenticates via a
// session cookie carrying the API credential.
func NewBuffClient() *BuffClient {
	config := BuffConfig{
		BaseURL: Config.BUFF_BASE_URL,
		APIKey:  Config.BUFF_API_KEY,
	}

	headers := map[string]string{
		"Accept": "application/json",
	}
	if config.APIKey != "" {
		headers["Cookie"] = "session=" + config.APIKey
	}

	return &BuffClient{
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
