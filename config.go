package twocaptcha

import (
	"net/http"
	"time"
)

const (
	defaultAPIURL       = "https://api.2captcha.com"
	defaultHTTPTimeout  = 10 * time.Second
	defaultPollInterval = 3 * time.Second
	defaultSolveTimeout = 120 * time.Second
)

// ClientConfig holds all configuration for the 2Captcha client.
type ClientConfig struct {
	// APIKey is the 2Captcha account key, sent as clientKey in every
	// request body. Required.
	APIKey string

	// BaseURL overrides the API host. Default: https://api.2captcha.com.
	BaseURL string

	// HTTPTimeout bounds each individual HTTP exchange.
	HTTPTimeout time.Duration

	// PollInterval is the default delay between getTaskResult polls.
	PollInterval time.Duration

	// SolveTimeout is the default total deadline for WaitUntilDone.
	SolveTimeout time.Duration

	// ForceHTTP1 disables HTTP/2 on the shared transport.
	ForceHTTP1 bool

	// HTTPClient overrides the shared HTTP client entirely. When set,
	// HTTPTimeout and ForceHTTP1 are ignored.
	HTTPClient *http.Client
}

// defaults fills in zero-value config fields with sensible defaults.
func (cfg *ClientConfig) defaults() {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultAPIURL
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = defaultHTTPTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.SolveTimeout == 0 {
		cfg.SolveTimeout = defaultSolveTimeout
	}
}
