package config

import (
	"fmt"
	"os"
	"time"
)

// Config carries everything needed to reach the hosted backend. The project
// identifier and the public anonymous key are mandatory: without them neither
// the functions base URL nor the default request headers can be built.
type Config struct {
	ProjectID string
	AnonKey   string

	// FunctionsBaseURL and AuthBaseURL override the URLs derived from
	// ProjectID. Tests point these at local fakes.
	FunctionsBaseURL string
	AuthBaseURL      string

	HTTPTimeout      time.Duration
	ChatPollInterval time.Duration
	PaymentDelay     time.Duration
	PaymentSettle    time.Duration
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		ProjectID:        os.Getenv("AGRICONNECT_PROJECT_ID"),
		AnonKey:          os.Getenv("AGRICONNECT_ANON_KEY"),
		FunctionsBaseURL: os.Getenv("AGRICONNECT_FUNCTIONS_URL"),
		AuthBaseURL:      os.Getenv("AGRICONNECT_AUTH_URL"),
		HTTPTimeout:      getenvDuration("AGRICONNECT_HTTP_TIMEOUT", 30*time.Second),
		ChatPollInterval: getenvDuration("AGRICONNECT_CHAT_POLL_INTERVAL", 5*time.Second),
		PaymentDelay:     getenvDuration("AGRICONNECT_PAYMENT_DELAY", 3*time.Second),
		PaymentSettle:    getenvDuration("AGRICONNECT_PAYMENT_SETTLE", 1500*time.Millisecond),
	}

	if cfg.ProjectID == "" {
		return Config{}, fmt.Errorf("config: AGRICONNECT_PROJECT_ID is required")
	}
	if cfg.AnonKey == "" {
		return Config{}, fmt.Errorf("config: AGRICONNECT_ANON_KEY is required")
	}
	if cfg.FunctionsBaseURL == "" {
		cfg.FunctionsBaseURL = fmt.Sprintf("https://%s.supabase.co/functions/v1/make-server-f03b739f", cfg.ProjectID)
	}
	if cfg.AuthBaseURL == "" {
		cfg.AuthBaseURL = fmt.Sprintf("https://%s.supabase.co/auth/v1", cfg.ProjectID)
	}
	return cfg, nil
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return fallback
}
