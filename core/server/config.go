package server

import "time"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables the check.
	ApiKey string `mapstructure:"api_key" default:""`
	// RequestTimeoutSeconds bounds a single HTTP-triggered sync pass.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" default:"300"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// RequestTimeout returns the per-request timeout, defaulting to five minutes.
func (c Config) RequestTimeout() time.Duration {
	if c.RequestTimeoutSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}
