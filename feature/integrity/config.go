package integrity

// Config holds configuration for integrity checks.
type Config struct {
	// Enabled mounts the HTTP routes.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Workers bounds concurrent item lookups during a pair check.
	Workers int `mapstructure:"workers" default:"8"`
}
