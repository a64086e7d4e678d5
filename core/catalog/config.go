package catalog

// Config holds configuration for the remote catalog service.
type Config struct {
	// Endpoint is the base URL of the catalog service.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:9100"`
	// ApiKey is sent as X-Api-Key on every request, if set.
	ApiKey string `mapstructure:"api_key" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// CacheTTLSeconds is the time-to-live for cached lookups. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"300"`
}
