package config

// Config is the full client configuration
type Config struct {
	Version string `yaml:"version" mapstructure:"version"`

	// API endpoint configuration
	API APIConfig `yaml:"api" mapstructure:"api"`

	// OAuth provider configuration
	OAuth OAuthConfig `yaml:"oauth" mapstructure:"oauth"`

	// Offline cache configuration
	Cache CacheConfig `yaml:"cache" mapstructure:"cache"`
}

// APIConfig configures the backend endpoint
type APIConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// OAuthConfig configures the supported OAuth providers
type OAuthConfig struct {
	// Port for the localhost callback listener (0 = pick a free port)
	CallbackPort int `yaml:"callback_port" mapstructure:"callback_port"`

	Google  OAuthProviderConfig `yaml:"google" mapstructure:"google"`
	Discord OAuthProviderConfig `yaml:"discord" mapstructure:"discord"`
}

// OAuthProviderConfig holds one provider's client credentials
type OAuthProviderConfig struct {
	ClientID string `yaml:"client_id" mapstructure:"client_id"`
}

// CacheConfig configures the offline response cache
type CacheConfig struct {
	Enabled     bool   `yaml:"enabled" mapstructure:"enabled"`
	Path        string `yaml:"path" mapstructure:"path"`
	MaxAgeHours int    `yaml:"max_age_hours" mapstructure:"max_age_hours"`
}
