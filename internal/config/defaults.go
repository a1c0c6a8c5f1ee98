package config

import (
	"os"
)

// DefaultBaseURL is the hosted backend, including its /api prefix.
const DefaultBaseURL = "https://projectmanagementappapi.onrender.com/api"

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1",
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: 30,
		},
		OAuth: OAuthConfig{
			CallbackPort: 0,
		},
		Cache: CacheConfig{
			Enabled:     true,
			Path:        "", // resolved to <data dir>/cache.db when empty
			MaxAgeHours: 72,
		},
	}
}

// WriteDefault writes the default configuration to a file
func WriteDefault(path string) error {
	content := `# Project Management App CLI configuration
version: "1"

# Backend endpoint
api:
  base_url: ` + DefaultBaseURL + `
  timeout_seconds: 30

# OAuth sign-in. Client IDs come from the provider's developer console.
oauth:
  # Localhost callback port (0 = pick a free port)
  callback_port: 0
  google:
    client_id: ""
  discord:
    client_id: ""

# Offline response cache
cache:
  enabled: true
  # path: ""  # defaults to cache.db next to the session files
  max_age_hours: 72
`
	return os.WriteFile(path, []byte(content), 0644)
}
