package config

import "github.com/joho/godotenv"

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	RefreshInterval Duration
	Provider        string
	AdminToken      string
	Source          SourceConfig
	Metrics         MetricsConfig
	Log             LogConfig
}

// LogConfig controls logger level and format.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file (ENV_FILE, default ".env") is read first when present; variables
// already set in the environment take precedence over it.
func Load() Config {
	_ = godotenv.Load(envOrDefault(envFile, defaultEnvFile))

	return Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Provider:        envOrDefault(envProvider, defaultProvider),
		AdminToken:      envOrDefault(envAdminToken, ""),
		Source:          loadSource(),
		Metrics:         loadMetrics(),
		Log: LogConfig{
			Level:  envOrDefault(envLogLevel, defaultLogLevel),
			Format: envOrDefault(envLogFormat, defaultLogFormat),
		},
	}
}
