package config

// SourceConfig controls how catalog pages are fetched upstream.
type SourceConfig struct {
	BaseURL         string
	Platform        string
	MaxPages        int
	RequestInterval Duration // minimum spacing between page requests
	Timeout         Duration // per-request HTTP timeout
	RetryAttempts   int
	UserAgent       string
}

func loadSource() SourceConfig {
	return SourceConfig{
		BaseURL:         envOrDefault(envSourceBaseURL, defaultSourceBase),
		Platform:        envOrDefault(envSourcePlatform, defaultSourcePlat),
		MaxPages:        intEnvOrDefault(envSourceMaxPages, defaultSourceMaxPages),
		RequestInterval: durationEnvOrDefault(envSourceRate, defaultSourceRate),
		Timeout:         durationEnvOrDefault(envSourceTimeout, defaultSourceTimeout),
		RetryAttempts:   intEnvOrDefault(envSourceRetries, defaultSourceRetry),
		UserAgent:       envOrDefault(envSourceUserAgent, defaultSourceAgent),
	}
}
