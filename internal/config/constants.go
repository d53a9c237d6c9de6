package config

import "time"

const (
	envFile            = "ENV_FILE"
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envSourceBaseURL   = "SOURCE_BASE_URL"
	envSourcePlatform  = "SOURCE_PLATFORM"
	envSourceMaxPages  = "SOURCE_MAX_PAGES"
	envSourceRate      = "SOURCE_REQUEST_INTERVAL"
	envSourceTimeout   = "SOURCE_TIMEOUT"
	envSourceUserAgent = "SOURCE_USER_AGENT"
	envSourceRetries   = "SOURCE_RETRY_ATTEMPTS"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envAdminToken      = "ADMIN_TOKEN"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"

	defaultEnvFile       = ".env"
	defaultPort          = "4000"
	defaultProvider      = "fixture"
	defaultMetricsPort   = "9090"
	defaultServiceName   = "metascore-lookup-service"
	defaultLogLevel      = "info"
	defaultLogFormat     = "text"
	defaultSourceBase    = "https://www.metacritic.com"
	defaultSourcePlat    = "switch"
	defaultSourceRetry   = 3
	defaultSourceAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"
	defaultSourceRate    = Duration(time.Second)
	defaultSourceTimeout = 15 * Duration(time.Second)

	// The upstream catalog changes slowly; hourly keeps load on it negligible.
	defaultRefreshInterval = Duration(time.Hour)

	// Upper bound on pages per cycle in case the upstream never returns an empty page.
	defaultSourceMaxPages = 200
)
