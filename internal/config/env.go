package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Duration wraps time.Duration for clearer type usage in Config.
type Duration = time.Duration

// lookupEnv returns the trimmed value of key; blank counts as unset.
func lookupEnv(key string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(key))
	return raw, raw != ""
}

func envOrDefault(key, defaultValue string) string {
	if val, ok := lookupEnv(key); ok {
		return val
	}
	return defaultValue
}

// durationEnvOrDefault falls back on unparsable or non-positive values so a
// typo never yields a zero refresh interval.
func durationEnvOrDefault(key string, defaultValue time.Duration) time.Duration {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return defaultValue
	}
	return parsed
}

func intEnvOrDefault(key string, defaultValue int) int {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	val, err := strconv.Atoi(raw)
	if err != nil || val <= 0 {
		return defaultValue
	}
	return val
}

func boolEnvOrDefault(key string, defaultValue bool) bool {
	raw, ok := lookupEnv(key)
	if !ok {
		return defaultValue
	}
	switch strings.ToLower(raw) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return defaultValue
	}
}
