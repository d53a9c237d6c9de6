package server

import (
	"fmt"
	"strings"

	"github.com/preston-bernstein/metascore-lookup-service/internal/providers"
)

// normalizeProviderName returns a lower-cased provider name, deriving it from
// the instance when not configured. Metrics and logs share this name.
func normalizeProviderName(raw string, provider providers.PageSource) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if named, ok := provider.(interface{ Name() string }); ok {
		return named.Name()
	}
	if provider != nil {
		return strings.ToLower(fmt.Sprintf("%T", provider))
	}
	return "provider"
}
