package providers

import (
	"context"
	"log/slog"

	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
)

// logWithProvider logs through the request-scoped logger when ctx carries
// one, tagging every entry with the provider name.
func logWithProvider(ctx context.Context, logger *slog.Logger, level slog.Level, provider string, msg string, args ...any) {
	logger = logging.FromContext(ctx, logger)
	if logger == nil || !logger.Enabled(ctx, level) {
		return
	}
	args = append(args, slog.String(logging.FieldProvider, provider))
	logger.Log(ctx, level, msg, args...)
}
