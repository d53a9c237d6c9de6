package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/metascore-lookup-service/internal/http/requestutil"
	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
	"github.com/preston-bernstein/metascore-lookup-service/internal/poller"
)

// Refresher runs one catalog refresh cycle on demand.
type Refresher interface {
	Refresh(ctx context.Context) poller.Result
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// Refresh runs a catalog refresh immediately and reports its result.
// Guarded by ADMIN_TOKEN; returns 401 if missing/invalid and 502 when the
// cycle could not install anything.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	// A client hanging up must not cut the cycle short and install a truncated catalog.
	res := h.refresher.Refresh(context.WithoutCancel(r.Context()))

	status := http.StatusOK
	if !res.Installed {
		status = http.StatusBadGateway
	}
	logging.Info(logger, "admin refresh complete",
		slog.Int(logging.FieldCount, res.Records),
		slog.Int(logging.FieldPages, res.Pages),
		slog.Bool("installed", res.Installed),
		slog.Bool("truncated", res.Truncated),
	)
	writeJSON(w, status, res, logger)
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := requestutil.BearerToken(r)
	return subtle.ConstantTimeCompare([]byte(got), []byte(h.token)) == 1
}
