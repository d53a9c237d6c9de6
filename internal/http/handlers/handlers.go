package handlers

import (
	"log/slog"
	nethttp "net/http"
	"strings"
	"time"

	"github.com/preston-bernstein/metascore-lookup-service/internal/app/games"
	domaingames "github.com/preston-bernstein/metascore-lookup-service/internal/domain/games"
	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
	"github.com/preston-bernstein/metascore-lookup-service/internal/poller"
)

// HeaderMatchType tells lookup clients whether the record was an exact or fuzzy hit.
const HeaderMatchType = "X-Match-Type"

// Handler wires HTTP routes to the catalog service.
type Handler struct {
	svc      *games.Service
	logger   *slog.Logger
	statusFn func() poller.Status
}

// CatalogResponse is the body of GET /catalog.
type CatalogResponse struct {
	Records []domaingames.Record `json:"records"`
	Keys    int                  `json:"keys"`
	Version uint64               `json:"version"`
	BuiltAt time.Time            `json:"builtAt"`
}

// NewHandler constructs a Handler with defaults.
func NewHandler(svc *games.Service, logger *slog.Logger, statusFn func() poller.Status) *Handler {
	return &Handler{
		svc:      svc,
		logger:   logger,
		statusFn: statusFn,
	}
}

// ServeHTTP dispatches the public routes without a mux.
func (h *Handler) ServeHTTP(w nethttp.ResponseWriter, r *nethttp.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/ready":
		h.Ready(w, r)
	case "/lookup":
		h.Lookup(w, r)
	case "/catalog":
		h.Catalog(w, r)
	default:
		writeError(w, r, nethttp.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, nethttp.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic (e.g., for Kubernetes probes).
func (h *Handler) Ready(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	if h.statusFn == nil {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, nethttp.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, nethttp.StatusServiceUnavailable, msg, h.logger)
}

// Lookup returns the catalog record best matching ?game=.
func (h *Handler) Lookup(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	query := strings.TrimSpace(r.URL.Query().Get("game"))
	if query == "" {
		writeError(w, r, nethttp.StatusBadRequest, "missing game parameter", h.logger)
		return
	}

	if h.loading() {
		writeError(w, r, nethttp.StatusServiceUnavailable, "catalog loading", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	match, ok := h.svc.Lookup(query)
	if !ok {
		logging.Info(logger, "lookup missed", logging.FieldQuery, query)
		writeError(w, r, nethttp.StatusNotFound, "game not found", h.logger)
		return
	}

	logging.Info(logger, "lookup matched",
		logging.FieldQuery, query,
		logging.FieldMatch, string(match.Kind),
		"name", match.Record.Name,
		"similarity", match.Similarity,
	)
	w.Header().Set(HeaderMatchType, string(match.Kind))
	writeJSON(w, nethttp.StatusOK, match.Record, h.logger)
}

// Catalog returns every record in the current snapshot.
func (h *Handler) Catalog(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !requireMethod(w, r, nethttp.MethodGet, h.logger) {
		return
	}
	snap := h.svc.Snapshot()
	writeJSON(w, nethttp.StatusOK, CatalogResponse{
		Records: snap.Records(),
		Keys:    snap.Keys(),
		Version: h.svc.Version(),
		BuiltAt: snap.BuiltAt(),
	}, h.logger)
}

// loading reports whether the first refresh cycle is still running. A miss
// before then would claim a listed game does not exist.
func (h *Handler) loading() bool {
	if h.statusFn == nil {
		return false
	}
	status := h.statusFn()
	return status.LastSuccess.IsZero() && status.ConsecutiveFailures == 0
}
