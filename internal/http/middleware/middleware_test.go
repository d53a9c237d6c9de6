package middleware

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/preston-bernstein/metascore-lookup-service/internal/logging"
	"github.com/preston-bernstein/metascore-lookup-service/internal/metrics"
	"github.com/preston-bernstein/metascore-lookup-service/internal/testutil"
)

func TestLoggingMiddlewareSetsRequestIDAndPassesStatus(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	rec := metrics.NewRecorder()
	nextCalled := false

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected request id in context")
		}
		w.WriteHeader(http.StatusTeapot)
	})

	handler := LoggingMiddleware(logger, rec, next)
	rr := testutil.Serve(handler, http.MethodGet, "/lookup?game=zelda", nil)

	if !nextCalled {
		t.Fatalf("expected next handler to be called")
	}
	testutil.AssertStatus(t, rr, http.StatusTeapot)
	if !strings.Contains(buf.String(), "status_code=418") {
		t.Fatalf("expected completion log with status, got %q", buf.String())
	}
	if rec.ProviderCalls("http") != 0 {
		t.Fatalf("expected provider metrics untouched")
	}
}

func TestLoggingMiddlewareGeneratesRequestIDWhenMissing(t *testing.T) {
	logger, _ := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got == "" {
			t.Fatalf("expected generated request id")
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	rr := testutil.Serve(handler, http.MethodGet, "/lookup?game=mario", nil)

	testutil.AssertStatus(t, rr, http.StatusOK)
	if got := rr.Header().Get("X-Request-ID"); got == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
}

func TestLoggingMiddlewareKeepsValidIncomingRequestID(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := RequestIDFromContext(r.Context()); got != "abc-123" {
			t.Fatalf("expected incoming request id, got %s", got)
		}
	})

	handler := LoggingMiddleware(nil, nil, next)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rr := testutil.ServeRequest(handler, req)

	if got := rr.Header().Get("X-Request-ID"); got != "abc-123" {
		t.Fatalf("expected echoed request id, got %s", got)
	}
}

func TestLoggingMiddlewareAttachesContextLogger(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if logging.FromContext(r.Context(), nil) == nil {
			t.Fatalf("expected request-scoped logger in context")
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, nil, next)
	req := httptest.NewRequest(http.MethodGet, "/catalog", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.1, 10.0.0.1")
	testutil.ServeRequest(handler, req)

	if !strings.Contains(buf.String(), "client_ip=198.51.100.1") {
		t.Fatalf("expected forwarded client ip in log, got %q", buf.String())
	}
}

func TestResponseWriterDefaultsStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}
	if w.status != 0 {
		t.Fatalf("expected zero status before write, got %d", w.status)
	}
	w.WriteHeader(http.StatusAccepted)
	if w.status != http.StatusAccepted {
		t.Fatalf("expected status set to 202, got %d", w.status)
	}
}

func TestNormalizePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "/lookup", want: "/lookup"},
		{in: "/catalog", want: "/catalog"},
		{in: "/health", want: "/health"},
		{in: "/ready", want: "/ready"},
		{in: "/admin/refresh", want: "/admin/refresh"},
		{in: "/wp-admin/setup.php", want: otherPath},
	}

	for _, tt := range tests {
		if got := normalizePath(tt.in); got != tt.want {
			t.Fatalf("normalizePath(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Fatalf("expected empty id, got %s", got)
	}

	ctx = withRequestID(ctx, "abc123")
	if got := RequestIDFromContext(ctx); got != "abc123" {
		t.Fatalf("expected id from context, got %s", got)
	}
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	if got := RequestIDFromContext(nil); got != "" {
		t.Fatalf("expected empty id for nil context, got %s", got)
	}
}

func BenchmarkLoggingMiddleware(b *testing.B) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	rec := metrics.NewRecorder()
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Microsecond)
		w.WriteHeader(http.StatusOK)
	})

	handler := LoggingMiddleware(logger, rec, next)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/lookup?game=zelda", nil)
		handler.ServeHTTP(rr, req)
	}
}
