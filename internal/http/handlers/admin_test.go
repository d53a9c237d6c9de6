package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/preston-bernstein/metascore-lookup-service/internal/poller"
	"github.com/preston-bernstein/metascore-lookup-service/internal/testutil"
)

type stubRefresher struct {
	result poller.Result
	calls  int
	ctxErr error
}

func (s *stubRefresher) Refresh(ctx context.Context) poller.Result {
	s.calls++
	s.ctxErr = ctx.Err()
	return s.result
}

func adminRequest(token string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/admin/refresh", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestAdminRefreshRequiresAuth(t *testing.T) {
	refresher := &stubRefresher{}
	h := NewAdminHandler(refresher, "secret", nil)

	for _, token := range []string{"", "wrong"} {
		rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest(token))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	}
	if refresher.calls != 0 {
		t.Fatalf("expected no refresh without auth")
	}
}

func TestAdminRefreshDisabledWithoutToken(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{}, "", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest(""))
	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}

func TestAdminRefreshRunsCycle(t *testing.T) {
	refresher := &stubRefresher{result: poller.Result{Installed: true, Records: 4, Pages: 2}}
	h := NewAdminHandler(refresher, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusOK)

	var res poller.Result
	testutil.DecodeJSON(t, rr, &res)
	if res.Records != 4 || res.Pages != 2 || !res.Installed {
		t.Fatalf("unexpected result %+v", res)
	}
	if refresher.calls != 1 {
		t.Fatalf("expected one refresh, got %d", refresher.calls)
	}
}

func TestAdminRefreshIgnoresClientCancel(t *testing.T) {
	refresher := &stubRefresher{result: poller.Result{Installed: true}}
	h := NewAdminHandler(refresher, "secret", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := adminRequest("secret").WithContext(ctx)
	testutil.ServeRequest(http.HandlerFunc(h.Refresh), req)

	if refresher.ctxErr != nil {
		t.Fatalf("expected refresh context detached from request, got %v", refresher.ctxErr)
	}
}

func TestAdminRefreshReportsFailedCycle(t *testing.T) {
	refresher := &stubRefresher{result: poller.Result{Error: "timeout"}}
	h := NewAdminHandler(refresher, "secret", nil)

	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusBadGateway)
}

func TestAdminRefreshRejectsGet(t *testing.T) {
	h := NewAdminHandler(&stubRefresher{}, "secret", nil)
	rr := testutil.Serve(http.HandlerFunc(h.Refresh), http.MethodGet, "/admin/refresh", nil)
	testutil.AssertStatus(t, rr, http.StatusMethodNotAllowed)
}

func TestAdminRefreshWithoutRefresher(t *testing.T) {
	h := NewAdminHandler(nil, "secret", nil)
	rr := testutil.ServeRequest(http.HandlerFunc(h.Refresh), adminRequest("secret"))
	testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
}
