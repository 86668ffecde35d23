package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"findash/internal/amqp"
	"findash/internal/ledger/memory"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages []*amqp.BudgetAlertMessage
}

func (p *fakePublisher) PublishBudgetAlert(_ context.Context, msg *amqp.BudgetAlertMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return nil
}

func (p *fakePublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.messages)
}

func newTestServer(t *testing.T) (*Server, *memory.Store, *fakePublisher) {
	t.Helper()
	store := memory.New()
	publisher := &fakePublisher{}
	s := NewServer("127.0.0.1:0", store, publisher, 3)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s, store, publisher
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler.ServeHTTP(rec, req)
	return rec
}

func decodeInto(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHealthAndReady(t *testing.T) {
	s, _, _ := newTestServer(t)

	if rec := doRequest(s, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("/healthz = %d, want 200", rec.Code)
	}
	if rec := doRequest(s, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Errorf("/readyz = %d, want 200", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	s, _, _ := newTestServer(t)

	doRequest(s, http.MethodGet, "/api/transactions", "")

	rec := doRequest(s, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "findash_http_requests_total") {
		t.Error("request counter missing from metrics output")
	}
}

func TestSecurityHeaders(t *testing.T) {
	s, _, _ := newTestServer(t)

	rec := doRequest(s, http.MethodGet, "/api/transactions", "")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}

func TestRateLimitOnWrites(t *testing.T) {
	s, _, _ := newTestServer(t)

	var lastCode int
	for i := 0; i < 70; i++ {
		rec := doRequest(s, http.MethodPost, "/api/sample", `{"seed": 1, "count": 1}`)
		lastCode = rec.Code
	}
	if lastCode != http.StatusTooManyRequests {
		t.Errorf("request 70 = %d, want 429", lastCode)
	}

	// Reads are not limited.
	if rec := doRequest(s, http.MethodGet, "/api/transactions", ""); rec.Code != http.StatusOK {
		t.Errorf("GET after limit = %d, want 200", rec.Code)
	}
}
