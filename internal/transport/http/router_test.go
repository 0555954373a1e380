package httptransport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"turing-arena/internal/arena"
	"turing-arena/internal/ws"
)

type noopResponder struct{}

func (noopResponder) Generate(context.Context, string, []string) (string, error) {
	return "ok", nil
}

func newTestRouter(t *testing.T) (*arena.Manager, http.Handler) {
	t.Helper()
	manager := arena.NewManager(arena.Config{}, noopResponder{})
	wsSrv := ws.NewServer(manager, 0)
	manager.AttachTransport(wsSrv)
	return manager, NewRouter(manager, wsSrv)
}

func TestHealthz(t *testing.T) {
	_, router := newTestRouter(t)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !body["ok"] {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestPublicStats(t *testing.T) {
	manager, router := newTestRouter(t)
	manager.OnConnect("conn-a")
	manager.OnQueueJoin("conn-a")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/public/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]int
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["connections"] != 1 || body["queued"] != 1 || body["active_sessions"] != 0 {
		t.Fatalf("stats = %v", body)
	}
}
