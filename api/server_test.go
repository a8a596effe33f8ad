package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wordrace/wordrace/game/manager"
	"github.com/wordrace/wordrace/transport/websocket"
)

func newTestServer(t *testing.T) (*Server, *manager.Manager) {
	t.Helper()

	hub := websocket.NewHub()
	mgr := manager.New(hub, manager.Options{})
	hub.Bind(mgr)

	return NewServer(mgr, hub, t.TempDir()), mgr
}

func getJSON(t *testing.T, server *Server, path string, out any) int {
	t.Helper()

	req := httptest.NewRequest("GET", path, nil)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
			t.Fatalf("failed to decode %s response: %v", path, err)
		}
	}
	return rec.Code
}

func TestHandleStats(t *testing.T) {
	server, mgr := newTestServer(t)

	var stats struct {
		ActiveSessions        int  `json:"active_sessions"`
		OpenLobbyAvailable    bool `json:"open_lobby_available"`
		ConnectedParticipants int  `json:"connected_participants"`
	}

	if code := getJSON(t, server, "/api/stats", &stats); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if stats.ActiveSessions != 0 || stats.OpenLobbyAvailable || stats.ConnectedParticipants != 0 {
		t.Errorf("expected empty stats, got %+v", stats)
	}

	if err := mgr.CreateSession("p1", "animals", "easy"); err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if code := getJSON(t, server, "/api/stats", &stats); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if stats.ActiveSessions != 1 {
		t.Errorf("expected 1 session, got %d", stats.ActiveSessions)
	}
	if !stats.OpenLobbyAvailable {
		t.Error("expected an open lobby")
	}
}

func TestHandleSettings(t *testing.T) {
	server, _ := newTestServer(t)

	var settings struct {
		Categories   []string `json:"categories"`
		Difficulties map[string]struct {
			WordCount int `json:"word_count"`
			GridSize  int `json:"grid_size"`
		} `json:"difficulties"`
	}

	if code := getJSON(t, server, "/api/settings", &settings); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}

	if len(settings.Categories) == 0 {
		t.Error("expected categories")
	}
	easy, ok := settings.Difficulties["easy"]
	if !ok {
		t.Fatal("expected easy difficulty")
	}
	if easy.WordCount != 10 || easy.GridSize != 12 {
		t.Errorf("unexpected easy tier: %+v", easy)
	}
}

func TestHandleHealth(t *testing.T) {
	server, _ := newTestServer(t)

	var health map[string]string
	if code := getJSON(t, server, "/api/health", &health); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if health["status"] != "healthy" {
		t.Errorf("expected healthy, got %q", health["status"])
	}
}
