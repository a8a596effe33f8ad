package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordrace/wordrace/game/manager"
	"github.com/wordrace/wordrace/game/words"
	"github.com/wordrace/wordrace/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	manager   *manager.Manager
	hub       *websocket.Hub
	router    *mux.Router
	staticDir string
}

// NewServer creates a new API server
func NewServer(mgr *manager.Manager, hub *websocket.Hub, staticDir string) *Server {
	s := &Server{
		manager:   mgr,
		hub:       hub,
		router:    mux.NewRouter(),
		staticDir: staticDir,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/stats", s.handleStats).Methods("GET")
	api.HandleFunc("/settings", s.handleSettings).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.hub.ServeWS)

	// Static files
	s.router.PathPrefix("/").Handler(http.FileServer(http.Dir(s.staticDir)))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats := s.manager.Stats()

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"active_sessions":        stats.ActiveSessions,
		"open_lobby_available":   stats.OpenLobbyAvailable,
		"connected_participants": s.hub.ClientCount(),
	})
}

// handleSettings lists the categories and difficulty tiers the lobby
// accepts, so clients can build their settings UI without hardcoding.
func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	tiers := make(map[string]words.Tier)
	for _, d := range words.Difficulties() {
		tier, ok := words.Lookup(words.Categories()[0], d)
		if !ok {
			respondError(w, http.StatusInternalServerError, "inconsistent difficulty table")
			return
		}
		tiers[d] = tier
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"categories":   words.Categories(),
		"difficulties": tiers,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
