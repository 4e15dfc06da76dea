package api

import (
	"net/http"

	"trip-planner-service/internal/api/handlers"
	"trip-planner-service/internal/planner"
)

// NewRouter wires the session API. This is the API composition root;
// handlers stay unaware of concrete adapters, which live behind the
// orchestrator factory.
func NewRouter(factory func() *planner.Orchestrator) http.Handler {
	mux := http.NewServeMux()

	sessions := &handlers.SessionHandler{Store: handlers.NewSessionStore(factory)}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.HandleFunc("POST /sessions", sessions.Create)
	mux.HandleFunc("GET /sessions/{id}", sessions.Snapshot)
	mux.HandleFunc("POST /sessions/{id}/location", sessions.EditLocation)
	mux.HandleFunc("POST /sessions/{id}/location/commit", sessions.CommitLocation)
	mux.HandleFunc("POST /sessions/{id}/field", sessions.EditField)
	mux.HandleFunc("POST /sessions/{id}/submit", sessions.Submit)
	mux.HandleFunc("POST /sessions/{id}/logs", sessions.GenerateLogs)
	mux.HandleFunc("POST /sessions/{id}/dismiss", sessions.Dismiss)

	return loggingMiddleware(mux)
}
