package discovery

import (
	"github.com/gorilla/mux"

	"github.com/joinember/ember-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Discovery feed
	api.HandleFunc("/discovery", handler.GetFeed).Methods("GET")
	api.HandleFunc("/discovery/next-user", handler.GetNextUser).Methods("GET")

	// Interactions
	api.HandleFunc("/discovery/like", handler.Like).Methods("POST")
	api.HandleFunc("/discovery/pass", handler.Pass).Methods("POST")

	// Matches
	api.HandleFunc("/discovery/matches", handler.GetMatches).Methods("GET")
	api.HandleFunc("/discovery/matches/{id}/unmatch", handler.Unmatch).Methods("POST")

	// Realtime events
	ws := router.PathPrefix("/ws").Subrouter()
	ws.Use(authMiddleware.Authenticate)
	ws.HandleFunc("", handler.ServeWS).Methods("GET")
}
