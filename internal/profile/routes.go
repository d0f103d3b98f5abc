package profile

import (
	"github.com/gorilla/mux"

	"github.com/joinember/ember-backend/internal/auth"
)

func RegisterRoutes(router *mux.Router, handler *Handler, authMiddleware *auth.Middleware) {
	api := router.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware.Authenticate)

	// Profile management
	api.HandleFunc("/profile", handler.GetMyProfile).Methods("GET")
	api.HandleFunc("/profile", handler.UpdateProfile).Methods("PUT")
	api.HandleFunc("/profile/setup", handler.SetupProfile).Methods("POST")
	api.HandleFunc("/profile/completion", handler.GetProfileCompletion).Methods("GET")

	// Blocking
	api.HandleFunc("/profile/blocked", handler.GetBlockedUsers).Methods("GET")
	api.HandleFunc("/users/{id}/block", handler.BlockUser).Methods("POST")
	api.HandleFunc("/users/{id}/block", handler.UnblockUser).Methods("DELETE")
}
