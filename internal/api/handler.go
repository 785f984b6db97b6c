package api

import (
	"building-telemetry-backend/internal/auth"
	"building-telemetry-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store store.Store
	users *auth.Registry
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, users *auth.Registry) *Handler {
	return &Handler{
		store: s,
		users: users,
	}
}
