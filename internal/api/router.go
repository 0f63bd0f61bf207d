// internal/api/router.go
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"user-service/internal/api/handler"
	"user-service/internal/api/types"
)

// NewRouter sets up and returns a new HTTP router.
func NewRouter(userHandler *handler.UserHandler, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)

	// Registered before any sub-router so they are inherited on mount.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondWithJSON(w, logger, http.StatusNotFound, types.MessageResponse{Message: "Not Found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handler.RespondWithJSON(w, logger, http.StatusMethodNotAllowed, types.MessageResponse{Message: "Method Not Allowed"})
	})

	r.Get("/test", userHandler.Test)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{id:[0-9]+}", userHandler.GetUser)
		r.Put("/{id:[0-9]+}", userHandler.UpdateUser)
		r.Delete("/{id:[0-9]+}", userHandler.DeleteUser)
	})

	return r
}
