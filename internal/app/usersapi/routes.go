package usersapi

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/users-api/internal/http/handlers/user/create"
	"github.com/magabrotheeeer/users-api/internal/http/handlers/user/emailcheck"
	"github.com/magabrotheeeer/users-api/internal/http/handlers/user/list"
	"github.com/magabrotheeeer/users-api/internal/http/handlers/user/read"
	"github.com/magabrotheeeer/users-api/internal/http/handlers/user/remove"
	"github.com/magabrotheeeer/users-api/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/users-api/internal/http/middlewarectx"
	userservice "github.com/magabrotheeeer/users-api/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, userService *userservice.UserService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/users", create.New(logger, userService).ServeHTTP)
			r.Get("/users", list.New(logger, userService).ServeHTTP)
			r.Get("/users/exists", emailcheck.New(logger, userService).ServeHTTP)
			r.Get("/users/{id}", read.New(logger, userService).ServeHTTP)
			r.Put("/users/{id}", update.New(logger, userService).ServeHTTP)
			r.Delete("/users/{id}", remove.New(logger, userService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
