package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"flexboard/internal/config"
	"flexboard/internal/handler"
	"flexboard/internal/middleware"
)

type Handlers struct {
	Auth   *handler.AuthHandler
	User   *handler.UserHandler
	Job    *handler.JobHandler
	Audit  *handler.AuditHandler
	Docs   *handler.DocsHandler
	Health *handler.HealthHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, sessions middleware.SessionScoper, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	// Proxy headers are client-controlled unless a trusted proxy rewrites them.
	if cfg.TrustProxyHeaders {
		r.Use(chimiddleware.RealIP)
	}
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.SecurityHeaders)
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", h.Health.Check)
	r.Get("/openapi.yaml", h.Docs.OpenAPI)
	r.Get("/openapi.json", h.Docs.OpenAPIJSON)
	r.Get("/swagger", h.Docs.SwaggerUI)

	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))
		api.Use(middleware.Session(sessions))

		api.Post("/login/token", h.Auth.Login)
		api.Post("/users/create-user", h.User.Register)

		api.Group(func(protected chi.Router) {
			protected.Use(authMiddleware.RequireAuth)

			protected.Get("/users/me", h.User.Me)

			protected.Route("/jobs", func(jobs chi.Router) {
				jobs.Post("/create-job", h.Job.Create)
				jobs.Get("/get-job/{id}", h.Job.Get)
				jobs.Get("/list-jobs", h.Job.List)
				jobs.Put("/update-job/{id}", h.Job.Update)
				jobs.Delete("/delete-job/{id}", h.Job.Delete)
			})

			protected.With(authMiddleware.RequireSuperuser).Get("/audit/list-entries", h.Audit.List)
		})
	})

	return r
}
