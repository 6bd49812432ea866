package main

import (
	"context"
	"net/http"
	"time"

	"github.com/classplay/classplay-api/internal/api"
	apiMiddleware "github.com/classplay/classplay-api/internal/api/middleware"
	"github.com/classplay/classplay-api/internal/api/shared"
	"github.com/classplay/classplay-api/internal/domain"
	"github.com/classplay/classplay-api/internal/platform/metrics"
	"github.com/classplay/classplay-api/internal/redact"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status               string `json:"status"`
	Database             string `json:"database"`
	GenerationConfigured bool   `json:"generation_configured"`
}

// setupRouter creates the router with all middleware and routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(metrics.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.authService)
	classHandler := api.NewClassHandler(app.classService)
	resourceHandler := api.NewResourceHandler(app.resourceService)
	generationHandler := api.NewGenerationHandler(app.generationService, app.config.LLM.StoryPages)
	adminHandler := api.NewAdminHandler(app.adminService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.authService)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/change-password", authHandler.ChangePassword)

			r.Get("/classes", classHandler.List)
			r.Post("/classes", classHandler.Create)
			r.Put("/classes/{id}", classHandler.Update)
			r.Delete("/classes/{id}", classHandler.Delete)

			r.Route("/generate", func(r chi.Router) {
				r.Post("/math", generationHandler.Math)
				r.Post("/crossword", generationHandler.Crossword)
				r.Post("/quiz", generationHandler.Quiz)
				r.Post("/assignment", generationHandler.Assignment)
				r.Post("/jeopardy", generationHandler.Jeopardy)
			})
			r.Post("/library/generate", generationHandler.Storybook)

			r.Get("/resources", resourceHandler.List)
			r.Post("/resources", resourceHandler.Save)
			r.Delete("/resources/{id}", resourceHandler.Delete)

			r.Route("/admin", func(r chi.Router) {
				r.Use(apiMiddleware.RequireRole(domain.RoleSuperAdmin))

				r.Get("/teachers", adminHandler.ListTeachers)
				r.Post("/teachers", adminHandler.CreateTeacher)
				r.Delete("/teachers/{id}", adminHandler.DeleteTeacher)
				r.Get("/analytics", adminHandler.Analytics)
				r.Get("/organizations", adminHandler.ListOrganizations)
				r.Post("/organizations", adminHandler.CreateOrganization)
				r.Get("/payments", adminHandler.ListPayments)
				r.Post("/payments", adminHandler.RecordPayment)
				r.Get("/audit-logs", adminHandler.AuditLog)
			})
		})
	})

	r.Get("/health", app.health)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// health reports liveness together with database reachability and whether
// content generation is configured. It answers 200 even when the database
// is down.
func (app *application) health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:               "ok",
		Database:             "ok",
		GenerationConfigured: app.generationService.Configured(),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Warn("health check: database unreachable", "error", redact.Error(err))
		resp.Database = "unavailable"
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}
