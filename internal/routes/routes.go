package routes

import (
	"net/http"

	"github.com/streakpost/streakpost/internal/config"
	"github.com/streakpost/streakpost/internal/handler"
	"github.com/streakpost/streakpost/internal/middleware"
)

type Handlers struct {
	Health   *handler.HealthHandler
	Project  *handler.ProjectHandler
	Progress *handler.ProgressHandler
	Streak   *handler.StreakHandler
	Badge    *handler.BadgeHandler
	Upload   *handler.UploadHandler // nil when no object store is configured
}

// New builds the HTTP routing table. Every /api/v1 route requires the auth
// collaborator's JWT; write routes are additionally rate limited per IP.
func New(cfg *config.Config, h *Handlers) http.Handler {
	mux := http.NewServeMux()
	limit := middleware.RateLimitWrites()

	auth := func(hf http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(hf)
	}
	write := func(hf http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireAuth(limit(hf))
	}

	mux.HandleFunc("GET /healthz", h.Health.Health)

	// Projects
	mux.HandleFunc("POST /api/v1/projects", write(h.Project.Create))
	mux.HandleFunc("GET /api/v1/projects", auth(h.Project.List))
	mux.HandleFunc("GET /api/v1/projects/{id}", auth(h.Project.Get))
	mux.HandleFunc("PATCH /api/v1/projects/{id}", write(h.Project.Update))
	mux.HandleFunc("DELETE /api/v1/projects/{id}", write(h.Project.Delete))
	mux.HandleFunc("POST /api/v1/projects/{id}/start", write(h.Project.Start))
	mux.HandleFunc("POST /api/v1/projects/{id}/extend", write(h.Project.Extend))

	// Progress posts
	mux.HandleFunc("GET /api/v1/projects/{id}/can-post", auth(h.Progress.CanPost))
	mux.HandleFunc("POST /api/v1/projects/{id}/posts", write(h.Progress.Create))
	mux.HandleFunc("GET /api/v1/projects/{id}/posts", auth(h.Progress.History))
	mux.HandleFunc("PATCH /api/v1/posts/{id}", write(h.Progress.Update))

	// Streak views
	mux.HandleFunc("GET /api/v1/projects/{id}/streak", auth(h.Streak.Progress))
	mux.HandleFunc("GET /api/v1/projects/{id}/streak/status", auth(h.Streak.Status))
	mux.HandleFunc("POST /api/v1/projects/{id}/streak/reset", write(h.Project.ResetStreak))
	mux.HandleFunc("GET /api/v1/projects/{id}/calendar", auth(h.Streak.Calendar))
	mux.HandleFunc("GET /api/v1/projects/{id}/stats", auth(h.Streak.Stats))
	mux.HandleFunc("POST /api/v1/projects/{id}/stats/verify", write(h.Streak.Verify))
	mux.HandleFunc("POST /api/v1/projects/{id}/stats/reconcile", write(h.Streak.Reconcile))

	// Badges
	mux.HandleFunc("GET /api/v1/projects/{id}/badges/eligible", auth(h.Badge.Eligible))
	mux.HandleFunc("POST /api/v1/projects/{id}/badges/{badgeId}/award", write(h.Badge.Award))
	mux.HandleFunc("GET /api/v1/badges", auth(h.Badge.List))
	mux.HandleFunc("GET /api/v1/badges/earned", auth(h.Badge.Earned))

	// Uploads
	if h.Upload != nil {
		mux.HandleFunc("POST /api/v1/uploads/presign", write(h.Upload.Presign))
	}

	return middleware.Chain(mux,
		middleware.Config(cfg),
		middleware.RequestLogging,
		middleware.Auth(cfg.JWTSecret),
	)
}
