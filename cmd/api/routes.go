package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"gyansetu/internal/config"
	handlers "gyansetu/internal/handler"
	"gyansetu/internal/middleware"
	"gyansetu/internal/models"
)

func newRouter(h *handlers.Handlers, cfg *config.Config, lg *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", h.Root)
	r.Get("/health", h.Health)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/signup", h.Signup)
		r.Post("/auth/login", h.Login)
		r.Post("/auth/forgot-password", h.ForgotPassword)
		r.Post("/auth/reset-password", h.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(h.AuthService))

			r.Post("/auth/logout", h.Logout)
			r.Post("/auth/refresh", h.Refresh)
			r.Get("/me", h.Me)

			r.Get("/feed", h.Feed)
			r.Get("/gurus", h.Gurus)
			r.Get("/gurus/{id}/posts", h.GuruPosts)

			r.With(middleware.RequireRole(models.RoleGuru)).Post("/posts", h.CreatePost)

			r.Put("/profile", h.UpdateProfile)
			r.Post("/profile/avatar", h.ChangeAvatar)
			r.With(middleware.RequireRole(models.RoleGuru)).Put("/profile/bank-details", h.UpdateBankDetails)
			r.Get("/profile/calls", h.CallHistory)

			r.Post("/dakshina", h.Pay)
			r.Get("/dakshina/presets", h.Presets)

			r.Post("/calls", h.StartCall)
			r.Get("/calls/{id}", h.GetCall)
			r.Post("/calls/{id}/mute", h.ToggleMute)
			r.Post("/calls/{id}/camera", h.ToggleCamera)
			r.Post("/calls/{id}/end", h.EndCall)
			r.Get("/calls/{id}/events", h.CallEvents)

			r.Get("/preferences", h.GetPreferences)
			r.Put("/preferences", h.UpdatePreferences)
			r.Post("/feedback", h.SubmitFeedback)

			r.Route("/owner", func(r chi.Router) {
				r.Use(middleware.OwnerOnly(cfg.OwnerUsername))
				r.Get("/commissions", h.Commissions)
				r.Get("/feedback", h.FeedbackList)
				r.Get("/stats", h.Stats)
			})
		})
	})

	// CORS answers preflights for every path, including ones chi has no route for.
	return middleware.Chain(r, middleware.CORS(cfg.CORSAllowedOrigins), middleware.Logging(lg))
}
