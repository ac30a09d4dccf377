package httpapi

import (
	"github.com/go-chi/chi/v5"
)

// NewRouter mounts the public REST API under /api. Only the profile update
// requires a bearer token; the remaining endpoints are open and the client
// gates access to them locally.
func NewRouter(h *Handler, secret []byte) chi.Router {
	r := chi.NewRouter()

	r.Route("/api", func(api chi.Router) {
		api.Post("/farmer/signup", h.signup)
		api.Post("/farmer/login", h.login)
		api.Get("/farmer/dashboard", h.dashboard)

		api.Post("/feedback", h.submitFeedback)
		api.Get("/feedback/analytics", h.analytics)

		api.Post("/recommend-crop", h.recommendCrop)
		api.Post("/disease/detect", h.detectDisease)

		api.Group(func(private chi.Router) {
			private.Use(bearerAuth(secret))
			private.Put("/farmer/profile", h.updateProfile)
		})
	})

	return r
}
