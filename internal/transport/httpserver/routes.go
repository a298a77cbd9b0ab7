package httpserver

import (
	"net/http"
	"time"

	"family-records-go/internal/config"
	"family-records-go/internal/transport/httpserver/handler"
	authmw "family-records-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.JWTAuth) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.App.CORSOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		r.Post("/auth/login", handlers.Login)
		r.Post("/auth/logout", handlers.Logout)
		r.Post("/auth/forgot-password", handlers.ForgotPassword)
		r.Get("/auth/reset-sent/{token}", handlers.ResetSent)
		r.Get("/auth/reset/{token}", handlers.CheckReset)
		r.Post("/auth/reset/{token}", handlers.ResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)
			r.Get("/dashboard", handlers.Dashboard)

			r.Get("/states", handlers.ListStates)
			r.Post("/states", handlers.CreateState)
			r.Get("/states/export", handlers.ExportStates)
			r.Get("/states/{id}", handlers.GetState)
			r.Put("/states/{id}", handlers.UpdateState)
			r.Delete("/states/{id}", handlers.DeleteState)
			r.Get("/states/{id}/cities", handlers.CitiesByState)

			r.Get("/cities", handlers.ListCities)
			r.Post("/cities", handlers.CreateCity)
			r.Get("/cities/export", handlers.ExportCities)
			r.Get("/cities/{id}", handlers.GetCity)
			r.Put("/cities/{id}", handlers.UpdateCity)
			r.Delete("/cities/{id}", handlers.DeleteCity)

			r.Get("/families", handlers.ListFamilies)
			r.Post("/families", handlers.CreateFamily)
			r.Get("/families/export", handlers.ExportFamilies)
			r.Get("/families/{id}", handlers.GetFamily)
			r.Put("/families/{id}", handlers.UpdateFamily)
			r.Delete("/families/{id}", handlers.DeleteFamily)
			r.Get("/families/{id}/pdf", handlers.ExportFamilyPDF)
			r.Get("/families/{id}/excel", handlers.ExportFamilyExcel)
		})
	})

	return r
}
