package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter assembles the dashboard routes.
func NewRouter(handler *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/", handler.Index)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/datasets", func(r chi.Router) {
			r.Post("/", handler.Upload)
			r.Get("/{id}", handler.Info)
			r.Get("/{id}/summary", handler.Summary)
			r.Get("/{id}/export", handler.Export)
			r.Get("/{id}/charts", handler.Charts)
		})
	})

	return r
}
