package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/avelling/resman/internal/httpserver/deps"
	"github.com/avelling/resman/internal/httpserver/handlers"
)

func init() { Register(registerResources) }

func registerResources(r chi.Router, d deps.Deps) {
	r.Get("/api", handlers.Root(d))
	r.Get("/api/", handlers.Root(d))

	r.Route("/api/resources", func(rr chi.Router) {
		rr.Get("/", handlers.ListResources(d))
		rr.Post("/", handlers.CreateResource(d))
		rr.Post("/import", handlers.ImportResources(d))
		rr.Put("/{id}", handlers.UpdateResource(d))
		rr.Delete("/{id}", handlers.DeleteResource(d))
	})
}
