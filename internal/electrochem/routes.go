package electrochem

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the overpotential and preset endpoints.
func (s *Service) RegisterRoutes(r chi.Router) {
	r.Route("/overpotential", func(r chi.Router) {
		r.Post("/", s.Compute)
		r.Post("/diagram", s.Diagram)
	})
	r.Route("/presets", func(r chi.Router) {
		r.Get("/", s.ListPresets)
		r.Get("/{name}", s.GetPreset)
	})
}
