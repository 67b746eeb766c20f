package api

import "github.com/go-chi/chi/v5"

func (s *Server) routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)
		r.Get("/events", s.handleEvents)

		r.Route("/drivers", func(r chi.Router) {
			r.Get("/", s.handleDrivers)
			r.Route("/{type}", func(r chi.Router) {
				r.Get("/", s.handleDriver)
				r.Get("/types/{native}", s.handleTypeConvert)
				r.Post("/schema", s.handleCreateSchema)
				r.Post("/select", s.handleSelectAll)
				r.Post("/ddl", s.handleCreateTable)
				r.Post("/query", s.handleQueryData)
			})
		})

		r.Route("/tables", func(r chi.Router) {
			r.Get("/", s.handleTables)
			r.Get("/{ref}", s.handleTable)
			r.Get("/{ref}/ddl", s.handleTableDDL)
			r.Get("/{ref}/select", s.handleTableSelect)
		})
	})
}
