// Package server exposes the locator, transformer, and backup archive
// over a thin JSON HTTP API for the admin UI. Handlers marshal
// parameters and render reports; they hold no logic of their own.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/phptune/phptune/src/internal/backup"
	"github.com/phptune/phptune/src/internal/fileaccess"
	"github.com/phptune/phptune/src/internal/locator"
	"github.com/phptune/phptune/src/internal/platform"
)

// Server wires the library components behind HTTP routes.
type Server struct {
	ctx     *platform.Context
	locator *locator.Locator
	archive *backup.Archive
	fs      fileaccess.FileAccess
}

// New creates a Server over the given locator. File operations run with
// the process's own privileges; elevation is the CLI's concern.
func New(ctx *platform.Context, loc *locator.Locator) *Server {
	fs := fileaccess.NewDirect()
	return &Server{
		ctx:     ctx,
		locator: loc,
		archive: backup.NewArchive(fs),
		fs:      fs,
	}
}

// Router builds the chi router with all admin API routes mounted.
func (s *Server) Router() *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/installations", s.handleInstallations)
		r.Post("/resolve", s.handleResolve)
		r.Post("/customize", s.handleCustomize)
		r.Post("/validate", s.handleValidate)
		r.Get("/extensions", s.handleExtensions)

		r.Route("/backups", func(r chi.Router) {
			r.Get("/", s.handleListBackups)
			r.Post("/", s.handleCreateBackup)
			r.Post("/restore", s.handleRestoreBackup)
			r.Post("/cleanup", s.handleCleanupBackups)
		})
	})

	return r
}

// ListenAndServe starts the admin API on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Router())
}
