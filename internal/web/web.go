// Package web renders the HTML pages: the public landing page, the
// dashboard, and the 404 page, plus the embedded static assets.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/driftwoodlabs/showfloor/internal/metrics"
	"github.com/driftwoodlabs/showfloor/internal/models"
	"github.com/driftwoodlabs/showfloor/internal/storage"
)

//go:embed templates
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// Server renders the HTML pages. With a nil store every page serves its
// built-in fallback content; that is both the degraded mode of the full
// server and the whole of the static site variant.
type Server struct {
	store storage.Store
	tmpl  *template.Template
}

// NewServer creates a page server backed by the database.
func NewServer(store storage.Store) (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{store: store, tmpl: tmpl}, nil
}

// NewStaticServer creates a page server with no database behind it.
func NewStaticServer() (*Server, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Server{tmpl: tmpl}, nil
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"statusLabel": func(s models.Status) string {
			switch s {
			case models.StatusInProgress:
				return "In progress"
			case models.StatusCompleted:
				return "Completed"
			default:
				return "Planning"
			}
		},
		"fmtTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006 15:04")
		},
	}
	return template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
}

// render executes a template into a buffer first so a template error
// never leaks a half-written page.
func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("render %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	metrics.PagesRenderedTotal.WithLabelValues(name).Inc()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// Landing serves the public page. Database trouble degrades to the
// static view; the page itself always answers 200.
func (s *Server) Landing(w http.ResponseWriter, r *http.Request) {
	view := staticLandingView()
	if s.store != nil {
		counters, err := s.store.Metrics().List(r.Context())
		if err != nil {
			log.Printf("landing: list metrics: %v", err)
		} else {
			view = landingView(counters)
		}
	}
	s.render(w, http.StatusOK, "landing.html", view)
}

// Dashboard serves the listing of users, projects and counters. Unlike
// the landing page it reports database trouble honestly with a 503.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.render(w, http.StatusServiceUnavailable, "unavailable.html", nil)
		return
	}

	ctx := r.Context()

	users, err := s.store.Users().List(ctx)
	if err != nil {
		log.Printf("dashboard: list users: %v", err)
		s.render(w, http.StatusServiceUnavailable, "unavailable.html", nil)
		return
	}
	projects, err := s.store.Projects().List(ctx)
	if err != nil {
		log.Printf("dashboard: list projects: %v", err)
		s.render(w, http.StatusServiceUnavailable, "unavailable.html", nil)
		return
	}
	counters, err := s.store.Metrics().List(ctx)
	if err != nil {
		log.Printf("dashboard: list metrics: %v", err)
		s.render(w, http.StatusServiceUnavailable, "unavailable.html", nil)
		return
	}

	s.render(w, http.StatusOK, "dashboard.html", DashboardView{
		Users:    users,
		Projects: projects,
		Metrics:  counters,
	})
}

// NotFound serves the HTML 404 page.
func (s *Server) NotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusNotFound, "notfound.html", nil)
}

// StaticFS serves the embedded static assets.
func (s *Server) StaticFS() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// Unrecoverable init error - server cannot function without static assets
		panic(fmt.Sprintf("failed to create static FS: %v", err))
	}
	return http.FileServer(http.FS(sub))
}
