// Package web exposes the roster as an authenticated server-rendered UI.
package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/spler/influencer-hub/internal/excel"
	"github.com/spler/influencer-hub/internal/service"
	"github.com/spler/influencer-hub/internal/store"
)

const sessionName = "influencer-hub"

// Server wires HTTP handlers to the store and the enrichment/discovery
// services.
type Server struct {
	router    chi.Router
	store     *store.Store
	discovery *service.DiscoveryService
	enricher  *service.Enricher
	importer  *excel.Importer
	sessions  *sessions.CookieStore
	templates *templateSet
	logger    *zap.Logger
}

func NewServer(
	st *store.Store,
	discovery *service.DiscoveryService,
	enricher *service.Enricher,
	importer *excel.Importer,
	sessionSecret string,
	logger *zap.Logger,
) (*Server, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	cookieStore := sessions.NewCookieStore([]byte(sessionSecret))
	cookieStore.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	s := &Server{
		store:     st,
		discovery: discovery,
		enricher:  enricher,
		importer:  importer,
		sessions:  cookieStore,
		templates: templates,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(s.loggingMiddleware)
	r.Use(s.recoverMiddleware)

	r.Get("/healthz", s.healthz)
	r.Get("/login", s.loginForm)
	r.Post("/login", s.login)
	r.Get("/logout", s.logout)

	r.Group(func(r chi.Router) {
		r.Use(s.requireLogin)
		r.Get("/", s.index)
		r.Get("/search", s.search)
		r.Get("/discover", s.discover)
		r.Get("/new", s.newForm)
		r.Post("/new", s.create)
		r.Get("/edit/{id}", s.editForm)
		r.Post("/edit/{id}", s.update)
		r.Post("/delete/{id}", s.delete)
		r.Post("/delete-all", s.deleteAll)
		r.Get("/import", s.importForm)
		r.Post("/import", s.importWorkbook)
		r.Get("/export", s.export)
		r.Post("/dm/apply", s.applyDMTemplate)
	})

	s.router = r
	return s, nil
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("Request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				s.logger.Error("Handler panic",
					zap.String("path", r.URL.Path),
					zap.Any("panic", rec),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
