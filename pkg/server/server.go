// Package server exposes the browser, control panel and composer over HTTP.
//
// Routes:
//
//	GET    /healthz
//	GET    /tabs                       list tabs
//	POST   /tabs                       open {url} or {html, url}
//	POST   /tabs/{id}/activate
//	POST   /tabs/{id}/reload
//	POST   /tabs/{id}/click            {selector}
//	POST   /tabs/{id}/hover            {selector, leave}
//	POST   /tabs/{id}/message          raw control message
//	GET    /tabs/{id}/render           PNG from an editor tab; query bg, footer
//	POST   /tabs/{id}/render           PNG from an editor tab; form bg, footer, file logo
//	POST   /panel/{intent}             testimonial | member | disable | clear
//	POST   /panel/composer             open a composer tab
//	GET    /items                      the stored selection
//	DELETE /items                      clear storage directly
//	GET    /composer/render            PNG; query bg, footer
//	POST   /composer/render            PNG; form bg, footer, file logo
//
// Errors are JSON objects {"code", "error"} with a status derived from the
// error code.
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/stc/pkg/buildinfo"
	"github.com/matzehuels/stc/pkg/errors"
	"github.com/matzehuels/stc/pkg/host"
	"github.com/matzehuels/stc/pkg/panel"
	"github.com/matzehuels/stc/pkg/selection"
)

const maxBodySize = 10 << 20

// Server routes HTTP requests to a browser.
type Server struct {
	browser *host.Browser
	panel   *panel.Panel
	repo    *selection.Repository
	logger  *log.Logger
	router  chi.Router
}

// New builds the router for b.
func New(b *host.Browser, repo *selection.Repository, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		browser: b,
		panel:   panel.New(b, logger),
		repo:    repo,
		logger:  logger,
	}
	s.router = s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)

	r.Route("/tabs", func(r chi.Router) {
		r.Get("/", s.handleListTabs)
		r.Post("/", s.handleOpenTab)
		r.Route("/{id}", func(r chi.Router) {
			r.Post("/activate", s.handleActivate)
			r.Post("/reload", s.handleReload)
			r.Post("/click", s.handleClick)
			r.Post("/hover", s.handleHover)
			r.Post("/message", s.handleMessage)
			r.Get("/render", s.handleTabRender)
			r.Post("/render", s.handleTabRender)
		})
	})

	r.Route("/panel", func(r chi.Router) {
		r.Post("/composer", s.handleOpenComposer)
		r.Post("/{intent}", s.handleIntent)
	})

	r.Get("/items", s.handleItems)
	r.Delete("/items", s.handleClearItems)

	r.Get("/composer/render", s.handleRender)
	r.Post("/composer/render", s.handleRender)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func errorResponse(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	jsonResponse(w, statusFor(code), map[string]string{
		"code":  string(code),
		"error": errors.UserMessage(err),
	})
}

func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidMode, errors.ErrCodeInvalidColor,
		errors.ErrCodeInvalidCommand, errors.ErrCodeInvalidPath, errors.ErrCodeInvalidSelector,
		errors.ErrCodeLogoDecode:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeTabNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeStorage:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decode reads a JSON body into v.
func decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}
