package accesstest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
)

// Server is an in-memory access manager speaking the REST contract under
// /api/v1. The zero value is not usable; construct with New.
type Server struct {
	store   *store
	logger  *slog.Logger
	handler http.Handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Defaults to a discard logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// New creates a Server with an empty access graph.
func New(opts ...Option) *Server {
	s := &Server{
		store:  newStore(),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))
	r.Use(s.logRequests)

	r.Route("/api/v1", func(r chi.Router) {
		s.routeNodes(r)
		s.routeMappings(r)
		s.routeAccessChecks(r)
	})
	s.handler = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request", "id", uuid.NewString(), "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// param returns the named route parameter with percent-encoding removed.
func param(r *http.Request, name string) string {
	v := chi.URLParam(r, name)
	if decoded, err := url.PathUnescape(v); err == nil {
		return decoded
	}
	return v
}

func indirect(r *http.Request) bool {
	return r.URL.Query().Get("includeIndirectMappings") == "true"
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// wireError is the structured error body shape.
type wireError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Target     string      `json:"target,omitempty"`
	Attributes []attribute `json:"attributes,omitempty"`
	InnerError *wireError  `json:"innerError,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *apiError
	if !errors.As(err, &apiErr) {
		apiErr = &apiError{
			status:  http.StatusInternalServerError,
			code:    "ServerErrorException",
			message: err.Error(),
		}
	}
	s.logger.Debug("request failed", "method", r.Method, "path", r.URL.Path,
		"status", apiErr.status, "code", apiErr.code)
	s.writeJSON(w, apiErr.status, map[string]wireError{
		"error": {
			Code:       apiErr.code,
			Message:    apiErr.message,
			Target:     r.Method + " " + r.URL.Path,
			Attributes: apiErr.attributes,
		},
	})
}

// event runs a state change and answers with the given success status.
func (s *Server) event(w http.ResponseWriter, r *http.Request, successStatus int, fn func() error) {
	if err := fn(); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(successStatus)
}

// existence answers 200 when present is true and a not-found error body
// otherwise.
func (s *Server) existence(w http.ResponseWriter, r *http.Request, present bool, value string, absent error) {
	if !present {
		s.writeError(w, r, absent)
		return
	}
	s.writeJSON(w, http.StatusOK, value)
}
