// Package server exposes extraction over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/mrjoshuak/readtext"
	"github.com/mrjoshuak/readtext/internal/fetch"
)

// Fetcher downloads a page. *fetch.Client implements it.
type Fetcher interface {
	Get(ctx context.Context, url string) (string, error)
}

const (
	defaultTimeout        = 30 * time.Second
	defaultMaxRequestBody = 8 << 20
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger requests are logged to.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.log = l }
}

// WithTimeout bounds the handling of one request, fetch included.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithMaxRequestBody limits the size of request bodies.
func WithMaxRequestBody(n int64) Option {
	return func(s *Server) { s.maxBody = n }
}

type Server struct {
	router    *chi.Mux
	extractor readtext.Extractor
	fetcher   Fetcher
	log       zerolog.Logger
	timeout   time.Duration
	maxBody   int64
}

// NewServer returns a Server extracting with ext. A nil fetcher disables
// extraction by URL.
func NewServer(ext readtext.Extractor, fetcher Fetcher, opts ...Option) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		extractor: ext,
		fetcher:   fetcher,
		log:       zerolog.Nop(),
		timeout:   defaultTimeout,
		maxBody:   defaultMaxRequestBody,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(hlog.NewHandler(s.log))
	s.router.Use(hlog.RequestIDHandler("req_id", "X-Request-Id"))
	s.router.Use(hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("request")
	}))
	s.router.Use(middleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
	}))

	s.router.Get("/healthz", s.handleHealth)
	s.router.With(middleware.Timeout(s.timeout)).Post("/v1/extract", s.handleExtract)
}

func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

type extractRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

type extractResponse struct {
	Title   string `json:"title"`
	Body    string `json:"body"`
	Content string `json:"content"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	log := hlog.FromRequest(r)

	var req extractRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if (req.URL == "") == (req.HTML == "") {
		respondError(w, http.StatusBadRequest, "exactly one of url and html is required")
		return
	}

	page := req.HTML
	if req.URL != "" {
		if s.fetcher == nil {
			respondError(w, http.StatusBadRequest, "fetching by url is disabled")
			return
		}
		var err error
		page, err = s.fetcher.Get(r.Context(), req.URL)
		switch {
		case err == nil:
		case r.Context().Err() != nil:
			// the timeout middleware answers
			log.Warn().Err(err).Str("url", req.URL).Msg("fetch interrupted")
			return
		case errors.Is(err, fetch.ErrUnsupportedScheme):
			respondError(w, http.StatusBadRequest, err.Error())
			return
		default:
			log.Warn().Err(err).Str("url", req.URL).Msg("fetch failed")
			respondError(w, http.StatusBadGateway, err.Error())
			return
		}
	}

	article, err := s.extractor.ExtractFromHTML(page)
	if err != nil {
		switch {
		case errors.Is(err, readtext.ErrNoContentFound):
			respondError(w, http.StatusUnprocessableEntity, "no content found")
		case errors.Is(err, readtext.ErrDocumentTooLarge):
			respondError(w, http.StatusRequestEntityTooLarge, "document too large")
		default:
			log.Error().Err(err).Msg("extraction failed")
			respondError(w, http.StatusInternalServerError, "extraction failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, extractResponse{
		Title:   article.Title,
		Body:    article.Body,
		Content: article.Content,
	})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
