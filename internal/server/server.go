// Package server exposes the bot's HTTP surface: the Telegram webhook and a
// health endpoint. It owns transport concerns only; entitlement decisions
// live in the application layer.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/crazypanel/lookupbot/internal/application"
	"github.com/crazypanel/lookupbot/internal/config"
)

// LookupClient resolves a mobile number to a display-ready detail payload.
type LookupClient interface {
	Lookup(ctx context.Context, number string) (string, error)
}

// MessageSender delivers bot replies to a chat.
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Server struct {
	cfg      *config.Config
	service  *application.SubscriptionService
	reporter *application.Reporter
	lookup   LookupClient
	sender   MessageSender
	logger   zerolog.Logger
	router   *chi.Mux
}

func New(
	cfg *config.Config,
	service *application.SubscriptionService,
	reporter *application.Reporter,
	lookupClient LookupClient,
	sender MessageSender,
	logger zerolog.Logger,
) *Server {
	s := &Server{
		cfg:      cfg,
		service:  service,
		reporter: reporter,
		lookup:   lookupClient,
		sender:   sender,
		logger:   logger,
		router:   chi.NewRouter(),
	}
	s.routes()

	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	s.router.Use(s.requestID)
	s.router.Use(s.requestLogger)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Post("/webhook/{secret}", s.handleWebhook)
}

type contextKey string

const requestIDKey contextKey = "request_id"

func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-ID", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(recorder, r)

		id, _ := r.Context().Value(requestIDKey).(string)
		// Log the route pattern, not the raw path: the webhook path embeds
		// the shared secret.
		path := r.URL.Path
		if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil && routeCtx.RoutePattern() != "" {
			path = routeCtx.RoutePattern()
		}
		s.logger.Info().
			Str("request_id", id).
			Str("method", r.Method).
			Str("path", path).
			Int("status", recorder.status).
			Dur("duration", time.Since(start)).
			Msg("request handled")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
