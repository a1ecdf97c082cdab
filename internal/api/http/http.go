// Package httpapi is the HTTP boundary around the analytics service.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vendora/vendora-manager/internal/analytics"
	"github.com/vendora/vendora-manager/internal/auth"
)

// Config is the configuration for the http server
type Config struct {
	Address        string   `mapstructure:"address"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Server struct {
	c    *Config
	srv  *http.Server
	done chan struct{}
}

func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(svc *analytics.Service, a *auth.Auth) http.Handler {
	h := &handlers{svc: svc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.c.AllowedOrigins,
		AllowedMethods:   []string{http.MethodHead, http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/product/{id}/view", h.productView)

		r.Group(func(r chi.Router) {
			r.Use(a.Verifier())
			r.Use(a.Authenticator())
			r.Get("/seller/analytics", h.sellerAnalytics)
		})
	})
	return r
}

// Start starts the server and returns immediately; Done is closed when the
// listener exits.
func (s *Server) Start(ctx context.Context, svc *analytics.Service, a *auth.Auth) error {
	addr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.router(svc, a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("vendora-manager new listener on: http://%v", addr))
		if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Default().ErrorContext(ctx, "http server exited", "err", err.Error())
		}
		close(s.done)
	}()
	return nil
}

// Stop shuts the server down, draining in-flight requests.
func (s *Server) Stop(ctx context.Context) {
	if s.srv == nil {
		return
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		slog.Default().ErrorContext(ctx, "http server shutdown", "err", err.Error())
	}
}
