package checkerserver

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

type Server struct {
	host    string
	port    int
	Server  *http.Server
	service CheckService
	log     *logrus.Entry
}

// New builds the checker API. A nil publicKey leaves the API unauthenticated.
func New(host string, port int, service CheckService, log *logrus.Logger, publicKey *rsa.PublicKey) *Server {
	server := Server{
		host:    host,
		port:    port,
		service: service,
		log:     log.WithField("module", "http"),
	}

	server.Server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           NewRouter(service, log, publicKey),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return &server
}

func NewRouter(service CheckService, log *logrus.Logger, publicKey *rsa.PublicKey) http.Handler {
	h := NewHandler(service, log)
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Group(func(r chi.Router) {
		r.Use(h.metric)

		if publicKey != nil {
			r.Use(jwtAuth(publicKey))
		}

		r.Route("/api/v1", func(r chi.Router) {
			r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: log, NoColor: true}))
			r.Get("/check", h.get)
			r.Post("/check", h.post)
		})
	})

	return r
}

func (s *Server) Run(ctx context.Context) error {
	defer s.log.Info("Server is stopped")

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.Server.Shutdown(shutdownCtx)
		if err != nil {
			s.log.Warningf("Server.Shutdown: %s", err)
		}
	}()

	s.log.Infof("Server is running at port %d...", s.port)

	err := s.Server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Server.ListenAndServe: %w", err)
	}

	return nil
}
