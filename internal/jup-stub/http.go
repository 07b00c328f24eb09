package jupstub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/sirupsen/logrus"
)

type Server struct {
	host    string
	port    int
	Server  *http.Server
	service TransactionService
	log     *logrus.Entry
}

type TransactionService interface {
	GetTransactions(wallet string) []models.Transaction
}

func New(host string, port int, service TransactionService, log *logrus.Logger) *Server {
	server := Server{
		host:    host,
		port:    port,
		log:     log.WithField("module", "jup_stub_http"),
		service: service,
	}

	server.Server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", host, port),
		Handler:           NewRouter(service, log),
		ReadHeaderTimeout: 30 * time.Second,
	}

	return &server
}

// NewRouter exposes the stub routes without a listener, for httptest.
func NewRouter(service TransactionService, log *logrus.Logger) http.Handler {
	h := NewHandler(service, log)
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Get("/transactions", h.transactions)

	return r
}

func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := s.Server.Shutdown(shutdownCtx)
		if err != nil {
			s.log.Warningf("Server.Shutdown: %s", err)
		}
	}()

	s.log.Infof("Stub is running at port %d...", s.port)

	err := s.Server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("Server.ListenAndServe: %w", err)
	}

	return nil
}
