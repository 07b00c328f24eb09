package checkerserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oscarsebastian/jup-airdrop-checker/internal/checker"
	jupclient "github.com/oscarsebastian/jup-airdrop-checker/internal/jup-client"
	"github.com/oscarsebastian/jup-airdrop-checker/internal/summary"
	"github.com/oscarsebastian/jup-airdrop-checker/models"
	"github.com/sirupsen/logrus"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	service CheckService
	log     *logrus.Entry
	metrics *metrics
}

type CheckService interface {
	Check(ctx context.Context, wallets []string) (models.Report, error)
}

func NewHandler(service CheckService, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.WithField("module", "handler"),
		metrics: defaultMetrics,
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.check(w, r, r.URL.Query()["wallet"])
}

func (h *Handler) post(w http.ResponseWriter, r *http.Request) {
	var request models.CheckRequest

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&request)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	h.check(w, r, request.Wallets)
}

func (h *Handler) check(w http.ResponseWriter, r *http.Request, wallets []string) {
	log := h.log
	if subject, ok := r.Context().Value(subjectKey{}).(string); ok && subject != "" {
		log = log.WithField("subject", subject)
	}

	report, err := h.service.Check(r.Context(), wallets)
	if errors.Is(err, checker.ErrNoWallets) || errors.Is(err, checker.ErrEmptyWallet) {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	if errors.Is(err, summary.ErrMalformedRecord) {
		log.Warningf("service.Check: %s", err)
		w.WriteHeader(http.StatusUnprocessableEntity)

		return
	}

	var statusErr *jupclient.StatusError
	if errors.Is(err, jupclient.ErrExhaustedRetries) || errors.As(err, &statusErr) {
		log.Warningf("service.Check: %s", err)
		w.WriteHeader(http.StatusBadGateway)

		return
	}

	if err != nil {
		log.Errorf("service.Check: %s", err)
		w.WriteHeader(http.StatusInternalServerError)

		return
	}

	log.Debugf("Run %s: %d wallets checked", report.RunID, len(wallets))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err = json.NewEncoder(w).Encode(report)
	if err != nil {
		h.log.Warningf("json.NewEncoder.Encode: %s", err)
	}
}
