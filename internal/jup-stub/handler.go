package jupstub

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	service TransactionService
	log     *logrus.Entry
}

func NewHandler(service TransactionService, log *logrus.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log.WithField("module", "jup_stub_handler"),
	}
}

func (h *Handler) transactions(w http.ResponseWriter, r *http.Request) {
	wallet := r.URL.Query().Get("publicKey")
	if wallet == "" {
		w.WriteHeader(http.StatusBadRequest)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	err := json.NewEncoder(w).Encode(h.service.GetTransactions(wallet))
	if err != nil {
		h.log.Warningf("json.NewEncoder.Encode: %s", err)
	}
}
