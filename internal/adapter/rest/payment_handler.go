package rest

import (
	"net/http"
)

type addFundsRequest struct {
	Amount float64 `json:"amount"`
}

func (h *Handler) HandleAddFunds(w http.ResponseWriter, r *http.Request) {
	var req addFundsRequest
	if err := decodeJSON(r, &req); err != nil {
		h.respondWithError(w, r, err)
		return
	}
	resp, err := h.payments.AddFundsToWallet(r.Context(), requestContext(r), req.Amount)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithEnvelope(w, resp.Envelope, resp)
}

func (h *Handler) HandleFunds(w http.ResponseWriter, r *http.Request) {
	amount, err := h.payments.Funds(r.Context(), requestContext(r))
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]float64{"funds": amount})
}
