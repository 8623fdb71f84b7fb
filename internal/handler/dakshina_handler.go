package handlers

import (
	"net/http"

	"gyansetu/internal/models"
	"gyansetu/internal/payment"
)

type DakshinaRequest struct {
	PostID string  `json:"postId" validate:"required"`
	Amount float64 `json:"amount"`
}

type DakshinaResponse struct {
	Link             string                   `json:"link"`
	Amount           float64                  `json:"amount"`
	CommissionAmount float64                  `json:"commissionAmount"`
	Record           *models.CommissionRecord `json:"record"`
}

type PresetsResponse struct {
	Amounts        []float64 `json:"amounts"`
	Default        float64   `json:"default"`
	CommissionRate float64   `json:"commissionRate"`
}

func (h *Handlers) Pay(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req DakshinaRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	res, err := h.PaymentService.Pay(r.Context(), session.User, req.PostID, req.Amount)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, DakshinaResponse{
		Link:             res.Link,
		Amount:           res.Record.TotalAmount,
		CommissionAmount: res.Record.CommissionAmount,
		Record:           res.Record,
	}, http.StatusCreated)
}

func (h *Handlers) Presets(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, PresetsResponse{
		Amounts:        payment.PresetAmounts,
		Default:        payment.DefaultAmount,
		CommissionRate: payment.CommissionRate,
	}, http.StatusOK)
}
