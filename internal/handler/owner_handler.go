package handlers

import "net/http"

func (h *Handlers) Commissions(w http.ResponseWriter, r *http.Request) {
	records, err := h.PaymentService.Commissions(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, records, http.StatusOK)
}

func (h *Handlers) FeedbackList(w http.ResponseWriter, r *http.Request) {
	records, err := h.FeedbackService.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, records, http.StatusOK)
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.StatsService.Stats(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeSuccess(w, stats, http.StatusOK)
}
