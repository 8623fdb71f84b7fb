package handlers

import (
	"net/http"
)

type RootResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (h *Handlers) Root(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, RootResponse{Name: "gyansetu", Message: "Server is running"}, http.StatusOK)
}

// Health reports 503 when the storage backend cannot be used.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.HealthService.Check(r.Context())
	if err != nil {
		writeSuccess(w, status, http.StatusServiceUnavailable)
		return
	}
	writeSuccess(w, status, http.StatusOK)
}
