package handlers

import (
	"net/http"
)

type PreferencesRequest struct {
	Language string `json:"language" validate:"omitempty,max=35"`
	Theme    string `json:"theme" validate:"omitempty,max=10"`
}

type FeedbackRequest struct {
	FeedbackText string `json:"feedbackText" validate:"required,max=5000"`
}

func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	prefs, err := h.PreferenceService.Get(r.Context(), session.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, prefs, http.StatusOK)
}

func (h *Handlers) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req PreferencesRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	prefs, err := h.PreferenceService.Update(r.Context(), session.UserID, req.Language, req.Theme)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, prefs, http.StatusOK)
}

func (h *Handlers) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	var req FeedbackRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	record, err := h.FeedbackService.Submit(r.Context(), session.UserID, req.FeedbackText)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, record, http.StatusCreated)
}
