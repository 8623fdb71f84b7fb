package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"gyansetu/internal/call"
	"gyansetu/internal/payment"
	"gyansetu/internal/repository"
	"gyansetu/internal/service"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

var statusByError = []struct {
	err    error
	status int
}{
	{service.ErrInvalidCredentials, http.StatusUnauthorized},
	{service.ErrSessionInvalid, http.StatusUnauthorized},

	{service.ErrNotGuru, http.StatusForbidden},
	{service.ErrForbidden, http.StatusForbidden},

	{repository.ErrNotFound, http.StatusNotFound},
	{service.ErrCallNotFound, http.StatusNotFound},

	{repository.ErrEmailExists, http.StatusConflict},
	{repository.ErrUsernameExists, http.StatusConflict},
	{repository.ErrMobileExists, http.StatusConflict},
	{call.ErrAlreadyStarted, http.StatusConflict},
	{call.ErrCallEnded, http.StatusConflict},
	{call.ErrInvalidTransition, http.StatusConflict},

	{call.ErrDeviceUnavailable, http.StatusServiceUnavailable},

	{service.ErrInvalidRole, http.StatusBadRequest},
	{service.ErrPasswordMismatch, http.StatusBadRequest},
	{service.ErrPasswordTooShort, http.StatusBadRequest},
	{service.ErrMissingField, http.StatusBadRequest},
	{service.ErrInvalidField, http.StatusBadRequest},
	{service.ErrInvalidResetCode, http.StatusBadRequest},
	{service.ErrInvalidPost, http.StatusBadRequest},
	{service.ErrMissingMedia, http.StatusBadRequest},
	{service.ErrPayeeNotConfigured, http.StatusBadRequest},
	{service.ErrInvalidCallTarget, http.StatusBadRequest},
	{service.ErrUnsupportedTheme, http.StatusBadRequest},
	{service.ErrEmptyFeedback, http.StatusBadRequest},
	{payment.ErrInvalidAmount, http.StatusBadRequest},
	{call.ErrNotStarted, http.StatusBadRequest},
	{call.ErrNoCamera, http.StatusBadRequest},
}

// StatusFor maps a service error to its HTTP status. Unknown errors are 500.
func StatusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError hides internal error text behind a generic message.
func (h *Handlers) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		h.Logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		WriteError(w, "Something went wrong, please try again", status)
		return
	}
	WriteError(w, err.Error(), status)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("invalid %s: failed %s", fe.Field(), fe.Tag())
	}
	return "invalid request"
}
