package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"gyansetu/internal/models"
	"gyansetu/internal/service"
)

type SignupRequest struct {
	Role            string `json:"role" validate:"max=20"`
	FirstName       string `json:"firstName" validate:"max=100"`
	LastName        string `json:"lastName" validate:"max=100"`
	Username        string `json:"username" validate:"max=100"`
	Email           string `json:"email" validate:"omitempty,email,max=255"`
	Mobile          string `json:"mobile" validate:"max=20"`
	DOB             string `json:"dob" validate:"max=20"`
	Gender          string `json:"gender" validate:"max=20"`
	Password        string `json:"password" validate:"max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=128"`
}

type LoginRequest struct {
	Identifier string `json:"identifier" validate:"max=255"`
	Password   string `json:"password" validate:"max=128"`
}

type ForgotPasswordRequest struct {
	Identifier string `json:"identifier" validate:"required,max=255"`
}

type ResetPasswordRequest struct {
	Code            string `json:"code" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"max=128"`
	ConfirmPassword string `json:"confirmPassword" validate:"max=128"`
}

type AuthResponse struct {
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	SessionID   string       `json:"sessionId"`
	User        *models.User `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func authResponse(res *service.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken: res.AccessToken,
		ExpiresAt:   res.ExpiresAt,
		SessionID:   res.Session.ID,
		User:        res.User,
	}
}

func (h *Handlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	res, err := h.AuthService.Signup(r.Context(), service.SignupRequest{
		Role:            models.Role(req.Role),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Username:        req.Username,
		Email:           req.Email,
		Mobile:          req.Mobile,
		DOB:             req.DOB,
		Gender:          req.Gender,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, authResponse(res), http.StatusCreated)
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if h.LoginLimiter != nil {
		if ok, reason := h.LoginLimiter.Check(r, req.Identifier); !ok {
			h.Logger.Warn("login throttled", zap.String("reason", reason))
			w.Header().Set("Retry-After", "60")
			WriteError(w, "Too many login attempts, please wait a minute", http.StatusTooManyRequests)
			return
		}
	}

	res, err := h.AuthService.Login(r.Context(), req.Identifier, req.Password)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	if h.LoginLimiter != nil {
		h.LoginLimiter.ResetIdentifier(req.Identifier)
	}
	writeSuccess(w, authResponse(res), http.StatusOK)
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	if err := h.AuthService.Logout(r.Context(), session.ID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Logged out"}, http.StatusOK)
}

func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	res, err := h.AuthService.Refresh(r.Context(), session.ID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, authResponse(res), http.StatusOK)
}

// ForgotPassword always answers the same way so accounts cannot be probed.
func (h *Handlers) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthService.ForgotPassword(r.Context(), req.Identifier); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "If an account exists, a reset code has been sent"}, http.StatusOK)
}

func (h *Handlers) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	if err := h.AuthService.ResetPassword(r.Context(), req.Code, req.NewPassword, req.ConfirmPassword); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, MessageResponse{Message: "Password reset request accepted"}, http.StatusOK)
}

func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	session, ok := requireSession(w, r)
	if !ok {
		return
	}

	user, err := h.ProfileService.Get(r.Context(), session.UserID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}
