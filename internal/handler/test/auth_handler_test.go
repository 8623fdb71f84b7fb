package test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"gyansetu/internal/models"
	"gyansetu/internal/ratelimit"
	"gyansetu/internal/repository"
	"gyansetu/internal/service"
)

func authResult(u *models.User) *service.AuthResult {
	return &service.AuthResult{
		User:        u,
		Session:     &models.Session{ID: "sess-1", UserID: u.ID, User: u},
		AccessToken: "signed-token",
		ExpiresAt:   time.Now().Add(15 * time.Minute),
	}
}

func TestSignupHandler_Success(t *testing.T) {
	h, m := createTestHandler()

	m.auth.On("Signup", mock.Anything, service.SignupRequest{
		Role:            models.RoleShishya,
		FirstName:       "Ravi",
		Username:        "ravi",
		Email:           "ravi@example.com",
		Mobile:          "9876543210",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}).Return(authResult(testShishya()), nil)

	req := jsonRequest(t, http.MethodPost, "/api/auth/signup", map[string]string{
		"role":            "shishya",
		"firstName":       "Ravi",
		"username":        "ravi",
		"email":           "ravi@example.com",
		"mobile":          "9876543210",
		"password":        "secret1",
		"confirmPassword": "secret1",
	})
	rr := httptest.NewRecorder()

	h.Signup(rr, req)

	body := assertJSONSuccess(t, rr, http.StatusCreated)
	assert.Equal(t, "signed-token", body["accessToken"])
	assert.Equal(t, "sess-1", body["sessionId"])
	m.auth.AssertExpectations(t)
}

func TestSignupHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{
			name:       "invalid json",
			body:       `{"role":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "malformed email",
			body:       `{"role":"shishya","email":"not-an-email"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid Email",
		},
		{
			name:       "email taken",
			body:       `{"role":"shishya","email":"ravi@example.com"}`,
			serviceErr: repository.ErrEmailExists,
			wantStatus: http.StatusConflict,
			wantError:  "email already registered",
		},
		{
			name:       "password mismatch",
			body:       `{"role":"guru","password":"secret1","confirmPassword":"secret2"}`,
			serviceErr: service.ErrPasswordMismatch,
			wantStatus: http.StatusBadRequest,
			wantError:  "passwords do not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m := createTestHandler()
			if tt.serviceErr != nil {
				m.auth.On("Signup", mock.Anything, mock.Anything).Return(nil, tt.serviceErr)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/signup", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()
			h.Signup(rr, req)

			assertJSONError(t, rr, tt.wantStatus, tt.wantError)
			if tt.serviceErr == nil {
				m.auth.AssertNotCalled(t, "Signup", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestLoginHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h, m := createTestHandler()
		m.auth.On("Login", mock.Anything, "ravi", "secret1").Return(authResult(testShishya()), nil)

		rr := httptest.NewRecorder()
		h.Login(rr, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"identifier": "ravi",
			"password":   "secret1",
		}))

		body := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Equal(t, "signed-token", body["accessToken"])
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "ravi", user["username"])
	})

	t.Run("wrong password", func(t *testing.T) {
		h, m := createTestHandler()
		m.auth.On("Login", mock.Anything, "ravi", "nope").Return(nil, service.ErrInvalidCredentials)

		rr := httptest.NewRecorder()
		h.Login(rr, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"identifier": "ravi",
			"password":   "nope",
		}))

		assertJSONError(t, rr, http.StatusUnauthorized, "invalid email/username/mobile or password")
	})

	t.Run("throttled after burst", func(t *testing.T) {
		h, m := createTestHandler()
		h.LoginLimiter = ratelimit.NewLoginLimiter(60, 1)
		m.auth.On("Login", mock.Anything, "ravi", "nope").Return(nil, service.ErrInvalidCredentials).Once()

		first := httptest.NewRecorder()
		h.Login(first, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"identifier": "ravi",
			"password":   "nope",
		}))
		assert.Equal(t, http.StatusUnauthorized, first.Code)

		second := httptest.NewRecorder()
		h.Login(second, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
			"identifier": "ravi",
			"password":   "nope",
		}))

		assertJSONError(t, second, http.StatusTooManyRequests, "Too many login attempts")
		assert.Equal(t, "60", second.Header().Get("Retry-After"))
		m.auth.AssertNumberOfCalls(t, "Login", 1)
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("requires session", func(t *testing.T) {
		h, _ := createTestHandler()
		rr := httptest.NewRecorder()

		h.Logout(rr, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))

		assertJSONError(t, rr, http.StatusUnauthorized, "Authentication required")
	})

	t.Run("deletes session", func(t *testing.T) {
		h, m := createTestHandler()
		m.auth.On("Logout", mock.Anything, "sess-1").Return(nil)

		rr := httptest.NewRecorder()
		h.Logout(rr, withSession(httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil), testShishya()))

		body := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Equal(t, "Logged out", body["message"])
		m.auth.AssertExpectations(t)
	})
}

func TestRefreshHandler(t *testing.T) {
	h, m := createTestHandler()
	m.auth.On("Refresh", mock.Anything, "sess-1").Return(authResult(testShishya()), nil)

	rr := httptest.NewRecorder()
	h.Refresh(rr, withSession(httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil), testShishya()))

	body := assertJSONSuccess(t, rr, http.StatusOK)
	assert.Equal(t, "signed-token", body["accessToken"])
}

func TestForgotPasswordHandler(t *testing.T) {
	t.Run("same answer for any identifier", func(t *testing.T) {
		h, m := createTestHandler()
		m.auth.On("ForgotPassword", mock.Anything, "nobody@example.com").Return(nil)

		rr := httptest.NewRecorder()
		h.ForgotPassword(rr, jsonRequest(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{
			"identifier": "nobody@example.com",
		}))

		body := assertJSONSuccess(t, rr, http.StatusOK)
		assert.Contains(t, body["message"], "If an account exists")
	})

	t.Run("identifier required", func(t *testing.T) {
		h, _ := createTestHandler()
		rr := httptest.NewRecorder()

		h.ForgotPassword(rr, jsonRequest(t, http.MethodPost, "/api/auth/forgot-password", map[string]string{}))

		assertJSONError(t, rr, http.StatusBadRequest, "invalid Identifier")
	})
}

func TestResetPasswordHandler(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		h, m := createTestHandler()
		m.auth.On("ResetPassword", mock.Anything, "123456", "secret1", "secret1").Return(nil)

		rr := httptest.NewRecorder()
		h.ResetPassword(rr, jsonRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]string{
			"code":            "123456",
			"newPassword":     "secret1",
			"confirmPassword": "secret1",
		}))

		assertJSONSuccess(t, rr, http.StatusOK)
	})

	t.Run("bad code", func(t *testing.T) {
		h, m := createTestHandler()
		m.auth.On("ResetPassword", mock.Anything, "12ab", "secret1", "secret1").Return(service.ErrInvalidResetCode)

		rr := httptest.NewRecorder()
		h.ResetPassword(rr, jsonRequest(t, http.MethodPost, "/api/auth/reset-password", map[string]string{
			"code":            "12ab",
			"newPassword":     "secret1",
			"confirmPassword": "secret1",
		}))

		assertJSONError(t, rr, http.StatusBadRequest, "reset code must be 6 digits")
	})
}

func TestMeHandler(t *testing.T) {
	h, m := createTestHandler()
	guru := testGuru()
	m.profile.On("Get", mock.Anything, "g1").Return(guru, nil)

	rr := httptest.NewRecorder()
	h.Me(rr, withSession(httptest.NewRequest(http.MethodGet, "/api/me", nil), guru))

	body := assertJSONSuccess(t, rr, http.StatusOK)
	assert.Equal(t, "guru", body["role"])
}
