package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	handlers "gyansetu/internal/handler"
	"gyansetu/internal/models"
	"gyansetu/internal/service"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Signup(ctx context.Context, req service.SignupRequest) (*service.AuthResult, error) {
	return nil, nil
}

func (m *mockAuth) Login(ctx context.Context, identifier, password string) (*service.AuthResult, error) {
	return nil, nil
}

func (m *mockAuth) Logout(ctx context.Context, sessionID string) error { return nil }

func (m *mockAuth) Refresh(ctx context.Context, sessionID string) (*service.AuthResult, error) {
	return nil, nil
}

func (m *mockAuth) ForgotPassword(ctx context.Context, identifier string) error { return nil }

func (m *mockAuth) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error {
	return nil
}

func (m *mockAuth) ValidateToken(tokenString string) (*jwt.Token, error) { return nil, nil }

func (m *mockAuth) Authenticate(ctx context.Context, tokenString string) (*models.Session, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func sessionFor(u *models.User) *models.Session {
	return &models.Session{ID: "sess-1", UserID: u.ID, User: u}
}

// echoUser writes the session user's username, or 204 without one.
var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	u := handlers.CurrentUser(r.Context())
	if u == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.Write([]byte(u.Username))
})

func TestAuth(t *testing.T) {
	asha := &models.User{ID: "g1", Role: models.RoleGuru, Username: "asha"}

	tests := []struct {
		name       string
		header     string
		target     string
		setup      func(m *mockAuth)
		wantStatus int
		wantBody   string
	}{
		{
			name:       "missing header",
			target:     "/api/me",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication required",
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			target:     "/api/me",
			wantStatus: http.StatusUnauthorized,
			wantBody:   "Authentication required",
		},
		{
			name:   "expired session",
			header: "Bearer stale",
			target: "/api/me",
			setup: func(m *mockAuth) {
				m.On("Authenticate", mock.Anything, "stale").Return(nil, service.ErrSessionInvalid)
			},
			wantStatus: http.StatusUnauthorized,
			wantBody:   "session expired or invalid",
		},
		{
			name:   "valid bearer",
			header: "Bearer good",
			target: "/api/me",
			setup: func(m *mockAuth) {
				m.On("Authenticate", mock.Anything, "good").Return(sessionFor(asha), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "asha",
		},
		{
			name:   "query token for websockets",
			target: "/api/calls/c1/events?token=good",
			setup: func(m *mockAuth) {
				m.On("Authenticate", mock.Anything, "good").Return(sessionFor(asha), nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "asha",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(mockAuth)
			if tt.setup != nil {
				tt.setup(m)
			}

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			Auth(m)(echoUser).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.wantBody)
			m.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	guruOnly := RequireRole(models.RoleGuru)(echoUser)

	t.Run("no session", func(t *testing.T) {
		rr := httptest.NewRecorder()
		guruOnly.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/posts", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("shishya denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
		req = req.WithContext(handlers.WithSession(req.Context(), sessionFor(&models.User{ID: "s1", Role: models.RoleShishya})))
		rr := httptest.NewRecorder()

		guruOnly.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("guru allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/posts", nil)
		req = req.WithContext(handlers.WithSession(req.Context(), sessionFor(&models.User{ID: "g1", Role: models.RoleGuru, Username: "asha"})))
		rr := httptest.NewRecorder()

		guruOnly.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "asha", rr.Body.String())
	})
}

func TestOwnerOnly(t *testing.T) {
	tests := []struct {
		name     string
		owner    string
		username string
		want     int
	}{
		{"owner matches case-insensitively", "GyanSetu", "gyansetu", http.StatusOK},
		{"other user", "gyansetu", "asha", http.StatusForbidden},
		{"no owner configured", "", "asha", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/owner/stats", nil)
			req = req.WithContext(handlers.WithSession(req.Context(), sessionFor(&models.User{ID: "u1", Username: tt.username})))
			rr := httptest.NewRecorder()

			OwnerOnly(tt.owner)(echoUser).ServeHTTP(rr, req)
			assert.Equal(t, tt.want, rr.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	t.Run("listed origin echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		rr := httptest.NewRecorder()

		CORS([]string{"http://localhost:5173"})(echoUser).ServeHTTP(rr, req)

		assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Origin", rr.Header().Get("Vary"))
	})

	t.Run("unlisted origin gets no allow header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
		req.Header.Set("Origin", "http://evil.example")
		rr := httptest.NewRecorder()

		CORS([]string{"http://localhost:5173"})(echoUser).ServeHTTP(rr, req)

		assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/feed", nil)
		req.Header.Set("Origin", "http://any.example")
		rr := httptest.NewRecorder()

		CORS([]string{"*"})(http.NotFoundHandler()).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
		assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})
}

func TestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	lg := zap.New(core)

	h := Logging(lg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("short and stout"))
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/api/feed", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, int64(len("short and stout")), fields["bytes"])
	assert.Equal(t, "203.0.113.9", fields["remote"])
}

func TestChain(t *testing.T) {
	var order []string
	tag := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	Chain(echoUser, tag("inner"), tag("outer")).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}
