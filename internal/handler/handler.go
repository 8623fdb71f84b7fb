package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"gyansetu/internal/config"
	"gyansetu/internal/models"
	"gyansetu/internal/ratelimit"
	"gyansetu/internal/service"
)

const maxJSONBody = 1 << 20

type Handlers struct {
	AuthService       service.AuthService
	FeedService       service.FeedService
	PostService       service.PostService
	ProfileService    service.ProfileService
	PaymentService    service.PaymentService
	CallService       service.CallService
	PreferenceService service.PreferenceService
	FeedbackService   service.FeedbackService
	StatsService      service.StatsService
	HealthService     service.HealthService
	LoginLimiter      *ratelimit.LoginLimiter
	Cfg               *config.Config
	Validate          *validator.Validate
	Logger            *zap.Logger
	Upgrader          websocket.Upgrader
}

func NewHandlers(service *service.Service, limiter *ratelimit.LoginLimiter, config *config.Config, lg *zap.Logger) *Handlers {
	return &Handlers{
		AuthService:       service.Auth,
		FeedService:       service.Feed,
		PostService:       service.Post,
		ProfileService:    service.Profile,
		PaymentService:    service.Payment,
		CallService:       service.Call,
		PreferenceService: service.Preference,
		FeedbackService:   service.Feedback,
		StatsService:      service.Stats,
		HealthService:     service.Health,
		LoginLimiter:      limiter,
		Cfg:               config,
		Validate:          validator.New(),
		Logger:            lg,
		Upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(config.CORSAllowedOrigins),
		},
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || a == origin {
				return true
			}
		}
		return false
	}
}

// decodeJSON reads a JSON body and runs struct validation.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := decodeBody(r, dst); err != nil {
		WriteError(w, "Invalid request format", http.StatusBadRequest)
		return false
	}
	if err := h.Validate.Struct(dst); err != nil {
		WriteError(w, validationMessage(err), http.StatusBadRequest)
		return false
	}
	return true
}

func decodeBody(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	return dec.Decode(dst)
}

// requireSession writes 401 when the request carries no session.
func requireSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session, ok := SessionFromContext(r.Context())
	if !ok {
		WriteError(w, "Authentication required", http.StatusUnauthorized)
		return nil, false
	}
	return session, true
}
