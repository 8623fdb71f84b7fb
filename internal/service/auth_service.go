package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gyansetu/internal/config"
	"gyansetu/internal/models"
	"gyansetu/internal/normalize"
	"gyansetu/internal/repository"
)

const MinPasswordLength = 6

var resetCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

type SignupRequest struct {
	Role            models.Role
	FirstName       string
	LastName        string
	Username        string
	Email           string
	Mobile          string
	DOB             string
	Gender          string
	Password        string
	ConfirmPassword string
}

type AuthResult struct {
	User        *models.User
	Session     *models.Session
	AccessToken string
	ExpiresAt   time.Time
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	Logout(ctx context.Context, sessionID string) error
	Refresh(ctx context.Context, sessionID string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, identifier string) error
	ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error
	ValidateToken(tokenString string) (*jwt.Token, error)
	Authenticate(ctx context.Context, tokenString string) (*models.Session, error)
}

type authService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	lg          *zap.Logger
	now         func() time.Time
	cost        int
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config, lg *zap.Logger) AuthService {
	return &authService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		lg:          lg,
		now:         time.Now,
		cost:        bcrypt.DefaultCost,
	}
}

// DefaultAvatar is the generated picture for new accounts.
func DefaultAvatar(username string) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/200", username)
}

func validatePassword(password, confirm string) error {
	if password != confirm {
		return ErrPasswordMismatch
	}
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}

// requireFields takes name, value pairs and reports the first empty one.
func requireFields(pairs ...string) error {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			return fmt.Errorf("%w: %s", ErrMissingField, pairs[i])
		}
	}
	return nil
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	if !req.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}

	user := &models.User{
		ID:        uuid.New().String(),
		Role:      req.Role,
		FirstName: normalize.Name(req.FirstName),
		LastName:  normalize.Name(req.LastName),
		Username:  normalize.Username(req.Username),
		Email:     normalize.Email(req.Email),
		Mobile:    normalize.Mobile(req.Mobile),
		DOB:       strings.TrimSpace(req.DOB),
		Gender:    strings.TrimSpace(req.Gender),
		CreatedAt: s.now(),
	}
	if err := requireFields(
		"firstName", user.FirstName,
		"username", user.Username,
		"email", user.Email,
		"mobile", user.Mobile,
	); err != nil {
		return nil, err
	}

	user.ProfilePictureURL = DefaultAvatar(user.Username)
	if user.Role == models.RoleGuru {
		user.Guru = &models.GuruProfile{}
	}

	// create password hash
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hashedPassword)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.lg.Info("user signed up", zap.String("userID", user.ID), zap.String("role", string(user.Role)))

	return s.startSession(ctx, user)
}

func (s *authService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.lg.Info("login failed", zap.String("reason", "unknown identifier"))
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// checking that the password hash is the same
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.lg.Info("login failed", zap.String("userID", user.ID), zap.String("reason", "bad password"))
		return nil, ErrInvalidCredentials
	}

	return s.startSession(ctx, user)
}

func (s *authService) startSession(ctx context.Context, user *models.User) (*AuthResult, error) {
	now := s.now()
	session := &models.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		User:      user.Public(),
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.SessionDuration),
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return s.issue(session)
}

func (s *authService) issue(session *models.Session) (*AuthResult, error) {
	token, expiresAt, err := s.generateAccessToken(session)
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		User:        session.User,
		Session:     session,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *authService) generateAccessToken(session *models.Session) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.AccessTokenDuration)
	if session.ExpiresAt.Before(expiresAt) {
		expiresAt = session.ExpiresAt
	}

	claims := jwt.MapClaims{
		"sid":    session.ID,
		"userId": session.UserID,
		"role":   string(session.User.Role),
		"exp":    expiresAt.Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.JWTSecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return tokenString, expiresAt, nil
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	err := s.sessionRepo.Delete(ctx, sessionID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("delete session: %w", err)
	}
	s.lg.Info("user logged out", zap.String("sessionID", sessionID))
	return nil
}

func (s *authService) Refresh(ctx context.Context, sessionID string) (*AuthResult, error) {
	session, err := s.liveSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.ExpiresAt = s.now().Add(s.cfg.SessionDuration)
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, fmt.Errorf("extend session: %w", err)
	}

	return s.issue(session)
}

// ForgotPassword only simulates sending a code. It never reveals whether the account exists.
func (s *authService) ForgotPassword(ctx context.Context, identifier string) error {
	if strings.TrimSpace(identifier) == "" {
		return fmt.Errorf("%w: identifier", ErrMissingField)
	}
	s.lg.Info("password reset code requested")
	return nil
}

// ResetPassword validates the form and reports success without touching any credential.
func (s *authService) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error {
	if !resetCodePattern.MatchString(strings.TrimSpace(code)) {
		return ErrInvalidResetCode
	}
	return validatePassword(newPassword, confirmPassword)
}

func (s *authService) ValidateToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecretKey), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSessionInvalid, err)
	}

	if !token.Valid {
		return nil, ErrSessionInvalid
	}

	return token, nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*models.Session, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrSessionInvalid
	}
	sid, ok := claims["sid"].(string)
	if !ok || sid == "" {
		return nil, ErrSessionInvalid
	}

	return s.liveSession(ctx, sid)
}

func (s *authService) liveSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.sessionRepo.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionInvalid
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if session.Expired(s.now()) || session.User == nil {
		_ = s.sessionRepo.Delete(ctx, sessionID)
		return nil, ErrSessionInvalid
	}

	return session, nil
}
