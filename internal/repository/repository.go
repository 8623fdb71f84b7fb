package repository

import (
	"context"
	"errors"
	"time"

	"gyansetu/internal/models"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrEmailExists    = errors.New("email already registered")
	ErrUsernameExists = errors.New("username already taken")
	ErrMobileExists   = errors.New("mobile number already registered")
)

// UserRepository enforces username, email and mobile uniqueness on Create and Update.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, userID string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// FindByIdentifier matches email or username case-insensitively, or mobile exactly.
	FindByIdentifier(ctx context.Context, identifier string) (*models.User, error)
	// List returns users in insertion order.
	List(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
}

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, postID string) (*models.Post, error)
	// List returns posts in insertion order.
	List(ctx context.Context) ([]*models.Post, error)
	ListByGuru(ctx context.Context, guruID string) ([]*models.Post, error)
}

type CallRepository interface {
	Append(ctx context.Context, record *models.CallRecord) error
	ListForUser(ctx context.Context, userID string) ([]*models.CallRecord, error)
	Count(ctx context.Context) (int, error)
}

type CommissionRepository interface {
	Append(ctx context.Context, record *models.CommissionRecord) error
	List(ctx context.Context) ([]*models.CommissionRecord, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, sessionID string) error
	// RefreshUser replaces the user snapshot in every session of that user.
	RefreshUser(ctx context.Context, user *models.User) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}

type PreferenceRepository interface {
	Get(ctx context.Context, userID string) (*models.Preferences, error)
	Save(ctx context.Context, prefs *models.Preferences) error
}

type FeedbackRepository interface {
	Create(ctx context.Context, record *models.FeedbackRecord) error
	List(ctx context.Context) ([]*models.FeedbackRecord, error)
}

// TablesRepository reports whether the backing storage is usable.
type TablesRepository interface {
	Check(ctx context.Context) error
	Describe() string
}

type Repository struct {
	User       UserRepository
	Post       PostRepository
	Call       CallRepository
	Commission CommissionRepository
	Session    SessionRepository
	Preference PreferenceRepository
	Feedback   FeedbackRepository
	Tables     TablesRepository
}
