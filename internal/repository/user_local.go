package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gyansetu/internal/localstore"
	"gyansetu/internal/models"
	"gyansetu/internal/normalize"
)

type localUserRepository struct {
	mu    sync.Mutex
	store localstore.Store
	lg    *zap.Logger
}

func NewLocalUserRepository(store localstore.Store, lg *zap.Logger) UserRepository {
	return &localUserRepository{store: store, lg: lg}
}

func (r *localUserRepository) load() []*models.User {
	return localstore.ReadCollection[*models.User](r.store, localstore.KeyUsers, r.lg)
}

// checkUnique reports the first conflict in email, username, mobile order.
func checkUnique(users []*models.User, candidate *models.User) error {
	email := normalize.Email(candidate.Email)
	username := normalize.Username(candidate.Username)
	mobile := normalize.Mobile(candidate.Mobile)

	for _, u := range users {
		if u.ID != candidate.ID && email != "" && normalize.Email(u.Email) == email {
			return ErrEmailExists
		}
	}
	for _, u := range users {
		if u.ID != candidate.ID && username != "" && normalize.Username(u.Username) == username {
			return ErrUsernameExists
		}
	}
	for _, u := range users {
		if u.ID != candidate.ID && mobile != "" && normalize.Mobile(u.Mobile) == mobile {
			return ErrMobileExists
		}
	}
	return nil
}

func (r *localUserRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.load()
	if err := checkUnique(users, user); err != nil {
		return err
	}

	users = append(users, user.Clone())
	if err := localstore.WriteCollection(r.store, localstore.KeyUsers, users); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *localUserRepository) find(match func(*models.User) bool) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.load() {
		if match(u) {
			return u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *localUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	return r.find(func(u *models.User) bool { return u.ID == userID })
}

func (r *localUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	key := normalize.Username(username)
	return r.find(func(u *models.User) bool { return normalize.Username(u.Username) == key })
}

func (r *localUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*models.User, error) {
	folded := normalize.Email(identifier)
	mobile := normalize.Mobile(identifier)
	if mobile == "" {
		return nil, ErrNotFound
	}
	return r.find(func(u *models.User) bool {
		return normalize.Email(u.Email) == folded ||
			normalize.Username(u.Username) == folded ||
			normalize.Mobile(u.Mobile) == mobile
	})
}

func (r *localUserRepository) List(ctx context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(), nil
}

func (r *localUserRepository) Update(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.load()
	idx := -1
	for i, u := range users {
		if u.ID == user.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrNotFound
	}
	if err := checkUnique(users, user); err != nil {
		return err
	}

	users[idx] = user.Clone()
	if err := localstore.WriteCollection(r.store, localstore.KeyUsers, users); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
