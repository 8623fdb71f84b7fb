package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"gyansetu/internal/localstore"
	"gyansetu/internal/models"
)

type localSessionRepository struct {
	mu    sync.Mutex
	store localstore.Store
	lg    *zap.Logger
}

func NewLocalSessionRepository(store localstore.Store, lg *zap.Logger) SessionRepository {
	return &localSessionRepository{store: store, lg: lg}
}

func (r *localSessionRepository) load() []*models.Session {
	return localstore.ReadCollection[*models.Session](r.store, localstore.KeySessions, r.lg)
}

func (r *localSessionRepository) save(sessions []*models.Session) error {
	if err := localstore.WriteCollection(r.store, localstore.KeySessions, sessions); err != nil {
		return fmt.Errorf("persist sessions: %w", err)
	}
	return nil
}

func (r *localSessionRepository) Create(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *session
	stored.User = session.User.Public()
	return r.save(append(r.load(), &stored))
}

func (r *localSessionRepository) Get(ctx context.Context, sessionID string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.load() {
		if s.ID == sessionID {
			return s, nil
		}
	}
	return nil, ErrNotFound
}

func (r *localSessionRepository) Update(ctx context.Context, session *models.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := r.load()
	for i, s := range sessions {
		if s.ID == session.ID {
			stored := *session
			stored.User = session.User.Public()
			sessions[i] = &stored
			return r.save(sessions)
		}
	}
	return ErrNotFound
}

func (r *localSessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := r.load()
	kept := sessions[:0]
	found := false
	for _, s := range sessions {
		if s.ID == sessionID {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return ErrNotFound
	}
	return r.save(kept)
}

func (r *localSessionRepository) RefreshUser(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := r.load()
	changed := false
	for _, s := range sessions {
		if s.UserID == user.ID {
			s.User = user.Public()
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return r.save(sessions)
}

func (r *localSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sessions := r.load()
	kept := sessions[:0]
	for _, s := range sessions {
		if !s.Expired(now) {
			kept = append(kept, s)
		}
	}
	removed := len(sessions) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	return removed, r.save(kept)
}
