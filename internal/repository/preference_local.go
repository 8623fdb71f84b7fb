package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gyansetu/internal/localstore"
	"gyansetu/internal/models"
)

type localPreferenceRepository struct {
	mu    sync.Mutex
	store localstore.Store
	lg    *zap.Logger
}

func NewLocalPreferenceRepository(store localstore.Store, lg *zap.Logger) PreferenceRepository {
	return &localPreferenceRepository{store: store, lg: lg}
}

func (r *localPreferenceRepository) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range localstore.ReadCollection[*models.Preferences](r.store, localstore.KeyPreferences, r.lg) {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *localPreferenceRepository) Save(ctx context.Context, prefs *models.Preferences) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	all := localstore.ReadCollection[*models.Preferences](r.store, localstore.KeyPreferences, r.lg)
	stored := *prefs
	replaced := false
	for i, p := range all {
		if p.UserID == prefs.UserID {
			all[i] = &stored
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, &stored)
	}
	if err := localstore.WriteCollection(r.store, localstore.KeyPreferences, all); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

type localFeedbackRepository struct {
	mu    sync.Mutex
	store localstore.Store
	lg    *zap.Logger
}

func NewLocalFeedbackRepository(store localstore.Store, lg *zap.Logger) FeedbackRepository {
	return &localFeedbackRepository{store: store, lg: lg}
}

func (r *localFeedbackRepository) Create(ctx context.Context, record *models.FeedbackRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := localstore.ReadCollection[*models.FeedbackRecord](r.store, localstore.KeyFeedback, r.lg)
	records = append(records, record)
	if err := localstore.WriteCollection(r.store, localstore.KeyFeedback, records); err != nil {
		return fmt.Errorf("create feedback: %w", err)
	}
	return nil
}

func (r *localFeedbackRepository) List(ctx context.Context) ([]*models.FeedbackRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return localstore.ReadCollection[*models.FeedbackRecord](r.store, localstore.KeyFeedback, r.lg), nil
}
