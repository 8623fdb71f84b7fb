package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gyansetu/internal/localstore"
	"gyansetu/internal/models"
)

type localCallRepository struct {
	mu    sync.Mutex
	store localstore.Store
	lg    *zap.Logger
}

func NewLocalCallRepository(store localstore.Store, lg *zap.Logger) CallRepository {
	return &localCallRepository{store: store, lg: lg}
}

func (r *localCallRepository) load() []*models.CallRecord {
	return localstore.ReadCollection[*models.CallRecord](r.store, localstore.KeyCallHistory, r.lg)
}

func (r *localCallRepository) Append(ctx context.Context, record *models.CallRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := append(r.load(), record)
	if err := localstore.WriteCollection(r.store, localstore.KeyCallHistory, records); err != nil {
		return fmt.Errorf("append call record: %w", err)
	}
	return nil
}

func (r *localCallRepository) ListForUser(ctx context.Context, userID string) ([]*models.CallRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*models.CallRecord{}
	for _, c := range r.load() {
		if c.CallerID == userID || c.ReceiverID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *localCallRepository) Count(ctx context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.load()), nil
}

type localCommissionRepository struct {
	mu    sync.Mutex
	store localstore.Store
	lg    *zap.Logger
}

func NewLocalCommissionRepository(store localstore.Store, lg *zap.Logger) CommissionRepository {
	return &localCommissionRepository{store: store, lg: lg}
}

func (r *localCommissionRepository) Append(ctx context.Context, record *models.CommissionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := localstore.ReadCollection[*models.CommissionRecord](r.store, localstore.KeyCommissions, r.lg)
	records = append(records, record)
	if err := localstore.WriteCollection(r.store, localstore.KeyCommissions, records); err != nil {
		return fmt.Errorf("append commission record: %w", err)
	}
	return nil
}

func (r *localCommissionRepository) List(ctx context.Context) ([]*models.CommissionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return localstore.ReadCollection[*models.CommissionRecord](r.store, localstore.KeyCommissions, r.lg), nil
}
