package repository

import (
	"go.uber.org/zap"

	"gyansetu/internal/localstore"
)

// NewLocalRepository backs every collection with the key/value store.
func NewLocalRepository(store localstore.Store, lg *zap.Logger) *Repository {
	return &Repository{
		User:       NewLocalUserRepository(store, lg),
		Post:       NewLocalPostRepository(store, lg),
		Call:       NewLocalCallRepository(store, lg),
		Commission: NewLocalCommissionRepository(store, lg),
		Session:    NewLocalSessionRepository(store, lg),
		Preference: NewLocalPreferenceRepository(store, lg),
		Feedback:   NewLocalFeedbackRepository(store, lg),
		Tables:     NewStoreTablesRepository(store),
	}
}
