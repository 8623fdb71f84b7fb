package repository

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"gyansetu/internal/localstore"
)

// NewPostgresRepository keeps profiles and posts in sqlx, the call and payment
// ledgers in gorm, and the per-device collections in the local store.
func NewPostgresRepository(db *sqlx.DB, ledger *gorm.DB, store localstore.Store, lg *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db),
		Post:       NewPostRepository(db),
		Call:       NewGormCallRepository(ledger),
		Commission: NewGormCommissionRepository(ledger),
		Session:    NewLocalSessionRepository(store, lg),
		Preference: NewLocalPreferenceRepository(store, lg),
		Feedback:   NewLocalFeedbackRepository(store, lg),
		Tables:     NewTablesRepository(db),
	}
}
