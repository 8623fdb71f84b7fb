package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"gyansetu/internal/localstore"
)

// RequiredTables must exist for the postgres backend to serve requests.
var RequiredTables = []string{"profiles", "posts", "call_records", "commission_records"}

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
			SELECT COUNT(*)
			FROM information_schema.tables
			WHERE table_schema = 'public' AND table_name = ANY($1)
		`, pq.Array(RequiredTables))

	if err != nil {
		return 0, fmt.Errorf("count database tables: %w", err)
	}

	return count, nil
}

func (r *tablesRepository) Check(ctx context.Context) error {
	count, err := r.CountTablesDB(ctx)
	if err != nil {
		return err
	}
	if count < len(RequiredTables) {
		return fmt.Errorf("schema incomplete: %d of %d tables present", count, len(RequiredTables))
	}
	return nil
}

func (r *tablesRepository) Describe() string { return "postgres" }

type storeTablesRepository struct {
	store localstore.Store
}

func NewStoreTablesRepository(store localstore.Store) TablesRepository {
	return &storeTablesRepository{store: store}
}

func (r *storeTablesRepository) Check(ctx context.Context) error {
	if err := r.store.Ping(); err != nil {
		return fmt.Errorf("data store unavailable: %w", err)
	}
	return nil
}

func (r *storeTablesRepository) Describe() string { return "local" }
