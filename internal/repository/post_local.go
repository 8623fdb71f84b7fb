package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"gyansetu/internal/localstore"
	"gyansetu/internal/models"
)

type localPostRepository struct {
	mu    sync.Mutex
	store localstore.Store
	lg    *zap.Logger
}

func NewLocalPostRepository(store localstore.Store, lg *zap.Logger) PostRepository {
	return &localPostRepository{store: store, lg: lg}
}

func (r *localPostRepository) load() []*models.Post {
	return localstore.ReadCollection[*models.Post](r.store, localstore.KeyPosts, r.lg)
}

func (r *localPostRepository) Create(ctx context.Context, post *models.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *post
	stored.Guru = nil

	posts := append(r.load(), &stored)
	if err := localstore.WriteCollection(r.store, localstore.KeyPosts, posts); err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

func (r *localPostRepository) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.load() {
		if p.ID == postID {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *localPostRepository) List(ctx context.Context) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(), nil
}

func (r *localPostRepository) ListByGuru(ctx context.Context, guruID string) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []*models.Post{}
	for _, p := range r.load() {
		if p.GuruID == guruID {
			out = append(out, p)
		}
	}
	return out, nil
}
