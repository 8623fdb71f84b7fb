package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gyansetu/internal/models"
)

const postColumns = `id, creator_id, type, title, content, media_url, likes_count, comments_count, created_at`

type PostRepositoryImpl struct {
	DB *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) *PostRepositoryImpl {
	return &PostRepositoryImpl{DB: db}
}

func (r *PostRepositoryImpl) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (` + postColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		post.ID, post.GuruID, string(post.Type), post.Title, post.Content, post.MediaURL,
		post.Likes, post.Comments, post.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create post: %w", err)
	}

	return nil
}

func (r *PostRepositoryImpl) GetByID(ctx context.Context, postID string) (*models.Post, error) {
	var post models.Post

	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	err := r.DB.GetContext(ctx, &post, query, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get post: %w", err)
	}

	return &post, nil
}

func (r *PostRepositoryImpl) List(ctx context.Context) ([]*models.Post, error) {
	posts := []*models.Post{}

	query := `SELECT ` + postColumns + ` FROM posts ORDER BY created_at, id`

	if err := r.DB.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	return posts, nil
}

func (r *PostRepositoryImpl) ListByGuru(ctx context.Context, guruID string) ([]*models.Post, error) {
	posts := []*models.Post{}

	query := `SELECT ` + postColumns + ` FROM posts WHERE creator_id = $1 ORDER BY created_at, id`

	if err := r.DB.SelectContext(ctx, &posts, query, guruID); err != nil {
		return nil, fmt.Errorf("list posts by guru: %w", err)
	}

	return posts, nil
}
