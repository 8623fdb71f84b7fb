package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gyansetu/internal/config"
	"gyansetu/internal/models"
	"gyansetu/internal/repository"
	"gyansetu/internal/sanitize"
	"gyansetu/internal/storage"
)

type MediaUpload struct {
	FileName string
	Reader   io.Reader
	Size     int64
}

type CreatePostRequest struct {
	Type    models.PostType
	Title   string
	Content string
	Media   *MediaUpload
}

type PostService interface {
	CreatePost(ctx context.Context, author *models.User, req CreatePostRequest) (*models.Post, error)
}

type postService struct {
	postRepo repository.PostRepository
	storage  storage.Storage
	cfg      *config.Config
	lg       *zap.Logger
	now      func() time.Time
}

func NewPostService(postRepo repository.PostRepository, storage storage.Storage, cfg *config.Config, lg *zap.Logger) PostService {
	return &postService{
		postRepo: postRepo,
		storage:  storage,
		cfg:      cfg,
		lg:       lg,
		now:      time.Now,
	}
}

func (p *postService) CreatePost(ctx context.Context, author *models.User, req CreatePostRequest) (*models.Post, error) {
	if !author.IsGuru() {
		return nil, ErrNotGuru
	}
	if !req.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown type %q", ErrInvalidPost, req.Type)
	}

	post := &models.Post{
		ID:        uuid.New().String(),
		GuruID:    author.ID,
		Type:      req.Type,
		Title:     sanitize.Text(req.Title),
		Timestamp: p.now(),
	}
	if post.Title == "" {
		return nil, fmt.Errorf("%w: title", ErrMissingField)
	}

	if req.Type == models.PostArticle {
		post.Content = sanitize.Rich(req.Content)
		if post.Content == "" {
			return nil, fmt.Errorf("%w: content", ErrMissingField)
		}
	} else {
		post.Content = sanitize.Text(req.Content)
		if post.Content == "" {
			return nil, fmt.Errorf("%w: caption", ErrMissingField)
		}
		if req.Media == nil || req.Media.Reader == nil || strings.TrimSpace(req.Media.FileName) == "" {
			return nil, ErrMissingMedia
		}
	}

	var objectName string
	if req.Type.NeedsMedia() {
		var err error
		objectName, post.MediaURL, err = p.storage.Upload(ctx, "posts", post.ID, req.Media.FileName, req.Media.Reader, req.Media.Size)
		if err != nil {
			return nil, fmt.Errorf("upload media: %w", err)
		}
	}

	if err := p.postRepo.Create(ctx, post); err != nil {
		if objectName != "" {
			if delErr := p.storage.Delete(ctx, objectName); delErr != nil {
				p.lg.Warn("orphaned media object", zap.String("object", objectName), zap.Error(delErr))
			}
		}
		return nil, fmt.Errorf("save post: %w", err)
	}

	p.lg.Info("post created", zap.String("postID", post.ID), zap.String("guruID", author.ID), zap.String("type", string(post.Type)))

	post.Guru = models.AuthorOf(author)
	return post, nil
}
