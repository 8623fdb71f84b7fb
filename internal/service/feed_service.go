package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gyansetu/internal/config"
	"gyansetu/internal/models"
	"gyansetu/internal/normalize"
	"gyansetu/internal/repository"
)

type GuruSort string

const (
	SortDefault   GuruSort = "default"
	SortRating    GuruSort = "rating"
	SortExpertise GuruSort = "expertise"
)

func ParseGuruSort(s string) GuruSort {
	switch GuruSort(strings.ToLower(strings.TrimSpace(s))) {
	case SortRating:
		return SortRating
	case SortExpertise:
		return SortExpertise
	}
	return SortDefault
}

type FeedService interface {
	Feed(ctx context.Context) ([]*models.Post, error)
	Gurus(ctx context.Context, order GuruSort, query string) ([]*models.User, error)
	GuruPosts(ctx context.Context, guruID string) ([]*models.Post, error)
}

type feedService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	cfg      *config.Config
}

func NewFeedService(userRepo repository.UserRepository, postRepo repository.PostRepository, cfg *config.Config) FeedService {
	return &feedService{userRepo: userRepo, postRepo: postRepo, cfg: cfg}
}

// Feed returns every post, newest first, with its author attached.
func (s *feedService) Feed(ctx context.Context) ([]*models.Post, error) {
	posts, err := s.postRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.withAuthors(ctx, posts)
}

func (s *feedService) GuruPosts(ctx context.Context, guruID string) ([]*models.Post, error) {
	guru, err := s.userRepo.GetByID(ctx, guruID)
	if err != nil {
		return nil, err
	}
	if !guru.IsGuru() {
		return nil, repository.ErrNotFound
	}

	posts, err := s.postRepo.ListByGuru(ctx, guruID)
	if err != nil {
		return nil, fmt.Errorf("list guru posts: %w", err)
	}
	return s.withAuthors(ctx, posts)
}

func (s *feedService) withAuthors(ctx context.Context, posts []*models.Post) ([]*models.Post, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	byID := make(map[string]*models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	out := make([]*models.Post, 0, len(posts))
	for _, p := range posts {
		post := *p
		post.Guru = models.AuthorOf(byID[p.GuruID])
		out = append(out, &post)
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders posts by timestamp, descending, keeping ties stable.
func SortNewestFirst(posts []*models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
}

// Gurus lists discoverable gurus. The platform owner is never listed.
func (s *feedService) Gurus(ctx context.Context, order GuruSort, query string) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	q := normalize.Fold(strings.TrimSpace(query))
	gurus := []*models.User{}
	for _, u := range users {
		if !u.IsGuru() || normalize.Username(u.Username) == s.cfg.OwnerUsername {
			continue
		}
		if q != "" && !matchesGuru(u, q) {
			continue
		}
		gurus = append(gurus, u.Public())
	}

	SortGurus(gurus, order)
	return gurus, nil
}

func matchesGuru(u *models.User, foldedQuery string) bool {
	fields := []string{u.FirstName, u.LastName, u.FullName(), u.Username}
	if u.Guru != nil {
		fields = append(fields, u.Guru.Expertise)
	}
	for _, f := range fields {
		if strings.Contains(normalize.Fold(f), foldedQuery) {
			return true
		}
	}
	return false
}

func guruRating(u *models.User) float64 {
	if u.Guru == nil {
		return 0
	}
	return u.Guru.Rating
}

func guruExpertise(u *models.User) string {
	if u.Guru == nil {
		return ""
	}
	return normalize.Fold(u.Guru.Expertise)
}

// SortGurus is stable, so the default order is insertion order.
func SortGurus(gurus []*models.User, order GuruSort) {
	switch order {
	case SortRating:
		sort.SliceStable(gurus, func(i, j int) bool {
			return guruRating(gurus[i]) > guruRating(gurus[j])
		})
	case SortExpertise:
		sort.SliceStable(gurus, func(i, j int) bool {
			return guruExpertise(gurus[i]) < guruExpertise(gurus[j])
		})
	}
}
