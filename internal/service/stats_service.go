package service

import (
	"context"
	"fmt"

	"gyansetu/internal/config"
	"gyansetu/internal/models"
	"gyansetu/internal/normalize"
	"gyansetu/internal/repository"
)

type StatsService interface {
	Stats(ctx context.Context) (*models.Stats, error)
}

type statsService struct {
	repo *repository.Repository
	cfg  *config.Config
}

func NewStatsService(repo *repository.Repository, cfg *config.Config) StatsService {
	return &statsService{repo: repo, cfg: cfg}
}

// Stats counts platform activity. The owner account is not counted as a guru.
func (s *statsService) Stats(ctx context.Context) (*models.Stats, error) {
	users, err := s.repo.User.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	posts, err := s.repo.Post.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	calls, err := s.repo.Call.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count calls: %w", err)
	}
	commissions, err := s.repo.Commission.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}

	owner := normalize.Username(s.cfg.OwnerUsername)
	stats := &models.Stats{Posts: len(posts), Calls: calls}
	for _, u := range users {
		switch {
		case normalize.Username(u.Username) == owner:
		case u.IsGuru():
			stats.Gurus++
		default:
			stats.Shishyas++
		}
	}
	for _, c := range commissions {
		stats.DakshinaVolume += c.TotalAmount
		stats.CommissionTotal += c.CommissionAmount
	}
	return stats, nil
}
