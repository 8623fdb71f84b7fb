package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gyansetu/internal/models"
	"gyansetu/internal/repository"
	"gyansetu/internal/sanitize"
)

type FeedbackService interface {
	Submit(ctx context.Context, userID, text string) (*models.FeedbackRecord, error)
	List(ctx context.Context) ([]*models.FeedbackRecord, error)
}

type feedbackService struct {
	feedbackRepo repository.FeedbackRepository
	lg           *zap.Logger
	now          func() time.Time
}

func NewFeedbackService(feedbackRepo repository.FeedbackRepository, lg *zap.Logger) FeedbackService {
	return &feedbackService{feedbackRepo: feedbackRepo, lg: lg, now: time.Now}
}

func (s *feedbackService) Submit(ctx context.Context, userID, text string) (*models.FeedbackRecord, error) {
	text = sanitize.Text(text)
	if text == "" {
		return nil, ErrEmptyFeedback
	}

	record := &models.FeedbackRecord{
		ID:           uuid.New().String(),
		UserID:       userID,
		FeedbackText: text,
		Timestamp:    s.now(),
	}
	if err := s.feedbackRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	s.lg.Info("feedback received", zap.String("feedbackID", record.ID), zap.String("userID", userID))
	return record, nil
}

func (s *feedbackService) List(ctx context.Context) ([]*models.FeedbackRecord, error) {
	records, err := s.feedbackRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}
