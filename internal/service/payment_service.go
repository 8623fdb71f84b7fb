package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gyansetu/internal/models"
	"gyansetu/internal/payment"
	"gyansetu/internal/repository"
)

type DakshinaResult struct {
	Record *models.CommissionRecord `json:"record"`
	Link   string                   `json:"link"`
}

type PaymentService interface {
	Pay(ctx context.Context, payer *models.User, postID string, amount float64) (*DakshinaResult, error)
	Commissions(ctx context.Context) ([]*models.CommissionRecord, error)
}

type paymentService struct {
	userRepo       repository.UserRepository
	postRepo       repository.PostRepository
	commissionRepo repository.CommissionRepository
	lg             *zap.Logger
	now            func() time.Time
}

func NewPaymentService(repo *repository.Repository, lg *zap.Logger) PaymentService {
	return &paymentService{
		userRepo:       repo.User,
		postRepo:       repo.Post,
		commissionRepo: repo.Commission,
		lg:             lg,
		now:            time.Now,
	}
}

// Pay records the platform commission and returns a UPI link for the full amount.
// The commission is bookkeeping only: the payee still receives the whole amount.
func (s *paymentService) Pay(ctx context.Context, payer *models.User, postID string, amount float64) (*DakshinaResult, error) {
	if err := payment.ValidateAmount(amount); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	guru, err := s.userRepo.GetByID(ctx, post.GuruID)
	if err != nil {
		return nil, fmt.Errorf("load post guru: %w", err)
	}
	if guru.Guru == nil || guru.Guru.UPIID == "" {
		return nil, ErrPayeeNotConfigured
	}

	record := &models.CommissionRecord{
		ID:               uuid.New().String(),
		PostID:           post.ID,
		GuruID:           guru.ID,
		GuruName:         guru.FullName(),
		ShishyaID:        payer.ID,
		ShishyaName:      payer.FullName(),
		TotalAmount:      amount,
		CommissionAmount: payment.Commission(amount),
		Timestamp:        s.now(),
	}
	if err := s.commissionRepo.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("record commission: %w", err)
	}

	s.lg.Info("dakshina initiated",
		zap.String("postID", post.ID),
		zap.String("guruID", guru.ID),
		zap.String("payerID", payer.ID),
		zap.Float64("amount", amount),
		zap.Float64("commission", record.CommissionAmount),
	)

	link := payment.BuildUPILink(payment.LinkParams{
		PayeeUPI:  guru.Guru.UPIID,
		PayeeName: guru.FullName(),
		Amount:    amount,
		Note:      "For: " + post.Title,
	})

	return &DakshinaResult{Record: record, Link: link}, nil
}

func (s *paymentService) Commissions(ctx context.Context) ([]*models.CommissionRecord, error) {
	records, err := s.commissionRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list commissions: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}
