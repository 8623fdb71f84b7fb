package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"gyansetu/internal/models"
)

type gormCallRepository struct {
	db *gorm.DB
}

func NewGormCallRepository(db *gorm.DB) CallRepository {
	return &gormCallRepository{db: db}
}

func (r *gormCallRepository) Append(ctx context.Context, record *models.CallRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("append call record: %w", err)
	}
	return nil
}

func (r *gormCallRepository) ListForUser(ctx context.Context, userID string) ([]*models.CallRecord, error) {
	records := []*models.CallRecord{}
	err := r.db.WithContext(ctx).
		Where("caller_id = ? OR receiver_id = ?", userID, userID).
		Order("timestamp").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list call records: %w", err)
	}
	return records, nil
}

func (r *gormCallRepository) Count(ctx context.Context) (int, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.CallRecord{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count call records: %w", err)
	}
	return int(n), nil
}

type gormCommissionRepository struct {
	db *gorm.DB
}

func NewGormCommissionRepository(db *gorm.DB) CommissionRepository {
	return &gormCommissionRepository{db: db}
}

func (r *gormCommissionRepository) Append(ctx context.Context, record *models.CommissionRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("append commission record: %w", err)
	}
	return nil
}

func (r *gormCommissionRepository) List(ctx context.Context) ([]*models.CommissionRecord, error) {
	records := []*models.CommissionRecord{}
	if err := r.db.WithContext(ctx).Order("timestamp").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list commission records: %w", err)
	}
	return records, nil
}
