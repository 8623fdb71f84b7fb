package service

import (
	"context"

	"gyansetu/internal/repository"
)

type HealthStatus struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

type HealthService interface {
	Check(ctx context.Context) (*HealthStatus, error)
}

type healthService struct {
	tablesRepo repository.TablesRepository
}

func NewHealthService(tablesRepo repository.TablesRepository) HealthService {
	return &healthService{tablesRepo: tablesRepo}
}

// Check returns the status alongside the storage error, if any.
func (t *healthService) Check(ctx context.Context) (*HealthStatus, error) {
	status := &HealthStatus{Status: "ok", Backend: t.tablesRepo.Describe()}

	if err := t.tablesRepo.Check(ctx); err != nil {
		status.Status = "unavailable"
		status.Error = err.Error()
		return status, err
	}

	return status, nil
}
