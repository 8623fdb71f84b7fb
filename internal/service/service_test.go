package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gyansetu/internal/call"
	"gyansetu/internal/config"
	"gyansetu/internal/localstore"
	"gyansetu/internal/models"
	"gyansetu/internal/repository"
	"gyansetu/internal/storage"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecretKey:        "test-secret",
		AccessTokenDuration: time.Hour,
		SessionDuration:     24 * time.Hour,
		OwnerUsername:       "gyansetu_owner",
		Call:                config.Call{FreeDuration: 5 * time.Minute, TickInterval: time.Hour},
	}
}

type fixture struct {
	svc  *Service
	repo *repository.Repository
	cfg  *config.Config
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := testConfig()
	repo := repository.NewLocalRepository(localstore.NewMemoryStore(), zap.NewNop())
	svc := NewService(repo, cfg, storage.NewPlaceholder(), call.VirtualDevices{}, zap.NewNop())
	svc.Auth.(*authService).cost = bcrypt.MinCost
	return &fixture{svc: svc, repo: repo, cfg: cfg}
}

func (f *fixture) signup(t *testing.T, role models.Role, username string) *models.User {
	t.Helper()
	res, err := f.svc.Auth.Signup(context.Background(), SignupRequest{
		Role:            role,
		FirstName:       username,
		Username:        username,
		Email:           username + "@example.com",
		Mobile:          "9" + username,
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	return res.User
}

// guru signs up a guru with a UPI id so it can receive payments.
func (f *fixture) guru(t *testing.T, username string) *models.User {
	t.Helper()
	u := f.signup(t, models.RoleGuru, username)
	u, err := f.svc.Profile.UpdateBankDetails(context.Background(), u.ID, models.BankDetails{
		AccountHolder: username,
		AccountNumber: "123456789012",
		IFSC:          "sbin0001",
		UPIID:         username + "@upi",
	})
	require.NoError(t, err)
	return u
}
