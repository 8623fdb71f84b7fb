package test

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"

	"gyansetu/internal/call"
	"gyansetu/internal/models"
	"gyansetu/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req service.SignupRequest) (*service.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*service.AuthResult, error) {
	args := m.Called(ctx, identifier, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *MockAuthService) Refresh(ctx context.Context, sessionID string) (*service.AuthResult, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.AuthResult), args.Error(1)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, identifier string) error {
	return m.Called(ctx, identifier).Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, code, newPassword, confirmPassword string) error {
	return m.Called(ctx, code, newPassword, confirmPassword).Error(0)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*jwt.Token, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.Token), args.Error(1)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.Session, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) Feed(ctx context.Context) ([]*models.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockFeedService) Gurus(ctx context.Context, order service.GuruSort, query string) ([]*models.User, error) {
	args := m.Called(ctx, order, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockFeedService) GuruPosts(ctx context.Context, guruID string) ([]*models.Post, error) {
	args := m.Called(ctx, guruID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) CreatePost(ctx context.Context, author *models.User, req service.CreatePostRequest) (*models.Post, error) {
	args := m.Called(ctx, author, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

type MockPaymentService struct {
	mock.Mock
}

func (m *MockPaymentService) Pay(ctx context.Context, payer *models.User, postID string, amount float64) (*service.DakshinaResult, error) {
	args := m.Called(ctx, payer, postID, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DakshinaResult), args.Error(1)
}

func (m *MockPaymentService) Commissions(ctx context.Context) ([]*models.CommissionRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CommissionRecord), args.Error(1)
}

type MockCallService struct {
	mock.Mock
}

func (m *MockCallService) Start(ctx context.Context, caller *models.User, receiverID string, callType models.CallType) (call.Snapshot, error) {
	args := m.Called(ctx, caller, receiverID, callType)
	return args.Get(0).(call.Snapshot), args.Error(1)
}

func (m *MockCallService) Get(ctx context.Context, userID, callID string) (call.Snapshot, error) {
	args := m.Called(ctx, userID, callID)
	return args.Get(0).(call.Snapshot), args.Error(1)
}

func (m *MockCallService) ToggleMute(ctx context.Context, userID, callID string) (call.Snapshot, error) {
	args := m.Called(ctx, userID, callID)
	return args.Get(0).(call.Snapshot), args.Error(1)
}

func (m *MockCallService) ToggleCamera(ctx context.Context, userID, callID string) (call.Snapshot, error) {
	args := m.Called(ctx, userID, callID)
	return args.Get(0).(call.Snapshot), args.Error(1)
}

func (m *MockCallService) End(ctx context.Context, userID, callID string, reason call.EndReason) (*models.CallRecord, error) {
	args := m.Called(ctx, userID, callID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CallRecord), args.Error(1)
}

func (m *MockCallService) Subscribe(ctx context.Context, userID, callID string) (<-chan call.Snapshot, func(), error) {
	args := m.Called(ctx, userID, callID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan call.Snapshot), args.Get(1).(func()), args.Error(2)
}

func (m *MockCallService) Shutdown(ctx context.Context) {
	m.Called(ctx)
}

type MockHealthService struct {
	mock.Mock
}

func (m *MockHealthService) Check(ctx context.Context) (*service.HealthStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(*service.HealthStatus), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) Get(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID string, req service.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) UpdateBankDetails(ctx context.Context, userID string, details models.BankDetails) (*models.User, error) {
	args := m.Called(ctx, userID, details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) ChangeAvatar(ctx context.Context, userID string, upload *service.MediaUpload) (*models.User, error) {
	args := m.Called(ctx, userID, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockProfileService) CallHistory(ctx context.Context, userID string) ([]*models.CallRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.CallRecord), args.Error(1)
}

type MockPreferenceService struct {
	mock.Mock
}

func (m *MockPreferenceService) Get(ctx context.Context, userID string) (*models.Preferences, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preferences), args.Error(1)
}

func (m *MockPreferenceService) Update(ctx context.Context, userID, lang, theme string) (*models.Preferences, error) {
	args := m.Called(ctx, userID, lang, theme)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preferences), args.Error(1)
}

type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) Submit(ctx context.Context, userID, text string) (*models.FeedbackRecord, error) {
	args := m.Called(ctx, userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.FeedbackRecord), args.Error(1)
}

func (m *MockFeedbackService) List(ctx context.Context) ([]*models.FeedbackRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.FeedbackRecord), args.Error(1)
}

type MockStatsService struct {
	mock.Mock
}

func (m *MockStatsService) Stats(ctx context.Context) (*models.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stats), args.Error(1)
}
