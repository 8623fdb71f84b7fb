package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gyansetu/internal/config"
	"gyansetu/internal/models"
	"gyansetu/internal/normalize"
	"gyansetu/internal/repository"
	"gyansetu/internal/sanitize"
	"gyansetu/internal/storage"
)

// UpdateProfileRequest holds optional edits. Nil fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName *string
	LastName  *string
	Username  *string
	DOB       *string
	Gender    *string
	Age       *int
	Expertise *string
	Bio       *string
}

func (r UpdateProfileRequest) touchesGuruFields() bool {
	return r.Age != nil || r.Expertise != nil || r.Bio != nil
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error)
	UpdateBankDetails(ctx context.Context, userID string, details models.BankDetails) (*models.User, error)
	ChangeAvatar(ctx context.Context, userID string, upload *MediaUpload) (*models.User, error)
	CallHistory(ctx context.Context, userID string) ([]*models.CallRecord, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	callRepo    repository.CallRepository
	storage     storage.Storage
	cfg         *config.Config
	lg          *zap.Logger
}

func NewProfileService(repo *repository.Repository, storage storage.Storage, cfg *config.Config, lg *zap.Logger) ProfileService {
	return &profileService{
		userRepo:    repo.User,
		sessionRepo: repo.Session,
		callRepo:    repo.Call,
		storage:     storage,
		cfg:         cfg,
		lg:          lg,
	}
}

func (s *profileService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Public(), nil
}

func (s *profileService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*models.User, error) {
	// get user by id
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.touchesGuruFields() && !user.IsGuru() {
		return nil, ErrNotGuru
	}

	if req.FirstName != nil {
		user.FirstName = normalize.Name(sanitize.Text(*req.FirstName))
		if user.FirstName == "" {
			return nil, fmt.Errorf("%w: firstName", ErrMissingField)
		}
	}
	if req.LastName != nil {
		user.LastName = normalize.Name(sanitize.Text(*req.LastName))
	}
	if req.Username != nil {
		user.Username = normalize.Username(*req.Username)
		if user.Username == "" {
			return nil, fmt.Errorf("%w: username", ErrMissingField)
		}
	}
	if req.DOB != nil {
		user.DOB = strings.TrimSpace(*req.DOB)
	}
	if req.Gender != nil {
		user.Gender = strings.TrimSpace(*req.Gender)
	}
	if user.IsGuru() {
		if user.Guru == nil {
			user.Guru = &models.GuruProfile{}
		}
		if req.Age != nil {
			if *req.Age < 0 {
				return nil, fmt.Errorf("%w: age", ErrInvalidField)
			}
			user.Guru.Age = *req.Age
		}
		if req.Expertise != nil {
			user.Guru.Expertise = sanitize.Text(*req.Expertise)
		}
		if req.Bio != nil {
			user.Guru.Bio = sanitize.Text(*req.Bio)
		}
	}

	return s.save(ctx, user)
}

// save persists the user and refreshes every live session snapshot.
func (s *profileService) save(ctx context.Context, user *models.User) (*models.User, error) {
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.RefreshUser(ctx, user); err != nil {
		s.lg.Warn("session snapshot refresh failed", zap.String("userID", user.ID), zap.Error(err))
	}
	return user.Public(), nil
}

func (s *profileService) UpdateBankDetails(ctx context.Context, userID string, details models.BankDetails) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsGuru() {
		return nil, ErrNotGuru
	}

	details = models.BankDetails{
		AccountHolder: normalize.Name(details.AccountHolder),
		AccountNumber: strings.ReplaceAll(strings.TrimSpace(details.AccountNumber), " ", ""),
		IFSC:          strings.ToUpper(strings.TrimSpace(details.IFSC)),
		UPIID:         strings.TrimSpace(details.UPIID),
	}
	if err := requireFields(
		"accountHolder", details.AccountHolder,
		"accountNumber", details.AccountNumber,
		"ifsc", details.IFSC,
		"upiId", details.UPIID,
	); err != nil {
		return nil, err
	}

	if user.Guru == nil {
		user.Guru = &models.GuruProfile{}
	}
	user.Guru.BankDetails = &details
	user.Guru.UPIID = details.UPIID

	return s.save(ctx, user)
}

// ChangeAvatar stores the uploaded picture, or picks a random one when none is given.
func (s *profileService) ChangeAvatar(ctx context.Context, userID string, upload *MediaUpload) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if upload == nil || upload.Reader == nil {
		user.ProfilePictureURL = fmt.Sprintf("https://picsum.photos/seed/%s/200", uuid.New().String())
	} else {
		_, url, err := s.storage.Upload(ctx, "avatars", user.ID, upload.FileName, upload.Reader, upload.Size)
		if err != nil {
			return nil, fmt.Errorf("upload avatar: %w", err)
		}
		user.ProfilePictureURL = url
	}

	return s.save(ctx, user)
}

// CallHistory lists calls the user placed or received, newest first.
func (s *profileService) CallHistory(ctx context.Context, userID string) ([]*models.CallRecord, error) {
	records, err := s.callRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}
