package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"gyansetu/internal/call"
	"gyansetu/internal/config"
	"gyansetu/internal/models"
	"gyansetu/internal/repository"
)

type CallService interface {
	Start(ctx context.Context, caller *models.User, receiverID string, callType models.CallType) (call.Snapshot, error)
	Get(ctx context.Context, userID, callID string) (call.Snapshot, error)
	ToggleMute(ctx context.Context, userID, callID string) (call.Snapshot, error)
	ToggleCamera(ctx context.Context, userID, callID string) (call.Snapshot, error)
	End(ctx context.Context, userID, callID string, reason call.EndReason) (*models.CallRecord, error)
	Subscribe(ctx context.Context, userID, callID string) (<-chan call.Snapshot, func(), error)
	Shutdown(ctx context.Context)
}

type liveCall struct {
	session  *call.Session
	caller   *models.User
	receiver *models.User
	record   *models.CallRecord
	err      error
}

type callService struct {
	userRepo repository.UserRepository
	callRepo repository.CallRepository
	devices  call.Devices
	cfg      *config.Config
	lg       *zap.Logger

	mu    sync.Mutex
	calls map[string]*liveCall
}

func NewCallService(userRepo repository.UserRepository, callRepo repository.CallRepository, devices call.Devices, cfg *config.Config, lg *zap.Logger) CallService {
	return &callService{
		userRepo: userRepo,
		callRepo: callRepo,
		devices:  devices,
		cfg:      cfg,
		lg:       lg,
		calls:    make(map[string]*liveCall),
	}
}

func (s *callService) Start(ctx context.Context, caller *models.User, receiverID string, callType models.CallType) (call.Snapshot, error) {
	if !callType.Valid() {
		return call.Snapshot{}, fmt.Errorf("%w: call type", ErrInvalidField)
	}
	if receiverID == caller.ID {
		return call.Snapshot{}, ErrInvalidCallTarget
	}

	receiver, err := s.userRepo.GetByID(ctx, receiverID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return call.Snapshot{}, ErrInvalidCallTarget
		}
		return call.Snapshot{}, err
	}
	if !receiver.IsGuru() {
		return call.Snapshot{}, ErrInvalidCallTarget
	}

	lc := &liveCall{caller: caller, receiver: receiver}
	id := uuid.New().String()
	lc.session = call.NewSession(id, callType, s.devices, call.Options{
		FreeDuration: s.cfg.Call.FreeDuration,
		TickInterval: s.cfg.Call.TickInterval,
		OnEnd:        func(sum call.Summary) { s.finish(lc, sum) },
	})

	s.mu.Lock()
	s.calls[id] = lc
	s.mu.Unlock()

	if err := lc.session.Start(ctx); err != nil {
		s.lg.Warn("call failed to start", zap.String("callID", id), zap.Error(err))
		return lc.session.Snapshot(), err
	}

	s.lg.Info("call started",
		zap.String("callID", id),
		zap.String("callerID", caller.ID),
		zap.String("receiverID", receiver.ID),
		zap.String("type", string(callType)),
	)
	return lc.session.Snapshot(), nil
}

// finish runs once per call, on every path into the ended state.
func (s *callService) finish(lc *liveCall, sum call.Summary) {
	record := &models.CallRecord{
		ID:                     lc.session.ID(),
		CallerID:               lc.caller.ID,
		CallerName:             lc.caller.FullName(),
		CallerProfilePicture:   lc.caller.ProfilePictureURL,
		ReceiverID:             lc.receiver.ID,
		ReceiverName:           lc.receiver.FullName(),
		ReceiverProfilePicture: lc.receiver.ProfilePictureURL,
		Type:                   lc.session.Type(),
		Timestamp:              sum.EndedAt,
		Duration:               sum.Duration,
		EndReason:              string(sum.Reason),
	}

	err := s.callRepo.Append(context.Background(), record)
	if err != nil {
		s.lg.Error("call record not saved", zap.String("callID", record.ID), zap.Error(err))
	}

	s.mu.Lock()
	lc.record = record
	lc.err = err
	delete(s.calls, record.ID)
	s.mu.Unlock()

	s.lg.Info("call ended",
		zap.String("callID", record.ID),
		zap.Int64("duration", record.Duration),
		zap.String("reason", record.EndReason),
	)
}

// lookup returns a live call the user takes part in. Only the caller controls it.
func (s *callService) lookup(userID, callID string, control bool) (*liveCall, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lc, ok := s.calls[callID]
	if !ok {
		return nil, ErrCallNotFound
	}
	if lc.caller.ID == userID {
		return lc, nil
	}
	if !control && lc.receiver.ID == userID {
		return lc, nil
	}
	if lc.receiver.ID == userID {
		return nil, ErrForbidden
	}
	return nil, ErrCallNotFound
}

func (s *callService) Get(ctx context.Context, userID, callID string) (call.Snapshot, error) {
	lc, err := s.lookup(userID, callID, false)
	if err != nil {
		return call.Snapshot{}, err
	}
	return lc.session.Snapshot(), nil
}

func (s *callService) ToggleMute(ctx context.Context, userID, callID string) (call.Snapshot, error) {
	lc, err := s.lookup(userID, callID, true)
	if err != nil {
		return call.Snapshot{}, err
	}
	return lc.session.ToggleMute()
}

func (s *callService) ToggleCamera(ctx context.Context, userID, callID string) (call.Snapshot, error) {
	lc, err := s.lookup(userID, callID, true)
	if err != nil {
		return call.Snapshot{}, err
	}
	return lc.session.ToggleCamera()
}

func (s *callService) End(ctx context.Context, userID, callID string, reason call.EndReason) (*models.CallRecord, error) {
	lc, err := s.lookup(userID, callID, true)
	if err != nil {
		return nil, err
	}

	if _, err := lc.session.End(reason); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if lc.err != nil {
		return nil, fmt.Errorf("save call record: %w", lc.err)
	}
	return lc.record, nil
}

func (s *callService) Subscribe(ctx context.Context, userID, callID string) (<-chan call.Snapshot, func(), error) {
	lc, err := s.lookup(userID, callID, false)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := lc.session.Subscribe()
	return ch, cancel, nil
}

// Shutdown ends every live call so devices are released and records written.
func (s *callService) Shutdown(ctx context.Context) {
	s.mu.Lock()
	live := make([]*liveCall, 0, len(s.calls))
	for _, lc := range s.calls {
		live = append(live, lc)
	}
	s.mu.Unlock()

	for _, lc := range live {
		if ctx.Err() != nil {
			return
		}
		if _, err := lc.session.End(call.ReasonShutdown); err != nil && !errors.Is(err, call.ErrCallEnded) {
			s.lg.Warn("call not ended on shutdown", zap.String("callID", lc.session.ID()), zap.Error(err))
		}
	}
}
