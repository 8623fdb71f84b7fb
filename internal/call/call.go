package call

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gyansetu/internal/models"
)

type State string

const (
	StateIdle         State = "idle"
	StateActive       State = "active"
	StatePremiumGated State = "premium-gated"
	StateEnded        State = "ended"
)

type EndReason string

const (
	ReasonHangup      EndReason = "hangup"
	ReasonPremiumEnd  EndReason = "premium-end"
	ReasonUpgrade     EndReason = "upgrade"
	ReasonDeviceError EndReason = "device-error"
	ReasonShutdown    EndReason = "shutdown"
)

func (r EndReason) Valid() bool {
	switch r {
	case ReasonHangup, ReasonPremiumEnd, ReasonUpgrade, ReasonDeviceError, ReasonShutdown:
		return true
	}
	return false
}

var (
	ErrAlreadyStarted    = errors.New("call already started")
	ErrNotStarted        = errors.New("call not started")
	ErrCallEnded         = errors.New("call already ended")
	ErrInvalidTransition = errors.New("invalid call transition")
	ErrNoCamera          = errors.New("camera is only available on video calls")
)

const subscriberBuffer = 8

// Snapshot is the observable state of a call.
type Snapshot struct {
	ID               string          `json:"id"`
	Type             models.CallType `json:"type"`
	State            State           `json:"state"`
	RemainingSeconds int             `json:"remainingSeconds"`
	ElapsedSeconds   int64           `json:"elapsedSeconds"`
	Muted            bool            `json:"muted"`
	CameraOff        bool            `json:"cameraOff"`
	EndReason        EndReason       `json:"endReason,omitempty"`
}

// Summary describes a finished call.
type Summary struct {
	StartedAt time.Time
	EndedAt   time.Time
	Duration  int64
	Reason    EndReason
}

type Options struct {
	FreeDuration time.Duration
	TickInterval time.Duration
	Clock        func() time.Time
	// OnEnd runs once, outside the lock, on every path into the ended state.
	OnEnd func(Summary)
}

// Session is one call screen: idle -> active -> (premium-gated | ended),
// premium-gated -> ended.
type Session struct {
	mu sync.Mutex

	id       string
	callType models.CallType
	devices  Devices
	opts     Options

	state     State
	starting  bool
	stream    Stream
	startedAt time.Time
	remaining int
	muted     bool
	cameraOff bool
	summary   Summary

	// done is closed on entering StateEnded and stops the countdown.
	done chan struct{}
	subs map[chan Snapshot]struct{}
}

func NewSession(id string, callType models.CallType, devices Devices, opts Options) *Session {
	if opts.FreeDuration <= 0 {
		opts.FreeDuration = 5 * time.Minute
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Session{
		id:        id,
		callType:  callType,
		devices:   devices,
		opts:      opts,
		state:     StateIdle,
		remaining: int(opts.FreeDuration / time.Second),
		done:      make(chan struct{}),
		subs:      make(map[chan Snapshot]struct{}),
	}
}

func (s *Session) ID() string { return s.id }

func (s *Session) Type() models.CallType { return s.callType }

// Start acquires devices and begins the free-time countdown. A device
// failure ends the call immediately. Devices are acquired without holding
// the lock so snapshots and subscribers stay responsive meanwhile.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state != StateIdle || s.starting {
		s.mu.Unlock()
		return ErrAlreadyStarted
	}
	s.starting = true
	s.startedAt = s.opts.Clock()
	s.mu.Unlock()

	stream, err := s.devices.Acquire(ctx, s.callType == models.CallVideo)

	s.mu.Lock()
	s.starting = false
	if s.state != StateIdle {
		s.mu.Unlock()
		if stream != nil {
			stream.Stop()
		}
		return ErrAlreadyStarted
	}
	if err != nil {
		summary := s.finishLocked(ReasonDeviceError)
		s.mu.Unlock()
		s.notifyEnd(summary)
		return fmt.Errorf("%w: %v", ErrDeviceUnavailable, err)
	}

	s.stream = stream
	s.state = StateActive
	s.publishLocked()
	s.mu.Unlock()

	go s.run()
	return nil
}

func (s *Session) run() {
	ticker := time.NewTicker(s.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			if !s.Tick() {
				return
			}
		}
	}
}

// Tick counts down one second of free time. It reports whether the
// countdown should keep running.
func (s *Session) Tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return false
	}

	s.remaining--
	if s.remaining <= 0 {
		s.remaining = 0
		s.state = StatePremiumGated
		s.publishLocked()
		return false
	}

	s.publishLocked()
	return true
}

// End finishes the call. Premium reasons are only valid once the free time is spent.
func (s *Session) End(reason EndReason) (Summary, error) {
	s.mu.Lock()

	switch s.state {
	case StateIdle:
		s.mu.Unlock()
		return Summary{}, ErrNotStarted
	case StateEnded:
		s.mu.Unlock()
		return Summary{}, ErrCallEnded
	}

	if (reason == ReasonPremiumEnd || reason == ReasonUpgrade) && s.state != StatePremiumGated {
		s.mu.Unlock()
		return Summary{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, reason, s.state)
	}
	if !reason.Valid() || reason == ReasonDeviceError {
		s.mu.Unlock()
		return Summary{}, fmt.Errorf("%w: reason %q", ErrInvalidTransition, reason)
	}

	summary := s.finishLocked(reason)
	s.mu.Unlock()

	s.notifyEnd(summary)
	return summary, nil
}

// finishLocked releases devices and records the summary. Callers hold mu.
func (s *Session) finishLocked(reason EndReason) Summary {
	if s.stream != nil {
		s.stream.Stop()
		s.stream = nil
	}

	end := s.opts.Clock()
	elapsed := end.Sub(s.startedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	s.state = StateEnded
	s.summary = Summary{
		StartedAt: s.startedAt,
		EndedAt:   end,
		Duration:  int64(elapsed / time.Second),
		Reason:    reason,
	}

	s.publishLocked()
	for ch := range s.subs {
		close(ch)
		delete(s.subs, ch)
	}
	close(s.done)

	return s.summary
}

func (s *Session) notifyEnd(summary Summary) {
	if s.opts.OnEnd != nil {
		s.opts.OnEnd(summary)
	}
}

func (s *Session) ToggleMute() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.liveLocked(); err != nil {
		return Snapshot{}, err
	}

	s.muted = !s.muted
	s.stream.SetAudioEnabled(!s.muted)
	s.publishLocked()
	return s.snapshotLocked(), nil
}

func (s *Session) ToggleCamera() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.callType != models.CallVideo {
		return Snapshot{}, ErrNoCamera
	}
	if err := s.liveLocked(); err != nil {
		return Snapshot{}, err
	}

	s.cameraOff = !s.cameraOff
	s.stream.SetVideoEnabled(!s.cameraOff)
	s.publishLocked()
	return s.snapshotLocked(), nil
}

func (s *Session) liveLocked() error {
	switch s.state {
	case StateIdle:
		return ErrNotStarted
	case StateEnded:
		return ErrCallEnded
	}
	return nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:               s.id,
		Type:             s.callType,
		State:            s.state,
		RemainingSeconds: s.remaining,
		Muted:            s.muted,
		CameraOff:        s.cameraOff,
	}
	switch s.state {
	case StateEnded:
		snap.ElapsedSeconds = s.summary.Duration
		snap.EndReason = s.summary.Reason
	case StateActive, StatePremiumGated:
		snap.ElapsedSeconds = int64(s.opts.Clock().Sub(s.startedAt) / time.Second)
	}
	return snap
}

// Subscribe streams snapshots until the call ends or cancel is called.
// Slow readers miss intermediate snapshots.
func (s *Session) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan Snapshot, subscriberBuffer)
	ch <- s.snapshotLocked()

	if s.state == StateEnded {
		close(ch)
		return ch, func() {}
	}

	s.subs[ch] = struct{}{}
	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if _, ok := s.subs[ch]; ok {
			delete(s.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

func (s *Session) publishLocked() {
	snap := s.snapshotLocked()
	for ch := range s.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}
