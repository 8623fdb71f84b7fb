package call

import (
	"context"
	"errors"
	"sync"
)

var ErrDeviceUnavailable = errors.New("camera or microphone unavailable")

// Stream is a held capture stream with switchable tracks.
type Stream interface {
	SetAudioEnabled(enabled bool)
	SetVideoEnabled(enabled bool)
	Stop()
}

// Devices hands out capture streams. Audio is always requested.
type Devices interface {
	Acquire(ctx context.Context, video bool) (Stream, error)
}

// VirtualDevices stands in for real capture hardware on the server.
type VirtualDevices struct{}

func (VirtualDevices) Acquire(ctx context.Context, video bool) (Stream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &VirtualStream{audio: true, video: video, hasVideo: video}, nil
}

type VirtualStream struct {
	mu       sync.Mutex
	audio    bool
	video    bool
	hasVideo bool
	stopped  bool
}

func (s *VirtualStream) SetAudioEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.audio = enabled
}

func (s *VirtualStream) SetVideoEnabled(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasVideo {
		s.video = enabled
	}
}

func (s *VirtualStream) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	s.audio = false
	s.video = false
}

func (s *VirtualStream) Stopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}
