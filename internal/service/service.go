package service

import (
	"go.uber.org/zap"

	"gyansetu/internal/call"
	"gyansetu/internal/config"
	"gyansetu/internal/repository"
	"gyansetu/internal/storage"
)

type Service struct {
	Auth       AuthService
	Feed       FeedService
	Post       PostService
	Profile    ProfileService
	Payment    PaymentService
	Call       CallService
	Preference PreferenceService
	Feedback   FeedbackService
	Stats      StatsService
	Health     HealthService
	Sessions   *SessionSweeper
}

func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage, devices call.Devices, lg *zap.Logger) *Service {
	return &Service{
		Auth:       NewAuthService(rep.User, rep.Session, cfg, lg),
		Feed:       NewFeedService(rep.User, rep.Post, cfg),
		Post:       NewPostService(rep.Post, storage, cfg, lg),
		Profile:    NewProfileService(rep, storage, cfg, lg),
		Payment:    NewPaymentService(rep, lg),
		Call:       NewCallService(rep.User, rep.Call, devices, cfg, lg),
		Preference: NewPreferenceService(rep.Preference),
		Feedback:   NewFeedbackService(rep.Feedback, lg),
		Stats:      NewStatsService(rep, cfg),
		Health:     NewHealthService(rep.Tables),
		Sessions:   NewSessionSweeper(rep.Session, cfg.SessionSweep, lg),
	}
}
