package services

import (
	"context"

	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/config"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// LastSeenService maintains each device's bounded viewing history. The
// ring logic lives on the User entity; this service persists the updated
// list wholesale, so concurrent updates for one device are
// last-write-wins.
type LastSeenService struct {
	users  ports.UserRepository
	memes  ports.MemeRepository
	cfg    *config.DomainConfig
	logger *zap.Logger
}

// NewLastSeenService creates a new last-seen service
func NewLastSeenService(users ports.UserRepository, memes ports.MemeRepository, cfg *config.DomainConfig, logger *zap.Logger) *LastSeenService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &LastSeenService{
		users:  users,
		memes:  memes,
		cfg:    cfg,
		logger: logger,
	}
}

// RecordView records that the device viewed a meme and returns the
// updated last-seen list, most recent first. The device's user record is
// created on first sight.
func (s *LastSeenService) RecordView(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) ([]valueobjects.MemeID, error) {
	if _, err := s.memes.FindByID(ctx, memeID); err != nil {
		return nil, err
	}

	user, err := s.users.FindByDeviceID(ctx, deviceID)
	switch {
	case err == nil:
		updated := user.RecordViewWithConfig(memeID, s.cfg)
		if err := s.users.UpdateLastSeen(ctx, deviceID, updated); err != nil {
			return nil, err
		}
		return updated, nil

	case pkgerrors.IsNotFound(err):
		user, err = entities.NewUser(deviceID)
		if err != nil {
			return nil, err
		}
		updated := user.RecordViewWithConfig(memeID, s.cfg)
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		return updated, nil

	default:
		return nil, err
	}
}

// GetLastSeen resolves the device's last-seen list to memes, preserving
// order and dropping memes deleted since they were viewed.
func (s *LastSeenService) GetLastSeen(ctx context.Context, deviceID valueobjects.DeviceID) ([]*entities.Meme, error) {
	user, err := s.users.FindByDeviceID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return resolveMemesInOrder(ctx, s.memes, user.LastSeenMemes())
}
