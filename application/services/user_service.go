package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// UserProfile is the device's profile with per-type interaction totals
type UserProfile struct {
	DeviceID      string    `json:"deviceId"`
	WatchCount    int       `json:"watchCount"`
	ReactionCount int       `json:"reactionCount"`
	ShareCount    int       `json:"shareCount"`
	SaveCount     int       `json:"saveCount"`
	CreatedAt     time.Time `json:"createdAt"`
}

// UserService resolves device identities and aggregates their stats
type UserService struct {
	users        ports.UserRepository
	interactions ports.InteractionRepository
	logger       *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(users ports.UserRepository, interactions ports.InteractionRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:        users,
		interactions: interactions,
		logger:       logger,
	}
}

// GetUser returns the user for a device; NotFound if never seen
func (s *UserService) GetUser(ctx context.Context, deviceID valueobjects.DeviceID) (*entities.User, error) {
	return s.users.FindByDeviceID(ctx, deviceID)
}

// GetOrCreateUser returns the device's profile with interaction totals,
// creating the user record on first sight
func (s *UserService) GetOrCreateUser(ctx context.Context, deviceID valueobjects.DeviceID) (*UserProfile, error) {
	user, err := s.users.FindByDeviceID(ctx, deviceID)
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			return nil, err
		}
		user, err = entities.NewUser(deviceID)
		if err != nil {
			return nil, err
		}
		if err := s.users.Save(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("Registered new device", zap.String("deviceId", deviceID.String()))
	}

	profile := &UserProfile{
		DeviceID:  user.DeviceID().String(),
		CreatedAt: user.CreatedAt(),
	}

	counts := []struct {
		itype entities.InteractionType
		dst   *int
	}{
		{entities.InteractionWatch, &profile.WatchCount},
		{entities.InteractionReaction, &profile.ReactionCount},
		{entities.InteractionShare, &profile.ShareCount},
		{entities.InteractionSave, &profile.SaveCount},
	}
	for _, c := range counts {
		n, err := s.interactions.CountByType(ctx, deviceID, c.itype)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}

	return profile, nil
}
