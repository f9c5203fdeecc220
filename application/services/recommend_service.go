package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
	"memehub-backend/pkg/utils"
)

// RecommendService tracks watches of recommended memes per device and
// ISO week. The week rolls over at Monday 00:00 UTC.
type RecommendService struct {
	watches ports.RecommendWatchRepository
	memes   ports.MemeRepository
	now     func() time.Time
	logger  *zap.Logger
}

// NewRecommendService creates a new recommend service using wall time
func NewRecommendService(watches ports.RecommendWatchRepository, memes ports.MemeRepository, logger *zap.Logger) *RecommendService {
	return NewRecommendServiceWithClock(watches, memes, time.Now, logger)
}

// NewRecommendServiceWithClock creates a recommend service with an
// explicit clock
func NewRecommendServiceWithClock(watches ports.RecommendWatchRepository, memes ports.MemeRepository, now func() time.Time, logger *zap.Logger) *RecommendService {
	return &RecommendService{
		watches: watches,
		memes:   memes,
		now:     now,
		logger:  logger,
	}
}

// RecordRecommendedWatch appends the meme to the device's record for the
// current week, creating the record on the week's first watch, and
// returns how many recommended watches the week now holds. Repeat watches
// of the same meme all count.
func (s *RecommendService) RecordRecommendedWatch(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) (int, error) {
	if _, err := s.memes.FindByID(ctx, memeID); err != nil {
		return 0, err
	}

	weekStart := utils.WeekStart(s.now())

	watch, err := s.watches.FindByWeek(ctx, deviceID, weekStart)
	switch {
	case err == nil:
		count := watch.RecordWatch(memeID)
		if err := s.watches.Save(ctx, watch); err != nil {
			return 0, err
		}
		return count, nil

	case pkgerrors.IsNotFound(err):
		watch, err = entities.NewRecommendWatch(deviceID, weekStart, memeID)
		if err != nil {
			return 0, err
		}
		if err := s.watches.Save(ctx, watch); err != nil {
			return 0, err
		}
		return 1, nil

	default:
		return 0, err
	}
}

// GetWeeklyWatchCount returns how many recommended watches the device has
// logged in the current week. Zero if none.
func (s *RecommendService) GetWeeklyWatchCount(ctx context.Context, deviceID valueobjects.DeviceID) (int, error) {
	weekStart := utils.WeekStart(s.now())

	watch, err := s.watches.FindByWeek(ctx, deviceID, weekStart)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return 0, nil
		}
		return 0, err
	}
	return len(watch.MemeIDs()), nil
}
