package services

import (
	"context"

	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/domain/events"
	pkgerrors "memehub-backend/pkg/errors"
	"memehub-backend/pkg/observability"
)

// InteractionService owns the interaction ledger: append-only WATCH,
// REACTION and SHARE events plus the toggled SAVE row per (device, meme).
type InteractionService struct {
	interactions ports.InteractionRepository
	memes        ports.MemeRepository
	eventBus     ports.EventBus
	metrics      *observability.Metrics
	logger       *zap.Logger
}

// NewInteractionService creates a new interaction service
func NewInteractionService(
	interactions ports.InteractionRepository,
	memes ports.MemeRepository,
	eventBus ports.EventBus,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *InteractionService {
	return &InteractionService{
		interactions: interactions,
		memes:        memes,
		eventBus:     eventBus,
		metrics:      metrics,
		logger:       logger,
	}
}

// RecordInteraction logs one interaction. The type is validated against
// the closed enumeration before anything is written. REACTION additionally
// bumps the meme's counter through the store's atomic increment and the
// returned int is the new reaction count; for all other types it is zero.
func (s *InteractionService) RecordInteraction(
	ctx context.Context,
	deviceID valueobjects.DeviceID,
	memeID valueobjects.MemeID,
	itype entities.InteractionType,
) (int, error) {
	interaction, err := entities.NewInteraction(deviceID, memeID, itype)
	if err != nil {
		return 0, err
	}

	if _, err := s.memes.FindByID(ctx, memeID); err != nil {
		return 0, err
	}

	reaction := 0
	switch itype {
	case entities.InteractionSave:
		existing, err := s.interactions.FindSave(ctx, deviceID, memeID)
		switch {
		case err == nil:
			if existing.IsDeleted() {
				if err := s.interactions.RestoreSave(ctx, deviceID, memeID); err != nil {
					return 0, err
				}
			}
		case pkgerrors.IsNotFound(err):
			if err := s.interactions.Insert(ctx, interaction); err != nil {
				return 0, err
			}
		default:
			return 0, err
		}

	case entities.InteractionReaction:
		if err := s.interactions.Insert(ctx, interaction); err != nil {
			return 0, err
		}
		reaction, err = s.memes.IncrementReaction(ctx, memeID)
		if err != nil {
			return 0, err
		}

	default:
		if err := s.interactions.Insert(ctx, interaction); err != nil {
			return 0, err
		}
	}

	s.publish(ctx, events.NewInteractionRecorded(deviceID.String(), memeID.String(), itype.String()))
	s.metrics.RecordInteraction(ctx, itype.String())

	return reaction, nil
}

// DeleteSave removes a device's active SAVE for a meme. NotFound if the
// meme was never saved or the save was already removed.
func (s *InteractionService) DeleteSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) error {
	if err := s.interactions.SoftDeleteSave(ctx, deviceID, memeID); err != nil {
		return err
	}

	s.publish(ctx, events.NewSaveRemoved(deviceID.String(), memeID.String()))
	return nil
}

// CountInteractions counts a device's active interactions of one type
func (s *InteractionService) CountInteractions(ctx context.Context, deviceID valueobjects.DeviceID, itype entities.InteractionType) (int, error) {
	if _, err := entities.ParseInteractionType(string(itype)); err != nil {
		return 0, err
	}
	return s.interactions.CountByType(ctx, deviceID, itype)
}

// HasInteraction reports whether the device has an interaction of the
// given type with the meme. The SAVE check answers on the logical row
// regardless of its deleted state, which is what the restore path in
// RecordInteraction keys off.
func (s *InteractionService) HasInteraction(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID, itype entities.InteractionType) (bool, error) {
	if _, err := entities.ParseInteractionType(string(itype)); err != nil {
		return false, err
	}

	if itype == entities.InteractionSave {
		_, err := s.interactions.FindSave(ctx, deviceID, memeID)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	}

	return s.interactions.Exists(ctx, deviceID, memeID, itype)
}

// ListSavedMemes resolves a device's active saves to memes, most recently
// saved first. Soft-deleted memes are dropped from the result.
func (s *InteractionService) ListSavedMemes(ctx context.Context, deviceID valueobjects.DeviceID) ([]*entities.Meme, error) {
	ids, err := s.interactions.FindSavedMemeIDs(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	return resolveMemesInOrder(ctx, s.memes, ids)
}

func (s *InteractionService) publish(ctx context.Context, event events.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err))
	}
}
