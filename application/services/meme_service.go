package services

import (
	"context"

	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/config"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/domain/events"
	pkgerrors "memehub-backend/pkg/errors"
)

// MemeService is the admin write surface for meme content. Image upload
// and compression happen upstream; this service receives final image
// locations.
type MemeService struct {
	memes    ports.MemeRepository
	keywords ports.KeywordRepository
	eventBus ports.EventBus
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewMemeService creates a new meme service
func NewMemeService(
	memes ports.MemeRepository,
	keywords ports.KeywordRepository,
	eventBus ports.EventBus,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *MemeService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &MemeService{
		memes:    memes,
		keywords: keywords,
		eventBus: eventBus,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateMeme publishes a new meme. Every referenced keyword must resolve
// to an active keyword.
func (s *MemeService) CreateMeme(ctx context.Context, title, image, source string, keywordIDs []string) (*entities.Meme, error) {
	kids, err := s.resolveKeywordIDs(ctx, keywordIDs)
	if err != nil {
		return nil, err
	}

	meme, err := entities.NewMemeWithConfig(title, image, source, kids, s.cfg)
	if err != nil {
		return nil, err
	}
	if err := s.memes.Save(ctx, meme); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewMemeCreated(meme.ID().String(), meme.Title()))
	s.logger.Info("Created meme",
		zap.String("memeId", meme.ID().String()),
		zap.String("title", meme.Title()))
	return meme, nil
}

// UpdateMeme patches a meme's content fields. Nil pointers leave fields
// untouched; a nil keywordIDs slice leaves the tag set untouched.
func (s *MemeService) UpdateMeme(ctx context.Context, id valueobjects.MemeID, title, image, source *string, keywordIDs []string) (*entities.Meme, error) {
	meme, err := s.memes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var kids []valueobjects.KeywordID
	if keywordIDs != nil {
		kids, err = s.resolveKeywordIDs(ctx, keywordIDs)
		if err != nil {
			return nil, err
		}
	}

	if err := meme.Update(title, image, source, kids); err != nil {
		return nil, err
	}
	if err := s.memes.Save(ctx, meme); err != nil {
		return nil, err
	}
	return meme, nil
}

// DeleteMeme soft-deletes a meme; its interaction history stays intact
func (s *MemeService) DeleteMeme(ctx context.Context, id valueobjects.MemeID) error {
	if err := s.memes.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, events.NewMemeDeleted(id.String()))
	return nil
}

// SetTodayMeme flags or unflags a meme for the featured list
func (s *MemeService) SetTodayMeme(ctx context.Context, id valueobjects.MemeID, flag bool) error {
	meme, err := s.memes.FindByID(ctx, id)
	if err != nil {
		return err
	}
	meme.SetTodayMeme(flag)
	return s.memes.Save(ctx, meme)
}

func (s *MemeService) resolveKeywordIDs(ctx context.Context, raw []string) ([]valueobjects.KeywordID, error) {
	kids := make([]valueobjects.KeywordID, 0, len(raw))
	for _, r := range raw {
		kid, err := valueobjects.ParseKeywordID(r)
		if err != nil {
			return nil, pkgerrors.NewValidationError(err.Error())
		}
		kids = append(kids, kid)
	}

	if len(kids) > 0 {
		found, err := s.keywords.FindByIDs(ctx, kids)
		if err != nil {
			return nil, err
		}
		known := make(map[string]bool, len(found))
		for _, k := range found {
			known[k.ID().String()] = true
		}
		for _, kid := range kids {
			if !known[kid.String()] {
				return nil, pkgerrors.NewNotFoundError("keyword " + kid.String())
			}
		}
	}
	return kids, nil
}

func (s *MemeService) publish(ctx context.Context, event events.DomainEvent) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish event",
			zap.String("eventType", event.GetEventType()),
			zap.Error(err))
	}
}
