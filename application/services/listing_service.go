package services

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/config"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/pkg/common"
	pkgerrors "memehub-backend/pkg/errors"
)

// MemeView is the client-facing projection of a meme with its keyword
// names resolved
type MemeView struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Image        string    `json:"image"`
	Source       string    `json:"source,omitempty"`
	Reaction     int       `json:"reaction"`
	IsTodayMeme  bool      `json:"isTodayMeme"`
	KeywordNames []string  `json:"keywords"`
	CreatedAt    time.Time `json:"createdAt"`
}

// MemePage is one page of meme views with pagination totals
type MemePage struct {
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	Data       []MemeView `json:"data"`
}

// ListingService is the read side of the catalog: paginated listings,
// the featured list, and keyword search. Keyword names are resolved with
// a batch fetch and merged in application code; there is no join support
// in the store.
type ListingService struct {
	memes    ports.MemeRepository
	keywords ports.KeywordRepository
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewListingService creates a new listing service
func NewListingService(memes ports.MemeRepository, keywords ports.KeywordRepository, cfg *config.DomainConfig, logger *zap.Logger) *ListingService {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &ListingService{
		memes:    memes,
		keywords: keywords,
		cfg:      cfg,
		logger:   logger,
	}
}

// ListMemes returns one page of active memes, newest first. A page past
// the end yields empty data with unchanged totals.
func (s *ListingService) ListMemes(ctx context.Context, page, size int) (*MemePage, error) {
	if page < 1 || size < 1 {
		return nil, pkgerrors.NewValidationError("page and size must be at least 1")
	}

	memes, err := s.memes.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(memes, func(i, j int) bool {
		return memes[i].CreatedAt().After(memes[j].CreatedAt())
	})

	pageMemes := common.PageSlice(memes, page, size)
	views, err := s.toViews(ctx, pageMemes)
	if err != nil {
		return nil, err
	}

	return &MemePage{
		Total:      len(memes),
		Page:       page,
		TotalPages: common.CalculateTotalPages(len(memes), size),
		Data:       views,
	}, nil
}

// ListTodayMemes returns up to limit featured memes, newest first. The
// limit is capped by domain configuration.
func (s *ListingService) ListTodayMemes(ctx context.Context, limit int) ([]MemeView, error) {
	if limit < 1 || limit > s.cfg.TodayMemeLimit {
		return nil, pkgerrors.NewValidationError("limit out of range")
	}

	memes, err := s.memes.FindToday(ctx)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(memes, func(i, j int) bool {
		return memes[i].CreatedAt().After(memes[j].CreatedAt())
	})
	if len(memes) > limit {
		memes = memes[:limit]
	}

	return s.toViews(ctx, memes)
}

// GetMemeWithKeywords returns one meme with its keyword names resolved
func (s *ListingService) GetMemeWithKeywords(ctx context.Context, memeID valueobjects.MemeID) (*MemeView, error) {
	meme, err := s.memes.FindByID(ctx, memeID)
	if err != nil {
		return nil, err
	}

	views, err := s.toViews(ctx, []*entities.Meme{meme})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// SearchByKeyword returns one page of active memes tagged with the named
// keyword, highest reaction first with stable tie order. The keyword's
// search counter is bumped best-effort; an empty result page is not an
// error, an unresolvable keyword name is NotFound.
func (s *ListingService) SearchByKeyword(ctx context.Context, page, size int, keywordName string) (*MemePage, error) {
	if page < 1 || size < 1 {
		return nil, pkgerrors.NewValidationError("page and size must be at least 1")
	}

	keyword, err := s.keywords.FindByName(ctx, keywordName)
	if err != nil {
		return nil, err
	}

	if err := s.keywords.IncrementSearchCount(ctx, keyword.ID()); err != nil {
		s.logger.Warn("Failed to bump search count",
			zap.String("keyword", keywordName),
			zap.Error(err))
	}

	memes, err := s.memes.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*entities.Meme, 0, len(memes))
	for _, m := range memes {
		if m.HasKeyword(keyword.ID()) {
			matched = append(matched, m)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Reaction() > matched[j].Reaction()
	})

	pageMemes := common.PageSlice(matched, page, size)
	views, err := s.toViews(ctx, pageMemes)
	if err != nil {
		return nil, err
	}

	return &MemePage{
		Total:      len(matched),
		Page:       page,
		TotalPages: common.CalculateTotalPages(len(matched), size),
		Data:       views,
	}, nil
}

// toViews batch-resolves keyword names for the given memes and builds
// their projections. Keyword IDs pointing at deleted keywords resolve to
// nothing and are dropped from the name list.
func (s *ListingService) toViews(ctx context.Context, memes []*entities.Meme) ([]MemeView, error) {
	idSet := make(map[string]valueobjects.KeywordID)
	for _, m := range memes {
		for _, kid := range m.KeywordIDs() {
			idSet[kid.String()] = kid
		}
	}

	ids := make([]valueobjects.KeywordID, 0, len(idSet))
	for _, kid := range idSet {
		ids = append(ids, kid)
	}

	names := make(map[string]string, len(ids))
	if len(ids) > 0 {
		keywords, err := s.keywords.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, k := range keywords {
			names[k.ID().String()] = k.Name()
		}
	}

	views := make([]MemeView, 0, len(memes))
	for _, m := range memes {
		keywordNames := make([]string, 0, len(m.KeywordIDs()))
		for _, kid := range m.KeywordIDs() {
			if name, ok := names[kid.String()]; ok {
				keywordNames = append(keywordNames, name)
			}
		}
		views = append(views, MemeView{
			ID:           m.ID().String(),
			Title:        m.Title(),
			Image:        m.Image(),
			Source:       m.Source(),
			Reaction:     m.Reaction(),
			IsTodayMeme:  m.IsTodayMeme(),
			KeywordNames: keywordNames,
			CreatedAt:    m.CreatedAt(),
		})
	}
	return views, nil
}

// resolveMemesInOrder batch-fetches memes and returns them in the order
// of the given ID list, silently dropping IDs that no longer resolve
func resolveMemesInOrder(ctx context.Context, repo ports.MemeRepository, ids []valueobjects.MemeID) ([]*entities.Meme, error) {
	if len(ids) == 0 {
		return []*entities.Meme{}, nil
	}

	fetched, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entities.Meme, len(fetched))
	for _, m := range fetched {
		byID[m.ID().String()] = m
	}

	ordered := make([]*entities.Meme, 0, len(ids))
	for _, id := range ids {
		if m, ok := byID[id.String()]; ok {
			ordered = append(ordered, m)
		}
	}
	return ordered, nil
}
