package services

import (
	"context"

	"go.uber.org/zap"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// KeywordService manages keywords and their categories (admin surface)
type KeywordService struct {
	keywords   ports.KeywordRepository
	categories ports.CategoryRepository
	logger     *zap.Logger
}

// NewKeywordService creates a new keyword service
func NewKeywordService(keywords ports.KeywordRepository, categories ports.CategoryRepository, logger *zap.Logger) *KeywordService {
	return &KeywordService{
		keywords:   keywords,
		categories: categories,
		logger:     logger,
	}
}

// CreateKeyword creates a keyword. The name must be unique among active
// keywords; a non-empty category must already exist.
func (s *KeywordService) CreateKeyword(ctx context.Context, name, category string) (*entities.Keyword, error) {
	if _, err := s.keywords.FindByName(ctx, name); err == nil {
		return nil, pkgerrors.NewConflictError("keyword name already in use: " + name)
	} else if !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	if category != "" {
		if _, err := s.categories.FindByName(ctx, category); err != nil {
			return nil, err
		}
	}

	keyword, err := entities.NewKeyword(name, category)
	if err != nil {
		return nil, err
	}
	if err := s.keywords.Save(ctx, keyword); err != nil {
		return nil, err
	}

	s.logger.Info("Created keyword",
		zap.String("keywordId", keyword.ID().String()),
		zap.String("name", name))
	return keyword, nil
}

// DeleteKeyword soft-deletes a keyword, freeing its name for reuse
func (s *KeywordService) DeleteKeyword(ctx context.Context, id valueobjects.KeywordID) error {
	return s.keywords.Delete(ctx, id)
}

// CreateCategory creates a keyword category; Conflict on a duplicate
// active name
func (s *KeywordService) CreateCategory(ctx context.Context, name string, isRecommend bool) (*entities.KeywordCategory, error) {
	if existing, err := s.categories.FindByName(ctx, name); err == nil && !existing.IsDeleted() {
		return nil, pkgerrors.NewConflictError("category already exists: " + name)
	} else if err != nil && !pkgerrors.IsNotFound(err) {
		return nil, err
	}

	category, err := entities.NewKeywordCategory(name, isRecommend)
	if err != nil {
		return nil, err
	}
	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories returns all active categories
func (s *KeywordService) ListCategories(ctx context.Context) ([]*entities.KeywordCategory, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*entities.KeywordCategory, 0, len(categories))
	for _, c := range categories {
		if !c.IsDeleted() {
			active = append(active, c)
		}
	}
	return active, nil
}

// ListRecommendedKeywords returns the keywords of every category flagged
// for recommendation. Feeds the client's recommended-keyword rail.
func (s *KeywordService) ListRecommendedKeywords(ctx context.Context) ([]*entities.Keyword, error) {
	categories, err := s.categories.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*entities.Keyword, 0)
	for _, c := range categories {
		if c.IsDeleted() || !c.IsRecommend() {
			continue
		}
		keywords, err := s.keywords.FindByCategory(ctx, c.Name())
		if err != nil {
			return nil, err
		}
		result = append(result, keywords...)
	}
	return result, nil
}
