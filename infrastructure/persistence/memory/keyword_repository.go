package memory

import (
	"context"
	"sync"
	"time"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

type keywordRow struct {
	id          string
	name        string
	searchCount int
	category    string
	isDeleted   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// KeywordRepository is an in-memory ports.KeywordRepository
type KeywordRepository struct {
	mu   sync.RWMutex
	rows map[string]*keywordRow
}

// NewKeywordRepository creates an empty in-memory keyword repository
func NewKeywordRepository() *KeywordRepository {
	return &KeywordRepository{rows: make(map[string]*keywordRow)}
}

var _ ports.KeywordRepository = (*KeywordRepository)(nil)

// Save creates or replaces a keyword
func (r *KeywordRepository) Save(ctx context.Context, keyword *entities.Keyword) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[keyword.ID().String()] = &keywordRow{
		id:          keyword.ID().String(),
		name:        keyword.Name(),
		searchCount: keyword.SearchCount(),
		category:    keyword.Category(),
		isDeleted:   keyword.IsDeleted(),
		createdAt:   keyword.CreatedAt(),
		updatedAt:   keyword.UpdatedAt(),
	}
	return nil
}

// FindByID returns an active keyword by ID
func (r *KeywordRepository) FindByID(ctx context.Context, id valueobjects.KeywordID) (*entities.Keyword, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id.String()]
	if !ok || row.isDeleted {
		return nil, pkgerrors.NewNotFoundError("keyword")
	}
	return rowToKeyword(row), nil
}

// FindByIDs batch-resolves IDs, skipping absent or deleted keywords
func (r *KeywordRepository) FindByIDs(ctx context.Context, ids []valueobjects.KeywordID) ([]*entities.Keyword, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keywords := make([]*entities.Keyword, 0, len(ids))
	for _, id := range ids {
		if row, ok := r.rows[id.String()]; ok && !row.isDeleted {
			keywords = append(keywords, rowToKeyword(row))
		}
	}
	return keywords, nil
}

// FindByName resolves an active keyword by its unique name
func (r *KeywordRepository) FindByName(ctx context.Context, name string) (*entities.Keyword, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if !row.isDeleted && row.name == name {
			return rowToKeyword(row), nil
		}
	}
	return nil, pkgerrors.NewNotFoundError("keyword")
}

// FindByCategory returns active keywords in a category
func (r *KeywordRepository) FindByCategory(ctx context.Context, category string) ([]*entities.Keyword, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keywords := make([]*entities.Keyword, 0)
	for _, row := range r.rows {
		if !row.isDeleted && row.category == category {
			keywords = append(keywords, rowToKeyword(row))
		}
	}
	return keywords, nil
}

// IncrementSearchCount bumps the search counter under the store lock
func (r *KeywordRepository) IncrementSearchCount(ctx context.Context, id valueobjects.KeywordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id.String()]
	if !ok || row.isDeleted {
		return pkgerrors.NewNotFoundError("keyword")
	}
	row.searchCount++
	row.updatedAt = time.Now()
	return nil
}

// Delete soft-deletes a keyword
func (r *KeywordRepository) Delete(ctx context.Context, id valueobjects.KeywordID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id.String()]
	if !ok || row.isDeleted {
		return pkgerrors.NewNotFoundError("keyword")
	}
	row.isDeleted = true
	row.updatedAt = time.Now()
	return nil
}

func rowToKeyword(row *keywordRow) *entities.Keyword {
	id, _ := valueobjects.ParseKeywordID(row.id)
	return entities.ReconstructKeyword(
		id,
		row.name,
		row.searchCount,
		row.category,
		row.isDeleted,
		row.createdAt, row.updatedAt,
	)
}
