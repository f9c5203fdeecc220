package memory

import (
	"context"
	"sync"
	"time"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	pkgerrors "memehub-backend/pkg/errors"
)

type categoryRow struct {
	name        string
	isRecommend bool
	isDeleted   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// CategoryRepository is an in-memory ports.CategoryRepository
type CategoryRepository struct {
	mu   sync.RWMutex
	rows map[string]*categoryRow
}

// NewCategoryRepository creates an empty in-memory category repository
func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{rows: make(map[string]*categoryRow)}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

// Save creates or replaces a category
func (r *CategoryRepository) Save(ctx context.Context, category *entities.KeywordCategory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[category.Name()] = &categoryRow{
		name:        category.Name(),
		isRecommend: category.IsRecommend(),
		isDeleted:   category.IsDeleted(),
		createdAt:   category.CreatedAt(),
		updatedAt:   category.UpdatedAt(),
	}
	return nil
}

// FindByName returns a category in any state; NotFound if never created
func (r *CategoryRepository) FindByName(ctx context.Context, name string) (*entities.KeywordCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[name]
	if !ok {
		return nil, pkgerrors.NewNotFoundError("category")
	}
	return rowToCategory(row), nil
}

// FindAll returns every category, deleted ones included
func (r *CategoryRepository) FindAll(ctx context.Context) ([]*entities.KeywordCategory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]*entities.KeywordCategory, 0, len(r.rows))
	for _, row := range r.rows {
		categories = append(categories, rowToCategory(row))
	}
	return categories, nil
}

// Delete soft-deletes a category
func (r *CategoryRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[name]
	if !ok || row.isDeleted {
		return pkgerrors.NewNotFoundError("category")
	}
	row.isDeleted = true
	row.updatedAt = time.Now()
	return nil
}

func rowToCategory(row *categoryRow) *entities.KeywordCategory {
	return entities.ReconstructKeywordCategory(
		row.name,
		row.isRecommend,
		row.isDeleted,
		row.createdAt, row.updatedAt,
	)
}
