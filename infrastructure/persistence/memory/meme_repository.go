// Package memory provides in-memory repository implementations used by
// tests and local development. Rows are plain structs; entities are
// rebuilt on every read so callers never alias store state.
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

type memeRow struct {
	id          string
	title       string
	image       string
	source      string
	reaction    int
	isTodayMeme bool
	keywordIDs  []valueobjects.KeywordID
	isDeleted   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// MemeRepository is an in-memory ports.MemeRepository
type MemeRepository struct {
	mu   sync.RWMutex
	rows map[string]*memeRow
}

// NewMemeRepository creates an empty in-memory meme repository
func NewMemeRepository() *MemeRepository {
	return &MemeRepository{rows: make(map[string]*memeRow)}
}

var _ ports.MemeRepository = (*MemeRepository)(nil)

// Save creates or replaces a meme
func (r *MemeRepository) Save(ctx context.Context, meme *entities.Meme) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[meme.ID().String()] = &memeRow{
		id:          meme.ID().String(),
		title:       meme.Title(),
		image:       meme.Image(),
		source:      meme.Source(),
		reaction:    meme.Reaction(),
		isTodayMeme: meme.IsTodayMeme(),
		keywordIDs:  meme.KeywordIDs(),
		isDeleted:   meme.IsDeleted(),
		createdAt:   meme.CreatedAt(),
		updatedAt:   meme.UpdatedAt(),
	}
	return nil
}

// FindByID returns an active meme; NotFound for absent or deleted ones
func (r *MemeRepository) FindByID(ctx context.Context, id valueobjects.MemeID) (*entities.Meme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[id.String()]
	if !ok || row.isDeleted {
		return nil, pkgerrors.NewNotFoundError("meme")
	}
	return rowToMeme(row), nil
}

// FindByIDs batch-resolves IDs, skipping absent or deleted memes
func (r *MemeRepository) FindByIDs(ctx context.Context, ids []valueobjects.MemeID) ([]*entities.Meme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memes := make([]*entities.Meme, 0, len(ids))
	for _, id := range ids {
		if row, ok := r.rows[id.String()]; ok && !row.isDeleted {
			memes = append(memes, rowToMeme(row))
		}
	}
	return memes, nil
}

// FindActive returns all non-deleted memes
func (r *MemeRepository) FindActive(ctx context.Context) ([]*entities.Meme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memes := make([]*entities.Meme, 0, len(r.rows))
	for _, row := range r.rows {
		if !row.isDeleted {
			memes = append(memes, rowToMeme(row))
		}
	}
	return memes, nil
}

// FindToday returns non-deleted featured memes
func (r *MemeRepository) FindToday(ctx context.Context) ([]*entities.Meme, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	memes := make([]*entities.Meme, 0)
	for _, row := range r.rows {
		if !row.isDeleted && row.isTodayMeme {
			memes = append(memes, rowToMeme(row))
		}
	}
	return memes, nil
}

// IncrementReaction bumps the reaction counter under the store lock and
// returns the new value
func (r *MemeRepository) IncrementReaction(ctx context.Context, id valueobjects.MemeID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id.String()]
	if !ok || row.isDeleted {
		return 0, pkgerrors.NewNotFoundError("meme")
	}
	row.reaction++
	row.updatedAt = time.Now()
	return row.reaction, nil
}

// Delete soft-deletes a meme
func (r *MemeRepository) Delete(ctx context.Context, id valueobjects.MemeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[id.String()]
	if !ok || row.isDeleted {
		return pkgerrors.NewNotFoundError("meme")
	}
	row.isDeleted = true
	row.updatedAt = time.Now()
	return nil
}

func rowToMeme(row *memeRow) *entities.Meme {
	id, _ := valueobjects.ParseMemeID(row.id)
	kids := make([]valueobjects.KeywordID, len(row.keywordIDs))
	copy(kids, row.keywordIDs)
	return entities.ReconstructMeme(
		id,
		row.title, row.image, row.source,
		row.reaction,
		row.isTodayMeme,
		kids,
		row.isDeleted,
		row.createdAt, row.updatedAt,
	)
}
