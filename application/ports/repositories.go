package ports

import (
	"context"
	"time"

	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
)

// MemeRepository persists memes. Read operations apply the active-record
// predicate (isDeleted = false) at the store boundary: soft-deleted memes
// behave like absent ones.
type MemeRepository interface {
	Save(ctx context.Context, meme *entities.Meme) error

	// FindByID returns NotFound for absent or soft-deleted memes
	FindByID(ctx context.Context, id valueobjects.MemeID) (*entities.Meme, error)

	// FindByIDs batch-resolves IDs, silently skipping absent or
	// soft-deleted memes. Order of the result is unspecified.
	FindByIDs(ctx context.Context, ids []valueobjects.MemeID) ([]*entities.Meme, error)

	// FindActive returns all non-deleted memes
	FindActive(ctx context.Context) ([]*entities.Meme, error)

	// FindToday returns non-deleted memes flagged for the featured list
	FindToday(ctx context.Context) ([]*entities.Meme, error)

	// IncrementReaction atomically adds one to the meme's reaction
	// counter at the storage layer and returns the new value
	IncrementReaction(ctx context.Context, id valueobjects.MemeID) (int, error)

	// Delete soft-deletes a meme; NotFound if absent
	Delete(ctx context.Context, id valueobjects.MemeID) error
}

// KeywordRepository persists keywords
type KeywordRepository interface {
	Save(ctx context.Context, keyword *entities.Keyword) error
	FindByID(ctx context.Context, id valueobjects.KeywordID) (*entities.Keyword, error)
	FindByIDs(ctx context.Context, ids []valueobjects.KeywordID) ([]*entities.Keyword, error)

	// FindByName resolves a non-deleted keyword by its unique name
	FindByName(ctx context.Context, name string) (*entities.Keyword, error)

	// FindByCategory returns non-deleted keywords in a category
	FindByCategory(ctx context.Context, category string) ([]*entities.Keyword, error)

	// IncrementSearchCount atomically adds one to the keyword's search
	// counter at the storage layer
	IncrementSearchCount(ctx context.Context, id valueobjects.KeywordID) error

	Delete(ctx context.Context, id valueobjects.KeywordID) error
}

// CategoryRepository persists keyword categories, keyed by name
type CategoryRepository interface {
	Save(ctx context.Context, category *entities.KeywordCategory) error
	FindByName(ctx context.Context, name string) (*entities.KeywordCategory, error)
	FindAll(ctx context.Context) ([]*entities.KeywordCategory, error)
	Delete(ctx context.Context, name string) error
}

// UserRepository persists device-keyed users
type UserRepository interface {
	Save(ctx context.Context, user *entities.User) error
	FindByDeviceID(ctx context.Context, deviceID valueobjects.DeviceID) (*entities.User, error)

	// UpdateLastSeen replaces the stored last-seen list wholesale
	// (last-write-wins; concurrent writers are not merged)
	UpdateLastSeen(ctx context.Context, deviceID valueobjects.DeviceID, memeIDs []valueobjects.MemeID) error
}

// InteractionRepository persists the interaction ledger
type InteractionRepository interface {
	// Insert appends a new interaction record
	Insert(ctx context.Context, interaction *entities.Interaction) error

	// FindSave returns the logical SAVE row for (device, meme)
	// regardless of its isDeleted state; NotFound if none was ever made
	FindSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) (*entities.Interaction, error)

	// Exists reports whether an active record exists for the triple;
	// the SAVE type is answered via FindSave semantics by callers
	Exists(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID, itype entities.InteractionType) (bool, error)

	// RestoreSave resets isDeleted on the logical SAVE row
	RestoreSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) error

	// SoftDeleteSave marks the active SAVE row deleted; NotFound if no
	// active row exists
	SoftDeleteSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) error

	// CountByType counts active records for (device, type)
	CountByType(ctx context.Context, deviceID valueobjects.DeviceID, itype entities.InteractionType) (int, error)

	// FindSavedMemeIDs lists meme IDs with an active SAVE row for the
	// device, most recently saved first
	FindSavedMemeIDs(ctx context.Context, deviceID valueobjects.DeviceID) ([]valueobjects.MemeID, error)
}

// RecommendWatchRepository persists weekly recommendation-watch records
type RecommendWatchRepository interface {
	// FindByWeek returns the record for (device, weekStart); NotFound
	// if the device has no watches that week
	FindByWeek(ctx context.Context, deviceID valueobjects.DeviceID, weekStart time.Time) (*entities.RecommendWatch, error)

	// Save creates or replaces the weekly record
	Save(ctx context.Context, watch *entities.RecommendWatch) error
}
