package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"memehub-backend/application/ports"
	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

type interactionRow struct {
	deviceID  string
	memeID    string
	itype     entities.InteractionType
	isDeleted bool
	createdAt time.Time
	updatedAt time.Time
}

// InteractionRepository is an in-memory ports.InteractionRepository.
// SAVE rows are logically unique per (device, meme); all other types
// accumulate as append-only events.
type InteractionRepository struct {
	mu   sync.RWMutex
	rows []*interactionRow
}

// NewInteractionRepository creates an empty in-memory interaction repository
func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{}
}

var _ ports.InteractionRepository = (*InteractionRepository)(nil)

// Insert appends a new interaction record
func (r *InteractionRepository) Insert(ctx context.Context, interaction *entities.Interaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows = append(r.rows, &interactionRow{
		deviceID:  interaction.DeviceID().String(),
		memeID:    interaction.MemeID().String(),
		itype:     interaction.Type(),
		isDeleted: interaction.IsDeleted(),
		createdAt: interaction.CreatedAt(),
		updatedAt: interaction.CreatedAt(),
	})
	return nil
}

// FindSave returns the logical SAVE row in any state; NotFound if the
// pair was never saved
func (r *InteractionRepository) FindSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) (*entities.Interaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row := r.findSaveRow(deviceID.String(), memeID.String())
	if row == nil {
		return nil, pkgerrors.NewNotFoundError("save")
	}
	return rowToInteraction(row)
}

// Exists reports whether an active record exists for the triple
func (r *InteractionRepository) Exists(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID, itype entities.InteractionType) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, row := range r.rows {
		if !row.isDeleted && row.deviceID == deviceID.String() && row.memeID == memeID.String() && row.itype == itype {
			return true, nil
		}
	}
	return false, nil
}

// RestoreSave clears the soft-delete flag on the logical SAVE row
func (r *InteractionRepository) RestoreSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.findSaveRow(deviceID.String(), memeID.String())
	if row == nil {
		return pkgerrors.NewNotFoundError("save")
	}
	row.isDeleted = false
	row.updatedAt = time.Now()
	return nil
}

// SoftDeleteSave marks the active SAVE row deleted; NotFound if there is
// no active row
func (r *InteractionRepository) SoftDeleteSave(ctx context.Context, deviceID valueobjects.DeviceID, memeID valueobjects.MemeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.findSaveRow(deviceID.String(), memeID.String())
	if row == nil || row.isDeleted {
		return pkgerrors.NewNotFoundError("save")
	}
	row.isDeleted = true
	row.updatedAt = time.Now()
	return nil
}

// CountByType counts active records for (device, type)
func (r *InteractionRepository) CountByType(ctx context.Context, deviceID valueobjects.DeviceID, itype entities.InteractionType) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, row := range r.rows {
		if !row.isDeleted && row.deviceID == deviceID.String() && row.itype == itype {
			count++
		}
	}
	return count, nil
}

// FindSavedMemeIDs lists meme IDs with an active SAVE row for the device,
// most recently saved first
func (r *InteractionRepository) FindSavedMemeIDs(ctx context.Context, deviceID valueobjects.DeviceID) ([]valueobjects.MemeID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	saved := make([]*interactionRow, 0)
	for _, row := range r.rows {
		if !row.isDeleted && row.deviceID == deviceID.String() && row.itype == entities.InteractionSave {
			saved = append(saved, row)
		}
	}
	sort.SliceStable(saved, func(i, j int) bool {
		return saved[i].updatedAt.After(saved[j].updatedAt)
	})

	ids := make([]valueobjects.MemeID, 0, len(saved))
	for _, row := range saved {
		id, err := valueobjects.ParseMemeID(row.memeID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *InteractionRepository) findSaveRow(deviceID, memeID string) *interactionRow {
	for _, row := range r.rows {
		if row.deviceID == deviceID && row.memeID == memeID && row.itype == entities.InteractionSave {
			return row
		}
	}
	return nil
}

func rowToInteraction(row *interactionRow) (*entities.Interaction, error) {
	deviceID, err := valueobjects.ParseDeviceID(row.deviceID)
	if err != nil {
		return nil, err
	}
	memeID, err := valueobjects.ParseMemeID(row.memeID)
	if err != nil {
		return nil, err
	}
	return entities.ReconstructInteraction(deviceID, memeID, row.itype, row.isDeleted, row.createdAt), nil
}
