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

type recommendWatchRow struct {
	deviceID  string
	startDate time.Time
	memeIDs   []valueobjects.MemeID
	isDeleted bool
	createdAt time.Time
	updatedAt time.Time
}

// RecommendWatchRepository is an in-memory ports.RecommendWatchRepository
type RecommendWatchRepository struct {
	mu   sync.RWMutex
	rows map[string]*recommendWatchRow
}

// NewRecommendWatchRepository creates an empty in-memory recommend-watch
// repository
func NewRecommendWatchRepository() *RecommendWatchRepository {
	return &RecommendWatchRepository{rows: make(map[string]*recommendWatchRow)}
}

var _ ports.RecommendWatchRepository = (*RecommendWatchRepository)(nil)

// FindByWeek returns the record for (device, weekStart); NotFound if the
// device has no watches that week
func (r *RecommendWatchRepository) FindByWeek(ctx context.Context, deviceID valueobjects.DeviceID, weekStart time.Time) (*entities.RecommendWatch, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[watchKey(deviceID.String(), weekStart)]
	if !ok || row.isDeleted {
		return nil, pkgerrors.NewNotFoundError("recommend watch")
	}

	memeIDs := make([]valueobjects.MemeID, len(row.memeIDs))
	copy(memeIDs, row.memeIDs)
	return entities.ReconstructRecommendWatch(deviceID, row.startDate, memeIDs, row.isDeleted, row.createdAt, row.updatedAt), nil
}

// Save creates or replaces the weekly record
func (r *RecommendWatchRepository) Save(ctx context.Context, watch *entities.RecommendWatch) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[watchKey(watch.DeviceID().String(), watch.StartDate())] = &recommendWatchRow{
		deviceID:  watch.DeviceID().String(),
		startDate: watch.StartDate(),
		memeIDs:   watch.MemeIDs(),
		isDeleted: watch.IsDeleted(),
		createdAt: watch.CreatedAt(),
		updatedAt: watch.UpdatedAt(),
	}
	return nil
}

func watchKey(deviceID string, weekStart time.Time) string {
	return deviceID + "#" + weekStart.UTC().Format("2006-01-02")
}
