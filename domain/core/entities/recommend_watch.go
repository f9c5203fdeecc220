package entities

import (
	"time"

	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// RecommendWatch tracks which recommended memes a device watched within
// one week. There is exactly one record per (device, weekStart); startDate
// is always Monday 00:00 UTC of the watch's week.
type RecommendWatch struct {
	deviceID  valueobjects.DeviceID
	startDate time.Time
	memeIDs   []valueobjects.MemeID
	isDeleted bool
	createdAt time.Time
	updatedAt time.Time
}

// NewRecommendWatch opens a weekly record with its first watched meme
func NewRecommendWatch(deviceID valueobjects.DeviceID, weekStart time.Time, memeID valueobjects.MemeID) (*RecommendWatch, error) {
	if deviceID.IsEmpty() {
		return nil, pkgerrors.NewValidationError("deviceID cannot be empty")
	}
	if memeID.IsEmpty() {
		return nil, pkgerrors.NewValidationError("memeID cannot be empty")
	}

	now := time.Now()
	return &RecommendWatch{
		deviceID:  deviceID,
		startDate: weekStart,
		memeIDs:   []valueobjects.MemeID{memeID},
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructRecommendWatch rebuilds a weekly record from repository data
func ReconstructRecommendWatch(
	deviceID valueobjects.DeviceID,
	startDate time.Time,
	memeIDs []valueobjects.MemeID,
	isDeleted bool,
	createdAt, updatedAt time.Time,
) *RecommendWatch {
	return &RecommendWatch{
		deviceID:  deviceID,
		startDate: startDate,
		memeIDs:   memeIDs,
		isDeleted: isDeleted,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// DeviceID returns the watching device
func (r *RecommendWatch) DeviceID() valueobjects.DeviceID { return r.deviceID }

// StartDate returns Monday 00:00 UTC of the record's week
func (r *RecommendWatch) StartDate() time.Time { return r.startDate }

// IsDeleted reports whether the record is soft-deleted
func (r *RecommendWatch) IsDeleted() bool { return r.isDeleted }

// CreatedAt returns when the record was opened
func (r *RecommendWatch) CreatedAt() time.Time { return r.createdAt }

// UpdatedAt returns when the record was last appended to
func (r *RecommendWatch) UpdatedAt() time.Time { return r.updatedAt }

// MemeIDs returns a copy of the watched meme IDs
func (r *RecommendWatch) MemeIDs() []valueobjects.MemeID {
	ids := make([]valueobjects.MemeID, len(r.memeIDs))
	copy(ids, r.memeIDs)
	return ids
}

// RecordWatch appends a watched meme and returns the new length. The
// append is deliberately not deduplicated: a meme watched twice in one
// week counts twice, matching the shipped client contract.
func (r *RecommendWatch) RecordWatch(memeID valueobjects.MemeID) int {
	r.memeIDs = append(r.memeIDs, memeID)
	r.updatedAt = time.Now()
	return len(r.memeIDs)
}
