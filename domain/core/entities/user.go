package entities

import (
	"time"

	"memehub-backend/domain/config"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// User is a device-keyed pseudo-account. lastSeenMemes is a bounded,
// most-recent-first list with no duplicates; the front entry is always
// the meme viewed last.
type User struct {
	deviceID      valueobjects.DeviceID
	lastSeenMemes []valueobjects.MemeID
	isDeleted     bool
	createdAt     time.Time
	updatedAt     time.Time
}

// NewUser creates a new user for a device
func NewUser(deviceID valueobjects.DeviceID) (*User, error) {
	if deviceID.IsEmpty() {
		return nil, pkgerrors.NewValidationError("deviceID cannot be empty")
	}

	now := time.Now()
	return &User{
		deviceID:  deviceID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructUser rebuilds a user from repository data
func ReconstructUser(
	deviceID valueobjects.DeviceID,
	lastSeenMemes []valueobjects.MemeID,
	isDeleted bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		deviceID:      deviceID,
		lastSeenMemes: lastSeenMemes,
		isDeleted:     isDeleted,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// DeviceID returns the device identity
func (u *User) DeviceID() valueobjects.DeviceID { return u.deviceID }

// IsDeleted reports whether the user is soft-deleted
func (u *User) IsDeleted() bool { return u.isDeleted }

// CreatedAt returns when the user was first seen
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns when the user was last updated
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// LastSeenMemes returns a copy of the last-seen list, most recent first
func (u *User) LastSeenMemes() []valueobjects.MemeID {
	ids := make([]valueobjects.MemeID, len(u.lastSeenMemes))
	copy(ids, u.lastSeenMemes)
	return ids
}

// RecordView pushes a meme onto the front of the last-seen list: an
// existing entry is moved rather than duplicated, and the tail is dropped
// beyond the configured limit. Returns the updated list.
func (u *User) RecordView(memeID valueobjects.MemeID) []valueobjects.MemeID {
	return u.RecordViewWithConfig(memeID, config.DefaultDomainConfig())
}

// RecordViewWithConfig is RecordView with an explicit domain configuration
func (u *User) RecordViewWithConfig(memeID valueobjects.MemeID, cfg *config.DomainConfig) []valueobjects.MemeID {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	updated := make([]valueobjects.MemeID, 0, len(u.lastSeenMemes)+1)
	updated = append(updated, memeID)
	for _, id := range u.lastSeenMemes {
		if !id.Equals(memeID) {
			updated = append(updated, id)
		}
	}
	if len(updated) > cfg.LastSeenLimit {
		updated = updated[:cfg.LastSeenLimit]
	}

	u.lastSeenMemes = updated
	u.updatedAt = time.Now()
	return u.LastSeenMemes()
}

// Delete soft-deletes the user
func (u *User) Delete() {
	u.isDeleted = true
	u.updatedAt = time.Now()
}
