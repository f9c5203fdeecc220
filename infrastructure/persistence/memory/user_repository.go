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

type userRow struct {
	deviceID  string
	lastSeen  []valueobjects.MemeID
	isDeleted bool
	createdAt time.Time
	updatedAt time.Time
}

// UserRepository is an in-memory ports.UserRepository
type UserRepository struct {
	mu   sync.RWMutex
	rows map[string]*userRow
}

// NewUserRepository creates an empty in-memory user repository
func NewUserRepository() *UserRepository {
	return &UserRepository{rows: make(map[string]*userRow)}
}

var _ ports.UserRepository = (*UserRepository)(nil)

// Save creates or replaces a user
func (r *UserRepository) Save(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows[user.DeviceID().String()] = &userRow{
		deviceID:  user.DeviceID().String(),
		lastSeen:  user.LastSeenMemes(),
		isDeleted: user.IsDeleted(),
		createdAt: user.CreatedAt(),
		updatedAt: user.UpdatedAt(),
	}
	return nil
}

// FindByDeviceID returns an active user; NotFound otherwise
func (r *UserRepository) FindByDeviceID(ctx context.Context, deviceID valueobjects.DeviceID) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	row, ok := r.rows[deviceID.String()]
	if !ok || row.isDeleted {
		return nil, pkgerrors.NewNotFoundError("user")
	}

	lastSeen := make([]valueobjects.MemeID, len(row.lastSeen))
	copy(lastSeen, row.lastSeen)
	return entities.ReconstructUser(deviceID, lastSeen, row.isDeleted, row.createdAt, row.updatedAt), nil
}

// UpdateLastSeen replaces the stored last-seen list wholesale
func (r *UserRepository) UpdateLastSeen(ctx context.Context, deviceID valueobjects.DeviceID, memeIDs []valueobjects.MemeID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[deviceID.String()]
	if !ok || row.isDeleted {
		return pkgerrors.NewNotFoundError("user")
	}

	lastSeen := make([]valueobjects.MemeID, len(memeIDs))
	copy(lastSeen, memeIDs)
	row.lastSeen = lastSeen
	row.updatedAt = time.Now()
	return nil
}
