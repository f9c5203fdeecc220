package entities

import (
	"strings"
	"time"

	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// InteractionType is the closed set of logged user actions against a meme
type InteractionType string

const (
	InteractionWatch    InteractionType = "WATCH"
	InteractionReaction InteractionType = "REACTION"
	InteractionShare    InteractionType = "SHARE"
	InteractionSave     InteractionType = "SAVE"
)

// ParseInteractionType validates a raw interaction type string. Any value
// outside the closed enumeration is rejected before any write happens.
func ParseInteractionType(s string) (InteractionType, error) {
	switch InteractionType(strings.ToUpper(s)) {
	case InteractionWatch:
		return InteractionWatch, nil
	case InteractionReaction:
		return InteractionReaction, nil
	case InteractionShare:
		return InteractionShare, nil
	case InteractionSave:
		return InteractionSave, nil
	default:
		return "", pkgerrors.NewValidationError("unsupported interaction type: " + s)
	}
}

// String returns the string form of the interaction type
func (t InteractionType) String() string { return string(t) }

// Interaction is one logged user action against a meme. SAVE rows are a
// toggled logical record per (device, meme); all other types are
// append-only events.
type Interaction struct {
	deviceID  valueobjects.DeviceID
	memeID    valueobjects.MemeID
	itype     InteractionType
	isDeleted bool
	createdAt time.Time
}

// NewInteraction creates a new interaction record
func NewInteraction(deviceID valueobjects.DeviceID, memeID valueobjects.MemeID, itype InteractionType) (*Interaction, error) {
	if deviceID.IsEmpty() {
		return nil, pkgerrors.NewValidationError("deviceID cannot be empty")
	}
	if memeID.IsEmpty() {
		return nil, pkgerrors.NewValidationError("memeID cannot be empty")
	}
	if _, err := ParseInteractionType(string(itype)); err != nil {
		return nil, err
	}

	return &Interaction{
		deviceID:  deviceID,
		memeID:    memeID,
		itype:     itype,
		createdAt: time.Now(),
	}, nil
}

// ReconstructInteraction rebuilds an interaction from repository data
func ReconstructInteraction(
	deviceID valueobjects.DeviceID,
	memeID valueobjects.MemeID,
	itype InteractionType,
	isDeleted bool,
	createdAt time.Time,
) *Interaction {
	return &Interaction{
		deviceID:  deviceID,
		memeID:    memeID,
		itype:     itype,
		isDeleted: isDeleted,
		createdAt: createdAt,
	}
}

// DeviceID returns the acting device
func (i *Interaction) DeviceID() valueobjects.DeviceID { return i.deviceID }

// MemeID returns the target meme
func (i *Interaction) MemeID() valueobjects.MemeID { return i.memeID }

// Type returns the interaction type
func (i *Interaction) Type() InteractionType { return i.itype }

// IsDeleted reports whether the record is soft-deleted
func (i *Interaction) IsDeleted() bool { return i.isDeleted }

// CreatedAt returns when the interaction happened
func (i *Interaction) CreatedAt() time.Time { return i.createdAt }

// Restore clears the soft-delete flag (SAVE toggle)
func (i *Interaction) Restore() {
	i.isDeleted = false
}

// Delete sets the soft-delete flag (SAVE toggle)
func (i *Interaction) Delete() {
	i.isDeleted = true
}
