package events

import (
	"time"

	"github.com/google/uuid"
)

// SourceBackend identifies this service on the analytics event bus
const SourceBackend = "memehub.backend"

// Event types
const (
	EventTypeInteractionRecorded = "interaction.recorded"
	EventTypeSaveRemoved         = "interaction.save_removed"
	EventTypeMemeCreated         = "meme.created"
	EventTypeMemeDeleted         = "meme.deleted"
)

// DomainEvent is the contract for events published to the analytics bus
type DomainEvent interface {
	GetEventID() string
	GetEventType() string
	GetTimestamp() time.Time
}

// BaseEvent carries the fields shared by all events
type BaseEvent struct {
	EventID   string    `json:"eventId"`
	EventType string    `json:"eventType"`
	Timestamp time.Time `json:"timestamp"`
}

func newBaseEvent(eventType string) BaseEvent {
	return BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// GetEventID returns the unique event ID
func (e BaseEvent) GetEventID() string { return e.EventID }

// GetEventType returns the event type
func (e BaseEvent) GetEventType() string { return e.EventType }

// GetTimestamp returns when the event occurred
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// InteractionRecorded is emitted for every logged interaction
type InteractionRecorded struct {
	BaseEvent
	DeviceID        string `json:"deviceId"`
	MemeID          string `json:"memeId"`
	InteractionType string `json:"interactionType"`
}

// NewInteractionRecorded creates an InteractionRecorded event
func NewInteractionRecorded(deviceID, memeID, interactionType string) InteractionRecorded {
	return InteractionRecorded{
		BaseEvent:       newBaseEvent(EventTypeInteractionRecorded),
		DeviceID:        deviceID,
		MemeID:          memeID,
		InteractionType: interactionType,
	}
}

// SaveRemoved is emitted when a device removes a saved meme
type SaveRemoved struct {
	BaseEvent
	DeviceID string `json:"deviceId"`
	MemeID   string `json:"memeId"`
}

// NewSaveRemoved creates a SaveRemoved event
func NewSaveRemoved(deviceID, memeID string) SaveRemoved {
	return SaveRemoved{
		BaseEvent: newBaseEvent(EventTypeSaveRemoved),
		DeviceID:  deviceID,
		MemeID:    memeID,
	}
}

// MemeCreated is emitted when a meme is published
type MemeCreated struct {
	BaseEvent
	MemeID string `json:"memeId"`
	Title  string `json:"title"`
}

// NewMemeCreated creates a MemeCreated event
func NewMemeCreated(memeID, title string) MemeCreated {
	return MemeCreated{
		BaseEvent: newBaseEvent(EventTypeMemeCreated),
		MemeID:    memeID,
		Title:     title,
	}
}

// MemeDeleted is emitted when a meme is soft-deleted
type MemeDeleted struct {
	BaseEvent
	MemeID string `json:"memeId"`
}

// NewMemeDeleted creates a MemeDeleted event
func NewMemeDeleted(memeID string) MemeDeleted {
	return MemeDeleted{
		BaseEvent: newBaseEvent(EventTypeMemeDeleted),
		MemeID:    memeID,
	}
}
