package valueobjects

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// MemeID uniquely identifies a meme
type MemeID struct {
	value string
}

// NewMemeID generates a new meme ID
func NewMemeID() MemeID {
	return MemeID{value: uuid.New().String()}
}

// ParseMemeID validates and wraps an existing meme ID
func ParseMemeID(s string) (MemeID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return MemeID{}, fmt.Errorf("invalid meme id %q: %w", s, err)
	}
	return MemeID{value: s}, nil
}

// String returns the string form of the ID
func (id MemeID) String() string {
	return id.value
}

// Equals compares two meme IDs
func (id MemeID) Equals(other MemeID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id MemeID) IsEmpty() bool {
	return id.value == ""
}

// KeywordID uniquely identifies a keyword
type KeywordID struct {
	value string
}

// NewKeywordID generates a new keyword ID
func NewKeywordID() KeywordID {
	return KeywordID{value: uuid.New().String()}
}

// ParseKeywordID validates and wraps an existing keyword ID
func ParseKeywordID(s string) (KeywordID, error) {
	if _, err := uuid.Parse(s); err != nil {
		return KeywordID{}, fmt.Errorf("invalid keyword id %q: %w", s, err)
	}
	return KeywordID{value: s}, nil
}

// String returns the string form of the ID
func (id KeywordID) String() string {
	return id.value
}

// Equals compares two keyword IDs
func (id KeywordID) Equals(other KeywordID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id KeywordID) IsEmpty() bool {
	return id.value == ""
}

// DeviceID is the client-supplied pseudo-identity standing in for a user
// account. It is opaque to the backend; only shape is validated.
type DeviceID struct {
	value string
}

// ParseDeviceID validates and wraps a client device ID
func ParseDeviceID(s string) (DeviceID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DeviceID{}, fmt.Errorf("device id cannot be empty")
	}
	if len(s) > 128 {
		return DeviceID{}, fmt.Errorf("device id too long")
	}
	return DeviceID{value: s}, nil
}

// String returns the string form of the ID
func (id DeviceID) String() string {
	return id.value
}

// Equals compares two device IDs
func (id DeviceID) Equals(other DeviceID) bool {
	return id.value == other.value
}

// IsEmpty reports whether the ID is the zero value
func (id DeviceID) IsEmpty() bool {
	return id.value == ""
}

// MemeIDStrings converts a list of meme IDs to their string forms
func MemeIDStrings(ids []MemeID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

// KeywordIDStrings converts a list of keyword IDs to their string forms
func KeywordIDStrings(ids []KeywordID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}
