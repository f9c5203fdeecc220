package entities

import (
	"time"

	"memehub-backend/domain/config"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// Meme is the central content entity. The reaction counter is only ever
// mutated through the repository's atomic increment; the field here is a
// read snapshot.
type Meme struct {
	id          valueobjects.MemeID
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

// NewMeme creates a new meme with business rule validation
func NewMeme(title, image, source string, keywordIDs []valueobjects.KeywordID) (*Meme, error) {
	return NewMemeWithConfig(title, image, source, keywordIDs, config.DefaultDomainConfig())
}

// NewMemeWithConfig creates a new meme using the given domain configuration
func NewMemeWithConfig(title, image, source string, keywordIDs []valueobjects.KeywordID, cfg *config.DomainConfig) (*Meme, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if title == "" {
		return nil, pkgerrors.NewValidationError("title cannot be empty")
	}
	if image == "" {
		return nil, pkgerrors.NewValidationError("image cannot be empty")
	}
	if len(keywordIDs) > cfg.MaxKeywordsPerMeme {
		return nil, pkgerrors.NewValidationError("too many keywords")
	}

	now := time.Now()
	return &Meme{
		id:         valueobjects.NewMemeID(),
		title:      title,
		image:      image,
		source:     source,
		keywordIDs: dedupKeywordIDs(keywordIDs),
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructMeme rebuilds a meme from repository data with preserved state
func ReconstructMeme(
	id valueobjects.MemeID,
	title, image, source string,
	reaction int,
	isTodayMeme bool,
	keywordIDs []valueobjects.KeywordID,
	isDeleted bool,
	createdAt, updatedAt time.Time,
) *Meme {
	return &Meme{
		id:          id,
		title:       title,
		image:       image,
		source:      source,
		reaction:    reaction,
		isTodayMeme: isTodayMeme,
		keywordIDs:  keywordIDs,
		isDeleted:   isDeleted,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the meme's unique identifier
func (m *Meme) ID() valueobjects.MemeID { return m.id }

// Title returns the meme's title
func (m *Meme) Title() string { return m.title }

// Image returns the meme's image location
func (m *Meme) Image() string { return m.image }

// Source returns where the meme originated
func (m *Meme) Source() string { return m.source }

// Reaction returns the reaction count snapshot
func (m *Meme) Reaction() int { return m.reaction }

// IsTodayMeme reports whether the meme is flagged for the featured list
func (m *Meme) IsTodayMeme() bool { return m.isTodayMeme }

// IsDeleted reports whether the meme is soft-deleted
func (m *Meme) IsDeleted() bool { return m.isDeleted }

// CreatedAt returns when the meme was created
func (m *Meme) CreatedAt() time.Time { return m.createdAt }

// UpdatedAt returns when the meme was last updated
func (m *Meme) UpdatedAt() time.Time { return m.updatedAt }

// KeywordIDs returns a copy of the assigned keyword IDs
func (m *Meme) KeywordIDs() []valueobjects.KeywordID {
	ids := make([]valueobjects.KeywordID, len(m.keywordIDs))
	copy(ids, m.keywordIDs)
	return ids
}

// HasKeyword reports whether the meme carries the given keyword
func (m *Meme) HasKeyword(id valueobjects.KeywordID) bool {
	for _, kid := range m.keywordIDs {
		if kid.Equals(id) {
			return true
		}
	}
	return false
}

// Update replaces the mutable content fields. Nil pointers leave the
// corresponding field untouched.
func (m *Meme) Update(title, image, source *string, keywordIDs []valueobjects.KeywordID) error {
	if m.isDeleted {
		return pkgerrors.NewNotFoundError("meme")
	}
	if title != nil {
		if *title == "" {
			return pkgerrors.NewValidationError("title cannot be empty")
		}
		m.title = *title
	}
	if image != nil {
		if *image == "" {
			return pkgerrors.NewValidationError("image cannot be empty")
		}
		m.image = *image
	}
	if source != nil {
		m.source = *source
	}
	if keywordIDs != nil {
		m.keywordIDs = dedupKeywordIDs(keywordIDs)
	}
	m.updatedAt = time.Now()
	return nil
}

// SetTodayMeme flags or unflags the meme for the featured list
func (m *Meme) SetTodayMeme(flag bool) {
	m.isTodayMeme = flag
	m.updatedAt = time.Now()
}

// Delete soft-deletes the meme
func (m *Meme) Delete() {
	m.isDeleted = true
	m.updatedAt = time.Now()
}

func dedupKeywordIDs(ids []valueobjects.KeywordID) []valueobjects.KeywordID {
	seen := make(map[string]bool, len(ids))
	out := make([]valueobjects.KeywordID, 0, len(ids))
	for _, id := range ids {
		if id.IsEmpty() || seen[id.String()] {
			continue
		}
		seen[id.String()] = true
		out = append(out, id)
	}
	return out
}
