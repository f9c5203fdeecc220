package entities

import (
	"time"

	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

// Keyword tags memes for search. Name is unique among non-deleted
// keywords; searchCount is bumped atomically by the store on searches.
type Keyword struct {
	id          valueobjects.KeywordID
	name        string
	searchCount int
	category    string
	isDeleted   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewKeyword creates a new keyword
func NewKeyword(name, category string) (*Keyword, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("keyword name cannot be empty")
	}

	now := time.Now()
	return &Keyword{
		id:        valueobjects.NewKeywordID(),
		name:      name,
		category:  category,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructKeyword rebuilds a keyword from repository data
func ReconstructKeyword(
	id valueobjects.KeywordID,
	name string,
	searchCount int,
	category string,
	isDeleted bool,
	createdAt, updatedAt time.Time,
) *Keyword {
	return &Keyword{
		id:          id,
		name:        name,
		searchCount: searchCount,
		category:    category,
		isDeleted:   isDeleted,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the keyword's unique identifier
func (k *Keyword) ID() valueobjects.KeywordID { return k.id }

// Name returns the keyword's name
func (k *Keyword) Name() string { return k.name }

// SearchCount returns how many searches hit this keyword
func (k *Keyword) SearchCount() int { return k.searchCount }

// Category returns the category name the keyword belongs to
func (k *Keyword) Category() string { return k.category }

// IsDeleted reports whether the keyword is soft-deleted
func (k *Keyword) IsDeleted() bool { return k.isDeleted }

// CreatedAt returns when the keyword was created
func (k *Keyword) CreatedAt() time.Time { return k.createdAt }

// UpdatedAt returns when the keyword was last updated
func (k *Keyword) UpdatedAt() time.Time { return k.updatedAt }

// Delete soft-deletes the keyword, freeing its name for reuse
func (k *Keyword) Delete() {
	k.isDeleted = true
	k.updatedAt = time.Now()
}

// KeywordCategory groups keywords; isRecommend marks categories whose
// keywords feed the client's recommended rail.
type KeywordCategory struct {
	name        string
	isRecommend bool
	isDeleted   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// NewKeywordCategory creates a new keyword category
func NewKeywordCategory(name string, isRecommend bool) (*KeywordCategory, error) {
	if name == "" {
		return nil, pkgerrors.NewValidationError("category name cannot be empty")
	}

	now := time.Now()
	return &KeywordCategory{
		name:        name,
		isRecommend: isRecommend,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructKeywordCategory rebuilds a category from repository data
func ReconstructKeywordCategory(name string, isRecommend, isDeleted bool, createdAt, updatedAt time.Time) *KeywordCategory {
	return &KeywordCategory{
		name:        name,
		isRecommend: isRecommend,
		isDeleted:   isDeleted,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// Name returns the category's unique name
func (c *KeywordCategory) Name() string { return c.name }

// IsRecommend reports whether the category feeds recommendations
func (c *KeywordCategory) IsRecommend() bool { return c.isRecommend }

// IsDeleted reports whether the category is soft-deleted
func (c *KeywordCategory) IsDeleted() bool { return c.isDeleted }

// CreatedAt returns when the category was created
func (c *KeywordCategory) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns when the category was last updated
func (c *KeywordCategory) UpdatedAt() time.Time { return c.updatedAt }

// Delete soft-deletes the category
func (c *KeywordCategory) Delete() {
	c.isDeleted = true
	c.updatedAt = time.Now()
}
