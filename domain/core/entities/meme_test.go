package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub-backend/domain/config"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

func TestNewMeme_Validation(t *testing.T) {
	_, err := NewMeme("", "https://cdn.example.com/a.png", "", nil)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewMeme("title", "", "", nil)
	assert.True(t, pkgerrors.IsValidation(err))

	meme, err := NewMeme("title", "https://cdn.example.com/a.png", "reddit", nil)
	require.NoError(t, err)
	assert.False(t, meme.ID().IsEmpty())
	assert.Equal(t, 0, meme.Reaction())
	assert.False(t, meme.IsTodayMeme())
	assert.False(t, meme.IsDeleted())
}

func TestNewMeme_KeywordCap(t *testing.T) {
	cfg := &config.DomainConfig{MaxKeywordsPerMeme: 2}

	ids := []valueobjects.KeywordID{
		valueobjects.NewKeywordID(),
		valueobjects.NewKeywordID(),
		valueobjects.NewKeywordID(),
	}
	_, err := NewMemeWithConfig("title", "img", "", ids, cfg)
	assert.True(t, pkgerrors.IsValidation(err))

	meme, err := NewMemeWithConfig("title", "img", "", ids[:2], cfg)
	require.NoError(t, err)
	assert.Len(t, meme.KeywordIDs(), 2)
}

func TestNewMeme_DeduplicatesKeywords(t *testing.T) {
	kid := valueobjects.NewKeywordID()
	other := valueobjects.NewKeywordID()

	meme, err := NewMeme("title", "img", "", []valueobjects.KeywordID{kid, other, kid})
	require.NoError(t, err)

	assert.Len(t, meme.KeywordIDs(), 2)
	assert.True(t, meme.HasKeyword(kid))
	assert.True(t, meme.HasKeyword(other))
	assert.False(t, meme.HasKeyword(valueobjects.NewKeywordID()))
}

func TestMeme_Update(t *testing.T) {
	meme, err := NewMeme("before", "img", "reddit", nil)
	require.NoError(t, err)

	title := "after"
	require.NoError(t, meme.Update(&title, nil, nil, nil))
	assert.Equal(t, "after", meme.Title())
	assert.Equal(t, "img", meme.Image())
	assert.Equal(t, "reddit", meme.Source())

	empty := ""
	err = meme.Update(&empty, nil, nil, nil)
	assert.True(t, pkgerrors.IsValidation(err))
	err = meme.Update(nil, &empty, nil, nil)
	assert.True(t, pkgerrors.IsValidation(err))

	// empty source is allowed; keywords can be cleared with a non-nil empty slice
	require.NoError(t, meme.Update(nil, nil, &empty, []valueobjects.KeywordID{}))
	assert.Equal(t, "", meme.Source())
	assert.Empty(t, meme.KeywordIDs())

	meme.Delete()
	err = meme.Update(&title, nil, nil, nil)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestMeme_SetTodayMeme(t *testing.T) {
	meme, err := NewMeme("title", "img", "", nil)
	require.NoError(t, err)

	meme.SetTodayMeme(true)
	assert.True(t, meme.IsTodayMeme())
	meme.SetTodayMeme(false)
	assert.False(t, meme.IsTodayMeme())
}
