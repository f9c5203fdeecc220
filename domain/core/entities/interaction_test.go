package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

func TestParseInteractionType(t *testing.T) {
	for _, raw := range []string{"WATCH", "REACTION", "SHARE", "SAVE", "watch", "Save"} {
		parsed, err := ParseInteractionType(raw)
		require.NoError(t, err, raw)
		assert.NotEmpty(t, parsed.String())
	}

	for _, raw := range []string{"", "LIKE", "DOWNLOAD", "SAVED"} {
		_, err := ParseInteractionType(raw)
		assert.True(t, pkgerrors.IsValidation(err), raw)
	}
}

func TestNewInteraction(t *testing.T) {
	device, err := valueobjects.ParseDeviceID("device-123")
	require.NoError(t, err)
	meme := valueobjects.NewMemeID()

	interaction, err := NewInteraction(device, meme, InteractionWatch)
	require.NoError(t, err)
	assert.Equal(t, InteractionWatch, interaction.Type())
	assert.False(t, interaction.IsDeleted())

	_, err = NewInteraction(valueobjects.DeviceID{}, meme, InteractionWatch)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewInteraction(device, valueobjects.MemeID{}, InteractionWatch)
	assert.True(t, pkgerrors.IsValidation(err))

	_, err = NewInteraction(device, meme, InteractionType("LIKE"))
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestInteraction_SaveToggle(t *testing.T) {
	device, err := valueobjects.ParseDeviceID("device-123")
	require.NoError(t, err)

	interaction, err := NewInteraction(device, valueobjects.NewMemeID(), InteractionSave)
	require.NoError(t, err)

	interaction.Delete()
	assert.True(t, interaction.IsDeleted())
	interaction.Restore()
	assert.False(t, interaction.IsDeleted())
}

func TestRecommendWatch_RecordWatch(t *testing.T) {
	device, err := valueobjects.ParseDeviceID("device-123")
	require.NoError(t, err)

	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	first := valueobjects.NewMemeID()

	watch, err := NewRecommendWatch(device, weekStart, first)
	require.NoError(t, err)
	assert.True(t, weekStart.Equal(watch.StartDate()))
	assert.Len(t, watch.MemeIDs(), 1)

	assert.Equal(t, 2, watch.RecordWatch(valueobjects.NewMemeID()))

	// the same meme watched again still counts
	assert.Equal(t, 3, watch.RecordWatch(first))
}

func TestNewKeyword(t *testing.T) {
	keyword, err := NewKeyword("cats", "animals")
	require.NoError(t, err)
	assert.Equal(t, "cats", keyword.Name())
	assert.Equal(t, "animals", keyword.Category())
	assert.Equal(t, 0, keyword.SearchCount())

	_, err = NewKeyword("", "animals")
	assert.True(t, pkgerrors.IsValidation(err))

	// uncategorized keywords are allowed
	_, err = NewKeyword("misc", "")
	assert.NoError(t, err)
}

func TestNewKeywordCategory(t *testing.T) {
	category, err := NewKeywordCategory("animals", true)
	require.NoError(t, err)
	assert.True(t, category.IsRecommend())

	_, err = NewKeywordCategory("", false)
	assert.True(t, pkgerrors.IsValidation(err))
}
