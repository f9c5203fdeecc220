package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/domain/events"
	pkgerrors "memehub-backend/pkg/errors"
)

func newMemeService(f *fixture) *MemeService {
	return NewMemeService(f.memes, f.keywords, f.bus, nil, f.logger)
}

func TestCreateMeme(t *testing.T) {
	f := newFixture()
	svc := newMemeService(f)
	ctx := context.Background()

	cats := f.seedKeyword(t, "cats", "animals")

	meme, err := svc.CreateMeme(ctx, "grumpy", "images/grumpy.webp", "upload", []string{cats.ID().String()})
	require.NoError(t, err)
	assert.True(t, meme.HasKeyword(cats.ID()))

	stored, err := f.memes.FindByID(ctx, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, "grumpy", stored.Title())

	require.Len(t, f.bus.byType(events.EventTypeMemeCreated), 1)
}

func TestCreateMeme_UnknownKeyword(t *testing.T) {
	f := newFixture()
	svc := newMemeService(f)

	_, err := svc.CreateMeme(context.Background(), "grumpy", "images/grumpy.webp", "upload",
		[]string{valueobjects.NewKeywordID().String()})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCreateMeme_MalformedKeywordID(t *testing.T) {
	f := newFixture()
	svc := newMemeService(f)

	_, err := svc.CreateMeme(context.Background(), "grumpy", "images/grumpy.webp", "upload",
		[]string{"not-a-uuid"})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestUpdateMeme(t *testing.T) {
	f := newFixture()
	svc := newMemeService(f)
	ctx := context.Background()

	meme := f.seedMeme(t, "before")

	title := "after"
	updated, err := svc.UpdateMeme(ctx, meme.ID(), &title, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Title())
	assert.Equal(t, meme.Image(), updated.Image())

	stored, err := f.memes.FindByID(ctx, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, "after", stored.Title())
}

func TestDeleteMeme(t *testing.T) {
	f := newFixture()
	svc := newMemeService(f)
	ctx := context.Background()

	meme := f.seedMeme(t, "doomed")
	require.NoError(t, svc.DeleteMeme(ctx, meme.ID()))

	_, err := f.memes.FindByID(ctx, meme.ID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	require.Len(t, f.bus.byType(events.EventTypeMemeDeleted), 1)

	err = svc.DeleteMeme(ctx, meme.ID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSetTodayMeme(t *testing.T) {
	f := newFixture()
	svc := newMemeService(f)
	ctx := context.Background()

	meme := f.seedMeme(t, "featured")
	require.NoError(t, svc.SetTodayMeme(ctx, meme.ID(), true))

	today, err := f.memes.FindToday(ctx)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, meme.ID().String(), today[0].ID().String())

	require.NoError(t, svc.SetTodayMeme(ctx, meme.ID(), false))
	today, err = f.memes.FindToday(ctx)
	require.NoError(t, err)
	assert.Empty(t, today)
}
