package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	"memehub-backend/domain/events"
	pkgerrors "memehub-backend/pkg/errors"
)

func newInteractionService(f *fixture) *InteractionService {
	return NewInteractionService(f.interactions, f.memes, f.bus, f.metrics, f.logger)
}

func TestRecordInteraction_RejectsUnknownType(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	meme := f.seedMeme(t, "cat")

	_, err := svc.RecordInteraction(context.Background(), device, meme.ID(), entities.InteractionType("LIKE"))

	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))

	// nothing was written
	count, err := svc.CountInteractions(context.Background(), device, entities.InteractionWatch)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordInteraction_UnknownMeme(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")

	_, err := svc.RecordInteraction(context.Background(), device, valueobjects.NewMemeID(), entities.InteractionWatch)

	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestRecordInteraction_ReactionBumpsCounter(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	meme := f.seedMeme(t, "dog")

	reaction, err := svc.RecordInteraction(context.Background(), device, meme.ID(), entities.InteractionReaction)
	require.NoError(t, err)
	assert.Equal(t, 1, reaction)

	reaction, err = svc.RecordInteraction(context.Background(), device, meme.ID(), entities.InteractionReaction)
	require.NoError(t, err)
	assert.Equal(t, 2, reaction)

	stored, err := f.memes.FindByID(context.Background(), meme.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Reaction())

	count, err := svc.CountInteractions(context.Background(), device, entities.InteractionReaction)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestRecordInteraction_ConcurrentReactions(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	meme := f.seedMeme(t, "race")

	const goroutines = 50
	device := mustDeviceID(t, "device-concurrent")
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RecordInteraction(context.Background(), device, meme.ID(), entities.InteractionReaction)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := f.memes.FindByID(context.Background(), meme.ID())
	require.NoError(t, err)
	assert.Equal(t, goroutines, stored.Reaction())
}

func TestRecordInteraction_WatchAndShareAreAppendOnly(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	meme := f.seedMeme(t, "cat")

	for i := 0; i < 3; i++ {
		_, err := svc.RecordInteraction(context.Background(), device, meme.ID(), entities.InteractionWatch)
		require.NoError(t, err)
	}
	_, err := svc.RecordInteraction(context.Background(), device, meme.ID(), entities.InteractionShare)
	require.NoError(t, err)

	watches, err := svc.CountInteractions(context.Background(), device, entities.InteractionWatch)
	require.NoError(t, err)
	assert.Equal(t, 3, watches)

	shares, err := svc.CountInteractions(context.Background(), device, entities.InteractionShare)
	require.NoError(t, err)
	assert.Equal(t, 1, shares)

	// the meme counter is untouched by watches and shares
	stored, err := f.memes.FindByID(context.Background(), meme.ID())
	require.NoError(t, err)
	assert.Zero(t, stored.Reaction())
}

func TestSaveToggle(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	meme := f.seedMeme(t, "keeper")
	ctx := context.Background()

	_, err := svc.RecordInteraction(ctx, device, meme.ID(), entities.InteractionSave)
	require.NoError(t, err)

	count, err := svc.CountInteractions(ctx, device, entities.InteractionSave)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.DeleteSave(ctx, device, meme.ID()))

	count, err = svc.CountInteractions(ctx, device, entities.InteractionSave)
	require.NoError(t, err)
	assert.Zero(t, count)

	// the logical row survives removal and the presence check sees it
	has, err := svc.HasInteraction(ctx, device, meme.ID(), entities.InteractionSave)
	require.NoError(t, err)
	assert.True(t, has)

	// saving again restores the same row instead of stacking a second one
	_, err = svc.RecordInteraction(ctx, device, meme.ID(), entities.InteractionSave)
	require.NoError(t, err)

	count, err = svc.CountInteractions(ctx, device, entities.InteractionSave)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestDeleteSave_NotFoundWithoutActiveSave(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	meme := f.seedMeme(t, "cat")
	ctx := context.Background()

	err := svc.DeleteSave(ctx, device, meme.ID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))

	// removing twice fails the second time
	_, err = svc.RecordInteraction(ctx, device, meme.ID(), entities.InteractionSave)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteSave(ctx, device, meme.ID()))

	err = svc.DeleteSave(ctx, device, meme.ID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestHasInteraction_ActiveOnlyForAppendTypes(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	meme := f.seedMeme(t, "cat")
	ctx := context.Background()

	has, err := svc.HasInteraction(ctx, device, meme.ID(), entities.InteractionWatch)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = svc.RecordInteraction(ctx, device, meme.ID(), entities.InteractionWatch)
	require.NoError(t, err)

	has, err = svc.HasInteraction(ctx, device, meme.ID(), entities.InteractionWatch)
	require.NoError(t, err)
	assert.True(t, has)

	_, err = svc.HasInteraction(ctx, device, meme.ID(), entities.InteractionType("bogus"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsValidation(err))
}

func TestListSavedMemes(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	ctx := context.Background()

	first := f.seedMeme(t, "first")
	second := f.seedMeme(t, "second")
	third := f.seedMeme(t, "third")

	for _, m := range []*entities.Meme{first, second, third} {
		_, err := svc.RecordInteraction(ctx, device, m.ID(), entities.InteractionSave)
		require.NoError(t, err)
	}
	require.NoError(t, svc.DeleteSave(ctx, device, second.ID()))

	// a meme deleted after being saved drops out of the listing
	require.NoError(t, f.memes.Delete(ctx, third.ID()))

	saved, err := svc.ListSavedMemes(ctx, device)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, first.ID().String(), saved[0].ID().String())
}

func TestRecordInteraction_PublishesEvent(t *testing.T) {
	f := newFixture()
	svc := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	meme := f.seedMeme(t, "cat")

	_, err := svc.RecordInteraction(context.Background(), device, meme.ID(), entities.InteractionWatch)
	require.NoError(t, err)

	published := f.bus.byType(events.EventTypeInteractionRecorded)
	require.Len(t, published, 1)
}
