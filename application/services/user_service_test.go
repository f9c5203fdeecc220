package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub-backend/domain/core/entities"
	pkgerrors "memehub-backend/pkg/errors"
)

func newUserService(f *fixture) *UserService {
	return NewUserService(f.users, f.interactions, f.logger)
}

func TestGetUser_NotFound(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)

	_, err := svc.GetUser(context.Background(), mustDeviceID(t, "ghost"))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetOrCreateUser_FirstSight(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	device := mustDeviceID(t, "fresh")
	ctx := context.Background()

	profile, err := svc.GetOrCreateUser(ctx, device)
	require.NoError(t, err)
	assert.Equal(t, "fresh", profile.DeviceID)
	assert.Zero(t, profile.WatchCount)
	assert.Zero(t, profile.SaveCount)

	// the record now exists
	_, err = svc.GetUser(ctx, device)
	require.NoError(t, err)
}

func TestGetOrCreateUser_AggregatesStats(t *testing.T) {
	f := newFixture()
	svc := newUserService(f)
	interactions := newInteractionService(f)
	device := mustDeviceID(t, "device-1")
	ctx := context.Background()

	a := f.seedMeme(t, "a")
	b := f.seedMeme(t, "b")

	for i := 0; i < 3; i++ {
		_, err := interactions.RecordInteraction(ctx, device, a.ID(), entities.InteractionWatch)
		require.NoError(t, err)
	}
	_, err := interactions.RecordInteraction(ctx, device, a.ID(), entities.InteractionReaction)
	require.NoError(t, err)
	_, err = interactions.RecordInteraction(ctx, device, b.ID(), entities.InteractionShare)
	require.NoError(t, err)
	_, err = interactions.RecordInteraction(ctx, device, b.ID(), entities.InteractionSave)
	require.NoError(t, err)

	profile, err := svc.GetOrCreateUser(ctx, device)
	require.NoError(t, err)
	assert.Equal(t, 3, profile.WatchCount)
	assert.Equal(t, 1, profile.ReactionCount)
	assert.Equal(t, 1, profile.ShareCount)
	assert.Equal(t, 1, profile.SaveCount)

	// a removed save leaves the stats
	require.NoError(t, interactions.DeleteSave(ctx, device, b.ID()))
	profile, err = svc.GetOrCreateUser(ctx, device)
	require.NoError(t, err)
	assert.Zero(t, profile.SaveCount)
}
