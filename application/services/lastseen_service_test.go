package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub-backend/domain/core/entities"
	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

func newLastSeenService(f *fixture) *LastSeenService {
	return NewLastSeenService(f.users, f.memes, nil, f.logger)
}

func TestRecordView_CreatesUserOnFirstSight(t *testing.T) {
	f := newFixture()
	svc := newLastSeenService(f)
	device := mustDeviceID(t, "fresh-device")
	meme := f.seedMeme(t, "cat")
	ctx := context.Background()

	list, err := svc.RecordView(ctx, device, meme.ID())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, meme.ID().String(), list[0].String())

	user, err := f.users.FindByDeviceID(ctx, device)
	require.NoError(t, err)
	assert.Len(t, user.LastSeenMemes(), 1)
}

func TestRecordView_MovesRepeatToFront(t *testing.T) {
	f := newFixture()
	svc := newLastSeenService(f)
	device := mustDeviceID(t, "device-1")
	ctx := context.Background()

	a := f.seedMeme(t, "a")
	b := f.seedMeme(t, "b")
	c := f.seedMeme(t, "c")

	for _, m := range []*entities.Meme{a, b, c} {
		_, err := svc.RecordView(ctx, device, m.ID())
		require.NoError(t, err)
	}

	// viewing a again moves it, no duplicate appears
	list, err := svc.RecordView(ctx, device, a.ID())
	require.NoError(t, err)

	got := valueobjects.MemeIDStrings(list)
	assert.Equal(t, []string{a.ID().String(), c.ID().String(), b.ID().String()}, got)
}

func TestRecordView_TruncatesToLimit(t *testing.T) {
	f := newFixture()
	svc := newLastSeenService(f)
	device := mustDeviceID(t, "device-1")
	ctx := context.Background()

	var memes []*entities.Meme
	for i := 0; i < 13; i++ {
		memes = append(memes, f.seedMeme(t, fmt.Sprintf("meme-%d", i)))
	}

	var list []valueobjects.MemeID
	for _, m := range memes {
		var err error
		list, err = svc.RecordView(ctx, device, m.ID())
		require.NoError(t, err)
	}

	require.Len(t, list, 10)
	// newest first, oldest three dropped
	assert.Equal(t, memes[12].ID().String(), list[0].String())
	assert.Equal(t, memes[3].ID().String(), list[9].String())
}

func TestRecordView_UnknownMeme(t *testing.T) {
	f := newFixture()
	svc := newLastSeenService(f)
	device := mustDeviceID(t, "device-1")

	_, err := svc.RecordView(context.Background(), device, valueobjects.NewMemeID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetLastSeen_DropsDeletedMemesPreservingOrder(t *testing.T) {
	f := newFixture()
	svc := newLastSeenService(f)
	device := mustDeviceID(t, "device-1")
	ctx := context.Background()

	a := f.seedMeme(t, "a")
	b := f.seedMeme(t, "b")
	c := f.seedMeme(t, "c")
	for _, m := range []*entities.Meme{a, b, c} {
		_, err := svc.RecordView(ctx, device, m.ID())
		require.NoError(t, err)
	}

	require.NoError(t, f.memes.Delete(ctx, b.ID()))

	seen, err := svc.GetLastSeen(ctx, device)
	require.NoError(t, err)
	require.Len(t, seen, 2)
	assert.Equal(t, c.ID().String(), seen[0].ID().String())
	assert.Equal(t, a.ID().String(), seen[1].ID().String())
}

func TestGetLastSeen_UnknownDevice(t *testing.T) {
	f := newFixture()
	svc := newLastSeenService(f)
	device := mustDeviceID(t, "never-seen")

	_, err := svc.GetLastSeen(context.Background(), device)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
