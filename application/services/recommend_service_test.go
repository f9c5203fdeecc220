package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "memehub-backend/pkg/errors"
)

func newRecommendServiceAt(f *fixture, at time.Time) (*RecommendService, *time.Time) {
	clock := at
	svc := NewRecommendServiceWithClock(f.watches, f.memes, func() time.Time { return clock }, f.logger)
	return svc, &clock
}

func TestRecordRecommendedWatch_AccumulatesWithinWeek(t *testing.T) {
	f := newFixture()
	// a Wednesday
	svc, _ := newRecommendServiceAt(f, time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC))
	device := mustDeviceID(t, "device-1")
	ctx := context.Background()

	a := f.seedMeme(t, "a")
	b := f.seedMeme(t, "b")

	count, err := svc.RecordRecommendedWatch(ctx, device, a.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.RecordRecommendedWatch(ctx, device, b.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// repeat watches of the same meme all count
	count, err = svc.RecordRecommendedWatch(ctx, device, a.ID())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	weekly, err := svc.GetWeeklyWatchCount(ctx, device)
	require.NoError(t, err)
	assert.Equal(t, 3, weekly)
}

func TestRecordRecommendedWatch_NewWeekStartsFresh(t *testing.T) {
	f := newFixture()
	svc, clock := newRecommendServiceAt(f, time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC))
	device := mustDeviceID(t, "device-1")
	ctx := context.Background()
	meme := f.seedMeme(t, "a")

	count, err := svc.RecordRecommendedWatch(ctx, device, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Sunday of the same week still accumulates
	*clock = time.Date(2026, 8, 30, 23, 0, 0, 0, time.UTC)
	count, err = svc.RecordRecommendedWatch(ctx, device, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// the following Monday opens a new record
	*clock = time.Date(2026, 8, 31, 0, 30, 0, 0, time.UTC)
	count, err = svc.RecordRecommendedWatch(ctx, device, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordRecommendedWatch_IsolatedPerDevice(t *testing.T) {
	f := newFixture()
	svc, _ := newRecommendServiceAt(f, time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC))
	ctx := context.Background()
	meme := f.seedMeme(t, "a")

	one := mustDeviceID(t, "device-1")
	two := mustDeviceID(t, "device-2")

	count, err := svc.RecordRecommendedWatch(ctx, one, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = svc.RecordRecommendedWatch(ctx, two, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRecordRecommendedWatch_UnknownMeme(t *testing.T) {
	f := newFixture()
	svc, _ := newRecommendServiceAt(f, time.Now())
	device := mustDeviceID(t, "device-1")

	meme := f.seedMeme(t, "gone")
	require.NoError(t, f.memes.Delete(context.Background(), meme.ID()))

	_, err := svc.RecordRecommendedWatch(context.Background(), device, meme.ID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestGetWeeklyWatchCount_ZeroWithoutWatches(t *testing.T) {
	f := newFixture()
	svc, _ := newRecommendServiceAt(f, time.Now())
	device := mustDeviceID(t, "device-1")

	count, err := svc.GetWeeklyWatchCount(context.Background(), device)
	require.NoError(t, err)
	assert.Zero(t, count)
}
