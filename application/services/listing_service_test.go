package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memehub-backend/domain/core/valueobjects"
	pkgerrors "memehub-backend/pkg/errors"
)

func newListingService(f *fixture) *ListingService {
	return NewListingService(f.memes, f.keywords, nil, f.logger)
}

func TestListMemes_Pagination(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 15; i++ {
		f.seedMemeAt(t, fmt.Sprintf("meme-%02d", i), base.Add(time.Duration(i)*time.Minute), 0, false)
	}

	first, err := svc.ListMemes(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, first.Total)
	assert.Equal(t, 2, first.TotalPages)
	require.Len(t, first.Data, 10)
	// newest first
	assert.Equal(t, "meme-14", first.Data[0].Title)

	second, err := svc.ListMemes(ctx, 2, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, second.Total)
	assert.Equal(t, 2, second.TotalPages)
	require.Len(t, second.Data, 5)
	assert.Equal(t, "meme-00", second.Data[4].Title)
}

func TestListMemes_OutOfRangePage(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		f.seedMemeAt(t, fmt.Sprintf("meme-%d", i), base.Add(time.Duration(i)*time.Minute), 0, false)
	}

	page, err := svc.ListMemes(ctx, 5, 10)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 1, page.TotalPages)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}

func TestListMemes_InvalidPageOrSize(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)

	for _, tc := range []struct{ page, size int }{
		{0, 10},
		{1, 0},
		{-1, 10},
		{1, -5},
	} {
		_, err := svc.ListMemes(context.Background(), tc.page, tc.size)
		require.Error(t, err, "page=%d size=%d", tc.page, tc.size)
		assert.True(t, pkgerrors.IsValidation(err))
	}
}

func TestListMemes_ExcludesDeleted(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	keep := f.seedMemeAt(t, "keep", base, 0, false)
	gone := f.seedMemeAt(t, "gone", base.Add(time.Minute), 0, false)
	require.NoError(t, f.memes.Delete(ctx, gone.ID()))

	page, err := svc.ListMemes(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Data, 1)
	assert.Equal(t, keep.ID().String(), page.Data[0].ID)
}

func TestListTodayMemes(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)
	ctx := context.Background()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		f.seedMemeAt(t, fmt.Sprintf("today-%d", i), base.Add(time.Duration(i)*time.Minute), 0, true)
	}
	f.seedMemeAt(t, "regular", base, 0, false)

	views, err := svc.ListTodayMemes(ctx, 3)
	require.NoError(t, err)
	require.Len(t, views, 3)
	assert.Equal(t, "today-3", views[0].Title)
	for _, v := range views {
		assert.True(t, v.IsTodayMeme)
	}
}

func TestListTodayMemes_LimitBounds(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)

	for _, limit := range []int{0, -1, 6, 100} {
		_, err := svc.ListTodayMemes(context.Background(), limit)
		require.Error(t, err, "limit=%d", limit)
		assert.True(t, pkgerrors.IsValidation(err))
	}

	// the cap itself is fine
	_, err := svc.ListTodayMemes(context.Background(), 5)
	require.NoError(t, err)
}

func TestGetMemeWithKeywords(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)
	ctx := context.Background()

	cats := f.seedKeyword(t, "cats", "animals")
	funny := f.seedKeyword(t, "funny", "mood")
	meme := f.seedMeme(t, "cat", cats.ID(), funny.ID())

	view, err := svc.GetMemeWithKeywords(ctx, meme.ID())
	require.NoError(t, err)
	assert.Equal(t, meme.ID().String(), view.ID)
	assert.ElementsMatch(t, []string{"cats", "funny"}, view.KeywordNames)
}

func TestGetMemeWithKeywords_NotFound(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)

	_, err := svc.GetMemeWithKeywords(context.Background(), valueobjects.NewMemeID())
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSearchByKeyword(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)
	ctx := context.Background()

	cats := f.seedKeyword(t, "cats", "animals")
	dogs := f.seedKeyword(t, "dogs", "animals")

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	low := f.seedMemeAt(t, "low", base, 1, false, cats.ID())
	high := f.seedMemeAt(t, "high", base.Add(time.Minute), 9, false, cats.ID())
	f.seedMemeAt(t, "unrelated", base, 50, false, dogs.ID())

	page, err := svc.SearchByKeyword(ctx, 1, 10, "cats")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Data, 2)
	// highest reaction first
	assert.Equal(t, high.ID().String(), page.Data[0].ID)
	assert.Equal(t, low.ID().String(), page.Data[1].ID)
	// keyword names resolved, not ids
	assert.Contains(t, page.Data[0].KeywordNames, "cats")

	// the search bumped the keyword's counter
	stored, err := f.keywords.FindByID(ctx, cats.ID())
	require.NoError(t, err)
	assert.Equal(t, 1, stored.SearchCount())
}

func TestSearchByKeyword_UnknownKeyword(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)

	_, err := svc.SearchByKeyword(context.Background(), 1, 10, "nope")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestSearchByKeyword_EmptyPageIsNotAnError(t *testing.T) {
	f := newFixture()
	svc := newListingService(f)
	ctx := context.Background()

	cats := f.seedKeyword(t, "cats", "animals")
	f.seedMeme(t, "only-one", cats.ID())

	page, err := svc.SearchByKeyword(ctx, 2, 10, "cats")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
	assert.Empty(t, page.Data)
}
