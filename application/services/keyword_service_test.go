package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "memehub-backend/pkg/errors"
)

func newKeywordService(f *fixture) *KeywordService {
	return NewKeywordService(f.keywords, f.categories, f.logger)
}

func TestCreateKeyword(t *testing.T) {
	f := newFixture()
	svc := newKeywordService(f)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "animals", false)
	require.NoError(t, err)

	keyword, err := svc.CreateKeyword(ctx, "cats", "animals")
	require.NoError(t, err)
	assert.Equal(t, "cats", keyword.Name())
	assert.Equal(t, "animals", keyword.Category())
}

func TestCreateKeyword_DuplicateActiveName(t *testing.T) {
	f := newFixture()
	svc := newKeywordService(f)
	ctx := context.Background()

	first, err := svc.CreateKeyword(ctx, "cats", "")
	require.NoError(t, err)

	_, err = svc.CreateKeyword(ctx, "cats", "")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))

	// deleting frees the name
	require.NoError(t, svc.DeleteKeyword(ctx, first.ID()))
	_, err = svc.CreateKeyword(ctx, "cats", "")
	require.NoError(t, err)
}

func TestCreateKeyword_UnknownCategory(t *testing.T) {
	f := newFixture()
	svc := newKeywordService(f)

	_, err := svc.CreateKeyword(context.Background(), "cats", "nope")
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestCreateCategory_Duplicate(t *testing.T) {
	f := newFixture()
	svc := newKeywordService(f)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "animals", true)
	require.NoError(t, err)

	_, err = svc.CreateCategory(ctx, "animals", false)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConflict(err))
}

func TestListCategories_SkipsDeleted(t *testing.T) {
	f := newFixture()
	svc := newKeywordService(f)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "animals", false)
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "mood", false)
	require.NoError(t, err)
	require.NoError(t, f.categories.Delete(ctx, "mood"))

	categories, err := svc.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "animals", categories[0].Name())
}

func TestListRecommendedKeywords(t *testing.T) {
	f := newFixture()
	svc := newKeywordService(f)
	ctx := context.Background()

	_, err := svc.CreateCategory(ctx, "trending", true)
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "archive", false)
	require.NoError(t, err)

	_, err = svc.CreateKeyword(ctx, "cats", "trending")
	require.NoError(t, err)
	_, err = svc.CreateKeyword(ctx, "dogs", "trending")
	require.NoError(t, err)
	_, err = svc.CreateKeyword(ctx, "dusty", "archive")
	require.NoError(t, err)

	keywords, err := svc.ListRecommendedKeywords(ctx)
	require.NoError(t, err)

	names := make([]string, 0, len(keywords))
	for _, k := range keywords {
		names = append(names, k.Name())
	}
	assert.ElementsMatch(t, []string{"cats", "dogs"}, names)
}
