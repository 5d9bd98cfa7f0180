package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

func TestNewFavoritesService_PanicsWithoutStore(t *testing.T) {
	assert.Panics(t, func() { NewFavoritesService(nil, nil) })
}

func TestFavoritesService_AddIsIdempotent(t *testing.T) {
	svc := NewFavoritesService(store.NewMemoryStore(), newTestCatalog(t))
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "2")
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", "1")
	require.NoError(t, err)
	list, err := svc.Add(ctx, "s1", "2")
	require.NoError(t, err)

	assert.Equal(t, []string{"2", "1"}, list.ProductIDs)
}

func TestFavoritesService_RejectsUnknownProducts(t *testing.T) {
	svc := NewFavoritesService(store.NewMemoryStore(), newTestCatalog(t))
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", "missing")
	assert.True(t, errors.Is(err, ErrUnknownProduct))

	_, err = svc.Toggle(ctx, "s1", "missing")
	assert.True(t, errors.Is(err, ErrUnknownProduct))
}

func TestFavoritesService_Toggle(t *testing.T) {
	svc := NewFavoritesService(store.NewMemoryStore(), newTestCatalog(t))
	ctx := context.Background()

	on, err := svc.Toggle(ctx, "s1", "3")
	require.NoError(t, err)
	assert.True(t, on)

	is, err := svc.IsFavorite(ctx, "s1", "3")
	require.NoError(t, err)
	assert.True(t, is)

	off, err := svc.Toggle(ctx, "s1", "3")
	require.NoError(t, err)
	assert.False(t, off)

	is, err = svc.IsFavorite(ctx, "s1", "3")
	require.NoError(t, err)
	assert.False(t, is)
}

func TestFavoritesService_RemoveAndClear(t *testing.T) {
	svc := NewFavoritesService(store.NewMemoryStore(), newTestCatalog(t))
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		_, err := svc.Add(ctx, "s1", id)
		require.NoError(t, err)
	}

	list, err := svc.Remove(ctx, "s1", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, list.ProductIDs)

	require.NoError(t, svc.Clear(ctx, "s1"))
	list, err = svc.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, list.ProductIDs)
}

func TestFavoritesService_ViewSkipsUnknownProducts(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := NewFavoritesService(mem, newTestCatalog(t))
	ctx := context.Background()

	require.NoError(t, mem.SaveFavorites(ctx, "s1", models.FavoritesList{ProductIDs: []string{"4", "gone", "1"}}))

	view, err := svc.View(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"4", "gone", "1"}, view.Favorites)
	assert.Equal(t, []string{"navien-deluxe", "baxi-eco"}, productSlugs(view.Products))

	empty, err := svc.View(ctx, "s2")
	require.NoError(t, err)
	assert.NotNil(t, empty.Favorites)
	assert.Empty(t, empty.Products)
}
