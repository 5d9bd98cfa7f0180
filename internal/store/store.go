// internal/store/store.go

// Package store persists per-session cart and favorites state.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/javajoker/storefront-backend/internal/models"
)

// CartStore loads and saves whole carts. A session without a cart loads as empty.
type CartStore interface {
	LoadCart(ctx context.Context, sessionID string) (models.Cart, error)
	SaveCart(ctx context.Context, sessionID string, cart models.Cart) error
}

// FavoritesStore loads and saves whole favorites lists.
type FavoritesStore interface {
	LoadFavorites(ctx context.Context, sessionID string) (models.FavoritesList, error)
	SaveFavorites(ctx context.Context, sessionID string, list models.FavoritesList) error
}

// SessionStore persists both containers.
type SessionStore interface {
	CartStore
	FavoritesStore
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}

func favoritesKey(sessionID string) string {
	return fmt.Sprintf("favorites:session:%s", sessionID)
}

func copyCart(c models.Cart) models.Cart {
	if len(c.Items) == 0 {
		return models.Cart{}
	}
	items := make([]models.CartItem, len(c.Items))
	copy(items, c.Items)
	return models.Cart{Items: items}
}

func copyFavorites(f models.FavoritesList) models.FavoritesList {
	if len(f.ProductIDs) == 0 {
		return models.FavoritesList{}
	}
	ids := make([]string, len(f.ProductIDs))
	copy(ids, f.ProductIDs)
	return models.FavoritesList{ProductIDs: ids}
}

// normalizeTime drops the monotonic clock so stored and reloaded values compare equal.
func normalizeTime(t time.Time) time.Time {
	return t.Round(0).UTC()
}
