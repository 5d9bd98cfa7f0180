// internal/services/favorites_service.go
package services

import (
	"context"
	"fmt"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/store"
)

type FavoritesService struct {
	store   store.FavoritesStore
	catalog *CatalogService
	locks   *sessionLocks
}

type FavoritesView struct {
	Favorites []string         `json:"favorites"`
	Products  []models.Product `json:"products"`
}

// NewFavoritesService panics when favoritesStore is nil.
func NewFavoritesService(favoritesStore store.FavoritesStore, catalog *CatalogService) *FavoritesService {
	if favoritesStore == nil {
		panic("services: NewFavoritesService called without a favorites store")
	}
	return &FavoritesService{
		store:   favoritesStore,
		catalog: catalog,
		locks:   newSessionLocks(),
	}
}

func (s *FavoritesService) List(ctx context.Context, sessionID string) (models.FavoritesList, error) {
	return s.store.LoadFavorites(ctx, sessionID)
}

// View resolves favorites against the catalog, skipping products that left it.
func (s *FavoritesService) View(ctx context.Context, sessionID string) (*FavoritesView, error) {
	list, err := s.store.LoadFavorites(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	snap := s.catalog.Snapshot()
	view := &FavoritesView{
		Favorites: nonNilIDs(list.ProductIDs),
		Products:  make([]models.Product, 0, len(list.ProductIDs)),
	}
	for _, id := range list.ProductIDs {
		if p, ok := snap.ProductByID(id); ok {
			view.Products = append(view.Products, p)
		}
	}
	return view, nil
}

func (s *FavoritesService) IsFavorite(ctx context.Context, sessionID, productID string) (bool, error) {
	list, err := s.store.LoadFavorites(ctx, sessionID)
	if err != nil {
		return false, err
	}
	return list.Contains(productID), nil
}

// Add is idempotent.
func (s *FavoritesService) Add(ctx context.Context, sessionID, productID string) (models.FavoritesList, error) {
	if err := s.checkProduct(productID); err != nil {
		return models.FavoritesList{}, err
	}
	return s.mutate(ctx, sessionID, func(f *models.FavoritesList) error {
		f.Add(productID)
		return nil
	})
}

func (s *FavoritesService) Remove(ctx context.Context, sessionID, productID string) (models.FavoritesList, error) {
	return s.mutate(ctx, sessionID, func(f *models.FavoritesList) error {
		f.Remove(productID)
		return nil
	})
}

// Toggle flips membership and reports whether the product is now a favorite.
// Only catalog products can be toggled on.
func (s *FavoritesService) Toggle(ctx context.Context, sessionID, productID string) (bool, error) {
	var favorite bool
	_, err := s.mutate(ctx, sessionID, func(f *models.FavoritesList) error {
		if !f.Contains(productID) {
			if err := s.checkProduct(productID); err != nil {
				return err
			}
		}
		favorite = f.Toggle(productID)
		return nil
	})
	if err != nil {
		return false, err
	}
	return favorite, nil
}

func (s *FavoritesService) Clear(ctx context.Context, sessionID string) error {
	_, err := s.mutate(ctx, sessionID, func(f *models.FavoritesList) error {
		f.Clear()
		return nil
	})
	return err
}

func (s *FavoritesService) checkProduct(productID string) error {
	if _, err := s.catalog.ProductByID(productID); err != nil {
		return fmt.Errorf("%q: %w", productID, ErrUnknownProduct)
	}
	return nil
}

func (s *FavoritesService) mutate(ctx context.Context, sessionID string, fn func(*models.FavoritesList) error) (models.FavoritesList, error) {
	unlock := s.locks.lock(sessionID)
	defer unlock()

	list, err := s.store.LoadFavorites(ctx, sessionID)
	if err != nil {
		return models.FavoritesList{}, err
	}

	if err := fn(&list); err != nil {
		return models.FavoritesList{}, err
	}

	if err := s.store.SaveFavorites(ctx, sessionID, list); err != nil {
		return models.FavoritesList{}, err
	}
	return models.FavoritesList{ProductIDs: nonNilIDs(list.ProductIDs)}, nil
}

func nonNilIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
