// internal/store/memory_store.go
package store

import (
	"context"
	"sync"

	"github.com/javajoker/storefront-backend/internal/models"
)

// MemoryStore keeps state in process memory. Used in development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	carts     map[string]models.Cart
	favorites map[string]models.FavoritesList
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		carts:     make(map[string]models.Cart),
		favorites: make(map[string]models.FavoritesList),
	}
}

func (s *MemoryStore) LoadCart(_ context.Context, sessionID string) (models.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyCart(s.carts[sessionID]), nil
}

func (s *MemoryStore) SaveCart(_ context.Context, sessionID string, cart models.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(cart.Items) == 0 {
		delete(s.carts, sessionID)
		return nil
	}
	s.carts[sessionID] = copyCart(cart)
	return nil
}

func (s *MemoryStore) LoadFavorites(_ context.Context, sessionID string) (models.FavoritesList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyFavorites(s.favorites[sessionID]), nil
}

func (s *MemoryStore) SaveFavorites(_ context.Context, sessionID string, list models.FavoritesList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(list.ProductIDs) == 0 {
		delete(s.favorites, sessionID)
		return nil
	}
	s.favorites[sessionID] = copyFavorites(list)
	return nil
}
