// internal/store/file_store.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/javajoker/storefront-backend/internal/models"
)

var ErrInvalidSessionID = errors.New("invalid session id")

// FileStore writes one JSON document per session and container.
type FileStore struct {
	fs afero.Fs
	mu sync.Mutex
}

// NewFileStore stores documents under dir, creating it when missing.
func NewFileStore(fs afero.Fs, dir string) (*FileStore, error) {
	for _, sub := range []string{"carts", "favorites"} {
		if err := fs.MkdirAll(filepath.Join(dir, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", sub, err)
		}
	}
	return &FileStore{fs: afero.NewBasePathFs(fs, dir)}, nil
}

func documentPath(kind, sessionID string) (string, error) {
	if sessionID == "" || strings.ContainsAny(sessionID, `/\`) || strings.Contains(sessionID, "..") {
		return "", ErrInvalidSessionID
	}
	return filepath.Join(kind, sessionID+".json"), nil
}

func (s *FileStore) LoadCart(_ context.Context, sessionID string) (models.Cart, error) {
	var cart models.Cart
	if err := s.read("carts", sessionID, &cart); err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func (s *FileStore) SaveCart(_ context.Context, sessionID string, cart models.Cart) error {
	if len(cart.Items) == 0 {
		return s.remove("carts", sessionID)
	}
	return s.write("carts", sessionID, cart)
}

func (s *FileStore) LoadFavorites(_ context.Context, sessionID string) (models.FavoritesList, error) {
	var list models.FavoritesList
	if err := s.read("favorites", sessionID, &list); err != nil {
		return models.FavoritesList{}, err
	}
	return list, nil
}

func (s *FileStore) SaveFavorites(_ context.Context, sessionID string, list models.FavoritesList) error {
	if len(list.ProductIDs) == 0 {
		return s.remove("favorites", sessionID)
	}
	return s.write("favorites", sessionID, list)
}

func (s *FileStore) read(kind, sessionID string, dst interface{}) error {
	name, err := documentPath(kind, sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	data, err := afero.ReadFile(s.fs, name)
	s.mu.Unlock()

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// write replaces the document through a temp file and rename.
func (s *FileStore) write(kind, sessionID string, value interface{}) error {
	name, err := documentPath(kind, sessionID)
	if err != nil {
		return err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp := name + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", tmp, err)
	}
	if err := s.fs.Rename(tmp, name); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) remove(kind, sessionID string) error {
	name, err := documentPath(kind, sessionID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(name); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", name, err)
	}
	return nil
}
