// internal/catalog/store.go
package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Store holds the current snapshot. Readers never block; Reload swaps in a
// freshly built snapshot.
type Store struct {
	source  Source
	current atomic.Pointer[Snapshot]

	mu        sync.Mutex // serializes reloads
	listeners []func(*Snapshot)
}

// NewStore creates a store serving an empty snapshot until the first Reload.
func NewStore(source Source) *Store {
	s := &Store{source: source}
	s.current.Store(EmptySnapshot())
	return s
}

// Snapshot returns the current catalog.
func (s *Store) Snapshot() *Snapshot {
	return s.current.Load()
}

// OnReload registers fn to run after every reload with the new snapshot.
func (s *Store) OnReload(fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Reload rebuilds the snapshot from the source and publishes it.
func (s *Store) Reload(ctx context.Context) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Load(ctx, s.source)
	s.current.Store(snap)

	for _, fn := range s.listeners {
		fn(snap)
	}
	return snap
}

// Changed reports whether the source fingerprint differs from the current snapshot.
func (s *Store) Changed(ctx context.Context) (bool, error) {
	fp, err := s.source.Fingerprint(ctx, TableFiles)
	if err != nil {
		return false, err
	}
	return fp != s.Snapshot().Fingerprint, nil
}

// Watch polls the source every interval and reloads when it changed.
// It returns when ctx is done.
func (s *Store) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			changed, err := s.Changed(ctx)
			if err != nil {
				logrus.WithError(err).Warn("Catalog change check failed")
				continue
			}
			if changed {
				logrus.Info("Catalog source changed, reloading")
				s.Reload(ctx)
			}
		}
	}
}
