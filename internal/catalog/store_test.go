package catalog

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EmptyUntilReload(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", fixtureFiles())
	store := NewStore(NewDirSource(fs, "/data"))

	require.NotNil(t, store.Snapshot())
	assert.Empty(t, store.Snapshot().Products)

	store.Reload(context.Background())
	assert.Len(t, store.Snapshot().Products, 4)
}

func TestStore_ReloadSwapsSnapshot(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", fixtureFiles())
	store := NewStore(NewDirSource(fs, "/data"))
	ctx := context.Background()

	old := store.Reload(ctx)

	writeCatalog(t, fs, "/data", map[string]string{
		ProductsFile: `[{"id": "9", "slug": "new", "categories": ["boilers"]}]`,
	})

	var notified *Snapshot
	store.OnReload(func(s *Snapshot) { notified = s })

	changed, err := store.Changed(ctx)
	require.NoError(t, err)
	assert.True(t, changed)

	fresh := store.Reload(ctx)
	assert.Same(t, fresh, notified)
	assert.Len(t, fresh.Products, 1)

	// Readers holding the old snapshot keep a consistent view.
	assert.Len(t, old.Products, 4)
	_, ok := old.ProductBySlug("baxi-eco")
	assert.True(t, ok)

	changed, err = store.Changed(ctx)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestStore_ConcurrentReadersDuringReload(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", fixtureFiles())
	store := NewStore(NewDirSource(fs, "/data"))
	ctx := context.Background()
	store.Reload(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				snap := store.Snapshot()
				assert.Len(t, snap.ProductsInCategory("boilers"), 3)
			}
		}()
	}
	for i := 0; i < 5; i++ {
		store.Reload(ctx)
	}
	wg.Wait()
}

func TestStore_WatchReloadsOnChange(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", fixtureFiles())
	store := NewStore(NewDirSource(fs, "/data"))
	store.Reload(context.Background())

	reloaded := make(chan *Snapshot, 4)
	store.OnReload(func(s *Snapshot) { reloaded <- s })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go store.Watch(ctx, 10*time.Millisecond)

	writeCatalog(t, fs, "/data", map[string]string{BrandsFile: `{"bosch": "Bosch", "baxi": "Baxi"}`})

	select {
	case snap := <-reloaded:
		assert.Equal(t, "Bosch", snap.Brands["bosch"])
	case <-time.After(2 * time.Second):
		t.Fatal("catalog was not reloaded")
	}
}

func TestStore_WatchIgnoresNonPositiveInterval(t *testing.T) {
	store := NewStore(NewDirSource(afero.NewMemMapFs(), "/data"))

	done := make(chan struct{})
	go func() {
		store.Watch(context.Background(), 0)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Watch did not return")
	}
}
