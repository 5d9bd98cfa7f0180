package services

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/catalog"
	"github.com/javajoker/storefront-backend/internal/models"
)

var catalogFixture = map[string]string{
	catalog.ProductsFile: `[
		{"id": "1", "slug": "baxi-eco", "title": "Baxi ECO", "categories": "boilers", "brand": "baxi", "power_kw": 24, "country": "IT", "internal": "a"},
		{"id": "2", "slug": "vaillant-turbo", "title": "Vaillant Turbo", "categories": ["boilers", "gas"], "brand": "vaillant", "power_kw": 28, "country": "DE", "internal": "b"},
		{"id": "3", "slug": "bosch-pump", "title": "Bosch Pump", "categories": ["pumps"], "height": 6},
		{"id": "4", "slug": "navien-deluxe", "title": "Navien Deluxe", "categories": ["boilers"], "power_kw": 35, "country": "KR"}
	]`,
	catalog.CategoriesFile: `{
		"boilers": {"title": "Boilers", "exclude_keys": ["internal"]},
		"gas": {"title": "Gas boilers", "parent": ["boilers", "heating"]},
		"pumps": {"title": "Pumps", "parent": "heating"},
		"heating": {"title": "Heating"},
		"radiators": {"title": "Radiators", "parent": "missing"}
	}`,
	catalog.BrandsFile:       `{"baxi": "Baxi", "vaillant": "Vaillant"}`,
	catalog.PricesFile:       `{"1": 1000, "2": 2000, "3": 300, "4": 4000}`,
	catalog.ActionPricesFile: `{"2": 1800}`,
	catalog.FilterKeysFile:   `{"power_kw": "Power, kW", "country": "Country"}`,
}

func newTestCatalog(t *testing.T) *CatalogService {
	t.Helper()
	fs := afero.NewMemMapFs()
	for name, body := range catalogFixture {
		require.NoError(t, afero.WriteFile(fs, "/data/"+name, []byte(body), 0o644))
	}

	store := catalog.NewStore(catalog.NewDirSource(fs, "/data"))
	store.Reload(context.Background())
	return NewCatalogService(store)
}

func productSlugs(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Slug
	}
	return out
}
