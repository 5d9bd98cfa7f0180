package catalog

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/models"
)

const fixtureProducts = `[
  {"id": "1", "slug": "baxi-eco", "title": "Baxi ECO", "categories": "boilers", "brand": "baxi", "power_kw": 24, "country": "IT"},
  {"id": "2", "slug": "vaillant-turbo", "title": "Vaillant Turbo", "categories": ["boilers", "gas"], "img": ["/img/v.jpg"], "power_kw": 28, "country": "DE"},
  {"id": "3", "slug": "bosch-pump", "title": "Bosch Pump", "categories": ["pumps"], "height": null},
  {"slug": "no-id", "title": "Broken"},
  "not an object",
  {"id": "4", "slug": "baxi-eco", "title": "Duplicate slug", "categories": ["boilers"]}
]`

const fixtureCategories = `{
  "boilers": {"title": "Boilers", "seotitle": "Gas boilers", "exclude_keys": ["country"]},
  "gas": {"title": "Gas", "parent": ["boilers", "heating"]},
  "pumps": {"slug": "pumps", "title": "Pumps", "parent": "heating"},
  "heating": {"title": "Heating"}
}`

func writeCatalog(t *testing.T, fs afero.Fs, dir string, files map[string]string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(dir, 0o755))
	for name, body := range files {
		require.NoError(t, afero.WriteFile(fs, dir+"/"+name, []byte(body), 0o644))
	}
}

func fixtureFiles() map[string]string {
	return map[string]string{
		ProductsFile:     fixtureProducts,
		CategoriesFile:   fixtureCategories,
		BrandsFile:       `{"baxi": "Baxi", "vaillant": "Vaillant"}`,
		PricesFile:       `{"1": 1000, "2": "2500.50", "3": 300}`,
		ActionPricesFile: `{"1": 900, "3": 0}`,
		FilterKeysFile:   `{"power_kw": "Power, kW"}`,
	}
}

func loadFixture(t *testing.T) *Snapshot {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", fixtureFiles())
	return Load(context.Background(), NewDirSource(fs, "/data"))
}

func TestLoad_Tables(t *testing.T) {
	snap := loadFixture(t)

	require.Len(t, snap.Products, 4)
	assert.Equal(t, "Baxi", snap.Brands["baxi"])
	assert.Equal(t, 2500.5, snap.Prices["2"])
	assert.Equal(t, "Power, kW", snap.FilterKeys["power_kw"])
	assert.NotEmpty(t, snap.Fingerprint)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestLoad_MalformedPriceSkipsOnlyThatEntry(t *testing.T) {
	files := fixtureFiles()
	files[PricesFile] = `{"1": 1000, "2": null, "3": 300, "4": "", "5": "cheap"}`

	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", files)
	snap := Load(context.Background(), NewDirSource(fs, "/data"))

	assert.Equal(t, models.Prices{"1": 1000, "3": 300}, snap.Prices)
	assert.Equal(t, 300.0, snap.EffectivePrice("3"))
	assert.Equal(t, 0.0, snap.EffectivePrice("2"))
}

func TestLoad_NormalizesProducts(t *testing.T) {
	snap := loadFixture(t)

	p, ok := snap.ProductBySlug("baxi-eco")
	require.True(t, ok)
	assert.Equal(t, "1", p.ID)
	assert.Equal(t, []string{"boilers"}, p.Categories)
	assert.Equal(t, models.NumberValue(24), p.Attr("power_kw"))

	pump, ok := snap.ProductByID("3")
	require.True(t, ok)
	assert.Equal(t, models.AttrNull, pump.Attr("height").Kind())
}

func TestLoad_FirstDuplicateWins(t *testing.T) {
	snap := loadFixture(t)

	p, ok := snap.ProductBySlug("baxi-eco")
	require.True(t, ok)
	assert.Equal(t, "Baxi ECO", p.Title)

	dup, ok := snap.ProductByID("4")
	require.True(t, ok)
	assert.Equal(t, "Duplicate slug", dup.Title)
}

func TestLoad_CategorySlugFromKey(t *testing.T) {
	snap := loadFixture(t)

	boilers, ok := snap.Category("boilers")
	require.True(t, ok)
	assert.Equal(t, "boilers", boilers.Slug)
	assert.Equal(t, "Gas boilers", boilers.SEOTitle)
	assert.Equal(t, []string{"country"}, boilers.ExcludeKeys)

	gas, _ := snap.Category("gas")
	assert.Equal(t, "boilers", gas.Parent())

	pumps, _ := snap.Category("pumps")
	assert.Equal(t, "heating", pumps.Parent())

	assert.Equal(t, []string{"boilers", "gas", "heating", "pumps"}, snap.CategorySlugs())
}

func TestLoad_MissingTablesAreEmpty(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeCatalog(t, fs, "/data", map[string]string{
		ProductsFile: `[{"id": "1", "slug": "a", "categories": ["x"]}]`,
		BrandsFile:   `{not json`,
	})

	snap := Load(context.Background(), NewDirSource(fs, "/data"))

	assert.Len(t, snap.Products, 1)
	assert.Empty(t, snap.Categories)
	assert.Empty(t, snap.Brands)
	assert.Empty(t, snap.Prices)
	assert.Equal(t, 0.0, snap.EffectivePrice("1"))
}

func TestLoad_EmptyDirectory(t *testing.T) {
	snap := Load(context.Background(), NewDirSource(afero.NewMemMapFs(), "/nowhere"))

	assert.NotNil(t, snap.Products)
	assert.Empty(t, snap.Products)
	assert.Empty(t, snap.ProductsInCategory("boilers"))
}

func TestSnapshot_ProductsInCategory(t *testing.T) {
	snap := loadFixture(t)

	var slugs []string
	for _, p := range snap.ProductsInCategory("boilers") {
		slugs = append(slugs, p.Slug)
	}
	assert.Equal(t, []string{"baxi-eco", "vaillant-turbo", "baxi-eco"}, slugs)
	assert.Empty(t, snap.ProductsInCategory("unknown"))
}

func TestSnapshot_EffectivePrice(t *testing.T) {
	snap := loadFixture(t)

	assert.Equal(t, 900.0, snap.EffectivePrice("1"))
	assert.Equal(t, 2500.5, snap.EffectivePrice("2"))
	assert.Equal(t, 300.0, snap.EffectivePrice("3"))
	assert.Equal(t, 0.0, snap.EffectivePrice("missing"))
}
