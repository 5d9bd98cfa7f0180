// internal/services/catalog_service.go
package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/catalog"
	"github.com/javajoker/storefront-backend/internal/filter"
	"github.com/javajoker/storefront-backend/internal/models"
)

// CatalogService answers catalog queries against the current snapshot.
// Every call reads one snapshot, so results never mix two catalog versions.
type CatalogService struct {
	store *catalog.Store
}

// StaticPath is a routable catalog path: a category, or a category and a product.
type StaticPath struct {
	Slug []string `json:"slug"`
}

func NewCatalogService(store *catalog.Store) *CatalogService {
	return &CatalogService{store: store}
}

func (s *CatalogService) Snapshot() *catalog.Snapshot {
	return s.store.Snapshot()
}

// Reload rebuilds the catalog from its source.
func (s *CatalogService) Reload(ctx context.Context) *catalog.Snapshot {
	return s.store.Reload(ctx)
}

func (s *CatalogService) Products() []models.Product {
	return s.Snapshot().Products
}

func (s *CatalogService) Categories() models.Categories {
	return s.Snapshot().Categories
}

func (s *CatalogService) Brands() models.Brands {
	return s.Snapshot().Brands
}

func (s *CatalogService) Prices() models.Prices {
	return s.Snapshot().Prices
}

func (s *CatalogService) ActionPrices() models.Prices {
	return s.Snapshot().ActionPrices
}

func (s *CatalogService) FilterKeys() models.FilterKeys {
	return s.Snapshot().FilterKeys
}

func (s *CatalogService) ProductBySlug(slug string) (models.Product, error) {
	p, ok := s.Snapshot().ProductBySlug(slug)
	if !ok {
		return models.Product{}, fmt.Errorf("slug %q: %w", slug, catalog.ErrProductNotFound)
	}
	return p, nil
}

func (s *CatalogService) ProductByID(id string) (models.Product, error) {
	p, ok := s.Snapshot().ProductByID(id)
	if !ok {
		return models.Product{}, fmt.Errorf("id %q: %w", id, catalog.ErrProductNotFound)
	}
	return p, nil
}

// ProductInCategory returns the product only if it belongs to categorySlug.
func (s *CatalogService) ProductInCategory(categorySlug, productSlug string) (models.Product, error) {
	p, err := s.ProductBySlug(productSlug)
	if err != nil {
		return models.Product{}, err
	}
	if !p.InCategory(categorySlug) {
		return models.Product{}, fmt.Errorf("%q in %q: %w", productSlug, categorySlug, catalog.ErrProductNotFound)
	}
	return p, nil
}

func (s *CatalogService) Category(slug string) (models.Category, error) {
	c, ok := s.Snapshot().Category(slug)
	if !ok {
		return models.Category{}, fmt.Errorf("%q: %w", slug, catalog.ErrCategoryNotFound)
	}
	return c, nil
}

func (s *CatalogService) ProductsByCategory(slug string) []models.Product {
	return s.Snapshot().ProductsInCategory(slug)
}

// FilterConfigForCategory generates filters for the category's products.
// Unknown or empty categories yield an empty config.
func (s *CatalogService) FilterConfigForCategory(slug string) models.FilterConfig {
	snap := s.Snapshot()

	category, ok := snap.Category(slug)
	if !ok {
		logrus.WithField("category", slug).Warn("Category not found")
		return models.FilterConfig{}
	}

	products := snap.ProductsInCategory(slug)
	if len(products) == 0 {
		logrus.WithField("category", slug).Warn("No products found for category")
		return models.FilterConfig{}
	}

	return filter.GenerateFilterConfig(products, snap.FilterKeys, category.ExcludeKeys)
}

// FilteredProducts narrows the category's products by active.
func (s *CatalogService) FilteredProducts(slug string, active models.ActiveFilters) []models.Product {
	products := s.ProductsByCategory(slug)
	if len(products) == 0 || len(active) == 0 {
		return products
	}
	return filter.FilterProducts(products, active)
}

func (s *CatalogService) EffectivePrice(productID string) float64 {
	return s.Snapshot().EffectivePrice(productID)
}

// CategoryFullPath joins the primary parent and the slug. The slug alone is
// returned when the parent is unknown.
func (s *CatalogService) CategoryFullPath(slug string) string {
	snap := s.Snapshot()
	category, ok := snap.Category(slug)
	if !ok {
		return slug
	}

	parent := category.Parent()
	if parent == "" {
		return slug
	}
	if _, ok := snap.Category(parent); !ok {
		return slug
	}
	return parent + "/" + slug
}

// StaticPaths lists every category and every category/product pair.
func (s *CatalogService) StaticPaths() []StaticPath {
	snap := s.Snapshot()

	paths := make([]StaticPath, 0, len(snap.Categories)+len(snap.Products))
	for _, slug := range snap.CategorySlugs() {
		paths = append(paths, StaticPath{Slug: []string{slug}})
	}
	for _, p := range snap.Products {
		for _, category := range p.Categories {
			paths = append(paths, StaticPath{Slug: []string{category, p.Slug}})
		}
	}
	return paths
}

// SortProducts orders products by a structural field, an attribute or "price".
// Unknown keys keep catalog order.
func (s *CatalogService) SortProducts(products []models.Product, key string, desc bool) []models.Product {
	if key == "" {
		return products
	}

	snap := s.Snapshot()
	sorted := append([]models.Product(nil), products...)
	less := func(a, b models.Product) bool {
		if key == "price" {
			return snap.EffectivePrice(a.ID) < snap.EffectivePrice(b.ID)
		}
		av, bv := a.Field(key), b.Field(key)
		an, aok := av.Float()
		bn, bok := bv.Float()
		if aok && bok {
			return an < bn
		}
		return strings.Compare(av.String(), bv.String()) < 0
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if desc {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}
