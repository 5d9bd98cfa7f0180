// internal/catalog/snapshot.go

// Package catalog loads the static product catalog and serves immutable
// snapshots of it.
package catalog

import (
	"errors"
	"sort"
	"time"

	"github.com/javajoker/storefront-backend/internal/models"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Snapshot is a fully loaded catalog. It is never mutated after Load returns.
type Snapshot struct {
	Products     []models.Product
	Categories   models.Categories
	Brands       models.Brands
	Prices       models.Prices
	ActionPrices models.Prices
	FilterKeys   models.FilterKeys
	Fingerprint  string
	LoadedAt     time.Time

	bySlug map[string]int
	byID   map[string]int
}

// EmptySnapshot returns a snapshot with empty tables.
func EmptySnapshot() *Snapshot {
	s := &Snapshot{
		Products:     []models.Product{},
		Categories:   models.Categories{},
		Brands:       models.Brands{},
		Prices:       models.Prices{},
		ActionPrices: models.Prices{},
		FilterKeys:   models.FilterKeys{},
	}
	s.index()
	return s
}

// index builds lookup tables; the first product wins on duplicate slugs or ids.
func (s *Snapshot) index() (duplicates []string) {
	s.bySlug = make(map[string]int, len(s.Products))
	s.byID = make(map[string]int, len(s.Products))
	for i, p := range s.Products {
		if _, ok := s.bySlug[p.Slug]; ok {
			duplicates = append(duplicates, "slug:"+p.Slug)
		} else {
			s.bySlug[p.Slug] = i
		}
		if _, ok := s.byID[p.ID]; ok {
			duplicates = append(duplicates, "id:"+p.ID)
		} else {
			s.byID[p.ID] = i
		}
	}
	return duplicates
}

func (s *Snapshot) ProductBySlug(slug string) (models.Product, bool) {
	i, ok := s.bySlug[slug]
	if !ok {
		return models.Product{}, false
	}
	return s.Products[i], true
}

func (s *Snapshot) ProductByID(id string) (models.Product, bool) {
	i, ok := s.byID[id]
	if !ok {
		return models.Product{}, false
	}
	return s.Products[i], true
}

// ProductsInCategory returns members of the category in catalog order.
func (s *Snapshot) ProductsInCategory(slug string) []models.Product {
	out := make([]models.Product, 0)
	for _, p := range s.Products {
		if p.InCategory(slug) {
			out = append(out, p)
		}
	}
	return out
}

func (s *Snapshot) Category(slug string) (models.Category, bool) {
	c, ok := s.Categories[slug]
	return c, ok
}

// CategorySlugs returns all category slugs sorted.
func (s *Snapshot) CategorySlugs() []string {
	slugs := make([]string, 0, len(s.Categories))
	for slug := range s.Categories {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

// EffectivePrice prefers a non-zero action price over the regular price.
func (s *Snapshot) EffectivePrice(id string) float64 {
	if p := s.ActionPrices[id]; p != 0 {
		return p
	}
	return s.Prices[id]
}
