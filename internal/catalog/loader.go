// internal/catalog/loader.go
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/storefront-backend/internal/models"
)

// Catalog table file names.
const (
	ProductsFile     = "products.json"
	CategoriesFile   = "categories.json"
	BrandsFile       = "brands.json"
	PricesFile       = "prices.json"
	ActionPricesFile = "actionPrices.json"
	FilterKeysFile   = "keys.json"
)

// TableFiles lists every table a snapshot is built from.
var TableFiles = []string{
	ProductsFile,
	CategoriesFile,
	BrandsFile,
	PricesFile,
	ActionPricesFile,
	FilterKeysFile,
}

// Load reads every table from src. It never fails: unreadable or malformed
// tables are logged and left empty, malformed products are skipped.
func Load(ctx context.Context, src Source) *Snapshot {
	s := EmptySnapshot()
	s.LoadedAt = time.Now()

	if fp, err := src.Fingerprint(ctx, TableFiles); err == nil {
		s.Fingerprint = fp
	} else {
		logrus.WithError(err).Warn("Failed to fingerprint catalog source")
	}

	s.Products = loadProducts(ctx, src)

	var categories models.Categories
	if loadTable(ctx, src, CategoriesFile, &categories) {
		for slug, c := range categories {
			if c.Slug == "" {
				c.Slug = slug
			}
			s.Categories[slug] = c
		}
	}

	loadTable(ctx, src, BrandsFile, &s.Brands)
	loadTable(ctx, src, PricesFile, &s.Prices)
	loadTable(ctx, src, ActionPricesFile, &s.ActionPrices)
	loadTable(ctx, src, FilterKeysFile, &s.FilterKeys)

	if dups := s.index(); len(dups) > 0 {
		logrus.WithField("duplicates", dups).Warn("Catalog contains duplicate product keys")
	}

	logrus.WithFields(logrus.Fields{
		"products":   len(s.Products),
		"categories": len(s.Categories),
		"brands":     len(s.Brands),
	}).Info("Catalog loaded")

	return s
}

func loadProducts(ctx context.Context, src Source) []models.Product {
	var raw []json.RawMessage
	if !loadTable(ctx, src, ProductsFile, &raw) {
		return []models.Product{}
	}

	products := make([]models.Product, 0, len(raw))
	for i, item := range raw {
		var p models.Product
		if err := json.Unmarshal(item, &p); err != nil {
			logrus.WithError(err).WithField("index", i).Warn("Skipping malformed product")
			continue
		}
		if p.ID == "" || p.Slug == "" {
			logrus.WithFields(logrus.Fields{
				"index": i,
				"id":    p.ID,
				"slug":  p.Slug,
			}).Warn("Skipping product without id or slug")
			continue
		}
		products = append(products, p)
	}
	return products
}

// loadTable decodes name into dst and reports whether it succeeded.
// dst keeps its previous value on failure.
func loadTable(ctx context.Context, src Source, name string, dst interface{}) bool {
	data, err := src.ReadFile(ctx, name)
	if err != nil {
		entry := logrus.WithError(err).WithField("table", name)
		if errors.Is(err, ErrTableNotFound) {
			entry.Warn("Catalog table missing")
		} else {
			entry.Error("Failed to read catalog table")
		}
		return false
	}

	if err := decodeInto(data, dst); err != nil {
		logrus.WithError(err).WithField("table", name).Error("Failed to parse catalog table")
		return false
	}
	return true
}

func decodeInto(data []byte, dst interface{}) error {
	switch out := dst.(type) {
	case *models.Prices:
		// Prices may be written as numbers or numeric strings. A bad entry
		// drops only that price.
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		prices := make(models.Prices, len(raw))
		for id, entry := range raw {
			f, err := parsePrice(entry)
			if err != nil {
				logrus.WithError(err).WithField("id", id).Warn("Skipping malformed price")
				continue
			}
			prices[id] = f
		}
		*out = prices
		return nil
	default:
		return json.Unmarshal(data, dst)
	}
}

func parsePrice(entry json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(entry, &n); err != nil {
		return 0, err
	}
	if n == "" {
		return 0, errors.New("price is empty")
	}
	return n.Float64()
}
