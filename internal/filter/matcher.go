// internal/filter/matcher.go
package filter

import (
	"github.com/javajoker/storefront-backend/internal/models"
)

// FilterProducts keeps the products that satisfy every active selection.
// Input order is preserved.
func FilterProducts(products []models.Product, active models.ActiveFilters) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if Matches(p, active) {
			out = append(out, p)
		}
	}
	return out
}

// Matches reports whether p satisfies all selections in active.
func Matches(p models.Product, active models.ActiveFilters) bool {
	for key, constraint := range active {
		if constraint == nil || !constraint.Active() {
			continue
		}

		value := p.Field(key)
		if !value.HasValue() {
			return false
		}
		if !satisfies(value, constraint) {
			return false
		}
	}
	return true
}

func satisfies(value models.AttrValue, constraint models.Constraint) bool {
	switch c := constraint.(type) {
	case models.AnyOf:
		s := value.String()
		for _, candidate := range c.Values {
			if candidate == s {
				return true
			}
		}
		return false
	case models.NumberRange:
		n, ok := value.ToNumber()
		if !ok {
			return false
		}
		if c.Min != nil && n < *c.Min {
			return false
		}
		if c.Max != nil && n > *c.Max {
			return false
		}
		return true
	case models.ExactMatch:
		return value.String() == c.Value.String()
	default:
		return false
	}
}
