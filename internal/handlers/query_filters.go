// internal/handlers/query_filters.go
package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

const (
	rangeMinSuffix = "_min"
	rangeMaxSuffix = "_max"
)

// parseQueryFilters turns query parameters into filter selections:
//
//	power_kw_min=20&power_kw_max=30 -> NumberRange
//	country=IT&country=DE, country=IT,DE -> AnyOf
//	brand=baxi -> ExactMatch
//
// Pagination and sorting keys are skipped. Keys ending in _min or _max are
// always range bounds and a comma always splits a value, so attributes named
// like "temp_min" or values containing commas are exact-matched through
// POST /categories/:slug/products/search instead.
func parseQueryFilters(query url.Values) (models.ActiveFilters, error) {
	active := make(models.ActiveFilters)

	for key, values := range query {
		if _, ok := utils.PaginationQueryKeys[key]; ok {
			continue
		}

		if base, isMin := rangeKey(key); base != "" {
			bound, err := parseQueryBound(values)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			if bound == nil {
				continue
			}
			r, _ := active[base].(models.NumberRange)
			if isMin {
				r.Min = bound
			} else {
				r.Max = bound
			}
			active[base] = r
			continue
		}

		selected := splitValues(values)
		switch {
		case len(selected) == 0:
		case len(selected) == 1 && len(values) == 1 && !strings.Contains(values[0], ","):
			active[key] = models.ExactMatch{Value: queryValue(selected[0])}
		default:
			active[key] = models.AnyOf{Values: selected}
		}
	}

	return active, nil
}

// rangeKey splits "<key>_min" and "<key>_max" into the attribute key and the bound side.
func rangeKey(key string) (string, bool) {
	switch {
	case strings.HasSuffix(key, rangeMinSuffix) && len(key) > len(rangeMinSuffix):
		return strings.TrimSuffix(key, rangeMinSuffix), true
	case strings.HasSuffix(key, rangeMaxSuffix) && len(key) > len(rangeMaxSuffix):
		return strings.TrimSuffix(key, rangeMaxSuffix), false
	default:
		return "", false
	}
}

func parseQueryBound(values []string) (*float64, error) {
	raw := strings.TrimSpace(values[len(values)-1])
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("bound must be a number")
	}
	return &n, nil
}

func splitValues(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// queryValue keeps numeric selections numeric so "24.0" matches an attribute of 24.
func queryValue(raw string) models.AttrValue {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return models.NumberValue(n)
	}
	return models.StringValue(raw)
}
