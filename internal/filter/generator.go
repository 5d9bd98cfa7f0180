// internal/filter/generator.go

// Package filter derives filter widgets from a product set and narrows
// product sets by active filter selections.
package filter

import (
	"math"
	"sort"

	"github.com/javajoker/storefront-backend/internal/models"
)

const (
	// Integer attributes with more distinct values than this become ranges.
	numericEnumLimit = 5
	// String attributes with more distinct values than this become selects.
	checkboxSetLimit = 3

	integerStep    = 1
	fractionalStep = 0.1
)

// GenerateFilterConfig builds one filter option per attribute key found in products.
// Structural keys and excludeKeys are skipped; titles come from labels.
func GenerateFilterConfig(products []models.Product, labels models.FilterKeys, excludeKeys []string) models.FilterConfig {
	excluded := make(map[string]struct{}, len(excludeKeys))
	for _, k := range excludeKeys {
		excluded[k] = struct{}{}
	}

	config := make(models.FilterConfig)
	for _, key := range attributeKeys(products) {
		if _, skip := excluded[key]; skip {
			continue
		}
		config[key] = DetectFilterType(products, key, labels.Label(key))
	}
	return config
}

// DetectFilterType classifies the present values of key across products.
func DetectFilterType(products []models.Product, key, title string) models.FilterOption {
	values := make([]models.AttrValue, 0, len(products))
	for _, p := range products {
		if v := p.Field(key); v.HasValue() {
			values = append(values, v)
		}
	}

	if len(values) == 0 {
		return models.SelectFilter{Title: title}
	}

	if allNumbers(values) {
		return numericOption(values, title)
	}

	distinct := distinctStrings(values)
	sort.Strings(distinct)
	if len(distinct) > checkboxSetLimit {
		return models.SelectFilter{Title: title, Values: distinct}
	}
	return models.CheckboxSetFilter{Title: title, Values: distinct}
}

func numericOption(values []models.AttrValue, title string) models.FilterOption {
	lo, hi := math.Inf(1), math.Inf(-1)
	integers := true
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		n, _ := v.Float()
		lo = math.Min(lo, n)
		hi = math.Max(hi, n)
		seen[n] = struct{}{}
		if !v.IsInteger() {
			integers = false
		}
	}

	if !integers {
		return models.RangeFilter{Title: title, Min: lo, Max: hi, Step: fractionalStep}
	}
	if len(seen) > numericEnumLimit {
		return models.RangeFilter{Title: title, Min: lo, Max: hi, Step: integerStep}
	}

	nums := make([]float64, 0, len(seen))
	for n := range seen {
		nums = append(nums, n)
	}
	sort.Float64s(nums)

	out := make([]string, len(nums))
	for i, n := range nums {
		out[i] = models.FormatNumber(n)
	}
	return models.NumericEnumFilter{Title: title, Values: out}
}

// attributeKeys returns the sorted union of non-structural keys.
func attributeKeys(products []models.Product) []string {
	set := make(map[string]struct{})
	for _, p := range products {
		for k := range p.Attributes {
			if !models.IsStructuralKey(k) {
				set[k] = struct{}{}
			}
		}
	}

	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func allNumbers(values []models.AttrValue) bool {
	for _, v := range values {
		if !v.IsNumber() {
			return false
		}
	}
	return true
}

func distinctStrings(values []models.AttrValue) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		s := v.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
