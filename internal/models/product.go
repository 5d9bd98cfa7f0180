// internal/models/product.go
package models

import (
	"encoding/json"
	"fmt"
)

// Structural product keys. They are never turned into filters.
const (
	KeyID         = "id"
	KeySlug       = "slug"
	KeyTitle      = "title"
	KeyCategories = "categories"
	KeyDesc       = "desc"
	KeyImg        = "img"
	KeyBadge      = "badge"
	KeyBrand      = "brand"
)

var structuralKeys = map[string]struct{}{
	KeyID:         {},
	KeySlug:       {},
	KeyTitle:      {},
	KeyCategories: {},
	KeyDesc:       {},
	KeyImg:        {},
	KeyBadge:      {},
	KeyBrand:      {},
}

// IsStructuralKey reports whether key belongs to the fixed product core.
func IsStructuralKey(key string) bool {
	_, ok := structuralKeys[key]
	return ok
}

// Product is a catalog record: a fixed core plus an open set of attributes.
type Product struct {
	ID          string
	Slug        string
	Title       string
	Categories  []string
	Description string
	Images      []string
	Badge       string
	Brand       string
	Attributes  map[string]AttrValue
}

// Attr returns an attribute value; absent keys yield an AttrAbsent value.
func (p Product) Attr(key string) AttrValue {
	if v, ok := p.Attributes[key]; ok {
		return v
	}
	return AttrValue{}
}

// Field resolves any key, structural or attribute, to a tagged value.
func (p Product) Field(key string) AttrValue {
	switch key {
	case KeyID:
		return optionalString(p.ID)
	case KeySlug:
		return optionalString(p.Slug)
	case KeyTitle:
		return optionalString(p.Title)
	case KeyDesc:
		return optionalString(p.Description)
	case KeyBadge:
		return optionalString(p.Badge)
	case KeyBrand:
		return optionalString(p.Brand)
	case KeyCategories:
		if p.Categories == nil {
			return AttrValue{}
		}
		return ListValue(p.Categories)
	case KeyImg:
		if p.Images == nil {
			return AttrValue{}
		}
		return ListValue(p.Images)
	default:
		return p.Attr(key)
	}
}

// AttributeKeys lists the non-structural keys carried by the product.
func (p Product) AttributeKeys() []string {
	keys := make([]string, 0, len(p.Attributes))
	for k := range p.Attributes {
		keys = append(keys, k)
	}
	return keys
}

// InCategory reports category membership by slug.
func (p Product) InCategory(slug string) bool {
	for _, c := range p.Categories {
		if c == slug {
			return true
		}
	}
	return false
}

func optionalString(s string) AttrValue {
	if s == "" {
		return AttrValue{}
	}
	return StringValue(s)
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{Attributes: make(map[string]AttrValue)}
	for key, value := range raw {
		parsed, err := parseAttrValue(value)
		if err != nil {
			return fmt.Errorf("product field %q: %w", key, err)
		}

		switch key {
		case KeyID:
			p.ID = scalarString(parsed)
		case KeySlug:
			p.Slug = scalarString(parsed)
		case KeyTitle:
			p.Title = scalarString(parsed)
		case KeyDesc:
			p.Description = scalarString(parsed)
		case KeyBadge:
			p.Badge = scalarString(parsed)
		case KeyBrand:
			p.Brand = scalarString(parsed)
		case KeyCategories:
			p.Categories = stringList(parsed)
		case KeyImg:
			p.Images = stringList(parsed)
		default:
			p.Attributes[key] = parsed
		}
	}
	return nil
}

func (p Product) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(p.Attributes)+8)
	for k, v := range p.Attributes {
		out[k] = v
	}
	out[KeyID] = p.ID
	out[KeySlug] = p.Slug
	out[KeyTitle] = p.Title
	out[KeyCategories] = nonNil(p.Categories)
	if p.Description != "" {
		out[KeyDesc] = p.Description
	}
	if len(p.Images) > 0 {
		out[KeyImg] = p.Images
	}
	if p.Badge != "" {
		out[KeyBadge] = p.Badge
	}
	if p.Brand != "" {
		out[KeyBrand] = p.Brand
	}
	return json.Marshal(out)
}

func scalarString(v AttrValue) string {
	if !v.HasValue() {
		return ""
	}
	return v.String()
}

// stringList normalizes "a" and ["a","b"] into a slice.
func stringList(v AttrValue) []string {
	switch v.Kind() {
	case AttrList:
		return append([]string(nil), v.List()...)
	case AttrString, AttrNumber:
		return []string{v.String()}
	default:
		return nil
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
