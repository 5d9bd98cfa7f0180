// internal/models/category.go
package models

import (
	"encoding/json"
)

type Category struct {
	Slug              string   `json:"slug"`
	Title             string   `json:"title"`
	SEOTitle          string   `json:"seotitle,omitempty"`
	SEODescription    string   `json:"seodesc,omitempty"`
	Description       string   `json:"description,omitempty"`
	Parents           []string `json:"parent,omitempty"`
	ExcludeKeys       []string `json:"exclude_keys,omitempty"`
	FilterKeysExclude []string `json:"filterkeys_exclude,omitempty"`
}

// Parent returns the primary parent slug; list parents use their first entry.
func (c Category) Parent() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

func (c *Category) UnmarshalJSON(data []byte) error {
	type alias Category
	var aux struct {
		alias
		Parent json.RawMessage `json:"parent"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*c = Category(aux.alias)
	c.Parents = nil
	if len(aux.Parent) > 0 {
		parsed, err := parseAttrValue(aux.Parent)
		if err != nil {
			return err
		}
		c.Parents = stringList(parsed)
	}
	return nil
}

// Categories is keyed by category slug.
type Categories map[string]Category

// Brands maps brand slug to display name.
type Brands map[string]string

// Prices maps product id to price.
type Prices map[string]float64

// FilterKeys maps attribute key to a human readable label.
type FilterKeys map[string]string

// Label returns the label for key or the key itself.
func (k FilterKeys) Label(key string) string {
	if label, ok := k[key]; ok && label != "" {
		return label
	}
	return key
}
