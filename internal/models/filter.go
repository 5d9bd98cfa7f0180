// internal/models/filter.go
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type FilterKind string

const (
	FilterKindSelect      FilterKind = "select"
	FilterKindNumericEnum FilterKind = "numeric-enum"
	FilterKindRange       FilterKind = "range"
	FilterKindCheckboxSet FilterKind = "checkbox-set"
)

// FilterOption describes the widget generated for one attribute key.
// Implementations: SelectFilter, NumericEnumFilter, RangeFilter, CheckboxSetFilter.
type FilterOption interface {
	Kind() FilterKind
	Label() string
}

// FilterConfig maps attribute key to its generated option.
type FilterConfig map[string]FilterOption

type SelectFilter struct {
	Title  string
	Values []string
}

type NumericEnumFilter struct {
	Title  string
	Values []string
}

type RangeFilter struct {
	Title string
	Min   float64
	Max   float64
	Step  float64
}

type CheckboxSetFilter struct {
	Title  string
	Values []string
}

func (f SelectFilter) Kind() FilterKind      { return FilterKindSelect }
func (f NumericEnumFilter) Kind() FilterKind { return FilterKindNumericEnum }
func (f RangeFilter) Kind() FilterKind       { return FilterKindRange }
func (f CheckboxSetFilter) Kind() FilterKind { return FilterKindCheckboxSet }

func (f SelectFilter) Label() string      { return f.Title }
func (f NumericEnumFilter) Label() string { return f.Title }
func (f RangeFilter) Label() string       { return f.Title }
func (f CheckboxSetFilter) Label() string { return f.Title }

type valuesFilterJSON struct {
	Type   FilterKind `json:"type"`
	Title  string     `json:"title"`
	Values []string   `json:"values"`
}

func (f SelectFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(valuesFilterJSON{Type: f.Kind(), Title: f.Title, Values: nonNil(f.Values)})
}

func (f NumericEnumFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(valuesFilterJSON{Type: f.Kind(), Title: f.Title, Values: nonNil(f.Values)})
}

func (f CheckboxSetFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(valuesFilterJSON{Type: f.Kind(), Title: f.Title, Values: nonNil(f.Values)})
}

func (f RangeFilter) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  FilterKind `json:"type"`
		Title string     `json:"title"`
		Min   float64    `json:"min"`
		Max   float64    `json:"max"`
		Step  float64    `json:"step"`
	}{f.Kind(), f.Title, f.Min, f.Max, f.Step})
}

// Constraint is one active filter selection.
// Implementations: ExactMatch, AnyOf, NumberRange.
type Constraint interface {
	// Active is false for selections that must be ignored (empty string, zero).
	Active() bool
}

// ExactMatch is a select or numeric-enum selection compared by string form.
type ExactMatch struct {
	Value AttrValue
}

// AnyOf is a checkbox selection.
type AnyOf struct {
	Values []string
}

// NumberRange is an inclusive range; nil bounds are open.
type NumberRange struct {
	Min *float64
	Max *float64
}

func (c ExactMatch) Active() bool {
	switch c.Value.Kind() {
	case AttrString:
		return c.Value.String() != ""
	case AttrNumber:
		n, _ := c.Value.Float()
		return n != 0 && !math.IsNaN(n)
	case AttrList:
		return true
	default:
		return false
	}
}

func (c AnyOf) Active() bool       { return c.Values != nil }
func (c NumberRange) Active() bool { return true }

func (c ExactMatch) MarshalJSON() ([]byte, error) { return c.Value.MarshalJSON() }
func (c AnyOf) MarshalJSON() ([]byte, error)      { return json.Marshal(nonNil(c.Values)) }
func (c NumberRange) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Min *float64 `json:"min,omitempty"`
		Max *float64 `json:"max,omitempty"`
	}{c.Min, c.Max})
}

// ActiveFilters maps attribute key to its selection. A nil entry is ignored.
type ActiveFilters map[string]Constraint

// UnmarshalJSON accepts the shapes a filter UI submits: scalars, string lists,
// {"min":..,"max":..} objects and null/false for cleared selections.
func (a *ActiveFilters) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make(ActiveFilters, len(raw))
	for key, value := range raw {
		c, err := ParseConstraint(value)
		if err != nil {
			return fmt.Errorf("filter %q: %w", key, err)
		}
		out[key] = c
	}
	*a = out
	return nil
}

// ParseConstraint decodes one JSON selection. Cleared selections decode to nil.
func ParseConstraint(data []byte) (Constraint, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	switch trimmed[0] {
	case 'n', 'f':
		return nil, nil
	case 't':
		return ExactMatch{Value: StringValue("true")}, nil
	case '[':
		v, err := parseAttrValue(trimmed)
		if err != nil {
			return nil, err
		}
		return AnyOf{Values: append([]string{}, v.List()...)}, nil
	case '{':
		var bounds map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &bounds); err != nil {
			return nil, err
		}
		var r NumberRange
		var err error
		if r.Min, err = parseBound(bounds["min"]); err != nil {
			return nil, fmt.Errorf("min: %w", err)
		}
		if r.Max, err = parseBound(bounds["max"]); err != nil {
			return nil, fmt.Errorf("max: %w", err)
		}
		return r, nil
	default:
		v, err := parseAttrValue(trimmed)
		if err != nil {
			return nil, err
		}
		return ExactMatch{Value: v}, nil
	}
}

func parseBound(raw json.RawMessage) (*float64, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var n float64
	if err := json.Unmarshal(trimmed, &n); err == nil {
		return &n, nil
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return nil, fmt.Errorf("bound must be a number")
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("bound must be a number")
	}
	return &n, nil
}
