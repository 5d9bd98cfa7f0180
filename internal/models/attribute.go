// internal/models/attribute.go
package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// AttrKind tags the dynamic value of a product attribute.
type AttrKind int

const (
	AttrAbsent AttrKind = iota
	AttrNull
	AttrString
	AttrNumber
	AttrList
)

// AttrValue is a tagged attribute value: absent, null, string, number or a list of strings.
type AttrValue struct {
	kind AttrKind
	str  string
	num  float64
	list []string
}

func StringValue(s string) AttrValue {
	return AttrValue{kind: AttrString, str: s}
}

func NumberValue(n float64) AttrValue {
	return AttrValue{kind: AttrNumber, num: n}
}

func ListValue(items []string) AttrValue {
	cp := make([]string, len(items))
	copy(cp, items)
	return AttrValue{kind: AttrList, list: cp}
}

func NullValue() AttrValue {
	return AttrValue{kind: AttrNull}
}

func (v AttrValue) Kind() AttrKind { return v.kind }

// HasValue reports whether the value is present and not null.
func (v AttrValue) HasValue() bool {
	return v.kind != AttrAbsent && v.kind != AttrNull
}

func (v AttrValue) IsNumber() bool { return v.kind == AttrNumber }

// Float returns the raw number for numeric values.
func (v AttrValue) Float() (float64, bool) {
	if v.kind != AttrNumber {
		return 0, false
	}
	return v.num, true
}

// IsInteger reports whether the value is a number without a fractional part.
func (v AttrValue) IsInteger() bool {
	if v.kind != AttrNumber || math.IsInf(v.num, 0) || math.IsNaN(v.num) {
		return false
	}
	return v.num == math.Trunc(v.num)
}

func (v AttrValue) List() []string {
	if v.kind != AttrList {
		return nil
	}
	return v.list
}

// String returns the display form used for comparisons. Lists are joined with commas.
func (v AttrValue) String() string {
	switch v.kind {
	case AttrString:
		return v.str
	case AttrNumber:
		return FormatNumber(v.num)
	case AttrList:
		return strings.Join(v.list, ",")
	case AttrNull:
		return "null"
	default:
		return ""
	}
}

// ToNumber coerces the value to a number. Blank strings coerce to zero.
func (v AttrValue) ToNumber() (float64, bool) {
	switch v.kind {
	case AttrNumber:
		return v.num, !math.IsNaN(v.num)
	case AttrString, AttrList:
		s := strings.TrimSpace(v.String())
		if s == "" {
			return 0, true
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// Equal compares kind and payload.
func (v AttrValue) Equal(o AttrValue) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case AttrNumber:
		return v.num == o.num
	case AttrList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if v.list[i] != o.list[i] {
				return false
			}
		}
		return true
	default:
		return v.str == o.str
	}
}

// FormatNumber renders a number the way it is shown in filter values.
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	if math.Abs(n) >= 1e21 {
		return strconv.FormatFloat(n, 'g', -1, 64)
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

func (v AttrValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case AttrString:
		return json.Marshal(v.str)
	case AttrNumber:
		return json.Marshal(v.num)
	case AttrList:
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}

func (v *AttrValue) UnmarshalJSON(data []byte) error {
	parsed, err := parseAttrValue(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// parseAttrValue maps arbitrary JSON onto an attribute value. Booleans and objects
// keep their compact JSON text as a string value.
func parseAttrValue(data []byte) (AttrValue, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return NullValue(), nil
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return AttrValue{}, err
		}
		return StringValue(s), nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return AttrValue{}, err
		}
		items := make([]string, 0, len(raw))
		for _, item := range raw {
			elem, err := parseAttrValue(item)
			if err != nil {
				return AttrValue{}, err
			}
			if elem.Kind() == AttrNull {
				items = append(items, "")
				continue
			}
			items = append(items, elem.String())
		}
		return ListValue(items), nil
	case '{', 't', 'f':
		var buf bytes.Buffer
		if err := json.Compact(&buf, trimmed); err != nil {
			return AttrValue{}, err
		}
		return StringValue(buf.String()), nil
	default:
		var n float64
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return AttrValue{}, err
		}
		return NumberValue(n), nil
	}
}
