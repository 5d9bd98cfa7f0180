package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/javajoker/storefront-backend/internal/models"
)

func ptr(f float64) *float64 { return &f }

func ids(products []models.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.ID
	}
	return out
}

func TestFilterProducts_RangeScenario(t *testing.T) {
	products := numbers("power_kw", 10, 20, 30)
	active := models.ActiveFilters{"power_kw": models.NumberRange{Min: ptr(15), Max: ptr(25)}}

	assert.Equal(t, []string{"2"}, ids(FilterProducts(products, active)))
}

func TestFilterProducts_RangeInclusiveBounds(t *testing.T) {
	products := numbers("power_kw", 10, 20, 30)

	active := models.ActiveFilters{"power_kw": models.NumberRange{Min: ptr(10), Max: ptr(30)}}
	assert.Equal(t, []string{"1", "2", "3"}, ids(FilterProducts(products, active)))

	open := models.ActiveFilters{"power_kw": models.NumberRange{Min: ptr(20)}}
	assert.Equal(t, []string{"2", "3"}, ids(FilterProducts(products, open)))
}

func TestFilterProducts_RangeCoercesStrings(t *testing.T) {
	products := strs("area_max", "120", "n/a", " 80 ")
	active := models.ActiveFilters{"area_max": models.NumberRange{Max: ptr(100)}}

	assert.Equal(t, []string{"3"}, ids(FilterProducts(products, active)))
}

func TestFilterProducts_EmptyConstraintsIsIdentity(t *testing.T) {
	products := strs("country", "DE", "IT")
	assert.Equal(t, products, FilterProducts(products, models.ActiveFilters{}))
	assert.Equal(t, products, FilterProducts(products, nil))
}

func TestFilterProducts_IgnoredSelections(t *testing.T) {
	products := strs("country", "DE", "IT")
	active := models.ActiveFilters{
		"country":  nil,
		"mode":     models.ExactMatch{Value: models.StringValue("")},
		"power_kw": models.ExactMatch{Value: models.NumberValue(0)},
	}
	assert.Equal(t, []string{"1", "2"}, ids(FilterProducts(products, active)))
}

func TestFilterProducts_MissingKeyFails(t *testing.T) {
	products := []models.Product{
		product("1", map[string]models.AttrValue{"country": models.StringValue("DE")}),
		product("2", nil),
	}
	active := models.ActiveFilters{"country": models.AnyOf{Values: []string{"DE", "IT"}}}
	assert.Equal(t, []string{"1"}, ids(FilterProducts(products, active)))
}

func TestFilterProducts_NullValueCountsAsMissing(t *testing.T) {
	products := []models.Product{
		product("1", map[string]models.AttrValue{"height": models.NumberValue(0)}),
		product("2", map[string]models.AttrValue{"height": models.NullValue()}),
	}

	zeroUp := models.ActiveFilters{"height": models.NumberRange{Min: ptr(0)}}
	assert.Equal(t, []string{"1"}, ids(FilterProducts(products, zeroUp)))

	literal := models.ActiveFilters{"height": models.AnyOf{Values: []string{"null", "0"}}}
	assert.Equal(t, []string{"1"}, ids(FilterProducts(products, literal)))

	exact := models.ActiveFilters{"height": models.ExactMatch{Value: models.StringValue("null")}}
	assert.Empty(t, FilterProducts(products, exact))
}

func TestFilterProducts_AnyOf(t *testing.T) {
	products := strs("country", "DE", "IT", "RU")
	active := models.ActiveFilters{"country": models.AnyOf{Values: []string{"RU", "DE"}}}
	assert.Equal(t, []string{"1", "3"}, ids(FilterProducts(products, active)))

	none := models.ActiveFilters{"country": models.AnyOf{Values: []string{}}}
	assert.Empty(t, FilterProducts(products, none))
}

func TestFilterProducts_ExactMatchByStringForm(t *testing.T) {
	products := numbers("power_kw", 24, 28)
	active := models.ActiveFilters{"power_kw": models.ExactMatch{Value: models.StringValue("28")}}
	assert.Equal(t, []string{"2"}, ids(FilterProducts(products, active)))
}

func TestFilterProducts_StructuralKey(t *testing.T) {
	products := strs("country", "DE", "IT")
	products[1].Brand = "baxi"
	active := models.ActiveFilters{"brand": models.ExactMatch{Value: models.StringValue("baxi")}}
	assert.Equal(t, []string{"2"}, ids(FilterProducts(products, active)))
}

func TestFilterProducts_AndAcrossKeys(t *testing.T) {
	products := []models.Product{
		product("1", map[string]models.AttrValue{"country": models.StringValue("DE"), "power_kw": models.NumberValue(24)}),
		product("2", map[string]models.AttrValue{"country": models.StringValue("DE"), "power_kw": models.NumberValue(35)}),
		product("3", map[string]models.AttrValue{"country": models.StringValue("IT"), "power_kw": models.NumberValue(24)}),
	}
	active := models.ActiveFilters{
		"country":  models.AnyOf{Values: []string{"DE"}},
		"power_kw": models.NumberRange{Max: ptr(30)},
	}
	assert.Equal(t, []string{"1"}, ids(FilterProducts(products, active)))
}

func TestFilterProducts_Idempotent(t *testing.T) {
	products := strs("country", "DE", "IT", "DE", "FR")
	active := models.ActiveFilters{"country": models.AnyOf{Values: []string{"DE", "FR"}}}

	once := FilterProducts(products, active)
	assert.Equal(t, once, FilterProducts(once, active))
}
