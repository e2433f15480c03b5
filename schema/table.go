package schema

import (
	"github.com/reoring/parcelform"
	"github.com/reoring/parcelform/codec"
)

// Mode is the per-category treatment of a field.
type Mode int

const (
	// Validated fields are read from input and checked against their bounds.
	Validated Mode = iota
	// Forced fields ignore input and always carry Const.
	Forced
	// Removed fields are neither validated nor emitted.
	Removed
)

func (m Mode) String() string {
	switch m {
	case Forced:
		return "forced"
	case Removed:
		return "removed"
	default:
		return "validated"
	}
}

// NumberRule describes one numeric field under one category.
type NumberRule struct {
	Mode       Mode
	Required   bool
	HasDefault bool
	Default    float64
	Min, Max   float64
	Round      codec.Rounding
	Const      float64
	// Optional overrides for the bound messages.
	MinMessage string
	MaxMessage string
}

// CategoryRules is one row of the rule table.
type CategoryRules struct {
	Weight         NumberRule
	TheBiggestSide NumberRule
	Price          NumberRule
}

// For returns the rule for a numeric field. Non-numeric fields report Removed.
func (r CategoryRules) For(f parcelform.Field) NumberRule {
	switch f {
	case parcelform.FieldWeight:
		return r.Weight
	case parcelform.FieldTheBiggestSide:
		return r.TheBiggestSide
	case parcelform.FieldPrice:
		return r.Price
	default:
		return NumberRule{Mode: Removed}
	}
}

// NumericFields lists the category-dependent fields in evaluation order.
var NumericFields = []parcelform.Field{
	parcelform.FieldWeight,
	parcelform.FieldTheBiggestSide,
	parcelform.FieldPrice,
}

var (
	weightRule = NumberRule{Mode: Validated, Required: true, Min: 1, Max: 2000}
	sideRule   = NumberRule{
		Mode: Validated, Required: true, Min: 1, Max: 4000, Round: codec.RoundFloor,
		MinMessage: "Side cannot be smaller than 1 cm",
		MaxMessage: "Side cannot be bigger than 40 meters",
	}
	priceRule = NumberRule{Mode: Validated, HasDefault: true, Default: 50, Min: 50, Max: 100000, Round: codec.RoundTrunc}
)

// table holds every category's rules; a field's mode is an exhaustive choice
// per category so evaluation order never matters.
var table = map[parcelform.Category]CategoryRules{
	parcelform.Standard: {
		Weight:         weightRule,
		TheBiggestSide: sideRule,
		Price:          priceRule,
	},
	parcelform.Document: {
		Weight:         NumberRule{Mode: Forced, Const: 1},
		TheBiggestSide: NumberRule{Mode: Forced, Const: 35},
		Price:          NumberRule{Mode: Forced, Const: 500},
	},
	parcelform.Letter: {
		Weight:         weightRule,
		TheBiggestSide: NumberRule{Mode: Removed},
		Price:          NumberRule{Mode: Removed},
	},
}

// RulesFor returns the rule row for c.
func RulesFor(c parcelform.Category) (CategoryRules, error) {
	r, ok := table[c]
	if !ok {
		return CategoryRules{}, &parcelform.CategoryError{Value: string(c)}
	}
	return r, nil
}

// VisibleFields returns the inputs a form shows for c: the shared fields, the
// numeric fields validated under c, and the services checklist.
func VisibleFields(c parcelform.Category) ([]parcelform.Field, error) {
	r, err := RulesFor(c)
	if err != nil {
		return nil, err
	}
	out := []parcelform.Field{parcelform.FieldCityFrom, parcelform.FieldCityTo, parcelform.FieldPackageType}
	for _, f := range NumericFields {
		if r.For(f).Mode == Validated {
			out = append(out, f)
		}
	}
	return append(out, parcelform.FieldCheckedServiceNames), nil
}
