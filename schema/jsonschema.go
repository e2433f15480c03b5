package schema

import (
	"fmt"

	"github.com/reoring/parcelform"
	js "github.com/reoring/parcelform/jsonschema"
)

// JSONSchema projects the normalized Shipment contract for c: validated
// fields carry their bounds, forced fields a const, removed fields are absent.
func (e *Engine) JSONSchema(c parcelform.Category) (*js.Schema, error) {
	rs, err := RulesFor(c)
	if err != nil {
		return nil, err
	}
	names, err := e.catalog.Names(c)
	if err != nil {
		return nil, err
	}
	city := &js.Schema{Type: "string", Pattern: CityPattern.String()}
	props := map[string]*js.Schema{
		string(parcelform.FieldCityFrom):    city,
		string(parcelform.FieldCityTo):      city,
		string(parcelform.FieldPackageType): {Type: "string", Const: string(c)},
	}
	required := []string{
		string(parcelform.FieldCityFrom),
		string(parcelform.FieldCityTo),
		string(parcelform.FieldPackageType),
	}
	for _, f := range NumericFields {
		r := rs.For(f)
		if r.Mode == Removed {
			continue
		}
		typ := "integer"
		if f == parcelform.FieldWeight {
			typ = "number"
		}
		p := &js.Schema{Type: typ}
		if r.Mode == Forced {
			p.Const = r.Const
		} else {
			p.Minimum = js.Float(r.Min)
			p.Maximum = js.Float(r.Max)
			p.ExclusiveMinimum = js.Float(0)
			if r.HasDefault {
				p.Default = r.Default
			}
		}
		props[string(f)] = p
		required = append(required, string(f))
	}
	enum := make([]any, len(names))
	for i, n := range names {
		enum[i] = n
	}
	props["selectedServices"] = &js.Schema{
		Type:        "array",
		Items:       &js.Schema{Type: "string", Enum: enum},
		UniqueItems: true,
	}
	required = append(required, "selectedServices")

	return &js.Schema{
		Schema:               js.Draft,
		Title:                fmt.Sprintf("shipment (%s)", c),
		Type:                 "object",
		Properties:           props,
		Required:             required,
		AdditionalProperties: false,
	}, nil
}

// JSONSchema uses an Engine over the built-in catalog.
func JSONSchema(c parcelform.Category) (*js.Schema, error) { return defaultEngine.JSONSchema(c) }
