package parcelform

import (
	"strconv"
	"strings"
)

// Category is the packageType discriminator. It selects the rule set applied
// to every other field.
type Category string

// Wire spellings follow the shipment form ("standart" included).
const (
	Standard Category = "standart"
	Document Category = "document"
	Letter   Category = "letter"
)

// Categories returns every supported Category in display order.
func Categories() []Category { return []Category{Standard, Document, Letter} }

// Valid reports whether c is one of the supported categories.
func (c Category) Valid() bool {
	switch c {
	case Standard, Document, Letter:
		return true
	default:
		return false
	}
}

// ParseCategory maps a wire value to a Category. Anything outside the
// enumerated set yields a *CategoryError.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", &CategoryError{Value: s}
	}
	return c, nil
}

// Field names a request/record attribute using its wire key.
type Field string

const (
	FieldCityFrom            Field = "cityFrom"
	FieldCityTo              Field = "cityTo"
	FieldPackageType         Field = "packageType"
	FieldWeight              Field = "weight"
	FieldTheBiggestSide      Field = "theBiggestSide"
	FieldPrice               Field = "price"
	FieldCheckedServiceNames Field = "checkedServiceNames"
)

// ValueKind tells how a raw Value arrived.
type ValueKind int

const (
	KindEmpty ValueKind = iota
	KindText
	KindNumber
)

func (k ValueKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "empty"
	}
}

// Value is a raw, unvalidated scalar as typed into a form: empty, free text
// or a number. The zero Value is empty.
type Value struct {
	kind ValueKind
	text string
	num  float64
}

// Empty is the absent value.
var Empty = Value{}

// Text wraps user-typed text. Blank text is treated as empty.
func Text(s string) Value {
	if strings.TrimSpace(s) == "" {
		return Value{}
	}
	return Value{kind: KindText, text: s}
}

// Number wraps an already numeric input.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsEmpty() bool   { return v.kind == KindEmpty }

// Float returns the number for KindNumber values.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// String returns the text form of the value ("" when empty).
func (v Value) String() string {
	switch v.kind {
	case KindText:
		return v.text
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	default:
		return ""
	}
}

// MarshalJSON renders empty as null, text as a string and numbers as numbers.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindText:
		return []byte(strconv.Quote(v.text)), nil
	case KindNumber:
		return []byte(strconv.FormatFloat(v.num, 'g', -1, 64)), nil
	default:
		return []byte("null"), nil
	}
}

// RawInput is the unvalidated record supplied by the form collaborator. It is
// built fresh for every submission attempt.
type RawInput struct {
	CityFrom            string   `json:"cityFrom"`
	CityTo              string   `json:"cityTo"`
	PackageType         Category `json:"packageType"`
	Weight              Value    `json:"weight"`
	TheBiggestSide      Value    `json:"theBiggestSide"`
	Price               Value    `json:"price"`
	CheckedServiceNames []string `json:"checkedServiceNames,omitempty"`
}

// Numeric returns the raw value of one of the numeric fields.
func (r RawInput) Numeric(f Field) Value {
	switch f {
	case FieldWeight:
		return r.Weight
	case FieldTheBiggestSide:
		return r.TheBiggestSide
	case FieldPrice:
		return r.Price
	default:
		return Empty
	}
}

// Shipment is the normalized record. Fields the category removes are nil and
// omitted from JSON, never zero.
type Shipment struct {
	CityFrom         string   `json:"cityFrom"`
	CityTo           string   `json:"cityTo"`
	PackageType      Category `json:"packageType"`
	Weight           float64  `json:"weight"`
	TheBiggestSide   *int64   `json:"theBiggestSide,omitempty"`
	Price            *int64   `json:"price,omitempty"`
	SelectedServices []string `json:"selectedServices"`
}

// ServiceOption is one entry of the add-on services checklist.
type ServiceOption struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

// CheckedNames returns the names of checked options, in list order.
func CheckedNames(opts []ServiceOption) []string {
	var out []string
	for _, o := range opts {
		if o.Checked {
			out = append(out, o.Name)
		}
	}
	return out
}
