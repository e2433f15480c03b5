package source

import (
	"context"
	"strings"
	"testing"

	"github.com/reoring/parcelform"
	"github.com/reoring/parcelform/schema"
)

func TestDecodeRaw_MixedNumericForms(t *testing.T) {
	js := []byte(`{
		"cityFrom": "Lviv",
		"cityTo": "Kherson",
		"packageType": "standart",
		"weight": "12.5",
		"theBiggestSide": 40.7,
		"price": null,
		"checkedServiceNames": ["Return delivery"]
	}`)
	raw, err := DecodeRaw(js)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw.CityFrom != "Lviv" || raw.CityTo != "Kherson" || raw.PackageType != parcelform.Standard {
		t.Fatalf("unexpected raw: %+v", raw)
	}
	if raw.Weight.Kind() != parcelform.KindText || raw.Weight.String() != "12.5" {
		t.Fatalf("weight should stay text, got %v %q", raw.Weight.Kind(), raw.Weight.String())
	}
	if f, ok := raw.TheBiggestSide.Float(); !ok || f != 40.7 {
		t.Fatalf("theBiggestSide = %v %v", f, ok)
	}
	if !raw.Price.IsEmpty() {
		t.Fatalf("null price should be empty")
	}
	if len(raw.CheckedServiceNames) != 1 || raw.CheckedServiceNames[0] != "Return delivery" {
		t.Fatalf("unexpected services: %v", raw.CheckedServiceNames)
	}
}

func TestDecodeRaw_PackageTypeVerbatim(t *testing.T) {
	raw, err := DecodeRaw([]byte(`{"packageType":"parcel"}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if raw.PackageType != "parcel" {
		t.Fatalf("packageType = %q", raw.PackageType)
	}
}

func TestDecodeRaw_TypeIssuesCollected(t *testing.T) {
	js := []byte(`{"cityFrom": 7, "cityTo": ["Lviv"], "weight": true, "checkedServiceNames": ["a", 1]}`)
	_, err := DecodeRaw(js)
	iss, ok := parcelform.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	want := []parcelform.Field{
		parcelform.FieldCityFrom,
		parcelform.FieldCityTo,
		parcelform.FieldCheckedServiceNames,
	}
	if len(iss) != len(want) {
		t.Fatalf("expected %d issues, got %v", len(want), iss)
	}
	for i, f := range want {
		if iss[i].Field != f || iss[i].Code != parcelform.CodeInvalidType {
			t.Fatalf("issue %d = %+v, want invalid_type on %s", i, iss[i], f)
		}
	}
	if iss[1].Params["got"] != "array" {
		t.Fatalf("expected got=array, got %v", iss[1].Params)
	}
	if iss[2].Params["index"] != 1 {
		t.Fatalf("expected index param, got %v", iss[2].Params)
	}
	if iss[0].Message != "cityFrom must be a string" {
		t.Fatalf("unexpected message %q", iss[0].Message)
	}
}

func TestDecodeRaw_NumericFieldsKeepAnyJSON(t *testing.T) {
	js := []byte(`{"weight": true, "theBiggestSide": 1e400, "price": [1, 2]}`)
	raw, err := DecodeRaw(js)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	cases := []struct {
		name string
		got  parcelform.Value
		want string
	}{
		{"weight", raw.Weight, "true"},
		{"theBiggestSide", raw.TheBiggestSide, "1e400"},
		{"price", raw.Price, "[1, 2]"},
	}
	for _, tc := range cases {
		if tc.got.Kind() != parcelform.KindText || tc.got.String() != tc.want {
			t.Fatalf("%s = %v %q, want text %q", tc.name, tc.got.Kind(), tc.got.String(), tc.want)
		}
	}
}

func TestDecodeRaw_UnknownKeys(t *testing.T) {
	js := []byte(`{"cityFrom":"Lviv","zzz":1,"checkboxes":[]}`)
	if _, err := DecodeRaw(js); err != nil {
		t.Fatalf("strip mode should ignore unknown keys, got %v", err)
	}
	_, err := DecodeRaw(js, Options{Unknown: UnknownStrict})
	iss, ok := parcelform.AsIssues(err)
	if !ok || len(iss) != 2 {
		t.Fatalf("expected 2 unknown_key issues, got %v", err)
	}
	if iss[0].Field != "checkboxes" || iss[1].Field != "zzz" || iss[0].Code != parcelform.CodeUnknownKey {
		t.Fatalf("unexpected order or codes: %v", iss)
	}
}

func TestDecodeRaw_ParseErrors(t *testing.T) {
	for _, in := range []string{`{`, `[]`, `null`, `{"a":1} {"b":2}`, ``} {
		_, err := DecodeRaw([]byte(in))
		iss, ok := parcelform.AsIssues(err)
		if !ok || len(iss) != 1 || iss[0].Code != parcelform.CodeParseError {
			t.Fatalf("%q: expected parse_error, got %v", in, err)
		}
	}
}

func TestReadRaw_MaxBytes(t *testing.T) {
	in := `{"cityFrom":"Lviv","cityTo":"Kherson"}`
	if _, err := ReadRaw(strings.NewReader(in), Options{MaxBytes: int64(len(in))}); err != nil {
		t.Fatalf("within cap: %v", err)
	}
	_, err := ReadRaw(strings.NewReader(in), Options{MaxBytes: 8})
	iss, ok := parcelform.AsIssues(err)
	if !ok || iss[0].Message != "max bytes exceeded" {
		t.Fatalf("expected size issue, got %v", err)
	}
}

func TestDecodeRaw_IgnoredFieldsValidate(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		name string
		c    parcelform.Category
		js   string
	}{
		{"document bool weight", parcelform.Document, `{"cityFrom":"Lviv","cityTo":"Kherson","packageType":"document","weight":true}`},
		{"document huge weight", parcelform.Document, `{"cityFrom":"Lviv","cityTo":"Kherson","packageType":"document","weight":1e400}`},
		{"letter array price", parcelform.Letter, `{"cityFrom":"Lviv","cityTo":"Kherson","packageType":"letter","weight":3,"price":[1]}`},
		{"letter bool price", parcelform.Letter, `{"cityFrom":"Lviv","cityTo":"Kherson","packageType":"letter","weight":3,"price":true}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw, err := DecodeRaw([]byte(tc.js))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			sh, err := schema.Validate(ctx, tc.c, raw)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if tc.c == parcelform.Letter && sh.Price != nil {
				t.Fatalf("letter price should be dropped, got %v", *sh.Price)
			}
			if tc.c == parcelform.Document && sh.Weight != 1 {
				t.Fatalf("document weight should be forced to 1, got %v", sh.Weight)
			}
		})
	}
}

func TestDecodeRaw_ValidatedFieldRejectsNonNumber(t *testing.T) {
	js := `{"cityFrom":"Lviv","cityTo":"Kherson","packageType":"standart","weight":true,"theBiggestSide":1e400}`
	raw, err := DecodeRaw([]byte(js))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	_, err = schema.Validate(context.Background(), parcelform.Standard, raw)
	iss, ok := parcelform.AsIssues(err)
	if !ok {
		t.Fatalf("expected issues, got %v", err)
	}
	for _, f := range []parcelform.Field{parcelform.FieldWeight, parcelform.FieldTheBiggestSide} {
		got := iss.ByField(f)
		if len(got) != 1 || got[0].Code != parcelform.CodeInvalidType {
			t.Fatalf("expected invalid_type on %s, got %v", f, iss)
		}
	}
}
