package codec

import (
	"errors"
	"math"
	"testing"

	"github.com/reoring/parcelform"
)

func TestNumber_Decode(t *testing.T) {
	cases := []struct {
		name  string
		round Rounding
		in    parcelform.Value
		want  float64
	}{
		{"text int", RoundNone, parcelform.Text("12"), 12},
		{"text padded", RoundNone, parcelform.Text("  7.5 "), 7.5},
		{"number", RoundNone, parcelform.Number(3.25), 3.25},
		{"floor", RoundFloor, parcelform.Text("40.7"), 40},
		{"trunc", RoundTrunc, parcelform.Text("99.9"), 99},
		{"floor negative", RoundFloor, parcelform.Number(-0.5), -1},
		{"trunc negative", RoundTrunc, parcelform.Number(-0.5), 0},
		{"exponent", RoundNone, parcelform.Text("1e3"), 1000},
		{"inner spaces", RoundNone, parcelform.Text("1 000"), 1000},
		{"tabs and spaces", RoundFloor, parcelform.Text(" 12\t. 9 "), 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Number{Round: tc.round}.Decode(tc.in)
			if err != nil {
				t.Fatalf("decode err: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestNumber_FloorAndTruncDiffer(t *testing.T) {
	in := parcelform.Number(-2.5)
	f, _ := Number{Round: RoundFloor}.Decode(in)
	tr, _ := Number{Round: RoundTrunc}.Decode(in)
	if f != -3 || tr != -2 {
		t.Fatalf("floor=%v trunc=%v", f, tr)
	}
}

func TestNumber_DecodeErrors(t *testing.T) {
	if _, err := (Number{}).Decode(parcelform.Empty); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if _, err := (Number{}).Decode(parcelform.Text("   ")); !errors.Is(err, ErrEmpty) {
		t.Fatalf("blank text should be empty, got %v", err)
	}
	for _, s := range []string{"abc", "12kg", "NaN", "Inf", "-Infinity", "1,5"} {
		_, err := (Number{}).Decode(parcelform.Text(s))
		var nn *NotNumberError
		if !errors.As(err, &nn) {
			t.Fatalf("%q: expected NotNumberError, got %v", s, err)
		}
	}
	if _, err := (Number{}).Decode(parcelform.Number(math.Inf(1))); err == nil {
		t.Fatalf("expected error for +Inf")
	}
}

func TestNumber_Encode(t *testing.T) {
	v := Number{Round: RoundTrunc}.Encode(99.9)
	if v.Kind() != parcelform.KindText || v.String() != "99" {
		t.Fatalf("unexpected encode: %v %q", v.Kind(), v.String())
	}
	v = Number{}.Encode(1.5)
	if v.String() != "1.5" {
		t.Fatalf("unexpected encode: %q", v.String())
	}
}
