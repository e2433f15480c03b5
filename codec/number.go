package codec

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/reoring/parcelform"
)

// Rounding selects how a decoded number is reduced to an integer.
type Rounding int

const (
	RoundNone  Rounding = iota // Keep the value as typed.
	RoundFloor                 // Toward negative infinity.
	RoundTrunc                 // Toward zero.
)

func (r Rounding) String() string {
	switch r {
	case RoundFloor:
		return "floor"
	case RoundTrunc:
		return "trunc"
	default:
		return "none"
	}
}

// Apply rounds f according to r.
func (r Rounding) Apply(f float64) float64 {
	switch r {
	case RoundFloor:
		return math.Floor(f)
	case RoundTrunc:
		return math.Trunc(f)
	default:
		return f
	}
}

// ErrEmpty is returned when decoding an empty Value.
var ErrEmpty = errors.New("codec: empty value")

// NotNumberError reports text that does not denote a finite number.
type NotNumberError struct {
	Text string
}

func (e *NotNumberError) Error() string { return fmt.Sprintf("codec: %q is not a number", e.Text) }

// Number converts between raw form values and numbers. Decode applies the
// rounding policy after parsing, so bound checks see the rounded value.
type Number struct {
	Round Rounding
}

// Decode turns a raw Value into a finite float64.
func (c Number) Decode(v parcelform.Value) (float64, error) {
	var f float64
	switch v.Kind() {
	case parcelform.KindEmpty:
		return 0, ErrEmpty
	case parcelform.KindNumber:
		f, _ = v.Float()
	case parcelform.KindText:
		// whitespace anywhere is dropped, so "1 000" reads as 1000
		s := strings.Join(strings.Fields(v.String()), "")
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &NotNumberError{Text: v.String()}
		}
		f = n
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, &NotNumberError{Text: v.String()}
	}
	return c.Round.Apply(f), nil
}

// Encode renders f back as form text, so a stored record can be re-edited.
func (c Number) Encode(f float64) parcelform.Value {
	return parcelform.Text(strconv.FormatFloat(c.Round.Apply(f), 'f', -1, 64))
}
