package parcelform

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeTooSmall       = "too_small"
	CodeTooBig         = "too_big"
	CodeNotPositive    = "not_positive"
	CodePattern        = "pattern"
	CodeParseError     = "parse_error"
	CodeUnknownService = "unknown_service"
)

// Issue represents a single field validation failure.
type Issue struct {
	Field   Field  `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
	// Params carries structured parameters (e.g., {"min":1, "max":2000, "got":2500})
	// so collaborators can render their own messages.
	Params map[string]any `json:"params,omitempty"`
}

// Pointer renders the issue location as a JSON Pointer (for example: /weight).
func (it Issue) Pointer() string {
	if it.Field == "" {
		return "/"
	}
	return "/" + string(it.Field)
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		// e.g. too_big at /weight
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Pointer())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ByField returns the issues reported for f.
func (iss Issues) ByField(f Field) Issues {
	var out Issues
	for _, it := range iss {
		if it.Field == f {
			out = append(out, it)
		}
	}
	return out
}

// Has reports whether any issue was reported for f.
func (iss Issues) Has(f Field) bool { return len(iss.ByField(f)) > 0 }

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrUnknownCategory is the sentinel wrapped by every CategoryError.
var ErrUnknownCategory = errors.New("parcelform: unknown package category")

// CategoryError reports a packageType outside the supported set. It is an
// integration fault, never a field issue: no rule set may be guessed for it.
type CategoryError struct {
	Value string
}

func (e *CategoryError) Error() string {
	return fmt.Sprintf("parcelform: unknown package category %q", e.Value)
}

func (e *CategoryError) Unwrap() error { return ErrUnknownCategory }

// IsCategoryError reports whether err is (or wraps) a CategoryError.
func IsCategoryError(err error) bool { return errors.Is(err, ErrUnknownCategory) }

// ErrCategoryMismatch reports a RawInput whose packageType disagrees with the
// category it is validated under (a stale category/list pairing).
var ErrCategoryMismatch = errors.New("parcelform: packageType does not match the active category")
