package rules

import (
	"regexp"
	"strings"

	"github.com/reoring/parcelform"
)

// Rule checks one field value and returns its issues. Issues without a
// Message are filled in later from the code and params (see i18n.Fill).
type Rule[T any] = func(f parcelform.Field, v T) []parcelform.Issue

// First executes rules in order and returns the issues of the first rule that
// fails, so a field reports at most one problem.
func First[T any](rules ...Rule[T]) Rule[T] {
	return func(f parcelform.Field, v T) []parcelform.Issue {
		for _, r := range rules {
			if r == nil {
				continue
			}
			if iss := r(f, v); len(iss) > 0 {
				return iss
			}
		}
		return nil
	}
}

// ---------- string rules ----------

// Required rejects blank text.
func Required(msg string) Rule[string] {
	return func(f parcelform.Field, v string) []parcelform.Issue {
		if strings.TrimSpace(v) == "" {
			return []parcelform.Issue{parcelform.IssueAt(f, parcelform.CodeRequired, msg)}
		}
		return nil
	}
}

// Pattern requires the whole value to match re.
func Pattern(re *regexp.Regexp, msg string) Rule[string] {
	return func(f parcelform.Field, v string) []parcelform.Issue {
		if !re.MatchString(v) {
			return []parcelform.Issue{parcelform.IssueAt(f, parcelform.CodePattern, msg, "pattern", re.String())}
		}
		return nil
	}
}

// ---------- numeric rules ----------

// Min requires v >= min.
func Min(min float64, msg string) Rule[float64] {
	return func(f parcelform.Field, v float64) []parcelform.Issue {
		if v < min {
			return []parcelform.Issue{parcelform.IssueAt(f, parcelform.CodeTooSmall, msg, "min", min, "got", v)}
		}
		return nil
	}
}

// Max requires v <= max.
func Max(max float64, msg string) Rule[float64] {
	return func(f parcelform.Field, v float64) []parcelform.Issue {
		if v > max {
			return []parcelform.Issue{parcelform.IssueAt(f, parcelform.CodeTooBig, msg, "max", max, "got", v)}
		}
		return nil
	}
}

// Positive requires v > 0.
func Positive(msg string) Rule[float64] {
	return func(f parcelform.Field, v float64) []parcelform.Issue {
		if v <= 0 {
			return []parcelform.Issue{parcelform.IssueAt(f, parcelform.CodeNotPositive, msg, "got", v)}
		}
		return nil
	}
}
