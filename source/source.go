// Package source decodes JSON shipment requests into parcelform.RawInput.
//
// Numeric fields accept any JSON value: numbers and strings are passed on as
// typed, null means empty and anything else is kept as its raw JSON text.
// Whether such a value is acceptable depends on the category, so the engine
// decides. String fields and checkedServiceNames are type-checked here, and
// wrong JSON types are reported as field Issues instead of failing the whole
// document.
package source

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/reoring/parcelform"
)

// UnknownPolicy controls how unknown keys are handled.
type UnknownPolicy int

const (
	UnknownStrip  UnknownPolicy = iota // Drop unknown keys.
	UnknownStrict                      // Reject unknown keys with an issue.
)

// Options bundles decoding options.
type Options struct {
	Unknown  UnknownPolicy
	MaxBytes int64 // 0 disables the size cap.
}

var knownKeys = map[string]bool{
	string(parcelform.FieldCityFrom):            true,
	string(parcelform.FieldCityTo):              true,
	string(parcelform.FieldPackageType):         true,
	string(parcelform.FieldWeight):              true,
	string(parcelform.FieldTheBiggestSide):      true,
	string(parcelform.FieldPrice):               true,
	string(parcelform.FieldCheckedServiceNames): true,
}

// ReadRaw decodes a request from r. When MaxBytes is set it enforces the cap
// before decoding.
func ReadRaw(r io.Reader, opts ...Options) (parcelform.RawInput, error) {
	opt := lastOpt(opts)
	if opt.MaxBytes > 0 {
		r = io.LimitReader(r, opt.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return parcelform.RawInput{}, singleIssue(parcelform.CodeParseError, err.Error())
	}
	if opt.MaxBytes > 0 && int64(len(data)) > opt.MaxBytes {
		return parcelform.RawInput{}, singleIssue(parcelform.CodeParseError, "max bytes exceeded")
	}
	return DecodeRaw(data, opt)
}

// DecodeRaw decodes one JSON object into a RawInput. packageType is copied
// verbatim; whether it names a known category is decided by the engine.
func DecodeRaw(data []byte, opts ...Options) (parcelform.RawInput, error) {
	opt := lastOpt(opts)
	var zero parcelform.RawInput

	dec := json.NewDecoder(bytes.NewReader(data))
	var doc map[string]json.RawMessage
	if err := dec.Decode(&doc); err != nil {
		return zero, singleIssue(parcelform.CodeParseError, err.Error())
	}
	if doc == nil {
		return zero, singleIssue(parcelform.CodeParseError, "expected a JSON object")
	}
	if dec.More() {
		return zero, singleIssue(parcelform.CodeParseError, "unexpected data after the JSON object")
	}

	var (
		raw parcelform.RawInput
		iss parcelform.Issues
	)
	str := func(f parcelform.Field) string {
		s, it, ok := asString(f, doc[string(f)])
		if !ok {
			iss = append(iss, it)
		}
		return s
	}
	num := func(f parcelform.Field) parcelform.Value {
		return asValue(doc[string(f)])
	}
	raw.CityFrom = str(parcelform.FieldCityFrom)
	raw.CityTo = str(parcelform.FieldCityTo)
	raw.PackageType = parcelform.Category(str(parcelform.FieldPackageType))
	raw.Weight = num(parcelform.FieldWeight)
	raw.TheBiggestSide = num(parcelform.FieldTheBiggestSide)
	raw.Price = num(parcelform.FieldPrice)
	names, it, ok := asStrings(parcelform.FieldCheckedServiceNames, doc[string(parcelform.FieldCheckedServiceNames)])
	if !ok {
		iss = append(iss, it)
	}
	raw.CheckedServiceNames = names

	if opt.Unknown == UnknownStrict {
		var unknown []string
		for k := range doc {
			if !knownKeys[k] {
				unknown = append(unknown, k)
			}
		}
		sort.Strings(unknown)
		for _, k := range unknown {
			iss = append(iss, parcelform.IssueAt(parcelform.Field(k), parcelform.CodeUnknownKey, "unknown key"))
		}
	}
	if len(iss) > 0 {
		return zero, iss
	}
	return raw, nil
}

func asString(f parcelform.Field, raw json.RawMessage) (string, parcelform.Issue, bool) {
	switch kind(raw) {
	case "null":
		return "", parcelform.Issue{}, true
	case "string":
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", invalidType(f, "a string", raw), false
		}
		return s, parcelform.Issue{}, true
	default:
		return "", invalidType(f, "a string", raw), false
	}
}

// asValue never fails: forced and removed fields ignore their input, so only
// the engine can tell whether a value is wrong.
func asValue(raw json.RawMessage) parcelform.Value {
	switch kind(raw) {
	case "null":
		return parcelform.Empty
	case "string":
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return parcelform.Text(s)
		}
	case "number":
		if n, err := strconv.ParseFloat(string(bytes.TrimSpace(raw)), 64); err == nil {
			return parcelform.Number(n)
		}
	}
	return parcelform.Text(string(bytes.TrimSpace(raw)))
}

func asStrings(f parcelform.Field, raw json.RawMessage) ([]string, parcelform.Issue, bool) {
	switch kind(raw) {
	case "null":
		return nil, parcelform.Issue{}, true
	case "array":
		var elems []json.RawMessage
		if err := json.Unmarshal(raw, &elems); err != nil {
			return nil, invalidType(f, "an array of strings", raw), false
		}
		out := make([]string, 0, len(elems))
		for i, e := range elems {
			s, _, ok := asString(f, e)
			if !ok || kind(e) != "string" {
				it := invalidType(f, "an array of strings", e)
				it.Params["index"] = i
				return nil, it, false
			}
			out = append(out, s)
		}
		return out, parcelform.Issue{}, true
	default:
		return nil, invalidType(f, "an array of strings", raw), false
	}
}

func invalidType(f parcelform.Field, expected string, got json.RawMessage) parcelform.Issue {
	return parcelform.IssueAt(f, parcelform.CodeInvalidType,
		fmt.Sprintf("%s must be %s", f, expected),
		"expected", expected, "got", kind(got))
}

// kind names the JSON type of raw from its first byte. A missing key is null.
func kind(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "null"
	}
	switch raw[0] {
	case 'n':
		return "null"
	case 't', 'f':
		return "boolean"
	case '"':
		return "string"
	case '[':
		return "array"
	case '{':
		return "object"
	default:
		return "number"
	}
}

func lastOpt(opts []Options) Options {
	if len(opts) == 0 {
		return Options{}
	}
	return opts[len(opts)-1]
}

func singleIssue(code, msg string) parcelform.Issues {
	return parcelform.AppendIssues(nil, parcelform.Issue{Code: code, Message: msg})
}
