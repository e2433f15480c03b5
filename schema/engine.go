package schema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/reoring/parcelform"
	"github.com/reoring/parcelform/codec"
	"github.com/reoring/parcelform/i18n"
	"github.com/reoring/parcelform/rules"
	"github.com/reoring/parcelform/services"
)

// CityPattern accepts one or more ASCII letters.
var CityPattern = regexp.MustCompile(`^[A-Za-z]+$`)

const invalidCity = "Invalid city name"

var cityRule = rules.First(
	rules.Required(invalidCity),
	rules.Pattern(CityPattern, invalidCity),
)

// Engine maps (Category, RawInput) to a Shipment or to Issues.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog *services.Catalog
	tr      i18n.Translator
	log     *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithCatalog sets the service catalog checkedServiceNames are resolved against.
func WithCatalog(c *services.Catalog) Option {
	return func(e *Engine) {
		if c != nil {
			e.catalog = c
		}
	}
}

// WithTranslator sets the Translator used for messages the rules leave blank.
func WithTranslator(tr i18n.Translator) Option {
	return func(e *Engine) { e.tr = tr }
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an Engine over the default service catalog.
func New(opts ...Option) *Engine {
	e := &Engine{
		catalog: services.DefaultCatalog(),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Validate evaluates every field of raw under c's rules and returns either the
// normalized Shipment or the complete set of field Issues.
//
// An unknown category returns a *parcelform.CategoryError and a raw
// packageType that disagrees with c returns ErrCategoryMismatch; neither is a
// field issue.
func (e *Engine) Validate(ctx context.Context, c parcelform.Category, raw parcelform.RawInput) (parcelform.Shipment, error) {
	var zero parcelform.Shipment
	rs, err := RulesFor(c)
	if err != nil {
		return zero, err
	}
	if raw.PackageType != "" && raw.PackageType != c {
		return zero, fmt.Errorf("%w: got %q, active %q", parcelform.ErrCategoryMismatch, raw.PackageType, c)
	}

	var iss parcelform.Issues
	iss = append(iss, cityRule(parcelform.FieldCityFrom, raw.CityFrom)...)
	iss = append(iss, cityRule(parcelform.FieldCityTo, raw.CityTo)...)

	out := parcelform.Shipment{
		CityFrom:    raw.CityFrom,
		CityTo:      raw.CityTo,
		PackageType: c,
	}
	for _, f := range NumericFields {
		n, present, fi := evalNumber(f, rs.For(f), raw.Numeric(f))
		if len(fi) > 0 {
			iss = append(iss, fi...)
			continue
		}
		if !present {
			continue
		}
		switch f {
		case parcelform.FieldWeight:
			out.Weight = n
		case parcelform.FieldTheBiggestSide:
			v := int64(n)
			out.TheBiggestSide = &v
		case parcelform.FieldPrice:
			v := int64(n)
			out.Price = &v
		}
	}

	selected, si := e.selectServices(c, raw.CheckedServiceNames)
	iss = append(iss, si...)
	out.SelectedServices = selected

	if len(iss) > 0 {
		iss = i18n.Fill(e.tr, iss)
		e.log.DebugContext(ctx, "shipment rejected", slog.String("category", string(c)), slog.Int("issues", len(iss)))
		return zero, iss
	}
	e.log.DebugContext(ctx, "shipment validated", slog.String("category", string(c)))
	return out, nil
}

// evalNumber applies one NumberRule. It reports the resulting value and
// whether the field belongs in the output.
func evalNumber(f parcelform.Field, r NumberRule, v parcelform.Value) (float64, bool, []parcelform.Issue) {
	switch r.Mode {
	case Forced:
		return r.Const, true, nil
	case Removed:
		return 0, false, nil
	}
	n, err := codec.Number{Round: r.Round}.Decode(v)
	switch {
	case errors.Is(err, codec.ErrEmpty):
		switch {
		case r.HasDefault:
			n = r.Default
		case r.Required:
			return 0, false, []parcelform.Issue{parcelform.IssueAt(f, parcelform.CodeRequired, "")}
		default:
			return 0, false, nil
		}
	case err != nil:
		return 0, false, []parcelform.Issue{parcelform.IssueAt(f, parcelform.CodeInvalidType, "", "got", v.String())}
	}
	check := rules.First(
		rules.Min(r.Min, r.MinMessage),
		rules.Max(r.Max, r.MaxMessage),
		rules.Positive(""),
	)
	if iss := check(f, n); len(iss) > 0 {
		return 0, false, iss
	}
	return n, true, nil
}

// selectServices resolves checked names against c's catalog. The result is in
// catalog order without duplicates; names c does not offer are reported.
func (e *Engine) selectServices(c parcelform.Category, checked []string) ([]string, []parcelform.Issue) {
	names, err := e.catalog.Names(c)
	if err != nil {
		// the rule table and the catalog share the category set
		return []string{}, nil
	}
	want := make(map[string]bool, len(checked))
	var unknown []string
	for _, n := range checked {
		if !e.catalog.Offers(c, n) {
			unknown = append(unknown, n)
			continue
		}
		want[n] = true
	}
	selected := make([]string, 0, len(want))
	for _, n := range names {
		if want[n] {
			selected = append(selected, n)
		}
	}
	if len(unknown) > 0 {
		return selected, []parcelform.Issue{parcelform.IssueAt(
			parcelform.FieldCheckedServiceNames, parcelform.CodeUnknownService, "",
			"name", strings.Join(unknown, ", "), "category", string(c),
		)}
	}
	return selected, nil
}

var defaultEngine = New()

// Validate uses an Engine over the built-in catalog.
func Validate(ctx context.Context, c parcelform.Category, raw parcelform.RawInput) (parcelform.Shipment, error) {
	return defaultEngine.Validate(ctx, c, raw)
}
