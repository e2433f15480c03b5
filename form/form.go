// Package form holds the collaborator-side state of a shipment form: the
// active category and its services checklist, always replaced together.
package form

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/reoring/parcelform"
	"github.com/reoring/parcelform/codec"
	"github.com/reoring/parcelform/schema"
	"github.com/reoring/parcelform/services"
)

// Fields are the user-typed inputs. The category and checked services come
// from the Form itself.
type Fields struct {
	CityFrom       string
	CityTo         string
	Weight         parcelform.Value
	TheBiggestSide parcelform.Value
	Price          parcelform.Value
}

// Form pairs the active category with the checklist produced for it.
type Form struct {
	mu       sync.Mutex
	category parcelform.Category
	options  []parcelform.ServiceOption

	syncer *services.Synchronizer
	engine *schema.Engine
	log    *slog.Logger
}

// Option configures a Form.
type Option func(*Form)

// WithCatalog makes both the checklist and validation use c.
func WithCatalog(c *services.Catalog) Option {
	return func(f *Form) {
		f.syncer = services.New(services.WithCatalog(c), services.WithLogger(f.log))
		f.engine = schema.New(schema.WithCatalog(c), schema.WithLogger(f.log))
	}
}

// WithLogger sets the logger used for debug output. Pass it before WithCatalog
// to share it with the synchronizer and engine.
func WithLogger(l *slog.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.log = l
		}
	}
}

// New creates a Form with category c selected and its checklist built.
func New(c parcelform.Category, opts ...Option) (*Form, error) {
	f := &Form{log: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(f)
	}
	if f.syncer == nil {
		f.syncer = services.New(services.WithLogger(f.log))
	}
	if f.engine == nil {
		f.engine = schema.New(schema.WithCatalog(f.syncer.Catalog()), schema.WithLogger(f.log))
	}
	if err := f.SetCategory(c); err != nil {
		return nil, err
	}
	return f, nil
}

// SetCategory selects c and replaces the checklist wholesale. On error the
// previous category and checklist are kept.
func (f *Form) SetCategory(c parcelform.Category) error {
	opts, err := f.syncer.Synchronize(c)
	if err != nil {
		return err
	}
	f.mu.Lock()
	prev := f.category
	f.category = c
	f.options = opts
	f.mu.Unlock()
	f.log.Debug("category changed", slog.String("from", string(prev)), slog.String("to", string(c)))
	return nil
}

// Category returns the active category.
func (f *Form) Category() parcelform.Category {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.category
}

// Options returns a copy of the current checklist.
func (f *Form) Options() []parcelform.ServiceOption {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.options)
}

// VisibleFields returns the inputs to render for the active category.
func (f *Form) VisibleFields() ([]parcelform.Field, error) {
	return schema.VisibleFields(f.Category())
}

// Toggle sets the checked state of the named service.
func (f *Form) Toggle(name string, checked bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := slices.IndexFunc(f.options, func(o parcelform.ServiceOption) bool { return o.Name == name })
	if i < 0 {
		return fmt.Errorf("form: service %q is not offered for %s", name, f.category)
	}
	f.options[i].Checked = checked
	return nil
}

// Raw assembles the RawInput for a submission from fields and the current
// category/checklist pair.
func (f *Form) Raw(in Fields) parcelform.RawInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return parcelform.RawInput{
		CityFrom:            in.CityFrom,
		CityTo:              in.CityTo,
		PackageType:         f.category,
		Weight:              in.Weight,
		TheBiggestSide:      in.TheBiggestSide,
		Price:               in.Price,
		CheckedServiceNames: parcelform.CheckedNames(f.options),
	}
}

// Submit validates fields under the active category.
func (f *Form) Submit(ctx context.Context, in Fields) (parcelform.Shipment, error) {
	raw := f.Raw(in)
	return f.engine.Validate(ctx, raw.PackageType, raw)
}

// Edit loads a previously normalized shipment back into the form: it selects
// the shipment's category, re-checks its services and returns the fields as
// form text. The category and checklist are swapped together, and on error
// the form is left as it was.
func (f *Form) Edit(sh parcelform.Shipment) (Fields, error) {
	c := sh.PackageType
	rs, err := schema.RulesFor(c)
	if err != nil {
		return Fields{}, err
	}
	opts, err := f.syncer.Synchronize(c)
	if err != nil {
		return Fields{}, err
	}
	cat := f.syncer.Catalog()
	for _, name := range sh.SelectedServices {
		i := cat.Index(c, name)
		if i < 0 {
			return Fields{}, fmt.Errorf("form: service %q is not offered for %s", name, c)
		}
		opts[i].Checked = true
	}

	in := Fields{CityFrom: sh.CityFrom, CityTo: sh.CityTo}
	if rs.Weight.Mode == schema.Validated {
		in.Weight = codec.Number{}.Encode(sh.Weight)
	}
	if rs.TheBiggestSide.Mode == schema.Validated && sh.TheBiggestSide != nil {
		in.TheBiggestSide = codec.Number{}.Encode(float64(*sh.TheBiggestSide))
	}
	if rs.Price.Mode == schema.Validated && sh.Price != nil {
		in.Price = codec.Number{}.Encode(float64(*sh.Price))
	}

	f.mu.Lock()
	prev := f.category
	f.category = c
	f.options = opts
	f.mu.Unlock()
	f.log.Debug("shipment loaded", slog.String("from", string(prev)), slog.String("to", string(c)))
	return in, nil
}
