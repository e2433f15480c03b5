package services

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"gopkg.in/yaml.v3"

	"github.com/reoring/parcelform"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// catalogFile is the YAML layout of a service catalog.
type catalogFile struct {
	Categories []categoryEntry `yaml:"categories" validate:"required,len=3,unique=Category,dive"`
}

type categoryEntry struct {
	Category string   `yaml:"category" validate:"required,oneof=standart document letter"`
	Services []string `yaml:"services" validate:"required,min=1,unique,dive,notblank"`
}

// Catalog is the fixed, category-scoped, ordered list of add-on service names.
// It is immutable once loaded.
type Catalog struct {
	byCategory map[parcelform.Category][]string
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func catalogValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// LoadCatalog reads a YAML catalog. Every category must be listed exactly once
// with a non-empty list of unique, non-blank names.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var f catalogFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding service catalog: %w", err)
	}
	if err := catalogValidator().Struct(f); err != nil {
		return nil, fmt.Errorf("invalid service catalog: %w", err)
	}
	c := &Catalog{byCategory: make(map[parcelform.Category][]string, len(f.Categories))}
	for _, e := range f.Categories {
		c.byCategory[parcelform.Category(e.Category)] = slices.Clone(e.Services)
	}
	return c, nil
}

// MustLoadCatalog is like LoadCatalog but panics on error.
func MustLoadCatalog(data []byte) *Catalog {
	c, err := LoadCatalog(bytes.NewReader(data))
	if err != nil {
		panic(err)
	}
	return c
}

var defaultCatalog = sync.OnceValue(func() *Catalog { return MustLoadCatalog(defaultCatalogYAML) })

// DefaultCatalog returns the built-in catalog.
func DefaultCatalog() *Catalog { return defaultCatalog() }

// Names returns a copy of the service names offered for c, in display order.
func (cat *Catalog) Names(c parcelform.Category) ([]string, error) {
	names, ok := cat.byCategory[c]
	if !ok {
		return nil, &parcelform.CategoryError{Value: string(c)}
	}
	return slices.Clone(names), nil
}

// Offers reports whether name is offered for c.
func (cat *Catalog) Offers(c parcelform.Category, name string) bool {
	return slices.Contains(cat.byCategory[c], name)
}

// Index returns the display position of name for c, or -1.
func (cat *Catalog) Index(c parcelform.Category, name string) int {
	return slices.Index(cat.byCategory[c], name)
}
