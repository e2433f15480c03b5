// Package services keeps the add-on services checklist in step with the
// package category.
//
// The checklist is rebuilt from scratch on every category change: previous
// options and their checked state are discarded, even for names shared across
// categories.
package services

import (
	"log/slog"

	"github.com/reoring/parcelform"
)

// Synchronizer produces the checklist for a category from a Catalog.
// It holds no mutable state and is safe for concurrent use.
type Synchronizer struct {
	catalog *Catalog
	log     *slog.Logger
}

// Option configures a Synchronizer.
type Option func(*Synchronizer)

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *Catalog) Option {
	return func(s *Synchronizer) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Synchronizer) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a Synchronizer over the default catalog unless overridden.
func New(opts ...Option) *Synchronizer {
	s := &Synchronizer{
		catalog: DefaultCatalog(),
		log:     slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Catalog returns the catalog in use.
func (s *Synchronizer) Catalog() *Catalog { return s.catalog }

// Synchronize returns a fresh, all-unchecked option list for c in catalog
// order. An unknown category yields a *parcelform.CategoryError.
func (s *Synchronizer) Synchronize(c parcelform.Category) ([]parcelform.ServiceOption, error) {
	names, err := s.catalog.Names(c)
	if err != nil {
		return nil, err
	}
	out := make([]parcelform.ServiceOption, len(names))
	for i, n := range names {
		out[i] = parcelform.ServiceOption{Name: n}
	}
	s.log.Debug("service list synchronized", slog.String("category", string(c)), slog.Int("services", len(out)))
	return out, nil
}

var defaultSynchronizer = New()

// Synchronize uses the built-in catalog.
func Synchronize(c parcelform.Category) ([]parcelform.ServiceOption, error) {
	return defaultSynchronizer.Synchronize(c)
}
