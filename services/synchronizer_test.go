package services

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/reoring/parcelform"
)

func TestSynchronize_CatalogOrder(t *testing.T) {
	want := map[parcelform.Category][]string{
		parcelform.Standard: {
			"Calling a courier",
			"Delivery by courier",
			"SMS about receipt",
			"Notice of delivery",
			"Return delivery",
		},
		parcelform.Document: {
			"Return delivery",
			"Notice of delivery",
			"Delivery to the address",
			"Checking the correspondence of the mail attachment to the description of the attachment",
		},
		parcelform.Letter: {"Notice of delivery"},
	}
	for _, c := range parcelform.Categories() {
		t.Run(string(c), func(t *testing.T) {
			opts, err := Synchronize(c)
			if err != nil {
				t.Fatalf("synchronize: %v", err)
			}
			names := make([]string, len(opts))
			for i, o := range opts {
				if o.Checked {
					t.Fatalf("option %q should start unchecked", o.Name)
				}
				names[i] = o.Name
			}
			if !slices.Equal(names, want[c]) {
				t.Fatalf("got %v\nwant %v", names, want[c])
			}
		})
	}
}

func TestSynchronize_IdempotentFreshLists(t *testing.T) {
	for _, c := range parcelform.Categories() {
		a, err := Synchronize(c)
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		b, _ := Synchronize(c)
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("%s: lists differ %v %v", c, a, b)
		}

		a[0].Checked = true
		a[0].Name = "mutated"
		again, _ := Synchronize(c)
		if again[0].Checked || again[0].Name == "mutated" {
			t.Fatalf("%s: list shares state with an earlier result: %v", c, again[0])
		}
	}
}

func TestSynchronize_NoCarryOver(t *testing.T) {
	std, err := Synchronize(parcelform.Standard)
	if err != nil {
		t.Fatalf("synchronize: %v", err)
	}
	for i := range std {
		std[i].Checked = true
	}
	letter, err := Synchronize(parcelform.Letter)
	if err != nil {
		t.Fatalf("synchronize: %v", err)
	}
	if !reflect.DeepEqual(letter, []parcelform.ServiceOption{{Name: "Notice of delivery"}}) {
		t.Fatalf("unexpected letter list %v", letter)
	}
}

func TestSynchronize_UnknownCategory(t *testing.T) {
	_, err := Synchronize(parcelform.Category("parcel"))
	if !parcelform.IsCategoryError(err) {
		t.Fatalf("expected category error, got %v", err)
	}
}

func TestSynchronizer_CustomCatalog(t *testing.T) {
	cat, err := LoadCatalog(strings.NewReader(`
categories:
  - category: standart
    services: [A, B]
  - category: document
    services: [C]
  - category: letter
    services: [D]
`))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s := New(WithCatalog(cat))
	if s.Catalog() != cat {
		t.Fatalf("synchronizer should expose the catalog it was given")
	}
	opts, err := s.Synchronize(parcelform.Standard)
	if err != nil {
		t.Fatalf("synchronize: %v", err)
	}
	if !reflect.DeepEqual(opts, []parcelform.ServiceOption{{Name: "A"}, {Name: "B"}}) {
		t.Fatalf("unexpected options %v", opts)
	}
}
