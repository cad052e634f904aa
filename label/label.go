// Package label describes the thermal label stock the printing
// pipeline can target. Each spec pairs the physical label with the
// raster geometry the print head expects and the CUPS media name the
// driver wants on submission.
package label

import (
	"fmt"
	"sort"
)

// Brand groups label stock by the printer family it is made for.
type Brand string

const (
	BrandDymo    Brand = "dymo"
	BrandGeneric Brand = "generic"
)

// Spec describes one label stock. WidthPx runs along the feed
// direction and HeightPx across the print head, so specs are always
// landscape regardless of how the label is usually mounted.
type Spec struct {
	Code     string
	Name     string
	WidthPx  int
	HeightPx int
	Media    string
	DPI      int
	Brand    Brand
}

// ErrUnknownLabel is returned when a label code has no spec.
var ErrUnknownLabel = fmt.Errorf("label: unknown label code")

// specs is keyed by vendor code. Pixel dimensions are the physical
// label size multiplied by the printer DPI, and Media is the CUPS
// PageSize name the driver advertises for that stock.
var specs = map[string]Spec{
	"30256": {
		Code:     "30256",
		Name:     `Shipping 2-5/16" x 4"`,
		WidthPx:  1200,
		HeightPx: 694,
		Media:    "w167h288",
		DPI:      300,
		Brand:    BrandDymo,
	},
	"30252": {
		Code:     "30252",
		Name:     `Address 1-1/8" x 3-1/2"`,
		WidthPx:  1050,
		HeightPx: 338,
		Media:    "w81h252",
		DPI:      300,
		Brand:    BrandDymo,
	},
	"30330": {
		Code:     "30330",
		Name:     `Return Address 3/4" x 2"`,
		WidthPx:  600,
		HeightPx: 225,
		Media:    "w54h144",
		DPI:      300,
		Brand:    BrandDymo,
	},
	"30334": {
		Code:     "30334",
		Name:     `Multipurpose 2-1/4" x 1-1/4"`,
		WidthPx:  675,
		HeightPx: 375,
		Media:    "w90h162",
		DPI:      300,
		Brand:    BrandDymo,
	},
	"4x6": {
		Code:     "4x6",
		Name:     `Shipping 4" x 6"`,
		WidthPx:  1218,
		HeightPx: 812,
		Media:    "w288h432",
		DPI:      203,
		Brand:    BrandGeneric,
	},
	"2x1": {
		Code:     "2x1",
		Name:     `Barcode 2" x 1"`,
		WidthPx:  406,
		HeightPx: 203,
		Media:    "w72h144",
		DPI:      203,
		Brand:    BrandGeneric,
	},
}

// Lookup returns the spec for a label code.
func Lookup(code string) (Spec, error) {
	spec, ok := specs[code]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q", ErrUnknownLabel, code)
	}
	return spec, nil
}

// All returns every known spec sorted by code.
func All() []Spec {
	out := make([]Spec, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ByBrand returns the specs of one brand sorted by code.
func ByBrand(brand Brand) []Spec {
	out := make([]Spec, 0, len(specs))
	for _, spec := range specs {
		if spec.Brand == brand {
			out = append(out, spec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
