// Package rewrite implements the Metadata Rewriter (spec.md §4.3): given a
// Catalog and its SpecialProductType, it produces unique CF-legal names for
// every variable and dimension, synthesizes missing coordinate variables,
// and assembles each data variable's "coordinates" attribute.
package rewrite

import (
	"fmt"

	"github.com/hyrax-data/hdf4view/internal/classify"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// Config tunes rewriter behavior that is not fully determined by the
// product strategy alone.
type Config struct {
	// ProductID is the short product identifier (e.g. "2A12", "3A26") used
	// by the TRMM V7 strategies to pick their special-case branches. It is
	// read from the file's own metadata by the caller (pkg/hdf4view) before
	// Rewrite is invoked, since its source attribute varies by product.
	ProductID string
}

// Rewrite mutates cat in place to produce the CF-compliant view: it sets
// NewName, Kind, Coordinates and Dims on every SdsField, appends any
// synthesized coordinate variables, and removes fields the product
// strategy discards (spec.md §4.3 steps 1-6).
func Rewrite(cat *inventory.Catalog, product classify.SpecialProductType, cfg Config) error {
	if err := coalesceFakeDims(cat, product); err != nil {
		return fmt.Errorf("fake-dim coalescing: %w", err)
	}

	if err := applyStrategy(cat, product, cfg); err != nil {
		return fmt.Errorf("product strategy %s: %w", product, err)
	}

	synthesizeMissingCVs(cat)

	sanitizeNames(cat)

	resolveClashes(cat)

	assignCoordinates(cat)

	return nil
}
