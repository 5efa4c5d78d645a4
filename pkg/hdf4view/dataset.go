package hdf4view

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyrax-data/hdf4view/internal/classify"
	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/inventory"
	"github.com/hyrax-data/hdf4view/internal/rewrite"
	"github.com/hyrax-data/hdf4view/internal/subsetcache"
	"github.com/hyrax-data/hdf4view/internal/workerpool"
)

// Hyperslab is spec.md's per-dimension (start, stride, count) request,
// re-exported at the public boundary so callers never need to import
// internal/hdf4 directly.
type Hyperslab = hdf4.Hyperslab

// Dataset is one open HDF4/HDF-EOS2 file exposed as a CF-compliant
// catalog, per spec.md §2: classify -> rewrite run exactly once at Open,
// then any number of ReadSubset calls reuse the immutable result (spec.md
// §5 "Catalog construction happens exactly once per FileHandle").
//
// Grounded on the teacher's Parser/Chart split (pkg/s57/s57.go): Open here
// plays Parser.Parse's role, and Dataset plays Chart's -- an immutable,
// already-fully-processed view handed back to the caller.
type Dataset struct {
	handle  *hdf4.Handle
	catalog *inventory.Catalog
	product classify.SpecialProductType
	opts    Options

	cache *subsetcache.Cache
	pool  *workerpool.Pool

	// grids lazily holds one opened GeoGrid per grid name this dataset's
	// geolocation fields need; populated on first OpenGrid call (spec.md
	// §4.4).
	grids map[string]*GeoGrid
}

// Open reads path, builds its Catalog, classifies it, and runs the
// Metadata Rewriter, returning a Dataset ready for ReadSubset calls
// (spec.md §2's top-to-bottom pipeline, run once).
func Open(ctx context.Context, path string, opts Options) (*Dataset, error) {
	h, err := hdf4.Open(path)
	if err != nil {
		return nil, &FormatError{Op: "open", Err: err}
	}

	cat, err := inventory.LoadCatalog(h, opts.inventoryConfig())
	if err != nil {
		h.Close()
		return nil, &FormatError{Op: "load catalog", Err: err}
	}

	product := classify.Classify(cat)

	rcfg := rewrite.Config{ProductID: productID(cat)}
	if err := rewrite.Rewrite(cat, product, rcfg); err != nil {
		h.Close()
		return nil, &FormatError{Op: "rewrite", Err: err}
	}

	ds := &Dataset{
		handle:  h,
		catalog: cat,
		product: product,
		opts:    opts,
		grids:   make(map[string]*GeoGrid),
	}

	if opts.EnableEOSGeoCacheFile || opts.EnableDataCacheFile {
		pool := workerpool.New(ctx, 0)
		ccfg := subsetcache.Config{
			Dir:      opts.CacheDir,
			Prefix:   opts.CachePrefix,
			MaxBytes: opts.CacheSize,
		}
		if ccfg.Dir == "" || ccfg.MaxBytes == 0 {
			def := subsetcache.DefaultConfig()
			if ccfg.Dir == "" {
				ccfg.Dir = def.Dir
			}
			if ccfg.MaxBytes == 0 {
				ccfg.MaxBytes = def.MaxBytes
			}
		}
		cache, err := subsetcache.New(ccfg, pool)
		if err != nil {
			h.Close()
			return nil, &FormatError{Op: "cache init", Err: err}
		}
		ds.cache = cache
		ds.pool = pool
	}

	return ds, nil
}

// Close releases every open grid handle and the file handle itself. With
// EnablePassFileID set the handle goes through Release instead of Close,
// which leaves the file open only while a reference taken with Retain
// remains (spec.md §5, SPEC_FULL.md's PassFileID supplement).
func (d *Dataset) Close() error {
	for _, g := range d.grids {
		g.grid.Close()
	}
	if d.pool != nil {
		d.pool.StopAndWait()
	}
	if d.opts.EnablePassFileID {
		return d.handle.Release()
	}
	return d.handle.Close()
}

// Catalog returns the rewritten, CF-compliant catalog backing this
// dataset. Callers needing to enumerate variables or inspect their
// "coordinates" association use this directly.
func (d *Dataset) Catalog() *inventory.Catalog { return d.catalog }

// Product returns the SpecialProductType this file was classified as.
func (d *Dataset) Product() classify.SpecialProductType { return d.product }

// Variable looks up a field by its rewritten (CF-legal) name.
func (d *Dataset) Variable(newName string) (*inventory.SdsField, bool) {
	for _, f := range d.catalog.SDS {
		if f.NewName == newName {
			return f, true
		}
	}
	return nil, false
}

// productID extracts the short product identifier (e.g. "2A12", "3A26")
// the TRMM V7 strategies key their special cases on, from the file-level
// "FileHeader" attribute's "AlgorithmID=...;" field, using the same
// KEY=VALUE; grammar as GridHeader (spec.md §6). Returns "" if absent --
// every strategy that consults ProductID treats that as "no special case
// applies", not an error.
func productID(cat *inventory.Catalog) string {
	attr, ok := cat.Global.Get("FileHeader")
	if !ok {
		return ""
	}
	raw := string(attr.Raw)
	for _, field := range strings.Split(raw, ";") {
		field = strings.TrimSpace(field)
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.TrimSpace(kv[0]) == "AlgorithmID" {
			return strings.TrimSpace(kv[1])
		}
	}
	return ""
}

func (d *Dataset) String() string {
	return fmt.Sprintf("hdf4view.Dataset{path=%s, product=%s, variables=%d}",
		d.handle.Path(), d.product, len(d.catalog.SDS))
}
