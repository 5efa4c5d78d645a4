// Package hdf4view is the public, encapsulated API of this module: it
// wraps internal/hdf4, internal/inventory, internal/classify,
// internal/rewrite, internal/geoloc and internal/subsetcache the way the
// teacher's pkg/s57.Parser wraps internal/parser, exposing Open, Dataset,
// Variable, ReadSubset and Options to a caller that only needs to drive
// request-driven subsetting of a legacy HDF4/HDF-EOS2 file.
package hdf4view

import (
	"time"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// Options carries every configuration key spec.md §6 enumerates, all
// optional, matching the teacher's DefaultParseOptions/
// DefaultChartManagerOptions/DefaultLoadOptions idiom of one struct plus
// a Default*Options constructor (here a single one, DefaultOptions).
type Options struct {
	// EnablePassFileID: true means Dataset.Close goes through the handle's
	// Release, which keeps the file open while a reference taken with
	// Retain remains and closes it otherwise; false means Close calls the
	// handle's Close. Dataset itself takes no reference and does not expose
	// the handle, so in both modes Dataset.Close closes the file.
	EnablePassFileID bool

	// EnableEOSGeoCacheFile enables the on-disk lat/lon cache.
	EnableEOSGeoCacheFile bool

	// EnableDataCacheFile enables the on-disk whole-variable raw-data
	// cache.
	EnableDataCacheFile bool

	// EnableMetaDataCacheFile is accepted for interface completeness
	// (spec.md §6) but the catalog-serialization side file it describes is
	// out of this module's core scope (§1: "configuration-file parsing"
	// and ancillary caching of the Catalog itself are request-handler
	// concerns); Open always rebuilds the Catalog from the file.
	EnableMetaDataCacheFile bool

	// EnableVdataToAttr, VdataAttrThreshold: forwarded to
	// internal/inventory.Config.
	EnableVdataToAttr  bool
	VdataAttrThreshold int32

	// EnableCERESMERRAShortName is accepted but not passed to the
	// rewriter: no short-name path-prefix stripping is done for it, and
	// the OTHER strategy's ":EOSGRID" suffix stripping runs regardless.
	EnableCERESMERRAShortName bool

	// DisableVdataNameclashingCheck is accepted but not read: the
	// rewriter's clash-resolution pass always runs.
	DisableVdataNameclashingCheck bool

	// CacheDir, CachePrefix, CacheSize: forwarded to
	// internal/subsetcache.Config.
	CacheDir    string
	CachePrefix string
	CacheSize   int64

	// RequestTimeout bounds how long a single ReadSubset call may block on
	// HDF4/cache I/O before its context is considered to have expired; zero
	// means "caller's context only, no additional deadline". This is an
	// hdf4view-level convenience on top of spec.md §5's cancellation-token
	// protocol, not a spec requirement.
	RequestTimeout time.Duration
}

// DefaultOptions returns the configuration spec.md §6 implies as the
// baseline: the lat/lon and raw-data caches enabled (the catalog side-file
// option off), the Vdata-to-attribute heuristic on at
// its documented threshold of 10, no CERES/MERRA short names, no
// nameclash-check bypass, caches under a process-temp directory.
func DefaultOptions() Options {
	return Options{
		EnablePassFileID:              false,
		EnableEOSGeoCacheFile:         true,
		EnableDataCacheFile:           true,
		EnableMetaDataCacheFile:       false,
		EnableVdataToAttr:             true,
		VdataAttrThreshold:            10,
		EnableCERESMERRAShortName:     false,
		DisableVdataNameclashingCheck: false,
		CacheSize:                     1 << 30,
	}
}

func (o Options) inventoryConfig() inventory.Config {
	return inventory.Config{
		EnableVdataToAttr:  o.EnableVdataToAttr,
		VdataAttrThreshold: o.VdataAttrThreshold,
	}
}
