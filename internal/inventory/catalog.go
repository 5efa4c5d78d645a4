// Package inventory implements the Object Inventory (spec.md §4.1): given an
// open HDF4 file handle, it walks the vgroup tree, enumerates SDS fields and
// Vdata tables, and produces a single immutable Catalog that the classifier
// and rewriter operate on.
package inventory

import "github.com/hyrax-data/hdf4view/internal/hdf4"

// FieldKind classifies an SdsField's role, per spec.md §3. Exactly one kind
// applies to any given field.
type FieldKind int

const (
	FieldGeneral FieldKind = iota
	FieldLatitude
	FieldLongitude
	FieldVertical
	FieldSyntheticIndex
	FieldTime
	FieldDimScale
)

func (k FieldKind) String() string {
	switch k {
	case FieldLatitude:
		return "latitude"
	case FieldLongitude:
		return "longitude"
	case FieldVertical:
		return "vertical"
	case FieldSyntheticIndex:
		return "synthetic-index"
	case FieldTime:
		return "time"
	case FieldDimScale:
		return "dim-scale"
	default:
		return "general"
	}
}

// Dimension is one axis of an SdsField, per spec.md §3.
//
// Size 0 means "unlimited" on load and must be replaced with the
// materialized size before the Catalog is handed to the rewriter; the
// inventory package does this immediately when it first sees the size (see
// sds.go), so by the time a Catalog leaves this package no Dimension carries
// size 0 unless the file's SDS truly declared zero records.
type Dimension struct {
	Name  string
	Size  int32
	Scale hdf4.ScaleType
}

// AttributeSet is an ordered, named collection of attributes attached to
// the file, an SdsField, a VdataField, a VdataTable, or an anonymous
// "dimension info" container synthesized when a dimension has no scale
// variable (spec.md §3).
type AttributeSet struct {
	Name  string
	Attrs []hdf4.Attribute
}

// Get returns the named attribute and true, or false if absent.
func (s AttributeSet) Get(name string) (hdf4.Attribute, bool) {
	for _, a := range s.Attrs {
		if a.Name == name {
			return a, true
		}
	}
	return hdf4.Attribute{}, false
}

// SdsField is a multi-dimensional array variable, per spec.md §3.
type SdsField struct {
	Name    string // original name as read from the file
	NewName string // sanitized, path-qualified, clash-resolved (set by the rewriter)
	Path    string // slash-joined vgroup path this SDS was reached through, "" if none

	Ref  int32 // HDF4 reference number; back-reference used to re-open raw bytes
	Rank int32
	Type hdf4.DataType
	Dims []Dimension

	// SourceRef and SourceComponent let a rewritten field read through a
	// different backing SDS than its own Ref, selecting one plane of that
	// SDS's trailing dimension. TRMM_L2_V6's geolocation split is the
	// motivating case: latitude/longitude are each 2-D views over one
	// trailing component of a 3-D "geolocation" SDS. SourceComponent < 0
	// means "no component selection, read Ref directly" (the common case).
	SourceRef       int32
	SourceComponent int32

	Kind        FieldKind
	Units       string
	Coordinates string // space-separated NewNames of associated CVs, set by the rewriter

	Attrs AttributeSet

	// Synthetic fields (missing-CV synthesis, product-specific strategies)
	// have no backing SDS in the file; Synthesize, when non-nil, generates
	// their values on demand instead of reading through hdf4.Handle.
	Synthesize func(slab hdf4.Hyperslab) ([]float64, error)
}

// IsCoordinateVariable reports whether this field is a CF coordinate
// variable: non-general kind, rank 1, and its single dimension's name
// equals its own NewName (spec.md §3 SdsField invariants).
func (f *SdsField) IsCoordinateVariable() bool {
	if f.Kind == FieldGeneral || f.Rank != 1 || len(f.Dims) != 1 {
		return false
	}
	return f.Dims[0].Name == f.NewName
}

// VdataField is one column of a VdataTable.
type VdataField struct {
	Name    string
	NewName string
	Type    hdf4.DataType
	Order   int32
	Records int32
	Attrs   AttributeSet

	// Materialized holds the field's values when the table is small enough
	// to be treated as attributes (spec.md §4.1's EnableVdataToAttr
	// heuristic); nil otherwise, in which case the field is read lazily as
	// a one-dimensional variable of shape [Records] via Ref/FieldName.
	Materialized []byte
}

// VdataTable is an HDF4 Vdata, classified at load time as either
// "treat as attributes" or "treat as variables" (spec.md §3 VdataTable).
type VdataTable struct {
	Name    string
	NewName string
	Path    string
	Ref     int32
	Records int32
	Fields  []VdataField

	// TreatAsAttributes is true when Records <= the configured threshold
	// and EnableVdataToAttr is set; false means each field becomes a
	// [Records]-shaped variable named vdata<path>_vdf_<name>.
	TreatAsAttributes bool
}

// Catalog is the immutable result of one inventory pass over a FileHandle,
// per spec.md §4.1: every SDS field, every exposed Vdata table, every
// attribute, and a reference map from HDF4 reference numbers to Catalog
// indices.
type Catalog struct {
	SDS    []*SdsField
	Vdata  []*VdataTable
	Global AttributeSet

	// Vgroups holds one AttributeSet per visited vgroup that carried
	// attributes of its own, named by its full path (spec.md §4.1 step 3).
	// Product strategies consult this for group-level metadata blocks such
	// as CERES_metadata or a grid's GridHeader.
	Vgroups []AttributeSet

	// DimInfo holds the synthesized "_dim_<i>" AttributeSet for every
	// dimension whose scale type is ScaleTypeNone (spec.md §4.1 step 4),
	// keyed by "_dim_<i>", i being the dimension's index within its SDS;
	// the first SDS scanned with a scaleless dimension at index i supplies
	// that entry.
	DimInfo map[string]AttributeSet

	// SuppressCoordinates is set by the OTHER product strategy when at
	// least one rank-1, self-named SDS has no dimension scale: in that
	// case the rewriter emits no "coordinates" attribute anywhere in the
	// file rather than assert a partial association (spec.md §4.3.1).
	SuppressCoordinates bool

	// refIndex maps an SDS reference number to its index in SDS, built
	// during the independent SDS-by-index pass (spec.md §4.1 step 4).
	refIndex map[int32]int
}

// SDSByRef looks up an SdsField by its HDF4 reference number.
func (c *Catalog) SDSByRef(ref int32) (*SdsField, bool) {
	i, ok := c.refIndex[ref]
	if !ok {
		return nil, false
	}
	return c.SDS[i], true
}
