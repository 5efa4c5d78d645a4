package inventory

// Config tunes the inventory pass's heuristics (spec.md §4.1).
type Config struct {
	// EnableVdataToAttr, combined with VdataAttrThreshold, decides whether
	// a small Vdata table is materialized into an AttributeSet-like
	// in-memory table instead of exposed as [record_count]-shaped
	// variables.
	EnableVdataToAttr bool

	// VdataAttrThreshold is the maximum record count eligible for the
	// "treat as attribute" heuristic. spec.md fixes this at 10.
	VdataAttrThreshold int32
}

// DefaultConfig matches the reference decision table's defaults.
func DefaultConfig() Config {
	return Config{
		EnableVdataToAttr:  true,
		VdataAttrThreshold: 10,
	}
}

// ignoredVgroupClasses is the internal bookkeeping-class set skipped when
// enumerating lone vgroups (spec.md §4.1 step 1).
var ignoredVgroupClasses = map[string]bool{
	"Attr0.0": true,
	"Var0.0":  true,
	"Dim0.0":  true,
	"UDim0.0": true,
	"CDF0.0":  true,
	"RI":      true,
	"RIG0.0":  true,
}

// excludedVdataClasses is the internal Vdata-class set excluded from the
// catalog (spec.md §4.1 step 3).
var excludedVdataClasses = map[string]bool{
	"_HDF_CHK_TBL_": true,
	"_HDF_SDSVAR":   true,
	"_HDF_CRDVAR":   true,
	"DimVal0.0":     true,
	"DimVal0.1":     true,
	"RIATTR0.0N":    true,
}

const excludedVdataName = "RIATTR0.0C"

// dataFieldsGroup and geoFieldsGroup are the HDF-EOS2 vgroup names that
// load_catalog_hybrid uses to decide which SDS/Vdata objects to expose
// (spec.md §4.1 "load_catalog_hybrid").
const (
	dataFieldsGroup = "Data Fields"
	geoFieldsGroup  = "Geolocation Fields"
)
