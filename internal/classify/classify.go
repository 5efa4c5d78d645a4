// Package classify assigns exactly one SpecialProductType to a file, based
// on an ordered decision table over its catalog's file-level attributes
// (spec.md §4.2). Classification never opens bulk data: it only inspects
// attribute names/values and SDS/Vdata shapes already captured by the
// Object Inventory.
package classify

import (
	"strings"

	"github.com/hyrax-data/hdf4view/internal/inventory"
)

// SpecialProductType is the closed set of product families the rewriter
// knows a dedicated strategy for, plus the OTHER fallback (spec.md §3).
type SpecialProductType int

const (
	Other SpecialProductType = iota
	TRMM_L2_V6
	TRMM_L3A_V6
	TRMM_L3B_V6
	TRMM_L3C_V6
	TRMM_L2_V7
	TRMM_L3S_V7
	TRMM_L3M_V7
	MODIS_ARNSS
	CER_AVG
	CER_ES4
	CER_ISCCP_D2LIKE_DAY
	CER_ISCCP_D2LIKE_GEO
	CER_SRBAVG3
	CER_SYN
	CER_ZAVG
	OBPG_L2
	OBPG_L3
)

func (t SpecialProductType) String() string {
	switch t {
	case TRMM_L2_V6:
		return "TRMM_L2_V6"
	case TRMM_L3A_V6:
		return "TRMM_L3A_V6"
	case TRMM_L3B_V6:
		return "TRMM_L3B_V6"
	case TRMM_L3C_V6:
		return "TRMM_L3C_V6"
	case TRMM_L2_V7:
		return "TRMM_L2_V7"
	case TRMM_L3S_V7:
		return "TRMM_L3S_V7"
	case TRMM_L3M_V7:
		return "TRMM_L3M_V7"
	case MODIS_ARNSS:
		return "MODIS_ARNSS"
	case CER_AVG:
		return "CER_AVG"
	case CER_ES4:
		return "CER_ES4"
	case CER_ISCCP_D2LIKE_DAY:
		return "CER_ISCCP-D2like-Day"
	case CER_ISCCP_D2LIKE_GEO:
		return "CER_ISCCP-D2like-GEO"
	case CER_SRBAVG3:
		return "CER_SRBAVG3"
	case CER_SYN:
		return "CER_SYN"
	case CER_ZAVG:
		return "CER_ZAVG"
	case OBPG_L2:
		return "OBPG_L2"
	case OBPG_L3:
		return "OBPG_L3"
	default:
		return "OTHER"
	}
}

// cerPrefixes maps a CERES_metadata LOCALGRANULEID prefix to its product
// type, checked in the order spec.md §4.2 lists them.
var cerPrefixes = []struct {
	prefix string
	typ    SpecialProductType
}{
	{"CER_AVG", CER_AVG},
	{"CER_ES4", CER_ES4},
	{"CER_ISCCP-D2like-Day", CER_ISCCP_D2LIKE_DAY},
	{"CER_ISCCP-D2like-GEO", CER_ISCCP_D2LIKE_GEO},
	{"CER_SRBAVG3", CER_SRBAVG3},
	{"CER_SYN", CER_SYN},
	{"CER_ZAVG", CER_ZAVG},
}

var obpgSensors = map[string]bool{
	"MODISA":  true,
	"MODIST":  true,
	"OCTS":    true,
	"SeaWiFS": true,
	"CZCS":    true,
}

// Classify runs the ordered decision table of spec.md §4.2 and returns the
// first matching SpecialProductType, or Other if nothing matches.
func Classify(cat *inventory.Catalog) SpecialProductType {
	hasFileHeader := hasAttr(cat, "FileHeader")
	hasFileInfo := hasAttr(cat, "FileInfo")
	hasSwathHeader := hasAttr(cat, "SwathHeader")
	gridHeaders := countAttrPrefix(cat, "GridHeader")

	if hasFileHeader && hasFileInfo && hasSwathHeader {
		return TRMM_L2_V7
	}
	if hasFileHeader && hasFileInfo && gridHeaders == 1 {
		return TRMM_L3S_V7
	}
	if hasFileHeader && hasFileInfo && gridHeaders >= 2 {
		return TRMM_L3M_V7
	}

	hasCoreMeta := hasAttr(cat, "CoreMetadata.0")
	hasArchiveMeta := hasAttr(cat, "ArchiveMetadata.0")
	hasStructMeta := hasAttr(cat, "StructMetadata.0")
	hasSubsetting := hasAttrContaining(cat, "SubsettingMethod")

	if hasCoreMeta && hasArchiveMeta && hasStructMeta && hasSubsetting {
		return MODIS_ARNSS
	}
	if hasCoreMeta && hasArchiveMeta && hasStructMeta && !hasSubsetting {
		if hasGeolocationUnderSwathData(cat) {
			return TRMM_L2_V6
		}
		if dims, ok := dimSizesUnderPath(cat, "DATA_GRANULE", 0); ok && dims[1440] && dims[400] {
			return TRMM_L3B_V6
		}
		if dims, ok := dimSizesUnderPath(cat, "DATA_GRANULE", 3); ok {
			switch {
			case dims[360] && dims[180]:
				return TRMM_L3A_V6
			case dims[720] && dims[148]:
				return TRMM_L3C_V6
			}
		}
	}

	if granuleID, ok := ceresLocalGranuleID(cat); ok {
		for _, c := range cerPrefixes {
			if strings.HasPrefix(granuleID, c.prefix) {
				return c.typ
			}
		}
	}

	if sensor, product, ok := obpgIdentity(cat); ok && obpgSensors[sensor] {
		switch {
		case strings.HasSuffix(product, ".L2"):
			return OBPG_L2
		case strings.HasSuffix(product, ".L3m"):
			return OBPG_L3
		}
	}

	return Other
}

func hasAttr(cat *inventory.Catalog, name string) bool {
	_, ok := cat.Global.Get(name)
	return ok
}

func hasAttrContaining(cat *inventory.Catalog, substr string) bool {
	for _, a := range cat.Global.Attrs {
		if strings.Contains(a.Name, substr) {
			return true
		}
	}
	return false
}

func countAttrPrefix(cat *inventory.Catalog, prefix string) int {
	n := 0
	for _, a := range cat.Global.Attrs {
		if strings.HasPrefix(a.Name, prefix) {
			n++
		}
	}
	return n
}

// hasGeolocationUnderSwathData looks for a rank-3 SDS named "geolocation"
// reached through a path containing both "DATA_GRANULE" and "SwathData",
// the TRMM L2 V6 marker (spec.md §4.2).
func hasGeolocationUnderSwathData(cat *inventory.Catalog) bool {
	for _, f := range cat.SDS {
		if f.Rank != 3 || !strings.EqualFold(f.Name, "geolocation") {
			continue
		}
		if strings.Contains(f.Path, "DATA_GRANULE") && strings.Contains(f.Path, "SwathData") {
			return true
		}
	}
	return false
}

// dimSizesUnderPath collects every dimension size seen on an SDS whose path
// contains pathSubstr and whose rank is at least minRank (0 for no rank
// constraint), returning a set for the caller to test the TRMM L3 V6
// size-pair rules against. Per spec.md §4.2 / HDFSP.cc the L3B (1440,400)
// rule carries no rank test; only L3A/L3C (360,180 / 720,148) require
// rank > 2.
func dimSizesUnderPath(cat *inventory.Catalog, pathSubstr string, minRank int32) (map[int32]bool, bool) {
	sizes := make(map[int32]bool)
	found := false
	for _, f := range cat.SDS {
		if f.Rank < minRank || !strings.Contains(f.Path, pathSubstr) {
			continue
		}
		found = true
		for _, d := range f.Dims {
			sizes[d.Size] = true
		}
	}
	return sizes, found
}

// ceresLocalGranuleID returns the CERES_metadata Vdata's LOCALGRANULEID
// field value, materialized as an attribute-like table by the inventory
// pass (it always has far fewer than 10 records).
func ceresLocalGranuleID(cat *inventory.Catalog) (string, bool) {
	for _, v := range cat.Vdata {
		if v.Name != "CERES_metadata" || !v.TreatAsAttributes {
			continue
		}
		for _, f := range v.Fields {
			if f.Name == "LOCALGRANULEID" && len(f.Materialized) > 0 {
				return strings.TrimRight(string(f.Materialized), "\x00"), true
			}
		}
	}
	return "", false
}

// obpgIdentity reads the file-level "Sensor Name" and "Product Name"
// attributes OBPG products carry.
func obpgIdentity(cat *inventory.Catalog) (sensor, product string, ok bool) {
	sensorAttr, sensorOK := cat.Global.Get("Sensor Name")
	productAttr, productOK := cat.Global.Get("Product Name")
	if !sensorOK || !productOK {
		return "", "", false
	}
	return attrString(sensorAttr.Raw), attrString(productAttr.Raw), true
}

func attrString(raw []byte) string {
	return strings.TrimRight(string(raw), "\x00")
}
