package classify

import (
	"testing"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

func globalCatalog(attrs ...hdf4.Attribute) *inventory.Catalog {
	return &inventory.Catalog{Global: inventory.AttributeSet{Attrs: attrs}}
}

func strAttr(name, value string) hdf4.Attribute {
	return hdf4.Attribute{Name: name, Type: hdf4.Int8, Count: len(value), Raw: []byte(value)}
}

func TestClassifyTRMML2V7(t *testing.T) {
	cat := globalCatalog(strAttr("FileHeader", ""), strAttr("FileInfo", ""), strAttr("SwathHeader", ""))
	if got := Classify(cat); got != TRMM_L2_V7 {
		t.Errorf("Classify() = %v, want TRMM_L2_V7", got)
	}
}

func TestClassifyTRMML3SV7(t *testing.T) {
	cat := globalCatalog(strAttr("FileHeader", ""), strAttr("FileInfo", ""), strAttr("GridHeader", ""))
	if got := Classify(cat); got != TRMM_L3S_V7 {
		t.Errorf("Classify() = %v, want TRMM_L3S_V7", got)
	}
}

func TestClassifyTRMML3MV7(t *testing.T) {
	cat := globalCatalog(
		strAttr("FileHeader", ""), strAttr("FileInfo", ""),
		strAttr("GridHeader1", ""), strAttr("GridHeader2", ""),
	)
	if got := Classify(cat); got != TRMM_L3M_V7 {
		t.Errorf("Classify() = %v, want TRMM_L3M_V7", got)
	}
}

func TestClassifyModisArnss(t *testing.T) {
	cat := globalCatalog(
		strAttr("CoreMetadata.0", ""), strAttr("ArchiveMetadata.0", ""), strAttr("StructMetadata.0", ""),
		strAttr("RangeBeginningSubsettingMethod", "TIME"),
	)
	if got := Classify(cat); got != MODIS_ARNSS {
		t.Errorf("Classify() = %v, want MODIS_ARNSS", got)
	}
}

func TestClassifyTRMML2V6(t *testing.T) {
	cat := globalCatalog(strAttr("CoreMetadata.0", ""), strAttr("ArchiveMetadata.0", ""), strAttr("StructMetadata.0", ""))
	cat.SDS = []*inventory.SdsField{
		{Name: "geolocation", Rank: 3, Path: "/DATA_GRANULE/SwathData"},
	}
	if got := Classify(cat); got != TRMM_L2_V6 {
		t.Errorf("Classify() = %v, want TRMM_L2_V6", got)
	}
}

func TestClassifyTRMML3BV6(t *testing.T) {
	cat := globalCatalog(strAttr("CoreMetadata.0", ""), strAttr("ArchiveMetadata.0", ""), strAttr("StructMetadata.0", ""))
	cat.SDS = []*inventory.SdsField{
		{Name: "rainRate", Rank: 3, Path: "/DATA_GRANULE", Dims: []inventory.Dimension{
			{Name: "nlon", Size: 1440}, {Name: "nlat", Size: 400}, {Name: "z", Size: 1},
		}},
	}
	if got := Classify(cat); got != TRMM_L3B_V6 {
		t.Errorf("Classify() = %v, want TRMM_L3B_V6", got)
	}
}

func TestClassifyTRMML3BV6Rank2(t *testing.T) {
	// Real L3B grids are 2-D ([400,1440]); spec.md §4.2 / HDFSP.cc place no
	// rank constraint on the 1440/400 rule (unlike L3A/L3C's rank>2 gate).
	cat := globalCatalog(strAttr("CoreMetadata.0", ""), strAttr("ArchiveMetadata.0", ""), strAttr("StructMetadata.0", ""))
	cat.SDS = []*inventory.SdsField{
		{Name: "rainRate", Rank: 2, Path: "/DATA_GRANULE", Dims: []inventory.Dimension{
			{Name: "nlat", Size: 400}, {Name: "nlon", Size: 1440},
		}},
	}
	if got := Classify(cat); got != TRMM_L3B_V6 {
		t.Errorf("Classify() = %v, want TRMM_L3B_V6", got)
	}
}

func TestClassifyCERAVG(t *testing.T) {
	cat := globalCatalog()
	cat.Vdata = []*inventory.VdataTable{{
		Name:              "CERES_metadata",
		TreatAsAttributes: true,
		Fields: []inventory.VdataField{
			{Name: "LOCALGRANULEID", Materialized: []byte("CER_AVG_Terra-FM1-MODIS_Edition4A_400405.20000301")},
		},
	}}
	if got := Classify(cat); got != CER_AVG {
		t.Errorf("Classify() = %v, want CER_AVG", got)
	}
}

func TestClassifyOBPGL2(t *testing.T) {
	cat := globalCatalog(strAttr("Sensor Name", "MODISA"), strAttr("Product Name", "A2023001000000.L2"))
	if got := Classify(cat); got != OBPG_L2 {
		t.Errorf("Classify() = %v, want OBPG_L2", got)
	}
}

func TestClassifyOBPGL3(t *testing.T) {
	cat := globalCatalog(strAttr("Sensor Name", "SeaWiFS"), strAttr("Product Name", "S20030602003090.L3m"))
	if got := Classify(cat); got != OBPG_L3 {
		t.Errorf("Classify() = %v, want OBPG_L3", got)
	}
}

func TestClassifyOther(t *testing.T) {
	cat := globalCatalog(strAttr(":EOSGRID", ""))
	if got := Classify(cat); got != Other {
		t.Errorf("Classify() = %v, want Other", got)
	}
}

func TestSpecialProductTypeString(t *testing.T) {
	if Other.String() != "OTHER" {
		t.Errorf("Other.String() = %q", Other.String())
	}
	if TRMM_L2_V6.String() != "TRMM_L2_V6" {
		t.Errorf("TRMM_L2_V6.String() = %q", TRMM_L2_V6.String())
	}
}
