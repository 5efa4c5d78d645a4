package inventory

import (
	"testing"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
)

func TestFieldKindString(t *testing.T) {
	cases := map[FieldKind]string{
		FieldGeneral:        "general",
		FieldLatitude:       "latitude",
		FieldLongitude:      "longitude",
		FieldVertical:       "vertical",
		FieldSyntheticIndex: "synthetic-index",
		FieldTime:           "time",
		FieldDimScale:       "dim-scale",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("FieldKind(%d).String() = %q, want %q", kind, got, want)
		}
	}
}

func TestAttributeSetGet(t *testing.T) {
	set := AttributeSet{Attrs: []hdf4.Attribute{
		{Name: "units", Raw: []byte("K")},
		{Name: "long_name", Raw: []byte("brightness temperature")},
	}}

	attr, ok := set.Get("units")
	if !ok || string(attr.Raw) != "K" {
		t.Fatalf("Get(units) = %v, %v", attr, ok)
	}
	if _, ok := set.Get("missing"); ok {
		t.Fatal("Get(missing) reported found")
	}
}

func TestIsCoordinateVariable(t *testing.T) {
	cv := &SdsField{
		Name:    "Latitude",
		NewName: "Latitude",
		Kind:    FieldLatitude,
		Rank:    1,
		Dims:    []Dimension{{Name: "Latitude"}},
	}
	if !cv.IsCoordinateVariable() {
		t.Fatal("expected rank-1 self-named field to be a coordinate variable")
	}

	notSelfNamed := &SdsField{
		Kind: FieldLatitude,
		Rank: 1,
		Dims: []Dimension{{Name: "nlat"}},
	}
	if notSelfNamed.IsCoordinateVariable() {
		t.Fatal("dimension name must match NewName to qualify")
	}

	generalRank1 := &SdsField{
		Kind: FieldGeneral,
		Rank: 1,
		Dims: []Dimension{{Name: "x"}},
	}
	if generalRank1.IsCoordinateVariable() {
		t.Fatal("FieldGeneral never qualifies regardless of shape")
	}

	multiRank := &SdsField{
		Kind: FieldLatitude,
		Rank: 2,
		Dims: []Dimension{{Name: "y"}, {Name: "x"}},
	}
	if multiRank.IsCoordinateVariable() {
		t.Fatal("rank-2 field must not qualify as a coordinate variable")
	}
}

func TestCatalogSDSByRef(t *testing.T) {
	cat := &Catalog{
		SDS:      []*SdsField{{Name: "a"}, {Name: "b"}},
		refIndex: map[int32]int{10: 0, 20: 1},
	}
	field, ok := cat.SDSByRef(20)
	if !ok || field.Name != "b" {
		t.Fatalf("SDSByRef(20) = %v, %v", field, ok)
	}
	if _, ok := cat.SDSByRef(99); ok {
		t.Fatal("SDSByRef(99) reported found")
	}
}

func TestPathEndsIn(t *testing.T) {
	cases := []struct {
		path, marker string
		want         bool
	}{
		{"/MOD_Grid/Data Fields", "Data Fields", true},
		{"/MOD_Grid/Data Fields", "Geolocation Fields", false},
		{"", "Data Fields", false},
		{"/Data Fields/nested", "Data Fields", false},
	}
	for _, c := range cases {
		if got := pathEndsIn(c.path, c.marker); got != c.want {
			t.Errorf("pathEndsIn(%q, %q) = %v, want %v", c.path, c.marker, got, c.want)
		}
	}
}

func TestIgnoredVgroupClasses(t *testing.T) {
	for _, class := range []string{"Attr0.0", "Var0.0", "Dim0.0", "UDim0.0", "CDF0.0", "RI", "RIG0.0"} {
		if !ignoredVgroupClasses[class] {
			t.Errorf("expected %q to be an ignored vgroup class", class)
		}
	}
	if ignoredVgroupClasses["Data Fields"] {
		t.Error("Data Fields must not be ignored")
	}
}

func TestExcludedVdataClasses(t *testing.T) {
	for _, class := range []string{"_HDF_CHK_TBL_", "_HDF_SDSVAR", "_HDF_CRDVAR", "DimVal0.0", "DimVal0.1", "RIATTR0.0N"} {
		if !excludedVdataClasses[class] {
			t.Errorf("expected %q to be an excluded vdata class", class)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if !cfg.EnableVdataToAttr {
		t.Error("EnableVdataToAttr should default on")
	}
	if cfg.VdataAttrThreshold != 10 {
		t.Errorf("VdataAttrThreshold = %d, want 10", cfg.VdataAttrThreshold)
	}
}
