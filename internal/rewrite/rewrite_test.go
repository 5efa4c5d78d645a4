package rewrite

import (
	"testing"

	"github.com/hyrax-data/hdf4view/internal/classify"
	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Latitude":     "Latitude",
		"2A12":         "_2A12",
		"foo.bar baz":  "foo_bar_baz",
		"":             "_",
		"already_fine": "already_fine",
	}
	for in, want := range cases {
		if got := sanitize(in); got != want {
			t.Errorf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCoalesceFakeDims(t *testing.T) {
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "temp", Dims: []inventory.Dimension{{Name: "nlat", Size: 10}, {Name: "fakeDim0", Size: 10}}},
	}}
	if err := coalesceFakeDims(cat, classify.Other); err != nil {
		t.Fatalf("coalesceFakeDims: %v", err)
	}
	if cat.SDS[0].Dims[1].Name != "nlat" {
		t.Errorf("fakeDim0 not coalesced, got %q", cat.SDS[0].Dims[1].Name)
	}
}

func TestCoalesceFakeDimsFailsForNonOther(t *testing.T) {
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "temp", Dims: []inventory.Dimension{{Name: "fakeDim0", Size: 99}}},
	}}
	if err := coalesceFakeDims(cat, classify.TRMM_L2_V6); err == nil {
		t.Fatal("expected error for unmatched fake dim on a non-OTHER product")
	}
}

func TestResolveClashes(t *testing.T) {
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Kind: inventory.FieldGeneral, NewName: "temp"},
		{Kind: inventory.FieldGeneral, NewName: "temp"},
		{Kind: inventory.FieldLatitude, NewName: "temp"},
	}}
	resolveClashes(cat)
	names := map[string]bool{}
	for _, f := range cat.SDS {
		if names[f.NewName] {
			t.Fatalf("duplicate NewName %q after resolveClashes", f.NewName)
		}
		names[f.NewName] = true
	}
}

func TestSynthesizeMissingCVs(t *testing.T) {
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "temp", Rank: 1, Dims: []inventory.Dimension{{Name: "level", Size: 5}}},
	}}
	synthesizeMissingCVs(cat)
	if len(cat.SDS) != 2 {
		t.Fatalf("expected a synthesized CV to be appended, got %d fields", len(cat.SDS))
	}
	cv := cat.SDS[1]
	if cv.Name != "level" || cv.Kind != inventory.FieldSyntheticIndex {
		t.Fatalf("unexpected synthesized CV: %+v", cv)
	}
	vals, err := cv.Synthesize(hdf4.Hyperslab{Start: []int32{0}, Stride: []int32{1}, Count: []int32{5}})
	if err != nil || len(vals) != 5 || vals[4] != 4 {
		t.Fatalf("Synthesize() = %v, %v", vals, err)
	}
}

func TestSynthesizeMissingCVsSkipsExisting(t *testing.T) {
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "level", Rank: 1, Dims: []inventory.Dimension{{Name: "level", Size: 5}}},
	}}
	synthesizeMissingCVs(cat)
	if len(cat.SDS) != 1 {
		t.Fatalf("expected no synthesis when a self-named rank-1 field already exists, got %d", len(cat.SDS))
	}
}

func TestAssignCoordinatesCOARDS(t *testing.T) {
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "level", NewName: "level", Kind: inventory.FieldVertical, Rank: 1, Dims: []inventory.Dimension{{Name: "level"}}},
		{Name: "temp", NewName: "temp", Kind: inventory.FieldGeneral, Rank: 1, Dims: []inventory.Dimension{{Name: "level"}}},
	}}
	assignCoordinates(cat)
	if cat.SDS[1].Coordinates != "level" {
		t.Errorf("Coordinates = %q, want %q", cat.SDS[1].Coordinates, "level")
	}
}

func TestAssignCoordinatesOneSharedOneNot(t *testing.T) {
	latlonDims := []inventory.Dimension{{Name: "y", Size: 10}, {Name: "x", Size: 20}}
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "lat", NewName: "lat", Kind: inventory.FieldLatitude, Rank: 2, Dims: latlonDims},
		{Name: "lon", NewName: "lon", Kind: inventory.FieldLongitude, Rank: 2, Dims: latlonDims},
		{Name: "temp", NewName: "temp", Kind: inventory.FieldGeneral, Rank: 2, Dims: []inventory.Dimension{
			{Name: "y", Size: 10}, {Name: "z", Size: 3},
		}},
	}}
	assignCoordinates(cat)
	if cat.SDS[2].Coordinates != "" {
		t.Errorf("expected suppressed coordinates for partial dim overlap, got %q", cat.SDS[2].Coordinates)
	}
}

func TestAssignCoordinatesSuppressed(t *testing.T) {
	cat := &inventory.Catalog{
		SuppressCoordinates: true,
		SDS: []*inventory.SdsField{
			{Name: "temp", NewName: "temp", Kind: inventory.FieldGeneral, Rank: 1, Dims: []inventory.Dimension{{Name: "x"}}},
		},
	}
	cat.SDS[0].Coordinates = "should be cleared"
	assignCoordinates(cat)
	if cat.SDS[0].Coordinates != "" {
		t.Errorf("expected coordinates cleared when SuppressCoordinates is set")
	}
}

func TestParseGridHeaderCenter(t *testing.T) {
	raw := "Registration=CENTER;LatitudeResolution=1.0;LongitudeResolution=1.0;" +
		"NorthBoundingCoordinate=90;SouthBoundingCoordinate=-90;" +
		"EastBoundingCoordinate=180;WestBoundingCoordinate=-180;"
	gh, err := ParseGridHeader(raw)
	if err != nil {
		t.Fatalf("ParseGridHeader: %v", err)
	}
	if gh.LatSize() != 180 || gh.LonSize() != 360 {
		t.Fatalf("LatSize/LonSize = %d/%d, want 180/360", gh.LatSize(), gh.LonSize())
	}
	if got := gh.LatValue(0); got != -89.5 {
		t.Errorf("LatValue(0) = %v, want -89.5", got)
	}
}

func TestStripLeadingPathComponents(t *testing.T) {
	got := stripLeadingPathComponents("/HS/SwathHS/Data Fields", 2, "rainRate")
	if got != "Data Fields_rainRate" {
		t.Errorf("stripLeadingPathComponents = %q", got)
	}
}

func TestRewriteTRMML2V6(t *testing.T) {
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "geolocation", Rank: 3, Dims: []inventory.Dimension{
			{Name: "nscan", Size: 100}, {Name: "npixel", Size: 50}, {Name: "ll", Size: 2},
		}},
	}}
	if err := Rewrite(cat, classify.TRMM_L2_V6, Config{}); err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	var haveLat, haveLon bool
	for _, f := range cat.SDS {
		if f.Name == "latitude" && f.Kind == inventory.FieldLatitude {
			haveLat = true
		}
		if f.Name == "longitude" && f.Kind == inventory.FieldLongitude {
			haveLon = true
		}
	}
	if !haveLat || !haveLon {
		t.Fatalf("expected split latitude/longitude fields, got %+v", cat.SDS)
	}
}

func TestInducePixelCenterGridRank2(t *testing.T) {
	// Real L3B fields are 2-D ([400,1440]); inducePixelCenterGrid must not
	// require rank 3 for this case (spec.md §4.3.1, HDFSP.cc:1355-1371).
	cat := &inventory.Catalog{SDS: []*inventory.SdsField{
		{Name: "rainRate", Rank: 2, Dims: []inventory.Dimension{
			{Name: "nlat", Size: 400}, {Name: "nlon", Size: 1440},
		}},
	}}
	if err := inducePixelCenterGrid(cat, 1440, 400, 0); err != nil {
		t.Fatalf("inducePixelCenterGrid: %v", err)
	}
	var haveLat, haveLon bool
	for _, f := range cat.SDS {
		if f.Name == "latitude" && f.Kind == inventory.FieldLatitude {
			haveLat = true
		}
		if f.Name == "longitude" && f.Kind == inventory.FieldLongitude {
			haveLon = true
		}
	}
	if !haveLat || !haveLon {
		t.Fatalf("expected induced latitude/longitude CVs for a 2-D field, got %+v", cat.SDS)
	}
}
