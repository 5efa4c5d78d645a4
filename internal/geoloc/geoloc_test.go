package geoloc

import (
	"math"
	"testing"
)

func TestComputeLargeGeo(t *testing.T) {
	desc := &ProjectionDescriptor{
		SpecialFormat: 1,
		XDim:          5, YDim: 3,
		UpLeft:   [2]float64{-100, 40},
		LowRight: [2]float64{100, -40},
	}
	lat, err := ComputeLatLon(desc, Lat, []int32{0}, []int32{1}, []int32{3})
	if err != nil {
		t.Fatalf("ComputeLatLon: %v", err)
	}
	want := []float64{40 - 80.0/6, 0, -40 + 80.0/6}
	for i := range want {
		if math.Abs(lat[i]-want[i]) > 1e-9 {
			t.Errorf("lat[%d] = %v, want %v", i, lat[i], want[i])
		}
	}
}

func TestComputeLargeGeoRejectsBadCorners(t *testing.T) {
	desc := &ProjectionDescriptor{
		SpecialFormat: 1,
		XDim:          5, YDim: 3,
		UpLeft:   [2]float64{-100, 91},
		LowRight: [2]float64{100, -40},
	}
	if _, err := ComputeLatLon(desc, Lat, []int32{0}, []int32{1}, []int32{1}); err == nil {
		t.Fatal("expected a ProjectionError for an out-of-range corner")
	}
}

func TestComputeLargeGeoOutOfRange(t *testing.T) {
	desc := &ProjectionDescriptor{SpecialFormat: 1, XDim: 5, YDim: 3}
	if _, err := ComputeLatLon(desc, Lat, []int32{5}, []int32{1}, []int32{1}); err == nil {
		t.Fatal("expected OutOfRange error")
	}
}

func TestComputeMOD13C2Like(t *testing.T) {
	desc := &ProjectionDescriptor{SpecialFormat: 3, XDim: 4, YDim: 2}
	lat, err := ComputeLatLon(desc, Lat, []int32{0}, []int32{1}, []int32{2})
	if err != nil {
		t.Fatalf("ComputeLatLon: %v", err)
	}
	if lat[0] != 45 || lat[1] != -45 {
		t.Errorf("lat = %v, want [45 -45]", lat)
	}

	lon, err := ComputeLatLon(desc, Lon, []int32{0}, []int32{1}, []int32{4})
	if err != nil {
		t.Fatalf("ComputeLatLon: %v", err)
	}
	want := []float64{-135, -45, 45, 135}
	for i := range want {
		if lon[i] != want[i] {
			t.Errorf("lon[%d] = %v, want %v", i, lon[i], want[i])
		}
	}
}

func TestNormalizeLongitudes(t *testing.T) {
	lon := []float64{170, 190, 210}
	normalizeLongitudes(lon)
	want := []float64{170, -170, -150}
	for i := range want {
		if lon[i] != want[i] {
			t.Errorf("lon[%d] = %v, want %v", i, lon[i], want[i])
		}
	}
}

func TestRepairUniformStep(t *testing.T) {
	desc := &ProjectionDescriptor{HasFillValue: true, FillValue: -999}
	vals := []float64{0, 1, -999, 3, 4}
	repairUniformStep(vals, desc, Lat)
	if vals[2] != 2 {
		t.Errorf("vals[2] = %v, want 2", vals[2])
	}
}

func TestRepairUniformStepClampsOutOfRangeTail(t *testing.T) {
	desc := &ProjectionDescriptor{HasFillValue: true, FillValue: -999}
	vals := []float64{-90, -89.9, -89.8, -999, -999, -999}
	repairUniformStep(vals, desc, Lat)
	for i, v := range vals {
		if v < -90 || v > 90 {
			t.Errorf("vals[%d] = %v out of [-90,90] range", i, v)
		}
	}
}

func TestRepairUniformStepNoFillValue(t *testing.T) {
	desc := &ProjectionDescriptor{}
	vals := []float64{0, 1, -999, 3}
	repairUniformStep(vals, desc, Lat)
	if vals[2] != -999 {
		t.Errorf("expected untouched slice without HasFillValue, got %v", vals)
	}
}

func TestIsInvalidLatLon(t *testing.T) {
	cases := []struct {
		lat, lon float64
		want     bool
	}{
		{10, 20, false},
		{math.NaN(), 0, true},
		{math.Inf(1), 0, true},
		{91, 0, true},
		{0, 181, true},
		{1e51, 0, true},
	}
	for _, c := range cases {
		if got := isInvalidLatLon(c.lat, c.lon); got != c.want {
			t.Errorf("isInvalidLatLon(%v, %v) = %v, want %v", c.lat, c.lon, got, c.want)
		}
	}
}

func TestRepairLAMAZ(t *testing.T) {
	desc := &ProjectionDescriptor{XDim: 3, YDim: 3}
	// 3x3 grid, center cell invalid.
	lat := []float64{1, 1, 1, 1, math.NaN(), 1, 1, 1, 1}
	lon := []float64{10, 10, 10, 10, math.NaN(), 10, 10, 10, 10}
	repairLAMAZ(lat, lon, desc)
	if math.IsNaN(lat[4]) || math.IsNaN(lon[4]) {
		t.Fatalf("center cell not repaired: lat=%v lon=%v", lat[4], lon[4])
	}
	if lat[4] != 1 || lon[4] != 10 {
		t.Errorf("repaired center = (%v, %v), want (1, 10)", lat[4], lon[4])
	}
}

func TestComputeSOMRejectsWrongRank(t *testing.T) {
	desc := &ProjectionDescriptor{Proj: ProjSOM}
	_, err := ComputeLatLon(desc, Lat, []int32{0, 0}, []int32{1, 1}, []int32{1, 1})
	if err == nil {
		t.Fatal("expected an error for a 2-element hyperslab against a SOM projection")
	}
}

func TestFamilyDispatch(t *testing.T) {
	cases := map[int32]family{
		ProjGeographic: familyGeographicCEA,
		ProjCEA:        familyGeographicCEA,
		ProjSOM:        familySOM,
		ProjLAMAZ:      familyLAMAZ,
		ProjUTM:        familyGeneric2D,
	}
	for proj, want := range cases {
		d := &ProjectionDescriptor{Proj: proj}
		if got := d.family(); got != want {
			t.Errorf("family(%d) = %v, want %v", proj, got, want)
		}
	}
}
