package geoloc

import "testing"

func TestFullSlabGeographicIs1D(t *testing.T) {
	desc := &ProjectionDescriptor{Proj: ProjGeographic, XDim: 360, YDim: 180}

	_, _, latCount := desc.FullSlab(Lat)
	if len(latCount) != 1 || latCount[0] != 180 {
		t.Fatalf("lat FullSlab = %v, want [180]", latCount)
	}
	_, _, lonCount := desc.FullSlab(Lon)
	if len(lonCount) != 1 || lonCount[0] != 360 {
		t.Fatalf("lon FullSlab = %v, want [360]", lonCount)
	}
}

func TestFullSlabGeneric2DIs2D(t *testing.T) {
	desc := &ProjectionDescriptor{Proj: ProjUTM, XDim: 100, YDim: 50}

	_, _, latCount := desc.FullSlab(Lat)
	if len(latCount) != 2 || latCount[0] != 50 || latCount[1] != 100 {
		t.Fatalf("lat FullSlab = %v, want [50 100]", latCount)
	}
	_, _, lonCount := desc.FullSlab(Lon)
	if len(lonCount) != 2 || lonCount[0] != 50 || lonCount[1] != 100 {
		t.Fatalf("lon FullSlab = %v, want [50 100]", lonCount)
	}
}

func TestFullSlabSOMHasBlockDimension(t *testing.T) {
	desc := &ProjectionDescriptor{Proj: ProjSOM, XDim: 64, YDim: 128, NBlock: 180}

	_, _, count := desc.FullSlab(Lat)
	if len(count) != 3 || count[0] != 180 || count[1] != 128 || count[2] != 64 {
		t.Fatalf("SOM FullSlab = %v, want [180 128 64]", count)
	}
}
