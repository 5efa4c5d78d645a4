package hdf4view

import (
	"testing"

	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/inventory"
)

func TestProductIDParsesAlgorithmID(t *testing.T) {
	cat := &inventory.Catalog{
		Global: inventory.AttributeSet{
			Attrs: []hdf4.Attribute{
				{Name: "FileHeader", Raw: []byte("DOI=10.5067/X;AlgorithmID=2A12;GranuleNumber=1;")},
			},
		},
	}
	if got := productID(cat); got != "2A12" {
		t.Errorf("productID = %q, want %q", got, "2A12")
	}
}

func TestProductIDAbsentReturnsEmpty(t *testing.T) {
	cat := &inventory.Catalog{Global: inventory.AttributeSet{}}
	if got := productID(cat); got != "" {
		t.Errorf("productID = %q, want empty", got)
	}
}

func TestValidateSlabOutOfRange(t *testing.T) {
	dims := []inventory.Dimension{{Name: "x", Size: 10}}
	slab := Hyperslab{Start: []int32{5}, Stride: []int32{1}, Count: []int32{10}}
	err := validateSlab("v", dims, slab)
	if err == nil {
		t.Fatal("expected OutOfRange error")
	}
	if _, ok := err.(*OutOfRange); !ok {
		t.Fatalf("got %T, want *OutOfRange", err)
	}
}

func TestValidateSlabInRange(t *testing.T) {
	dims := []inventory.Dimension{{Name: "x", Size: 10}}
	slab := Hyperslab{Start: []int32{0}, Stride: []int32{2}, Count: []int32{5}}
	if err := validateSlab("v", dims, slab); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateSlabRankMismatch(t *testing.T) {
	dims := []inventory.Dimension{{Name: "x", Size: 10}, {Name: "y", Size: 5}}
	slab := Hyperslab{Start: []int32{0}, Stride: []int32{1}, Count: []int32{10}}
	if err := validateSlab("v", dims, slab); err == nil {
		t.Fatal("expected rank mismatch error")
	}
}
