package hdf4view

import (
	"context"
	"encoding/binary"
	"math"
	"os"

	"github.com/hyrax-data/hdf4view/internal/geoloc"
	"github.com/hyrax-data/hdf4view/internal/hdf4"
	"github.com/hyrax-data/hdf4view/internal/subsetcache"
)

// GeoGrid is one open HDF-EOS2 grid together with the ProjectionDescriptor
// the Geolocation Reconstructor needs to turn it into lat/lon arrays
// (spec.md §4.4). It is opened explicitly by name rather than discovered
// automatically: spec.md scopes HDF-EOS2 grid enumeration to the external
// library boundary (§6), and request-driven subsetting always names the
// grid a variable belongs to, so the caller supplies it.
type GeoGrid struct {
	ds   *Dataset
	grid *hdf4.GridHandle
	desc *geoloc.ProjectionDescriptor
	name string
}

// OpenGrid attaches to the named HDF-EOS2 grid and reads its projection
// identity, building the ProjectionDescriptor used by every subsequent
// ReadLatLon call. YDimMajor defaults to true (row-major flattening);
// callers whose product flattens the other way should set it via
// WithYDimMajor before reading.
func (d *Dataset) OpenGrid(name string) (*GeoGrid, error) {
	if gg, ok := d.grids[name]; ok {
		return gg, nil
	}

	g, err := hdf4.OpenGrid(d.handle, name)
	if err != nil {
		return nil, &FormatError{Op: "OpenGrid(" + name + ")", Err: err}
	}
	info, err := g.Info()
	if err != nil {
		g.Close()
		return nil, &FormatError{Op: "GridInfo(" + name + ")", Err: err}
	}

	desc := &geoloc.ProjectionDescriptor{
		Proj: info.Proj, Zone: info.Zone, Sphere: info.Sphere,
		Params: info.Params, PixReg: info.PixReg, Origin: info.Origin,
		XDim: info.XDim, YDim: info.YDim,
		UpLeft: info.UpLeft, LowRight: info.LowRight,
		YDimMajor: true,
		Grid:      g,
	}
	gg := &GeoGrid{ds: d, grid: g, desc: desc, name: name}
	d.grids[name] = gg
	return gg, nil
}

// WithYDimMajor overrides the flattening order for 2-D projections.
func (gg *GeoGrid) WithYDimMajor(yDimMajor bool) *GeoGrid {
	gg.desc.YDimMajor = yDimMajor
	return gg
}

// WithFillValue tells the reconstructor which sentinel marks an
// unreadable geographic lat/lon cell, enabling the fill-value repair pass
// (spec.md §4.4).
func (gg *GeoGrid) WithFillValue(v float64) *GeoGrid {
	gg.desc.FillValue, gg.desc.HasFillValue = v, true
	return gg
}

// WithSpecialFormat selects a fixed-formula reconstruction that bypasses
// HDF-EOS2/GCTP entirely (spec.md §4.4 special_format 1 or 3). corners
// (upLeft, lowRight) are only consulted for format 1.
func (gg *GeoGrid) WithSpecialFormat(format int, upLeft, lowRight [2]float64) *GeoGrid {
	gg.desc.SpecialFormat = format
	gg.desc.UpLeft, gg.desc.LowRight = upLeft, lowRight
	return gg
}

// WithMISR configures this grid for MISR SOM reconstruction: it
// initializes the offset table via misr_init and switches the descriptor
// to the SOM projection code (spec.md §4.4 SOM algorithm).
func (gg *GeoGrid) WithMISR(path, nBlock, nOffset int32) (*GeoGrid, error) {
	params, err := hdf4.MisrInit(path, nBlock, nOffset)
	if err != nil {
		return nil, &FormatError{Op: "MisrInit", Err: err}
	}
	gg.desc.Proj = geoloc.ProjSOM
	gg.desc.MisrPath, gg.desc.NBlock, gg.desc.NOffset = path, nBlock, nOffset
	gg.desc.MisrParams = params
	return gg, nil
}

// Close detaches the underlying grid. Dataset.Close also closes every grid
// it opened, so calling this directly is only needed to free a grid
// early.
func (gg *GeoGrid) Close() error {
	delete(gg.ds.grids, gg.name)
	return gg.grid.Close()
}

// ReadLatLon returns the requested hyperslab of lat or lon values for this
// grid, consulting the on-disk lat/lon cache first when enabled (spec.md
// §4.5) and falling back to live geoloc.ComputeLatLon on a miss.
func (gg *GeoGrid) ReadLatLon(ctx context.Context, which geoloc.Which, slab Hyperslab) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, &Cancelled{Op: "ReadLatLon"}
	}

	if gg.ds.cache == nil || !gg.ds.opts.EnableEOSGeoCacheFile {
		return geoloc.ComputeLatLon(gg.desc, which, slab.Start, slab.Stride, slab.Count)
	}

	key := subsetcache.LatLonKey(gg.ds.opts.CachePrefix, gg.desc)
	latOff, latStride, latCount := gg.desc.FullSlab(geoloc.Lat)
	lonOff, lonStride, lonCount := gg.desc.FullSlab(geoloc.Lon)
	latN := elemCount(latCount)
	lonN := elemCount(lonCount)
	expectedBytes := (latN + lonN) * 8

	if h, err := gg.ds.cache.Get(key, expectedBytes); err != nil {
		return nil, &FormatError{Op: "cache get", Err: err}
	} else if h != nil {
		defer h.Close()
		buf, err := h.ReadAt(0, expectedBytes)
		if err != nil {
			return nil, &FormatError{Op: "cache read", Err: err}
		}
		lat, lon := decodeLatLonEntry(buf, latN, lonN)
		return subsetCached(which, lat, lon, latCount, lonCount, slab)
	}

	fullLat, err := geoloc.ComputeLatLon(gg.desc, geoloc.Lat, latOff, latStride, latCount)
	if err != nil {
		return nil, err
	}
	fullLon, err := geoloc.ComputeLatLon(gg.desc, geoloc.Lon, lonOff, lonStride, lonCount)
	if err != nil {
		return nil, err
	}

	if err := gg.ds.cache.Put(key, expectedBytes, func(f *os.File) error {
		return writeLatLonEntry(f, fullLat, fullLon)
	}); err != nil {
		// Cache write failure degrades gracefully (spec.md §7: "cache-write
		// failure logs and continues"); the caller still gets its values.
		_ = err
	}

	return subsetCached(which, fullLat, fullLon, latCount, lonCount, slab)
}

func elemCount(count []int32) int64 {
	n := int64(1)
	for _, c := range count {
		n *= int64(c)
	}
	return n
}

func subsetCached(which geoloc.Which, lat, lon []float64, latCount, lonCount []int32, slab Hyperslab) ([]float64, error) {
	if which == geoloc.Lat {
		return subsetcache.GatherFloat64(lat, latCount, slab.Start, slab.Stride, slab.Count), nil
	}
	return subsetcache.GatherFloat64(lon, lonCount, slab.Start, slab.Stride, slab.Count), nil
}

func decodeLatLonEntry(buf []byte, latN, lonN int64) (lat, lon []float64) {
	lat = make([]float64, latN)
	lon = make([]float64, lonN)
	for i := range lat {
		lat[i] = float64FromBytes(buf[i*8:])
	}
	base := latN * 8
	for i := range lon {
		lon[i] = float64FromBytes(buf[base+int64(i)*8:])
	}
	return lat, lon
}

func float64FromBytes(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// writeLatLonEntry packs lat then lon as little-endian float64 spans into
// f, matching the layout decodeLatLonEntry expects (spec.md §3's
// "choose one byte order and stick to it", resolved as little-endian
// unconditionally -- see SPEC_FULL.md's Open Question decisions).
func writeLatLonEntry(f *os.File, lat, lon []float64) error {
	buf := make([]byte, 8*(len(lat)+len(lon)))
	for i, v := range lat {
		binary.LittleEndian.PutUint64(buf[i*8:], math.Float64bits(v))
	}
	base := len(lat) * 8
	for i, v := range lon {
		binary.LittleEndian.PutUint64(buf[base+i*8:], math.Float64bits(v))
	}
	_, err := f.Write(buf)
	return err
}
