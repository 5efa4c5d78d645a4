package rewrite

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// GridHeader is the TRMM V7 "GridHeader"/"GridHeaderN" attribute, an ASCII,
// newline-delimited sequence of KEY=VALUE; pairs (spec.md §6).
type GridHeader struct {
	Registration string
	BinMethod    string
	LatRes       float64
	LonRes       float64
	North        float64
	South        float64
	East         float64
	West         float64
}

// ParseGridHeader parses the raw attribute text.
func ParseGridHeader(raw string) (GridHeader, error) {
	var g GridHeader
	for _, field := range strings.Split(raw, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		kv := strings.SplitN(field, "=", 2)
		if len(kv) != 2 {
			continue
		}
		key := strings.TrimSpace(kv[0])
		value := strings.TrimSpace(kv[1])
		var err error
		switch key {
		case "Registration":
			g.Registration = value
		case "BinMethod":
			g.BinMethod = value
		case "LatitudeResolution":
			g.LatRes, err = strconv.ParseFloat(value, 64)
		case "LongitudeResolution":
			g.LonRes, err = strconv.ParseFloat(value, 64)
		case "NorthBoundingCoordinate":
			g.North, err = strconv.ParseFloat(value, 64)
		case "SouthBoundingCoordinate":
			g.South, err = strconv.ParseFloat(value, 64)
		case "EastBoundingCoordinate":
			g.East, err = strconv.ParseFloat(value, 64)
		case "WestBoundingCoordinate":
			g.West, err = strconv.ParseFloat(value, 64)
		}
		if err != nil {
			return g, fmt.Errorf("parse GridHeader key %q: %w", key, err)
		}
	}
	if g.LatRes == 0 || g.LonRes == 0 {
		return g, fmt.Errorf("GridHeader missing LatitudeResolution/LongitudeResolution")
	}
	return g, nil
}

// LatSize returns the grid's latitude dimension size.
func (g GridHeader) LatSize() int32 {
	return int32(math.Round((g.North - g.South) / g.LatRes))
}

// LonSize returns the grid's longitude dimension size.
func (g GridHeader) LonSize() int32 {
	return int32(math.Round((g.East - g.West) / g.LonRes))
}

// LatValue returns the latitude of row j, per the registration convention.
func (g GridHeader) LatValue(j int32) float64 {
	if g.Registration == "CORNER" {
		return g.South + g.LatRes + float64(j)*g.LatRes
	}
	return g.South + g.LatRes/2 + float64(j)*g.LatRes
}

// LonValue returns the longitude of column i, per the registration
// convention.
func (g GridHeader) LonValue(i int32) float64 {
	if g.Registration == "CORNER" {
		return g.West + g.LonRes + float64(i)*g.LonRes
	}
	return g.West + g.LonRes/2 + float64(i)*g.LonRes
}
