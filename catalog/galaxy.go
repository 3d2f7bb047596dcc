// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"math"

	"github.com/jcodagnone/fof/cosmo"
	"github.com/jcodagnone/fof/spatial"
)

// Galaxy is one catalog row. Num is the dense 0-based position in the loaded
// catalog and is the galaxy's identity; ID is the catalog identifier.
type Galaxy struct {
	Num int     `json:"num"`
	ID  uint64  `json:"id"`
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
	Z   float64 `json:"z"`
	DZ  float64 `json:"dz,omitempty"`
	V   float64 `json:"v"`
	Da  float64 `json:"da"`
	Bin int     `json:"bin"`
}

// NewSpecGalaxy builds a galaxy with a spectroscopic redshift.
func NewSpecGalaxy(num int, id uint64, ra, dec, z float64) (*Galaxy, error) {
	if !(z >= 0) {
		return nil, &ArgumentError{Entity: "Galaxy", Field: "z", Constraint: ">= 0", Value: z}
	}

	return &Galaxy{Num: num, ID: id, RA: ra, Dec: dec, Z: z, V: z / (1 + z)}, nil
}

// NewPhotGalaxy builds a galaxy with a photometric redshift and its error.
func NewPhotGalaxy(num int, id uint64, ra, dec, z, dz float64) (*Galaxy, error) {
	if !(z > 0) {
		return nil, &ArgumentError{Entity: "Galaxy", Field: "z", Constraint: "> 0", Value: z}
	}

	if !(dz > 0) {
		return nil, &ArgumentError{Entity: "Galaxy", Field: "dz", Constraint: "> 0", Value: dz}
	}

	return &Galaxy{Num: num, ID: id, RA: ra, Dec: dec, Z: z, DZ: dz, V: z / (1 + z)}, nil
}

// New builds a galaxy for the given mode; dz is ignored in spectroscopic mode.
func New(mode Mode, num int, id uint64, ra, dec, z, dz float64) (*Galaxy, error) {
	if mode == Photometric {
		return NewPhotGalaxy(num, id, ra, dec, z, dz)
	}

	return NewSpecGalaxy(num, id, ra, dec, z)
}

// Point returns the sky position of the galaxy.
func (g *Galaxy) Point() spatial.Point {
	return spatial.Point{RA: g.RA, Dec: g.Dec}
}

// AssignDist sets the angular diameter distance for the galaxy's redshift.
func (g *Galaxy) AssignDist(c cosmo.Cosmology) {
	g.Da = c.AngularDiameterDistance(g.Z)
}

// AssignBin sets the redshift bin index for bins of binSize starting at
// minValue.
func (g *Galaxy) AssignBin(minValue, binSize float64) {
	g.Bin = int(math.Floor((g.Z - minValue) / binSize))
}

// Points returns the sky positions of galaxies, in order.
func Points(galaxies []*Galaxy) []spatial.Point {
	points := make([]spatial.Point, len(galaxies))
	for i, g := range galaxies {
		points[i] = g.Point()
	}

	return points
}

// AssignDists sets Da on every galaxy.
func AssignDists(galaxies []*Galaxy, c cosmo.Cosmology) {
	for _, g := range galaxies {
		g.AssignDist(c)
	}
}

// AssignBins sets Bin on every galaxy.
func AssignBins(galaxies []*Galaxy, minValue, binSize float64) {
	for _, g := range galaxies {
		g.AssignBin(minValue, binSize)
	}
}
