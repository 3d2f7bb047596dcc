// Copyright 2025 The ChapaUY Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"

	"github.com/uber/h3-go/v4"
)

const deg2rad = math.Pi / 180

// Point represents a position on the celestial sphere in degrees.
type Point struct {
	RA  float64 `json:"ra"`
	Dec float64 `json:"dec"`
}

// String returns a string representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("(%f, %f)", p.RA, p.Dec)
}

// AngularSeparation calculates the great-circle distance between two points in radians.
func (p Point) AngularSeparation(other Point) float64 {
	dec1 := p.Dec * deg2rad
	dec2 := other.Dec * deg2rad
	dDec := (other.Dec - p.Dec) * deg2rad
	dRA := (other.RA - p.RA) * deg2rad

	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1)*math.Cos(dec2)*
			math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}

	return 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Vector returns the unit vector pointing at p.
func (p Point) Vector() [3]float64 {
	ra := p.RA * deg2rad
	dec := p.Dec * deg2rad

	return [3]float64{
		math.Cos(dec) * math.Cos(ra),
		math.Cos(dec) * math.Sin(ra),
		math.Sin(dec),
	}
}

// FromVector returns the point a (not necessarily normalised) vector points at.
func FromVector(v [3]float64) Point {
	n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if n == 0 {
		return Point{}
	}

	dec := math.Asin(clamp(v[2]/n, -1, 1)) / deg2rad

	ra := math.Atan2(v[1], v[0]) / deg2rad
	if ra < 0 {
		ra += 360
	}

	return Point{RA: ra, Dec: dec}
}

// Cell maps the point onto an H3 cell, reading dec as latitude and ra as
// longitude wrapped to [-180, 180).
func (p Point) Cell(res int) (h3.Cell, error) {
	lng := math.Mod(p.RA+180, 360)
	if lng < 0 {
		lng += 360
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Dec, lng-180), res)
	if err != nil {
		return 0, fmt.Errorf("converting %s to h3 cell at res %d: %w", p, res, err)
	}

	return cell, nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
