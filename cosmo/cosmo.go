// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package cosmo computes the cosmological distances needed to turn physical
// linking lengths into angles on the sky.
package cosmo

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate/quad"
)

// SpeedOfLight in km/s.
const SpeedOfLight = 299792.458

// legendrePoints is the number of Gauss-Legendre nodes used for the
// comoving distance integral; 1/E(z) is smooth enough for this to be exact
// to well below the catalog precision.
const legendrePoints = 64

var errInvalidCosmology = errors.New("invalid cosmology")

// Cosmology holds the parameters of a Friedmann-Lemaitre universe.
type Cosmology struct {
	C      float64 `yaml:"c"       json:"c"`       // speed of light [km/s]
	H0     float64 `yaml:"h0"      json:"h0"`      // Hubble constant [km/s/Mpc]
	OmegaM float64 `yaml:"omega_m" json:"omega_m"` // matter density
	OmegaL float64 `yaml:"omega_l" json:"omega_l"` // dark energy density
}

// Default returns a flat LCDM cosmology with H0 = 100 km/s/Mpc, so distances
// come out in Mpc/h.
func Default() Cosmology {
	return Cosmology{C: SpeedOfLight, H0: 100, OmegaM: 0.3, OmegaL: 0.7}
}

// Validate checks the parameters describe a usable cosmology.
func (c Cosmology) Validate() error {
	if c.C <= 0 {
		return fmt.Errorf("%w: c must be > 0 (got %g)", errInvalidCosmology, c.C)
	}

	if c.H0 <= 0 {
		return fmt.Errorf("%w: H0 must be > 0 (got %g)", errInvalidCosmology, c.H0)
	}

	if c.OmegaM < 0 {
		return fmt.Errorf("%w: Omega_M must be >= 0 (got %g)", errInvalidCosmology, c.OmegaM)
	}

	return nil
}

// OmegaK is the curvature density implied by the matter and dark energy terms.
func (c Cosmology) OmegaK() float64 {
	return 1 - c.OmegaM - c.OmegaL
}

// HubbleDistance is c/H0 in Mpc.
func (c Cosmology) HubbleDistance() float64 {
	return c.C / c.H0
}

// E is the dimensionless Hubble parameter H(z)/H0.
func (c Cosmology) E(z float64) float64 {
	zp1 := 1 + z

	return math.Sqrt(c.OmegaM*zp1*zp1*zp1 + c.OmegaK()*zp1*zp1 + c.OmegaL)
}

// ComovingDistance is the line-of-sight comoving distance to z in Mpc.
func (c Cosmology) ComovingDistance(z float64) float64 {
	if z <= 0 {
		return 0
	}

	integral := quad.Fixed(func(x float64) float64 { return 1 / c.E(x) }, 0, z, legendrePoints, nil, 0)

	return c.HubbleDistance() * integral
}

// TransverseComovingDistance applies the curvature correction to the
// comoving distance.
func (c Cosmology) TransverseComovingDistance(z float64) float64 {
	dc := c.ComovingDistance(z)
	ok := c.OmegaK()
	dh := c.HubbleDistance()

	switch {
	case math.Abs(ok) < 1e-10:
		return dc
	case ok > 0:
		s := math.Sqrt(ok)

		return dh / s * math.Sinh(s*dc/dh)
	default:
		s := math.Sqrt(-ok)

		return dh / s * math.Sin(s*dc/dh)
	}
}

// AngularDiameterDistance returns the angular diameter distance to z in Mpc.
func (c Cosmology) AngularDiameterDistance(z float64) float64 {
	return c.TransverseComovingDistance(z) / (1 + z)
}
