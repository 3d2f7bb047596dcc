// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package cosmo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		c       Cosmology
		wantErr bool
	}{
		{"default", Default(), false},
		{"zero c", Cosmology{C: 0, H0: 70, OmegaM: 0.3, OmegaL: 0.7}, true},
		{"negative H0", Cosmology{C: SpeedOfLight, H0: -1, OmegaM: 0.3}, true},
		{"negative matter", Cosmology{C: SpeedOfLight, H0: 70, OmegaM: -0.1}, true},
		{"open", Cosmology{C: SpeedOfLight, H0: 70, OmegaM: 0.3}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, errInvalidCosmology)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAngularDiameterDistanceZero(t *testing.T) {
	assert.Equal(t, 0.0, Default().AngularDiameterDistance(0))
}

// Einstein-de Sitter: D_C = 2 c/H0 (1 - 1/sqrt(1+z)).
func TestAngularDiameterDistanceEinsteinDeSitter(t *testing.T) {
	c := Cosmology{C: SpeedOfLight, H0: 70, OmegaM: 1, OmegaL: 0}

	for _, z := range []float64{0.01, 0.1, 0.5, 1, 3} {
		dc := 2 * c.HubbleDistance() * (1 - 1/math.Sqrt(1+z))
		want := dc / (1 + z)
		assert.InEpsilon(t, want, c.AngularDiameterDistance(z), 1e-8, "z=%g", z)
	}
}

// Open matter-only universe, Mattig's relation for the luminosity distance.
func TestAngularDiameterDistanceOpen(t *testing.T) {
	c := Cosmology{C: SpeedOfLight, H0: 70, OmegaM: 0.3, OmegaL: 0}
	om := c.OmegaM

	for _, z := range []float64{0.05, 0.3, 1, 2} {
		dl := 2 * c.HubbleDistance() / (om * om) * (om*z + (om-2)*(math.Sqrt(1+om*z)-1))
		want := dl / ((1 + z) * (1 + z))
		assert.InEpsilon(t, want, c.AngularDiameterDistance(z), 1e-8, "z=%g", z)
	}
}

func TestAngularDiameterDistanceClosed(t *testing.T) {
	closed := Cosmology{C: SpeedOfLight, H0: 70, OmegaM: 0.5, OmegaL: 0.7}
	flat := Cosmology{C: SpeedOfLight, H0: 70, OmegaM: 0.3, OmegaL: 0.7}

	assert.Less(t, closed.OmegaK(), 0.0)
	assert.Less(t, closed.TransverseComovingDistance(1), closed.ComovingDistance(1))
	assert.InDelta(t, flat.ComovingDistance(1), flat.TransverseComovingDistance(1), 1e-9)
}

func TestAngularDiameterDistanceLowRedshift(t *testing.T) {
	c := Default()
	z := 0.001

	assert.InEpsilon(t, c.C*z/c.H0, c.AngularDiameterDistance(z), 2e-3)
}
