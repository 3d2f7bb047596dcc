// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name string
		a, b Point
		want float64
	}{
		{"same point", Point{RA: 150, Dec: 2}, Point{RA: 150, Dec: 2}, 0},
		{"along equator", Point{RA: 0, Dec: 0}, Point{RA: 90, Dec: 0}, math.Pi / 2},
		{"along meridian", Point{RA: 45, Dec: -10}, Point{RA: 45, Dec: 20}, 30 * deg2rad},
		{"pole to equator", Point{RA: 0, Dec: 90}, Point{RA: 123, Dec: 0}, math.Pi / 2},
		{"antipodal", Point{RA: 0, Dec: 0}, Point{RA: 180, Dec: 0}, math.Pi},
		{"across ra wrap", Point{RA: 359.5, Dec: 0}, Point{RA: 0.5, Dec: 0}, 1 * deg2rad},
		{"small offset", Point{RA: 180, Dec: 0}, Point{RA: 180.001, Dec: 0}, 0.001 * deg2rad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.AngularSeparation(tt.b), 1e-12)
			assert.InDelta(t, tt.want, tt.b.AngularSeparation(tt.a), 1e-12)
		})
	}
}

func TestVectorRoundTrip(t *testing.T) {
	for _, p := range []Point{{RA: 0, Dec: 0}, {RA: 359.9, Dec: -45}, {RA: 12.3, Dec: 89}} {
		got := FromVector(p.Vector())
		assert.InDelta(t, 0, p.AngularSeparation(got), 1e-12, "point %s", p)
	}

	assert.Equal(t, Point{}, FromVector([3]float64{}))
}

func TestCell(t *testing.T) {
	a, err := Point{RA: 150, Dec: 2}.Cell(5)
	require.NoError(t, err)
	assert.True(t, a.IsValid())
	assert.Equal(t, 5, a.Resolution())

	b, err := Point{RA: 150.0001, Dec: 2.0001}.Cell(5)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Point{RA: 330, Dec: -30}.Cell(5)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	_, err = Point{RA: 1, Dec: 1}.Cell(99)
	assert.Error(t, err)
}
