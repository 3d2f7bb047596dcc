// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package fof

import (
	"math/rand"
	"testing"

	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/cosmo"
	"github.com/stretchr/testify/require"
)

type galaxySpec struct {
	ra, dec, z, dz float64
}

// specGalaxies builds spectroscopic galaxies with distances assigned under
// the default cosmology.
func specGalaxies(t *testing.T, specs ...galaxySpec) []*catalog.Galaxy {
	t.Helper()

	galaxies := make([]*catalog.Galaxy, len(specs))

	for i, s := range specs {
		g, err := catalog.NewSpecGalaxy(i, uint64(1000+i), s.ra, s.dec, s.z)
		require.NoError(t, err)
		g.AssignDist(cosmo.Default())
		galaxies[i] = g
	}

	return galaxies
}

func photGalaxies(t *testing.T, specs ...galaxySpec) []*catalog.Galaxy {
	t.Helper()

	galaxies := make([]*catalog.Galaxy, len(specs))

	for i, s := range specs {
		g, err := catalog.NewPhotGalaxy(i, uint64(1000+i), s.ra, s.dec, s.z, s.dz)
		require.NoError(t, err)
		galaxies[i] = g
	}

	return galaxies
}

// singleBin is one spectroscopic bin covering [0, 0.2).
func singleBin(t *testing.T, linkR float64) *Zbin {
	t.Helper()

	bins, err := NewBinning(BinConfig{ZMin: 0, BinSize: 0.2, NBins: 1, LinkR: linkR}, cosmo.Default())
	require.NoError(t, err)
	require.Len(t, bins, 1)

	return bins[0]
}

// field scatters n galaxies over a small patch, half of them in a few
// tight groups.
func field(r *rand.Rand, n int, withDZ bool) []galaxySpec {
	specs := make([]galaxySpec, 0, n)

	centers := []galaxySpec{{150.2, 2.1, 0.08, 0}, {150.6, 2.4, 0.12, 0}, {150.3, 2.7, 0.1, 0}}
	for i := range n {
		var s galaxySpec
		if i%2 == 0 {
			c := centers[r.Intn(len(centers))]
			s = galaxySpec{
				ra:  c.ra + r.NormFloat64()*0.01,
				dec: c.dec + r.NormFloat64()*0.01,
				z:   c.z + r.NormFloat64()*0.0005,
			}
		} else {
			s = galaxySpec{ra: 150 + r.Float64(), dec: 2 + r.Float64(), z: 0.05 + r.Float64()*0.1}
		}

		if withDZ {
			s.dz = 0.01 + r.Float64()*0.03
		}

		specs = append(specs, s)
	}

	return specs
}

func clusterNums(c *Cluster) []int {
	nums := make([]int, len(c.Mem))
	for i, g := range c.Mem {
		nums[i] = g.Num
	}

	return nums
}
