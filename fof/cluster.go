// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package fof

import (
	"math"
	"slices"
	"sort"

	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/spatial"
)

// Cluster is a group of linked galaxies found in one redshift bin. Mem holds
// references into the bin's working list, in discovery order.
type Cluster struct {
	Num int               `json:"num"`
	Bin int               `json:"bin"`
	Mem []*catalog.Galaxy `json:"members"`
}

// NewCluster returns an empty cluster.
func NewCluster(num, bin int) *Cluster {
	return &Cluster{Num: num, Bin: bin}
}

// Add appends g to the members.
func (c *Cluster) Add(g *catalog.Galaxy) {
	c.Mem = append(c.Mem, g)
}

// Len returns the number of members, duplicates included.
func (c *Cluster) Len() int {
	return len(c.Mem)
}

// Unique drops repeated members, keeping the first occurrence of each
// galaxy.
func (c *Cluster) Unique() {
	seen := make(map[int]struct{}, len(c.Mem))
	mem := c.Mem[:0]

	for _, g := range c.Mem {
		if _, ok := seen[g.Num]; ok {
			continue
		}

		seen[g.Num] = struct{}{}
		mem = append(mem, g)
	}

	clear(c.Mem[len(mem):])
	c.Mem = mem
}

// Props summarises a cluster for output.
type Props struct {
	NGal    int     `json:"ngal"`
	RA      float64 `json:"ra"`
	Dec     float64 `json:"dec"`
	Z       float64 `json:"z"`        // mean
	ZMedian float64 `json:"z_median"` // median
	Radius  float64 `json:"radius"`   // radians, largest member distance from the centroid
}

// Props computes the centroid, redshift statistics and angular extent.
func (c *Cluster) Props() Props {
	if len(c.Mem) == 0 {
		return Props{}
	}

	var sum [3]float64

	zs := make([]float64, len(c.Mem))
	zSum := 0.0

	for i, g := range c.Mem {
		v := g.Point().Vector()
		sum[0] += v[0]
		sum[1] += v[1]
		sum[2] += v[2]
		zs[i] = g.Z
		zSum += g.Z
	}

	center := c.Mem[0].Point()
	if sum != [3]float64{} {
		center = spatial.FromVector(sum)
	}

	radius := 0.0
	for _, g := range c.Mem {
		radius = math.Max(radius, center.AngularSeparation(g.Point()))
	}

	sort.Float64s(zs)

	median := zs[len(zs)/2]
	if len(zs)%2 == 0 {
		median = (zs[len(zs)/2-1] + zs[len(zs)/2]) / 2
	}

	return Props{
		NGal:    len(c.Mem),
		RA:      center.RA,
		Dec:     center.Dec,
		Z:       zSum / float64(len(zs)),
		ZMedian: median,
		Radius:  radius,
	}
}

// Remove deduplicates every cluster and drops the ones left with fewer than
// minNgal members. The slice is modified in place and returned.
func Remove(clusters []*Cluster, minNgal int) []*Cluster {
	var removeList []int

	for i, c := range clusters {
		c.Unique()

		if len(c.Mem) < minNgal {
			removeList = append(removeList, i)
		}
	}

	for i := len(removeList) - 1; i >= 0; i-- {
		clusters = slices.Delete(clusters, removeList[i], removeList[i]+1)
	}

	return clusters
}
