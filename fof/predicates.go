// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package fof

import (
	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/spatial"
)

// Membership records which cluster claimed each galaxy while one bin is
// processed. It is never shared between bins.
type Membership struct {
	owner map[int]int
}

// NewMembership returns a table where no galaxy is claimed.
func NewMembership() *Membership {
	return &Membership{owner: make(map[int]int)}
}

// Claimed reports whether g already belongs to a cluster.
func (m *Membership) Claimed(g *catalog.Galaxy) bool {
	_, ok := m.owner[g.Num]

	return ok
}

// Owner returns the cluster that claimed g.
func (m *Membership) Owner(g *catalog.Galaxy) (int, bool) {
	c, ok := m.owner[g.Num]

	return c, ok
}

// Claim assigns g to cluster. A galaxy is claimed at most once.
func (m *Membership) Claim(g *catalog.Galaxy, cluster int) {
	if _, ok := m.owner[g.Num]; !ok {
		m.owner[g.Num] = cluster
	}
}

// Len returns the number of claimed galaxies.
func (m *Membership) Len() int {
	return len(m.owner)
}

// NodeCompatible reports whether node may hold a galaxy within radius of g.
func NodeCompatible(g *catalog.Galaxy, node *spatial.Node, radius float64) bool {
	return node.Compatible(g.Point(), radius)
}

// Friendship reports whether b can be linked to a in zb: they are different
// galaxies, b fits the bin, b is still unclaimed, they lie within radius and,
// for spectroscopic catalogs, their velocities agree.
func Friendship(r Regime, zb *Zbin, a, b *catalog.Galaxy, radius float64, m *Membership) bool {
	if a.Num == b.Num {
		return false
	}

	if !r.BinCompatible(zb, b) || m.Claimed(b) {
		return false
	}

	if a.Point().AngularSeparation(b.Point()) > radius {
		return false
	}

	return r.VelocityCompatible(a, b)
}
