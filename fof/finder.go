// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package fof

import (
	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/spatial"
)

// Finder links galaxies into clusters, one redshift bin at a time.
type Finder struct {
	regime   Regime
	leafSize int
}

// Option configures a Finder.
type Option func(*Finder)

// WithLeafSize sets the maximum leaf size of the spatial index.
func WithLeafSize(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.leafSize = n
		}
	}
}

// NewFinder returns a Finder applying the rules of regime.
func NewFinder(regime Regime, opts ...Option) *Finder {
	f := &Finder{regime: regime, leafSize: spatial.DefaultLeafSize}
	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Regime returns the linking rules in use.
func (f *Finder) Regime() Regime {
	return f.regime
}

// binSearch is the state of one FindBin call.
type binSearch struct {
	regime   Regime
	zbin     *Zbin
	galaxies []*catalog.Galaxy
	tree     *spatial.Tree
	members  *Membership
}

// friendsOf calls found for every unclaimed friend of a within radius,
// claiming nothing itself.
func (s *binSearch) friendsOf(a *catalog.Galaxy, radius float64, found func(b *catalog.Galaxy)) {
	s.tree.Walk(
		func(n *spatial.Node) bool { return NodeCompatible(a, n, radius) },
		func(member int) {
			b := s.galaxies[member]
			if Friendship(s.regime, s.zbin, a, b, radius, s.members) {
				found(b)
			}
		},
	)
}

// FindBin runs friends-of-friends over the working list of zb. Every
// unclaimed, bin-compatible galaxy seeds a search; its friends start a
// cluster which then grows from a worklist until no member has unclaimed
// friends left. The linking radius is the seed's for the whole cluster.
// Clusters are numbered from 0 in discovery order and are disjoint.
func (f *Finder) FindBin(zb *Zbin, galaxies []*catalog.Galaxy) []*Cluster {
	s := &binSearch{
		regime:   f.regime,
		zbin:     zb,
		galaxies: galaxies,
		tree:     spatial.BuildWithLeafSize(catalog.Points(galaxies), f.leafSize),
		members:  NewMembership(),
	}

	var clusters []*Cluster

	for _, a := range galaxies {
		if s.members.Claimed(a) || !f.regime.BinCompatible(zb, a) {
			continue
		}

		radius := f.regime.LinkingRadius(zb, a)

		var cluster *Cluster

		var queue []*catalog.Galaxy

		s.friendsOf(a, radius, func(b *catalog.Galaxy) {
			if cluster == nil {
				cluster = NewCluster(len(clusters), zb.Num)
				cluster.Add(a)
				s.members.Claim(a, cluster.Num)
				clusters = append(clusters, cluster)
			}

			cluster.Add(b)
			s.members.Claim(b, cluster.Num)
			queue = append(queue, b)
		})

		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]

			s.friendsOf(c, radius, func(b *catalog.Galaxy) {
				cluster.Add(b)
				s.members.Claim(b, cluster.Num)
				queue = append(queue, b)
			})
		}
	}

	return clusters
}
