// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package fof

import (
	"fmt"
	"math"

	"github.com/jcodagnone/fof/catalog"
)

// Regime holds the linking rules that differ between spectroscopic and
// photometric catalogs. It is chosen once, by NewRegime.
type Regime interface {
	// Mode returns the catalog mode the regime implements.
	Mode() catalog.Mode
	// BinCompatible reports whether g may be linked within zb.
	BinCompatible(zb *Zbin, g *catalog.Galaxy) bool
	// VelocityCompatible is the line-of-sight test between a and b, taking
	// a as the reference galaxy.
	VelocityCompatible(a, b *catalog.Galaxy) bool
	// LinkingRadius is the angular radius [rad] used around seed g in zb.
	LinkingRadius(zb *Zbin, g *catalog.Galaxy) float64
	// Select returns the working list of galaxies considered for zb.
	Select(zb *Zbin, galaxies []*catalog.Galaxy) []*catalog.Galaxy
}

// NewRegime returns the linking rules for mode with redshift tolerance linkZ.
func NewRegime(mode catalog.Mode, linkZ float64) (Regime, error) {
	if !(linkZ > 0) {
		return nil, fmt.Errorf("%w: link_z must be > 0 (got %g)", catalog.ErrInvalidArgument, linkZ)
	}

	switch mode {
	case catalog.Spectroscopic:
		return specRegime{linkZ: linkZ}, nil
	case catalog.Photometric:
		return photRegime{linkZ: linkZ}, nil
	default:
		return nil, fmt.Errorf("%w: %s", catalog.ErrUnknownMode, mode)
	}
}

type specRegime struct {
	linkZ float64
}

func (specRegime) Mode() catalog.Mode { return catalog.Spectroscopic }

func (specRegime) BinCompatible(_ *Zbin, _ *catalog.Galaxy) bool { return true }

func (r specRegime) VelocityCompatible(a, b *catalog.Galaxy) bool {
	return math.Abs(a.V-b.V) <= r.linkZ/(1+a.Z)
}

// LinkingRadius scales the physical linking length by the seed's own
// distance. A galaxy without a distance only links to coincident positions.
func (specRegime) LinkingRadius(zb *Zbin, g *catalog.Galaxy) float64 {
	if !(g.Da > 0) {
		return 0
	}

	return zb.LinkR / g.Da
}

// Select keeps the galaxies assigned to zb.
func (specRegime) Select(zb *Zbin, galaxies []*catalog.Galaxy) []*catalog.Galaxy {
	var ret []*catalog.Galaxy

	for _, g := range galaxies {
		if g.Bin == zb.Num {
			ret = append(ret, g)
		}
	}

	return ret
}

type photRegime struct {
	linkZ float64
}

func (photRegime) Mode() catalog.Mode { return catalog.Photometric }

// BinCompatible widens the window by the galaxy's own redshift error.
func (r photRegime) BinCompatible(zb *Zbin, g *catalog.Galaxy) bool {
	return math.Abs(g.Z-zb.Z) <= r.linkZ*g.DZ
}

func (photRegime) VelocityCompatible(_, _ *catalog.Galaxy) bool { return true }

func (photRegime) LinkingRadius(zb *Zbin, _ *catalog.Galaxy) float64 {
	return zb.RFriend
}

// Select hands every galaxy to every bin; BinCompatible does the filtering.
func (photRegime) Select(_ *Zbin, galaxies []*catalog.Galaxy) []*catalog.Galaxy {
	return galaxies
}
