// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

// Package results flattens, persists and serves the clusters of a run.
package results

import (
	"fmt"

	"github.com/jcodagnone/fof/fof"
	"github.com/jcodagnone/fof/spatial"
)

// CellResolution is the H3 resolution of the cell stored with each cluster.
const CellResolution = 5

// BinRecord is one row of the bin table.
type BinRecord struct {
	Num      int     `json:"num"`
	Z        float64 `json:"z"`
	ZMin     float64 `json:"z_min"`
	ZMax     float64 `json:"z_max"`
	LinkR    float64 `json:"link_r"`
	Da       float64 `json:"da"`
	RFriend  float64 `json:"rfriend"`
	Galaxies int     `json:"galaxies"`
	Found    int     `json:"found"`
	Kept     int     `json:"kept"`
}

// ClusterRecord is one row of the cluster table.
type ClusterRecord struct {
	Bin     int     `json:"bin"`
	Num     int     `json:"num"`
	NGal    int     `json:"ngal"`
	RA      float64 `json:"ra"`
	Dec     float64 `json:"dec"`
	Z       float64 `json:"z"`
	ZMedian float64 `json:"z_median"`
	Radius  float64 `json:"radius"`
	Cell    int64   `json:"h3_cell"`
}

// MemberRecord is one row of the member table.
type MemberRecord struct {
	Bin     int     `json:"bin"`
	Cluster int     `json:"cluster"`
	Num     int     `json:"num"`
	ID      uint64  `json:"id"`
	RA      float64 `json:"ra"`
	Dec     float64 `json:"dec"`
	Z       float64 `json:"z"`
}

// Tables is a run in the shape it is written and stored.
type Tables struct {
	Bins     []*BinRecord     `json:"bins"`
	Clusters []*ClusterRecord `json:"clusters"`
	Members  []*MemberRecord  `json:"members"`
}

// Flatten turns the per-bin results into the three tables.
func Flatten(results []*fof.BinResult) (*Tables, error) {
	t := &Tables{
		Bins:     []*BinRecord{},
		Clusters: []*ClusterRecord{},
		Members:  []*MemberRecord{},
	}

	for _, r := range results {
		zb := r.Bin
		t.Bins = append(t.Bins, &BinRecord{
			Num:      zb.Num,
			Z:        zb.Z,
			ZMin:     zb.ZMin,
			ZMax:     zb.ZMax,
			LinkR:    zb.LinkR,
			Da:       zb.Da,
			RFriend:  zb.RFriend,
			Galaxies: r.Galaxies,
			Found:    r.Found,
			Kept:     len(r.Clusters),
		})

		for _, c := range r.Clusters {
			rec, err := newClusterRecord(c)
			if err != nil {
				return nil, err
			}

			t.Clusters = append(t.Clusters, rec)

			for _, g := range c.Mem {
				t.Members = append(t.Members, &MemberRecord{
					Bin:     c.Bin,
					Cluster: c.Num,
					Num:     g.Num,
					ID:      g.ID,
					RA:      g.RA,
					Dec:     g.Dec,
					Z:       g.Z,
				})
			}
		}
	}

	return t, nil
}

func newClusterRecord(c *fof.Cluster) (*ClusterRecord, error) {
	props := c.Props()

	cell, err := spatial.Point{RA: props.RA, Dec: props.Dec}.Cell(CellResolution)
	if err != nil {
		return nil, fmt.Errorf("computing cell of cluster %d in bin %d: %w", c.Num, c.Bin, err)
	}

	return &ClusterRecord{
		Bin:     c.Bin,
		Num:     c.Num,
		NGal:    props.NGal,
		RA:      props.RA,
		Dec:     props.Dec,
		Z:       props.Z,
		ZMedian: props.ZMedian,
		Radius:  props.Radius,
		Cell:    int64(cell),
	}, nil
}
