// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package results

import (
	"database/sql"
	"testing"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/jcodagnone/fof/catalog"
	"github.com/jcodagnone/fof/fof"
	"github.com/stretchr/testify/require"
)

// sampleResults is two bins: bin 0 holds one triple, bin 1 a pair and a
// quadruple.
func sampleResults(t *testing.T) []*fof.BinResult {
	t.Helper()

	num := 0
	cluster := func(bin, n int, ra, dec, z float64, size int) *fof.Cluster {
		c := fof.NewCluster(n, bin)

		for i := range size {
			g, err := catalog.NewSpecGalaxy(num, uint64(5000+num), ra+0.001*float64(i), dec, z+0.0001*float64(i))
			require.NoError(t, err)
			g.Bin = bin
			c.Add(g)
			num++
		}

		return c
	}

	return []*fof.BinResult{
		{
			Bin:      &fof.Zbin{Num: 0, Z: 0.05, ZMin: 0, ZMax: 0.1, LinkR: 0.5, Da: 140, RFriend: 0.5 / 140},
			Galaxies: 10,
			Found:    2,
			Clusters: []*fof.Cluster{cluster(0, 0, 150, 2, 0.04, 3)},
		},
		{
			Bin:      &fof.Zbin{Num: 1, Z: 0.15, ZMin: 0.1, ZMax: 0.2, LinkR: 0.5, Da: 380, RFriend: 0.5 / 380},
			Galaxies: 20,
			Found:    2,
			Clusters: []*fof.Cluster{
				cluster(1, 0, 10, -30, 0.12, 2),
				cluster(1, 1, 200, 45, 0.17, 4),
			},
		},
	}
}

func sampleTables(t *testing.T) *Tables {
	t.Helper()

	tables, err := Flatten(sampleResults(t))
	require.NoError(t, err)

	return tables
}

func setupTestDB(t *testing.T) (*sql.DB, ClusterRepository) {
	t.Helper()

	db, err := sql.Open("duckdb", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewClusterRepository(db)
	require.NoError(t, repo.CreateSchema())

	return db, repo
}
