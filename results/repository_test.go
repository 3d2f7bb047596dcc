// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package results

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSchema(t *testing.T) {
	db, repo := setupTestDB(t)

	for _, table := range []string{"bins", "clusters", "cluster_members"} {
		var name string

		err := db.QueryRow("SELECT table_name FROM information_schema.tables WHERE table_name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s", table)
	}

	require.NoError(t, repo.CreateSchema(), "schema creation is idempotent")
}

func TestSaveAndReadTables(t *testing.T) {
	_, repo := setupTestDB(t)
	tables := sampleTables(t)

	require.NoError(t, repo.SaveTables(tables))

	bins, err := repo.ListBins()
	require.NoError(t, err)

	if diff := cmp.Diff(tables.Bins, bins); diff != "" {
		t.Errorf("bins mismatch (-want +got):\n%s", diff)
	}

	clusters, err := repo.ListClusters(nil, 0)
	require.NoError(t, err)

	if diff := cmp.Diff(tables.Clusters, clusters); diff != "" {
		t.Errorf("clusters mismatch (-want +got):\n%s", diff)
	}

	count, err := repo.CountClusters()
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	cluster, members, err := repo.GetCluster(1, 1)
	require.NoError(t, err)
	assert.Equal(t, tables.Clusters[2], cluster)

	if diff := cmp.Diff(tables.Members[5:], members); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
}

func TestListClustersFilters(t *testing.T) {
	_, repo := setupTestDB(t)
	require.NoError(t, repo.SaveTables(sampleTables(t)))

	bin := 1

	tests := []struct {
		name    string
		bin     *int
		minNgal int
		want    [][2]int
	}{
		{"all", nil, 0, [][2]int{{0, 0}, {1, 0}, {1, 1}}},
		{"by bin", &bin, 0, [][2]int{{1, 0}, {1, 1}}},
		{"by size", nil, 3, [][2]int{{0, 0}, {1, 1}}},
		{"by bin and size", &bin, 3, [][2]int{{1, 1}}},
		{"none", nil, 10, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clusters, err := repo.ListClusters(tt.bin, tt.minNgal)
			require.NoError(t, err)

			var got [][2]int
			for _, c := range clusters {
				got = append(got, [2]int{c.Bin, c.Num})
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetClusterNotFound(t *testing.T) {
	_, repo := setupTestDB(t)
	require.NoError(t, repo.SaveTables(sampleTables(t)))

	_, _, err := repo.GetCluster(0, 7)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveTablesReplacesPreviousRun(t *testing.T) {
	_, repo := setupTestDB(t)
	tables := sampleTables(t)

	require.NoError(t, repo.SaveTables(tables))

	smaller := &Tables{
		Bins:     tables.Bins[:1],
		Clusters: tables.Clusters[:1],
		Members:  tables.Members[:3],
	}
	require.NoError(t, repo.SaveTables(smaller))

	count, err := repo.CountClusters()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	bins, err := repo.ListBins()
	require.NoError(t, err)
	assert.Len(t, bins, 1)

	_, _, err = repo.GetCluster(1, 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
