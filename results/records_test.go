// Copyright 2025 The ChapaUY Authors
// SPDX-License-Identifier: Apache-2.0

package results

import (
	"testing"

	"github.com/jcodagnone/fof/fof"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber/h3-go/v4"
)

func TestFlatten(t *testing.T) {
	tables := sampleTables(t)

	require.Len(t, tables.Bins, 2)
	assert.Equal(t, 1, tables.Bins[0].Kept)
	assert.Equal(t, 2, tables.Bins[1].Kept)
	assert.Equal(t, 20, tables.Bins[1].Galaxies)
	assert.InDelta(t, 0.5/380, tables.Bins[1].RFriend, 1e-15)

	require.Len(t, tables.Clusters, 3)
	require.Len(t, tables.Members, 9)

	quad := tables.Clusters[2]
	assert.Equal(t, 1, quad.Bin)
	assert.Equal(t, 1, quad.Num)
	assert.Equal(t, 4, quad.NGal)
	assert.InDelta(t, 200.0015, quad.RA, 1e-6)
	assert.InDelta(t, 45, quad.Dec, 1e-3)

	cell := h3.Cell(quad.Cell)
	assert.True(t, cell.IsValid())
	assert.Equal(t, CellResolution, cell.Resolution())

	for _, m := range tables.Members[5:] {
		assert.Equal(t, 1, m.Bin)
		assert.Equal(t, 1, m.Cluster)
	}

	assert.Equal(t, uint64(5005), tables.Members[5].ID)
}

func TestFlattenEmpty(t *testing.T) {
	tables, err := Flatten(nil)
	require.NoError(t, err)
	assert.NotNil(t, tables.Bins)
	assert.NotNil(t, tables.Clusters)
	assert.NotNil(t, tables.Members)
	assert.Empty(t, tables.Bins)
	assert.Empty(t, tables.Clusters)

	tables, err = Flatten([]*fof.BinResult{{Bin: &fof.Zbin{Num: 3}}})
	require.NoError(t, err)
	require.Len(t, tables.Bins, 1)
	assert.Equal(t, 3, tables.Bins[0].Num)
	assert.Empty(t, tables.Members)
}
