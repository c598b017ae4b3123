package datastore

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleID(r sampleRow) uuid.UUID { return r.ID }

func orderOf(t *testing.T, tbl *MemoryTable[sampleRow]) []string {
	t.Helper()
	rows, err := tbl.Find(context.Background(), Query{}.OrderBy(Asc("display_order")))
	require.NoError(t, err)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func TestMove_SwapsWithNeighbour(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable[sampleRow]()
	rows := seed(t, tbl,
		sampleRow{Name: "a", Order: 1},
		sampleRow{Name: "b", Order: 2},
		sampleRow{Name: "c", Order: 5},
	)

	moved, err := Move[sampleRow](ctx, tbl, Query{}, rows[2].ID, Up, "display_order", sampleID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"a", "c", "b"}, orderOf(t, tbl))

	moved, err = Move[sampleRow](ctx, tbl, Query{}, rows[0].ID, Down, "display_order", sampleID)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, []string{"c", "a", "b"}, orderOf(t, tbl))
}

func TestMove_EndsAreNoOps(t *testing.T) {
	ctx := context.Background()
	tbl := NewMemoryTable[sampleRow]()
	rows := seed(t, tbl, sampleRow{Name: "a", Order: 1}, sampleRow{Name: "b", Order: 2})

	moved, err := Move[sampleRow](ctx, tbl, Query{}, rows[0].ID, Up, "display_order", sampleID)
	require.NoError(t, err)
	assert.False(t, moved)

	moved, err = Move[sampleRow](ctx, tbl, Query{}, rows[1].ID, Down, "display_order", sampleID)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, []string{"a", "b"}, orderOf(t, tbl))

	_, err = Move[sampleRow](ctx, tbl, Query{}, uuid.New(), Up, "display_order", sampleID)
	assert.True(t, IsNotFound(err))
}

func TestParseDirection(t *testing.T) {
	d, ok := ParseDirection("down")
	assert.True(t, ok)
	assert.Equal(t, Down, d)
	_, ok = ParseDirection("sideways")
	assert.False(t, ok)
}
