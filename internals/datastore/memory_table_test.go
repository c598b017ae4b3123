package datastore

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRow struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Name      string    `gorm:"column:name"`
	State     string    `gorm:"column:state"`
	Order     int       `gorm:"column:display_order"`
	IsActive  bool      `gorm:"column:is_active"`
	Note      *string   `gorm:"column:note"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

func seed(t *testing.T, tbl *MemoryTable[sampleRow], rows ...sampleRow) []sampleRow {
	t.Helper()
	out := make([]sampleRow, 0, len(rows))
	for i := range rows {
		require.NoError(t, tbl.Insert(context.Background(), &rows[i]))
		out = append(out, rows[i])
	}
	return out
}

func TestMemoryTable_InsertAssignsIDAndCreatedAt(t *testing.T) {
	tbl := NewMemoryTable[sampleRow]()
	row := sampleRow{Name: "Kerala"}
	require.NoError(t, tbl.Insert(context.Background(), &row))

	assert.NotEqual(t, uuid.Nil, row.ID)
	assert.False(t, row.CreatedAt.IsZero())
}

func TestMemoryTable_UniqueColumn(t *testing.T) {
	tbl := NewMemoryTable[sampleRow]("state")
	seed(t, tbl, sampleRow{Name: "A", State: "Kerala"})

	err := tbl.Insert(context.Background(), &sampleRow{Name: "B", State: "Kerala"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.True(t, IsDuplicate(err))
}

func TestMemoryTable_FindFiltersAndOrders(t *testing.T) {
	tbl := NewMemoryTable[sampleRow]()
	seed(t, tbl,
		sampleRow{Name: "Gamma", Order: 3, IsActive: true},
		sampleRow{Name: "alpha", Order: 1, IsActive: true},
		sampleRow{Name: "Beta", Order: 2, IsActive: false},
	)

	rows, err := tbl.Find(context.Background(), Where(Eq("is_active", true)).OrderBy(Asc("display_order")))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "alpha", rows[0].Name)
	assert.Equal(t, "Gamma", rows[1].Name)

	rows, err = tbl.Find(context.Background(), Where(Contains("ALP", "name")))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "alpha", rows[0].Name)
}

func TestMemoryTable_UpdateWhereIn(t *testing.T) {
	tbl := NewMemoryTable[sampleRow]()
	rows := seed(t, tbl, sampleRow{Name: "a"}, sampleRow{Name: "b"}, sampleRow{Name: "c"})

	n, err := tbl.UpdateWhere(context.Background(),
		Where(In("id", []uuid.UUID{rows[0].ID, rows[2].ID})),
		map[string]any{"state": "Rajasthan", "note": "bulk"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	got, err := tbl.Get(context.Background(), rows[2].ID)
	require.NoError(t, err)
	assert.Equal(t, "Rajasthan", got.State)
	require.NotNil(t, got.Note)
	assert.Equal(t, "bulk", *got.Note)

	untouched, _ := tbl.Get(context.Background(), rows[1].ID)
	assert.Empty(t, untouched.State)
}

func TestMemoryTable_SwapAndMax(t *testing.T) {
	tbl := NewMemoryTable[sampleRow]()
	rows := seed(t, tbl, sampleRow{Name: "a", Order: 1}, sampleRow{Name: "b", Order: 2})

	require.NoError(t, tbl.Swap(context.Background(), rows[0].ID, rows[1].ID, "display_order"))

	a, _ := tbl.Get(context.Background(), rows[0].ID)
	b, _ := tbl.Get(context.Background(), rows[1].ID)
	assert.Equal(t, 2, a.Order)
	assert.Equal(t, 1, b.Order)

	max, err := tbl.Max(context.Background(), Query{}, "display_order")
	require.NoError(t, err)
	assert.Equal(t, int64(2), max)
}

func TestMemoryTable_DeleteMissing(t *testing.T) {
	tbl := NewMemoryTable[sampleRow]()
	assert.ErrorIs(t, tbl.Delete(context.Background(), uuid.New()), ErrNotFound)
}

func TestNoop_ReadsEmptyWritesFail(t *testing.T) {
	var tbl Table[sampleRow] = Noop[sampleRow]{}

	rows, err := tbl.Find(context.Background(), Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)

	err = tbl.Insert(context.Background(), &sampleRow{})
	assert.True(t, IsNotConfigured(err))
}

func TestOpen_NilDBGivesNoop(t *testing.T) {
	_, ok := Open[sampleRow](nil).(Noop[sampleRow])
	assert.True(t, ok)
}
