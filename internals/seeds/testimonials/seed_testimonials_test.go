package testimonials

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/home/testimonials/model"
)

func TestSeedTestimonials_FillsEmptyTable(t *testing.T) {
	table := datastore.NewMemoryTable[model.TestimonialModel]()

	n, err := SeedTestimonials(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	rows := table.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "Rajesh Kumar", rows[0].Name)
	assert.Equal(t, 1, rows[0].DisplayOrder)
	assert.True(t, rows[2].IsActive)
	assert.Equal(t, 5, rows[2].Rating)
}

func TestSeedTestimonials_SkipsWhenPresent(t *testing.T) {
	table := datastore.NewMemoryTable[model.TestimonialModel]()
	_, err := SeedTestimonials(context.Background(), table)
	require.NoError(t, err)

	n, err := SeedTestimonials(context.Background(), table)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Len(t, table.Rows(), 3)
}
