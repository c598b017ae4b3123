package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suryaghar_backend/internals/datastore"
	"suryaghar_backend/internals/features/users/auth/model"
)

func TestCleanupExpired_RemovesOnlyOldRows(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	bl := datastore.NewMemoryTable[model.TokenBlacklist]("token")

	old := model.TokenBlacklist{Token: "old", ExpiredAt: now.Add(-10 * 24 * time.Hour)}
	recent := model.TokenBlacklist{Token: "recent", ExpiredAt: now.Add(-2 * 24 * time.Hour)}
	require.NoError(t, bl.Insert(ctx, &old))
	require.NoError(t, bl.Insert(ctx, &recent))

	n, err := CleanupExpired(ctx, bl, now, 7*24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rows := bl.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "recent", rows[0].Token)
}

func TestCleanupExpired_NotConfigured(t *testing.T) {
	_, err := CleanupExpired(context.Background(), datastore.Noop[model.TokenBlacklist]{}, time.Now(), time.Hour)
	assert.NoError(t, err)
}
