package datastore

import (
	"context"

	"github.com/google/uuid"
)

// Noop stands in for a table when no database is configured: reads come back
// empty, writes fail with ErrNotConfigured.
type Noop[T any] struct{}

func (Noop[T]) Find(context.Context, Query) ([]T, error)    { return []T{}, nil }
func (Noop[T]) Count(context.Context, Query) (int64, error) { return 0, nil }
func (Noop[T]) First(context.Context, Query) (*T, error)    { return nil, ErrNotConfigured }
func (Noop[T]) Get(context.Context, uuid.UUID) (*T, error)  { return nil, ErrNotConfigured }
func (Noop[T]) Insert(context.Context, *T) error            { return ErrNotConfigured }
func (Noop[T]) Delete(context.Context, uuid.UUID) error     { return ErrNotConfigured }

func (Noop[T]) Update(context.Context, uuid.UUID, map[string]any) (*T, error) {
	return nil, ErrNotConfigured
}

func (Noop[T]) UpdateWhere(context.Context, Query, map[string]any) (int64, error) {
	return 0, ErrNotConfigured
}

func (Noop[T]) Increment(context.Context, uuid.UUID, string, int) error { return ErrNotConfigured }

func (Noop[T]) Swap(context.Context, uuid.UUID, uuid.UUID, string) error { return ErrNotConfigured }

func (Noop[T]) Max(context.Context, Query, string) (int64, error) { return 0, nil }

func (Noop[T]) GroupCount(context.Context, Query, string) (map[string]int64, error) {
	return map[string]int64{}, nil
}
