package datastore

import (
	"context"

	"github.com/google/uuid"
)

// Direction for Move.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

func ParseDirection(s string) (Direction, bool) {
	switch Direction(s) {
	case Up, Down:
		return Direction(s), true
	}
	return "", false
}

// Move swaps the order column of row id with its neighbour in the list q
// sorted ascending by that column. Moving the first row up or the last row
// down changes nothing and reports false.
func Move[T any](ctx context.Context, t Table[T], q Query, id uuid.UUID, dir Direction, column string, idOf func(T) uuid.UUID) (bool, error) {
	rows, err := t.Find(ctx, q.OrderBy(Asc(column), Asc("created_at")))
	if err != nil {
		return false, err
	}
	at := -1
	for i, r := range rows {
		if idOf(r) == id {
			at = i
			break
		}
	}
	if at < 0 {
		return false, ErrNotFound
	}
	target := at - 1
	if dir == Down {
		target = at + 1
	}
	if target < 0 || target >= len(rows) {
		return false, nil
	}
	if err := t.Swap(ctx, id, idOf(rows[target]), column); err != nil {
		return false, err
	}
	return true, nil
}
