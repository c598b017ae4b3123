// Package datastore is the typed data-access boundary for every collection the
// site owns. Each collection is a Table[T] bound to its GORM model; the concrete
// implementation is picked once at startup (Postgres or the inert stand-in).
package datastore

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotConfigured = errors.New("datastore: backend not configured")
	ErrNotFound      = gorm.ErrRecordNotFound
	ErrDuplicate     = gorm.ErrDuplicatedKey
)

type Op string

const (
	OpEq       Op = "="
	OpNeq      Op = "<>"
	OpIn       Op = "IN"
	OpGte      Op = ">="
	OpLt       Op = "<"
	OpContains Op = "ILIKE"
)

// Cond is a single filter. OpContains matches when any of Columns contains Value
// (case-insensitive); every other operator uses Columns[0] only.
type Cond struct {
	Columns []string
	Op      Op
	Value   any
}

func Eq(column string, v any) Cond  { return Cond{Columns: []string{column}, Op: OpEq, Value: v} }
func Neq(column string, v any) Cond { return Cond{Columns: []string{column}, Op: OpNeq, Value: v} }
func In(column string, v any) Cond  { return Cond{Columns: []string{column}, Op: OpIn, Value: v} }
func Gte(column string, v any) Cond { return Cond{Columns: []string{column}, Op: OpGte, Value: v} }
func Lt(column string, v any) Cond  { return Cond{Columns: []string{column}, Op: OpLt, Value: v} }

// IsNull matches rows where column is NULL.
func IsNull(column string) Cond { return Eq(column, nil) }

func Contains(term string, columns ...string) Cond {
	return Cond{Columns: columns, Op: OpContains, Value: term}
}

type Order struct {
	Column string
	Desc   bool
}

func Asc(column string) Order  { return Order{Column: column} }
func Desc(column string) Order { return Order{Column: column, Desc: true} }

type Query struct {
	Where  []Cond
	Order  []Order
	Limit  int
	Offset int
}

func Where(conds ...Cond) Query { return Query{Where: conds} }

func (q Query) And(conds ...Cond) Query {
	q.Where = append(append([]Cond(nil), q.Where...), conds...)
	return q
}

func (q Query) OrderBy(orders ...Order) Query {
	q.Order = append(append([]Order(nil), q.Order...), orders...)
	return q
}

func (q Query) Page(limit, offset int) Query {
	q.Limit, q.Offset = limit, offset
	return q
}

// Table is the contract every collection implements.
type Table[T any] interface {
	Find(ctx context.Context, q Query) ([]T, error)
	Count(ctx context.Context, q Query) (int64, error)
	First(ctx context.Context, q Query) (*T, error)
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Insert(ctx context.Context, row *T) error
	Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error)
	UpdateWhere(ctx context.Context, q Query, fields map[string]any) (int64, error)
	Increment(ctx context.Context, id uuid.UUID, column string, delta int) error
	Delete(ctx context.Context, id uuid.UUID) error
	// Swap exchanges the integer column between two rows atomically.
	Swap(ctx context.Context, a, b uuid.UUID, column string) error
	Max(ctx context.Context, q Query, column string) (int64, error)
	GroupCount(ctx context.Context, q Query, column string) (map[string]int64, error)
}

// Open returns the Postgres-backed table, or the inert one when db is nil.
func Open[T any](db *gorm.DB) Table[T] {
	if db == nil {
		return Noop[T]{}
	}
	return NewGormTable[T](db)
}

func IsNotFound(err error) bool      { return errors.Is(err, ErrNotFound) }
func IsDuplicate(err error) bool     { return errors.Is(err, ErrDuplicate) }
func IsNotConfigured(err error) bool { return errors.Is(err, ErrNotConfigured) }
