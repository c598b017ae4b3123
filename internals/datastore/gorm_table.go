package datastore

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormTable[T any] struct {
	db *gorm.DB
}

func NewGormTable[T any](db *gorm.DB) *GormTable[T] {
	return &GormTable[T]{db: db}
}

func (t *GormTable[T]) scope(ctx context.Context, q Query) *gorm.DB {
	tx := t.db.WithContext(ctx).Model(new(T))
	for _, c := range q.Where {
		tx = applyCond(tx, c)
	}
	return tx
}

func applyCond(tx *gorm.DB, c Cond) *gorm.DB {
	if len(c.Columns) == 0 {
		return tx
	}
	switch c.Op {
	case OpIn:
		// one text[] bind parameter for any set size; the cast lets uuid and
		// text columns share the path
		return tx.Where(fmt.Sprintf("%s::text = ANY(?)", c.Columns[0]), pq.Array(toStrings(c.Value)))
	case OpContains:
		term := "%" + escapeLike(fmt.Sprint(c.Value)) + "%"
		parts := make([]string, 0, len(c.Columns))
		args := make([]any, 0, len(c.Columns))
		for _, col := range c.Columns {
			parts = append(parts, col+" ILIKE ?")
			args = append(args, term)
		}
		return tx.Where("("+strings.Join(parts, " OR ")+")", args...)
	case OpEq, OpNeq:
		if c.Value == nil {
			if c.Op == OpNeq {
				return tx.Where(c.Columns[0] + " IS NOT NULL")
			}
			return tx.Where(c.Columns[0] + " IS NULL")
		}
		return tx.Where(fmt.Sprintf("%s %s ?", c.Columns[0], c.Op), c.Value)
	default:
		return tx.Where(fmt.Sprintf("%s %s ?", c.Columns[0], c.Op), c.Value)
	}
}

func applyOrder(tx *gorm.DB, q Query) *gorm.DB {
	// NULLs sort last in both directions.
	for _, o := range q.Order {
		if o.Desc {
			tx = tx.Order(tx.Statement.Quote(o.Column) + " DESC NULLS LAST")
			continue
		}
		tx = tx.Order(clause.OrderByColumn{Column: clause.Column{Name: o.Column}})
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	return tx
}

func (t *GormTable[T]) Find(ctx context.Context, q Query) ([]T, error) {
	var rows []T
	if err := applyOrder(t.scope(ctx, q), q).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (t *GormTable[T]) Count(ctx context.Context, q Query) (int64, error) {
	var n int64
	err := t.scope(ctx, q).Count(&n).Error
	return n, err
}

func (t *GormTable[T]) First(ctx context.Context, q Query) (*T, error) {
	var row T
	if err := applyOrder(t.scope(ctx, q), q).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (t *GormTable[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var row T
	if err := t.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Insert creates the row. Postgres would replace a false bool that carries a
// column default of true, so those columns are written back explicitly.
func (t *GormTable[T]) Insert(ctx context.Context, row *T) error {
	falses, err := t.falseOverDefaults(ctx, row)
	if err != nil {
		return err
	}
	if len(falses) == 0 {
		return t.db.WithContext(ctx).Create(row).Error
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(row).Error; err != nil {
			return err
		}
		if err := tx.Model(row).UpdateColumns(falses).Error; err != nil {
			return err
		}
		return t.setColumns(ctx, row, falses)
	})
}

func (t *GormTable[T]) falseOverDefaults(ctx context.Context, row *T) (map[string]any, error) {
	stmt := &gorm.Statement{DB: t.db}
	if err := stmt.Parse(row); err != nil {
		return nil, err
	}
	rv := reflect.ValueOf(row).Elem()
	out := map[string]any{}
	for _, f := range stmt.Schema.Fields {
		if f.FieldType.Kind() != reflect.Bool || !f.HasDefaultValue || f.DefaultValue != "true" {
			continue
		}
		if _, zero := f.ValueOf(ctx, rv); zero {
			out[f.DBName] = false
		}
	}
	return out, nil
}

func (t *GormTable[T]) setColumns(ctx context.Context, row *T, cols map[string]any) error {
	stmt := &gorm.Statement{DB: t.db}
	if err := stmt.Parse(row); err != nil {
		return err
	}
	rv := reflect.ValueOf(row).Elem()
	for name, v := range cols {
		if f := stmt.Schema.LookUpField(name); f != nil {
			if err := f.Set(ctx, rv, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func (t *GormTable[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	res := t.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return t.Get(ctx, id)
}

func (t *GormTable[T]) UpdateWhere(ctx context.Context, q Query, fields map[string]any) (int64, error) {
	res := t.scope(ctx, q).Updates(fields)
	return res.RowsAffected, res.Error
}

func (t *GormTable[T]) Increment(ctx context.Context, id uuid.UUID, column string, delta int) error {
	return t.db.WithContext(ctx).Model(new(T)).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}

func (t *GormTable[T]) Delete(ctx context.Context, id uuid.UUID) error {
	res := t.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type swapRow struct {
	ID  uuid.UUID
	Val int64
}

func (t *GormTable[T]) Swap(ctx context.Context, a, b uuid.UUID, column string) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []swapRow
		if err := tx.Model(new(T)).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id, "+column+" AS val").
			Where("id IN ?", []uuid.UUID{a, b}).
			Find(&rows).Error; err != nil {
			return err
		}
		if len(rows) != 2 {
			return ErrNotFound
		}
		if err := tx.Model(new(T)).Where("id = ?", rows[0].ID).Update(column, rows[1].Val).Error; err != nil {
			return err
		}
		return tx.Model(new(T)).Where("id = ?", rows[1].ID).Update(column, rows[0].Val).Error
	})
}

func (t *GormTable[T]) Max(ctx context.Context, q Query, column string) (int64, error) {
	var max int64
	err := t.scope(ctx, q).Select(fmt.Sprintf("COALESCE(MAX(%s), 0)", column)).Row().Scan(&max)
	return max, err
}

type groupRow struct {
	Key string
	N   int64
}

func (t *GormTable[T]) GroupCount(ctx context.Context, q Query, column string) (map[string]int64, error) {
	var rows []groupRow
	if err := t.scope(ctx, q).
		Select(fmt.Sprintf("%s::text AS key, COUNT(*) AS n", column)).
		Group(column).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Key] = r.N
	}
	return out, nil
}

func toStrings(v any) []string {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []string{fmt.Sprint(v)}
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, fmt.Sprint(rv.Index(i).Interface()))
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string { return likeEscaper.Replace(s) }
