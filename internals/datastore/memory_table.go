package datastore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/schema"
)

// MemoryTable keeps rows in process. It honours the same column names as the
// GORM models (via their `gorm:"column:..."` tags) and is what tests and local
// demos run against.
type MemoryTable[T any] struct {
	mu      sync.Mutex
	rows    []T
	cols    map[string]memCol
	unique  [][]string
	FailOn  map[string]error // method name → injected error
	nowFunc func() time.Time
}

type memCol struct {
	index      []int
	autoCreate bool
	autoUpdate bool
}

// NewMemoryTable builds a table; each unique entry is a column or a
// comma-separated column set that must be unique across rows.
func NewMemoryTable[T any](unique ...string) *MemoryTable[T] {
	t := &MemoryTable[T]{
		cols:    map[string]memCol{},
		FailOn:  map[string]error{},
		nowFunc: time.Now,
	}
	for _, u := range unique {
		t.unique = append(t.unique, strings.Split(u, ","))
	}
	t.indexFields(reflect.TypeOf(new(T)).Elem(), nil)
	return t
}

func (t *MemoryTable[T]) indexFields(rt reflect.Type, parent []int) {
	naming := schema.NamingStrategy{}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		idx := append(append([]int(nil), parent...), i)
		tag := f.Tag.Get("gorm")
		if tag == "-" || !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			t.indexFields(f.Type, idx)
			continue
		}
		name := naming.ColumnName("", f.Name)
		col := memCol{index: idx}
		for _, part := range strings.Split(tag, ";") {
			kv := strings.SplitN(part, ":", 2)
			switch strings.TrimSpace(kv[0]) {
			case "column":
				if len(kv) == 2 {
					name = strings.TrimSpace(kv[1])
				}
			case "autoCreateTime":
				col.autoCreate = true
			case "autoUpdateTime":
				col.autoUpdate = true
			}
		}
		t.cols[name] = col
	}
}

// Rows returns a snapshot of everything stored.
func (t *MemoryTable[T]) Rows() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.rows...)
}

func (t *MemoryTable[T]) field(row *T, column string) (reflect.Value, bool) {
	c, ok := t.cols[column]
	if !ok {
		return reflect.Value{}, false
	}
	return reflect.ValueOf(row).Elem().FieldByIndex(c.index), true
}

func (t *MemoryTable[T]) value(row *T, column string) any {
	v, ok := t.field(row, column)
	if !ok {
		return nil
	}
	return deref(v)
}

func (t *MemoryTable[T]) idOf(row *T) uuid.UUID {
	if id, ok := t.value(row, "id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

func (t *MemoryTable[T]) injected(method string) error {
	if t.FailOn == nil {
		return nil
	}
	return t.FailOn[method]
}

func (t *MemoryTable[T]) matches(row *T, conds []Cond) bool {
	for _, c := range conds {
		if !t.match(row, c) {
			return false
		}
	}
	return true
}

func (t *MemoryTable[T]) match(row *T, c Cond) bool {
	if len(c.Columns) == 0 {
		return true
	}
	switch c.Op {
	case OpContains:
		term := strings.ToLower(fmt.Sprint(c.Value))
		for _, col := range c.Columns {
			if strings.Contains(strings.ToLower(fmt.Sprint(t.value(row, col))), term) {
				return true
			}
		}
		return false
	case OpIn:
		got := t.value(row, c.Columns[0])
		for _, s := range toStrings(c.Value) {
			if fmt.Sprint(got) == s {
				return true
			}
		}
		return false
	case OpNeq:
		return !sameValue(t.value(row, c.Columns[0]), c.Value)
	case OpGte:
		return compareValues(t.value(row, c.Columns[0]), c.Value) >= 0
	case OpLt:
		return compareValues(t.value(row, c.Columns[0]), c.Value) < 0
	default:
		return sameValue(t.value(row, c.Columns[0]), c.Value)
	}
}

func (t *MemoryTable[T]) selectRows(q Query) []T {
	out := make([]T, 0, len(t.rows))
	for i := range t.rows {
		if t.matches(&t.rows[i], q.Where) {
			out = append(out, t.rows[i])
		}
	}
	if len(q.Order) > 0 {
		sort.SliceStable(out, func(i, j int) bool {
			for _, o := range q.Order {
				a, b := t.value(&out[i], o.Column), t.value(&out[j], o.Column)
				if (a == nil) != (b == nil) {
					return b == nil
				}
				cmp := compareValues(a, b)
				if cmp == 0 {
					continue
				}
				if o.Desc {
					return cmp > 0
				}
				return cmp < 0
			}
			return false
		})
	}
	if q.Offset > 0 {
		if q.Offset >= len(out) {
			return []T{}
		}
		out = out[q.Offset:]
	}
	if q.Limit > 0 && q.Limit < len(out) {
		out = out[:q.Limit]
	}
	return out
}

func (t *MemoryTable[T]) Find(_ context.Context, q Query) ([]T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Find"); err != nil {
		return nil, err
	}
	return t.selectRows(q), nil
}

func (t *MemoryTable[T]) Count(_ context.Context, q Query) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Count"); err != nil {
		return 0, err
	}
	q.Limit, q.Offset = 0, 0
	return int64(len(t.selectRows(q))), nil
}

func (t *MemoryTable[T]) First(_ context.Context, q Query) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("First"); err != nil {
		return nil, err
	}
	rows := t.selectRows(q)
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	row := rows[0]
	return &row, nil
}

func (t *MemoryTable[T]) Get(_ context.Context, id uuid.UUID) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Get"); err != nil {
		return nil, err
	}
	i := t.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	row := t.rows[i]
	return &row, nil
}

func (t *MemoryTable[T]) indexOf(id uuid.UUID) int {
	for i := range t.rows {
		if t.idOf(&t.rows[i]) == id {
			return i
		}
	}
	return -1
}

func (t *MemoryTable[T]) violatesUnique(row *T, skip int) bool {
	for _, set := range t.unique {
		for i := range t.rows {
			if i == skip {
				continue
			}
			same := true
			for _, col := range set {
				v := t.value(row, col)
				// NULLs never collide, as in Postgres
				if v == nil || !sameValue(t.value(&t.rows[i], col), v) {
					same = false
					break
				}
			}
			if same {
				return true
			}
		}
	}
	return false
}

func (t *MemoryTable[T]) Insert(_ context.Context, row *T) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Insert"); err != nil {
		return err
	}
	if idField, ok := t.field(row, "id"); ok && t.idOf(row) == uuid.Nil {
		idField.Set(reflect.ValueOf(uuid.New()))
	}
	now := t.nowFunc()
	for name, c := range t.cols {
		if !c.autoCreate && !c.autoUpdate {
			continue
		}
		f, _ := t.field(row, name)
		if f.Type() == reflect.TypeOf(time.Time{}) && f.Interface().(time.Time).IsZero() {
			f.Set(reflect.ValueOf(now))
		}
	}
	if t.violatesUnique(row, -1) {
		return ErrDuplicate
	}
	t.rows = append(t.rows, *row)
	return nil
}

func (t *MemoryTable[T]) apply(row *T, fields map[string]any) error {
	for col, v := range fields {
		f, ok := t.field(row, col)
		if !ok {
			return fmt.Errorf("memory table: unknown column %q", col)
		}
		if err := assign(f, v); err != nil {
			return fmt.Errorf("memory table: column %q: %w", col, err)
		}
	}
	now := t.nowFunc()
	for name, c := range t.cols {
		if c.autoUpdate {
			if f, _ := t.field(row, name); f.Type() == reflect.TypeOf(time.Time{}) {
				f.Set(reflect.ValueOf(now))
			}
		}
	}
	return nil
}

func (t *MemoryTable[T]) Update(_ context.Context, id uuid.UUID, fields map[string]any) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Update"); err != nil {
		return nil, err
	}
	i := t.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	next := t.rows[i]
	if err := t.apply(&next, fields); err != nil {
		return nil, err
	}
	if t.violatesUnique(&next, i) {
		return nil, ErrDuplicate
	}
	t.rows[i] = next
	out := next
	return &out, nil
}

func (t *MemoryTable[T]) UpdateWhere(_ context.Context, q Query, fields map[string]any) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("UpdateWhere"); err != nil {
		return 0, err
	}
	var n int64
	for i := range t.rows {
		if !t.matches(&t.rows[i], q.Where) {
			continue
		}
		if err := t.apply(&t.rows[i], fields); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (t *MemoryTable[T]) Increment(_ context.Context, id uuid.UUID, column string, delta int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Increment"); err != nil {
		return err
	}
	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	f, ok := t.field(&t.rows[i], column)
	if !ok {
		return fmt.Errorf("memory table: unknown column %q", column)
	}
	f.SetInt(f.Int() + int64(delta))
	return nil
}

func (t *MemoryTable[T]) Delete(_ context.Context, id uuid.UUID) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Delete"); err != nil {
		return err
	}
	i := t.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

func (t *MemoryTable[T]) Swap(_ context.Context, a, b uuid.UUID, column string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Swap"); err != nil {
		return err
	}
	ia, ib := t.indexOf(a), t.indexOf(b)
	if ia < 0 || ib < 0 {
		return ErrNotFound
	}
	fa, ok := t.field(&t.rows[ia], column)
	if !ok {
		return fmt.Errorf("memory table: unknown column %q", column)
	}
	fb, _ := t.field(&t.rows[ib], column)
	va, vb := fa.Int(), fb.Int()
	fa.SetInt(vb)
	fb.SetInt(va)
	return nil
}

func (t *MemoryTable[T]) Max(_ context.Context, q Query, column string) (int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("Max"); err != nil {
		return 0, err
	}
	var max int64
	for _, row := range t.selectRows(Query{Where: q.Where}) {
		if f, ok := t.field(&row, column); ok && f.Int() > max {
			max = f.Int()
		}
	}
	return max, nil
}

func (t *MemoryTable[T]) GroupCount(_ context.Context, q Query, column string) (map[string]int64, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.injected("GroupCount"); err != nil {
		return nil, err
	}
	out := map[string]int64{}
	for _, row := range t.selectRows(Query{Where: q.Where}) {
		out[fmt.Sprint(t.value(&row, column))]++
	}
	return out, nil
}

func deref(v reflect.Value) any {
	for v.Kind() == reflect.Ptr {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	return v.Interface()
}

func sameValue(a, b any) bool {
	if rb := reflect.ValueOf(b); rb.IsValid() && rb.Kind() == reflect.Ptr {
		b = deref(rb)
	}
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Equal(tb)
		}
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func compareValues(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		bv, _ := b.(time.Time)
		switch {
		case av.Before(bv):
			return -1
		case av.After(bv):
			return 1
		}
		return 0
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			}
			return 0
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func assign(f reflect.Value, v any) error {
	if v == nil {
		f.Set(reflect.Zero(f.Type()))
		return nil
	}
	rv := reflect.ValueOf(v)
	ft := f.Type()
	switch {
	case rv.Type().AssignableTo(ft):
		f.Set(rv)
	case ft.Kind() == reflect.Ptr && rv.Type().AssignableTo(ft.Elem()):
		p := reflect.New(ft.Elem())
		p.Elem().Set(rv)
		f.Set(p)
	case ft.Kind() == reflect.Ptr && rv.Type().ConvertibleTo(ft.Elem()):
		p := reflect.New(ft.Elem())
		p.Elem().Set(rv.Convert(ft.Elem()))
		f.Set(p)
	case rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Type().AssignableTo(ft):
		f.Set(rv.Elem())
	case rv.Type().ConvertibleTo(ft):
		f.Set(rv.Convert(ft))
	default:
		return fmt.Errorf("cannot assign %s to %s", rv.Type(), ft)
	}
	return nil
}
