package dataset

import (
	"math"
	"sort"
)

// Column is one named column of a table together with its inferred schema class.
type Column struct {
	Name   string
	Kind   ColumnKind
	Values []Value
}

// Table is an immutable, column-major view of the loaded rows. Columns keep the
// order in which their names first appeared in the input.
type Table struct {
	columns []*Column
	index   map[string]int
	rows    int
}

// Builder accumulates rows and produces a Table.
type Builder struct {
	names []string
	index map[string]int
	cells []map[int]Value
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{index: make(map[string]int)}
}

// AddColumn registers a column name without adding values. Registering an
// existing name is a no-op.
func (b *Builder) AddColumn(name string) int {
	if i, ok := b.index[name]; ok {
		return i
	}
	b.index[name] = len(b.names)
	b.names = append(b.names, name)
	return len(b.names) - 1
}

// AddRow appends a row. Keys are registered as columns in the order they are
// seen; columns absent from the row are null.
func (b *Builder) AddRow(keys []string, values []Value) {
	row := make(map[int]Value, len(keys))
	for i, k := range keys {
		row[b.AddColumn(k)] = values[i]
	}
	b.cells = append(b.cells, row)
}

// Table finalizes the rows and infers the kind of every column.
func (b *Builder) Table() *Table {
	t := &Table{
		columns: make([]*Column, len(b.names)),
		index:   make(map[string]int, len(b.names)),
		rows:    len(b.cells),
	}
	for ci, name := range b.names {
		col := &Column{Name: name, Values: make([]Value, len(b.cells))}
		for ri, row := range b.cells {
			if v, ok := row[ci]; ok {
				col.Values[ri] = v
			}
		}
		col.Kind = inferKind(col.Values)
		t.columns[ci] = col
		t.index[name] = ci
	}
	return t
}

func inferKind(values []Value) ColumnKind {
	kind := ColumnEmpty
	for _, v := range values {
		switch v.Kind {
		case KindNumber:
			kind = ColumnNumeric
		case KindString, KindBool:
			return ColumnCategorical
		}
	}
	return kind
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// ColumnNames returns the column names in first-appearance order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.index[name]
	if !ok {
		return nil, &ColumnError{Column: name, Err: ErrColumnNotFound}
	}
	return t.columns[i], nil
}

// Kind returns the schema class of the named column.
func (t *Table) Kind(name string) (ColumnKind, error) {
	c, err := t.Column(name)
	if err != nil {
		return ColumnEmpty, err
	}
	return c.Kind, nil
}

// Numeric returns the named column as floats. Null cells are NaN.
func (t *Table) Numeric(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != ColumnNumeric {
		return nil, &ColumnError{Column: name, Err: ErrNotNumeric}
	}
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		if v.Kind == KindNumber {
			out[i] = v.Num
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// NumericColumns returns the names of every numeric column in table order.
func (t *Table) NumericColumns() []string {
	var names []string
	for _, c := range t.columns {
		if c.Kind == ColumnNumeric {
			names = append(names, c.Name)
		}
	}
	return names
}

// Categorical is a column viewed as discrete levels. Codes holds one level
// index per row, or -1 for null cells.
type Categorical struct {
	Name   string
	Levels []string
	Codes  []int

	// numbers holds the numeric value of each level when the column is numeric.
	numbers []float64
}

// Categorical returns the named column as levels in first-seen order.
func (t *Table) Categorical(name string) (*Categorical, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	cat := &Categorical{Name: name, Codes: make([]int, len(c.Values))}
	seen := make(map[string]int)
	for i, v := range c.Values {
		if v.IsNull() {
			cat.Codes[i] = -1
			continue
		}
		label := v.String()
		code, ok := seen[label]
		if !ok {
			code = len(cat.Levels)
			seen[label] = code
			cat.Levels = append(cat.Levels, label)
			if c.Kind == ColumnNumeric {
				cat.numbers = append(cat.numbers, v.Num)
			}
		}
		cat.Codes[i] = code
	}
	return cat, nil
}

// Sorted returns a copy with levels in ascending order: numerically for
// numeric columns, lexically otherwise.
func (c *Categorical) Sorted() *Categorical {
	order := make([]int, len(c.Levels))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		if c.numbers != nil {
			return c.numbers[order[a]] < c.numbers[order[b]]
		}
		return c.Levels[order[a]] < c.Levels[order[b]]
	})

	remap := make([]int, len(order))
	out := &Categorical{Name: c.Name, Levels: make([]string, len(order)), Codes: make([]int, len(c.Codes))}
	if c.numbers != nil {
		out.numbers = make([]float64, len(order))
	}
	for newIdx, oldIdx := range order {
		remap[oldIdx] = newIdx
		out.Levels[newIdx] = c.Levels[oldIdx]
		if c.numbers != nil {
			out.numbers[newIdx] = c.numbers[oldIdx]
		}
	}
	for i, code := range c.Codes {
		if code < 0 {
			out.Codes[i] = -1
		} else {
			out.Codes[i] = remap[code]
		}
	}
	return out
}

// Rows returns the row indices per level, in level order.
func (c *Categorical) Rows() [][]int {
	groups := make([][]int, len(c.Levels))
	for i, code := range c.Codes {
		if code >= 0 {
			groups[code] = append(groups[code], i)
		}
	}
	return groups
}
