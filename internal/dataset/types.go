// Package dataset loads tabular chart input and exposes it through typed,
// schema-checked column accessors.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var (
	// ErrColumnNotFound is returned when a referenced column is absent from the table.
	ErrColumnNotFound = errors.New("column not found")

	// ErrNotNumeric is returned when a numeric column is required but the column
	// holds non-number values or no values at all.
	ErrNotNumeric = errors.New("column is not numeric")
)

// ColumnError ties a column lookup failure to the column name.
type ColumnError struct {
	Column string
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %q: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// Kind is the type of a single cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindString
	KindBool
)

// Value is a scalar table cell.
type Value struct {
	Kind Kind
	Num  float64
	Str  string
	Bool bool
}

// Null returns the null cell.
func Null() Value { return Value{} }

// Number returns a numeric cell.
func Number(f float64) Value { return Value{Kind: KindNumber, Num: f} }

// String returns a string cell.
func String(s string) Value { return Value{Kind: KindString, Str: s} }

// Bool returns a boolean cell.
func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

// IsNull reports whether the cell is null.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// String formats the cell as a category label. Null cells format as "".
func (v Value) String() string {
	switch v.Kind {
	case KindNumber:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case KindString:
		return v.Str
	case KindBool:
		return strconv.FormatBool(v.Bool)
	}
	return ""
}

// Interface returns the cell as a JSON-compatible Go value.
func (v Value) Interface() any {
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindString:
		return v.Str
	case KindBool:
		return v.Bool
	}
	return nil
}

// ColumnKind is the schema class of a column, decided once after load.
type ColumnKind int

const (
	// ColumnEmpty holds only nulls.
	ColumnEmpty ColumnKind = iota
	// ColumnNumeric holds only numbers and nulls.
	ColumnNumeric
	// ColumnCategorical holds at least one string or boolean.
	ColumnCategorical
)

func (k ColumnKind) String() string {
	switch k {
	case ColumnNumeric:
		return "numeric"
	case ColumnCategorical:
		return "categorical"
	}
	return "empty"
}

// parseCell infers a cell from text read out of CSV or XLSX input.
func parseCell(s string) Value {
	if s == "" {
		return Null()
	}
	f, err := strconv.ParseFloat(s, 64)
	switch {
	case err != nil, math.IsInf(f, 0):
		return String(s)
	case math.IsNaN(f):
		return Null()
	}
	return Number(f)
}
