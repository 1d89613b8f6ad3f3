package dataset

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// Kind identifies the logical type of a column.
type Kind int

const (
	// KindString holds free-form or categorical text values
	KindString Kind = iota
	// KindNumeric holds float64 values
	KindNumeric
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumeric:
		return "numeric"
	default:
		return "unknown"
	}
}

// Column is a single named column of a table. All values share one logical
// type; missing values are tracked in a null mask.
type Column struct {
	name string
	kind Kind
	strs []string
	nums []float64
	null []bool
}

// NewStringColumn creates a string column. Empty strings are treated as nulls.
func NewStringColumn(name string, values []string) *Column {
	null := make([]bool, len(values))
	for i, v := range values {
		if v == "" {
			null[i] = true
		}
	}
	return &Column{name: name, kind: KindString, strs: values, null: null}
}

// NewNumericColumn creates a numeric column. The null mask may be nil when
// every value is present.
func NewNumericColumn(name string, values []float64, null []bool) *Column {
	if null == nil {
		null = make([]bool, len(values))
	}
	return &Column{name: name, kind: KindNumeric, nums: values, null: null}
}

// Name returns the column name
func (c *Column) Name() string { return c.name }

// Kind returns the column's logical type
func (c *Column) Kind() Kind { return c.kind }

// Len returns the number of rows in the column
func (c *Column) Len() int {
	if c.kind == KindNumeric {
		return len(c.nums)
	}
	return len(c.strs)
}

// IsNull reports whether the value at row i is missing
func (c *Column) IsNull(i int) bool { return c.null[i] }

// Float returns the numeric value at row i. The second return is false for
// nulls and for string columns.
func (c *Column) Float(i int) (float64, bool) {
	if c.kind != KindNumeric || c.null[i] {
		return 0, false
	}
	return c.nums[i], true
}

// Value returns the display string at row i. Numeric values are formatted
// with strconv; nulls return the empty string.
func (c *Column) Value(i int) string {
	if c.null[i] {
		return ""
	}
	if c.kind == KindNumeric {
		return strconv.FormatFloat(c.nums[i], 'g', -1, 64)
	}
	return c.strs[i]
}

// Distinct returns the sorted distinct non-null display values of the column.
func (c *Column) Distinct() []string {
	seen := make(map[string]struct{})
	for i := 0; i < c.Len(); i++ {
		if c.null[i] {
			continue
		}
		seen[c.Value(i)] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// slice returns a new column containing only the rows whose indices are given
func (c *Column) slice(rows []int) *Column {
	out := &Column{name: c.name, kind: c.kind, null: make([]bool, len(rows))}
	if c.kind == KindNumeric {
		out.nums = make([]float64, len(rows))
		for j, i := range rows {
			out.nums[j] = c.nums[i]
			out.null[j] = c.null[i]
		}
		return out
	}
	out.strs = make([]string, len(rows))
	for j, i := range rows {
		out.strs[j] = c.strs[i]
		out.null[j] = c.null[i]
	}
	return out
}

// Table is an ordered collection of named, typed columns with aligned rows.
// One survey respondent per row. Tables are immutable after construction;
// every transformation returns a new table.
type Table struct {
	cols    []*Column
	byName  map[string]int
	numRows int
}

// New creates an empty table with no columns and no rows.
func New() *Table {
	return &Table{byName: make(map[string]int)}
}

// FromColumns builds a table from the given columns. All columns must have
// the same length and distinct names.
func FromColumns(cols ...*Column) (*Table, error) {
	t := New()
	for _, c := range cols {
		if err := t.addColumn(c); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// MustFromColumns is FromColumns that panics on error. Intended for fixed
// fallback tables and tests where the shape is known at compile time.
func MustFromColumns(cols ...*Column) *Table {
	t, err := FromColumns(cols...)
	if err != nil {
		panic(err)
	}
	return t
}

func (t *Table) addColumn(c *Column) error {
	if _, exists := t.byName[c.name]; exists {
		return fmt.Errorf("duplicate column %q", c.name)
	}
	if len(t.cols) > 0 && c.Len() != t.numRows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.name, c.Len(), t.numRows)
	}
	if len(t.cols) == 0 {
		t.numRows = c.Len()
	}
	t.byName[c.name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// NumRows returns the number of rows in the table
func (t *Table) NumRows() int { return t.numRows }

// NumColumns returns the number of columns in the table
func (t *Table) NumColumns() int { return len(t.cols) }

// ColumnNames returns the column names in table order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.name
	}
	return names
}

// HasColumn reports whether a column with the given name exists
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column looks up a column by name
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Filter returns a new table containing only the rows for which keep returns
// true. The input table is not modified.
func (t *Table) Filter(keep func(row int) bool) *Table {
	var rows []int
	for i := 0; i < t.numRows; i++ {
		if keep(i) {
			rows = append(rows, i)
		}
	}
	out := New()
	out.numRows = len(rows)
	for _, c := range t.cols {
		sliced := c.slice(rows)
		out.byName[sliced.name] = len(out.cols)
		out.cols = append(out.cols, sliced)
	}
	return out
}

// columnJSON is the wire shape of a column header
type columnJSON struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// tableJSON is the wire shape of a table: column headers plus row-major values
type tableJSON struct {
	Columns []columnJSON    `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// MarshalJSON renders the table as {"columns": [...], "rows": [[...]]} with
// nulls encoded as JSON null.
func (t *Table) MarshalJSON() ([]byte, error) {
	out := tableJSON{
		Columns: make([]columnJSON, len(t.cols)),
		Rows:    make([][]interface{}, t.numRows),
	}
	for i, c := range t.cols {
		out.Columns[i] = columnJSON{Name: c.name, Type: c.kind.String()}
	}
	for r := 0; r < t.numRows; r++ {
		row := make([]interface{}, len(t.cols))
		for i, c := range t.cols {
			switch {
			case c.null[r]:
				row[i] = nil
			case c.kind == KindNumeric:
				row[i] = c.nums[r]
			default:
				row[i] = c.strs[r]
			}
		}
		out.Rows[r] = row
	}
	return json.Marshal(out)
}
