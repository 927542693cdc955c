package network

import (
	"math"
	"strconv"
	"strings"
)

// Table names shared by the CSV and SQLite layouts
const (
	TableSnapshots    = "snapshots"
	TableBuses        = "buses"
	TableLoads        = "loads"
	TableLoadsPSet    = "loads-p_set"
	TableGenerators   = "generators"
	TableStorageUnits = "storage_units"
	TableLines        = "lines"
	TableLinks        = "links"
)

// Tables lists every table a reader looks for, in read order
var Tables = []string{
	TableSnapshots,
	TableBuses,
	TableLoads,
	TableLoadsPSet,
	TableGenerators,
	TableStorageUnits,
	TableLines,
	TableLinks,
}

// Frame is a table as read from disk: a header and string-valued rows.
// The first column is the row key (component name or snapshot label).
type Frame struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Frames maps a table name to its frame. A missing table has no entry.
type Frames map[string]*Frame

// Len returns the number of rows, zero for a nil frame
func (f *Frame) Len() int {
	if f == nil {
		return 0
	}
	return len(f.Rows)
}

// Index returns the position of a column, or -1
func (f *Frame) Index(column string) int {
	if f == nil {
		return -1
	}
	for i, c := range f.Columns {
		if c == column {
			return i
		}
	}
	return -1
}

// Cell returns the trimmed value at row/column index, "" when out of range
func (f *Frame) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Key returns a row's first cell
func (f *Frame) Key(row []string) string {
	return f.Cell(row, 0)
}

// parseFloat reads a numeric cell. Empty, NaN, infinite and unparseable cells are nil.
func parseFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
