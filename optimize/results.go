package optimize

import (
	"fmt"
	"sort"
	"strings"
)

// Results is the table assembled by a sweep: one row per grid point in
// enumeration order. The column set is the union of parameter keys and
// score keys across rows; parameter columns come first in axis
// declaration order, remaining columns follow sorted by name so the
// layout is deterministic.
type Results struct {
	columns []string
	rows    []map[string]interface{}
}

func newResults(axes []Axis, rows []map[string]interface{}) *Results {
	seen := make(map[string]bool)
	var columns []string
	for _, axis := range axes {
		columns = append(columns, axis.Name)
		seen[axis.Name] = true
	}

	var extra []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				extra = append(extra, k)
			}
		}
	}
	sort.Strings(extra)

	return &Results{columns: append(columns, extra...), rows: rows}
}

// Len returns the number of rows.
func (r *Results) Len() int {
	return len(r.rows)
}

// Columns returns the ordered column names.
func (r *Results) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Value returns the value at row i, column name. The second return is
// false when the row has no value for that column (e.g. score columns of
// a failed grid point).
func (r *Results) Value(i int, column string) (interface{}, bool) {
	v, ok := r.rows[i][column]
	return v, ok
}

// Float returns the value at row i, column name as a float64 when it is
// one.
func (r *Results) Float(i int, column string) (float64, bool) {
	v, ok := r.rows[i][column]
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	return f, ok
}

// Row returns a copy of row i.
func (r *Results) Row(i int) map[string]interface{} {
	out := make(map[string]interface{}, len(r.rows[i]))
	for k, v := range r.rows[i] {
		out[k] = v
	}
	return out
}

// String renders the table for inspection.
func (r *Results) String() string {
	var sb strings.Builder
	sb.WriteString(strings.Join(r.columns, "\t"))
	sb.WriteString("\n")
	for _, row := range r.rows {
		cells := make([]string, len(r.columns))
		for j, col := range r.columns {
			if v, ok := row[col]; ok {
				cells[j] = fmt.Sprintf("%v", v)
			} else {
				cells[j] = "-"
			}
		}
		sb.WriteString(strings.Join(cells, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}
