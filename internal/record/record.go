package record

// Row maps a column name to a timestamp or metric value in nanoseconds.
// A column absent from the map is a missing value.
type Row map[string]int64

// RecordTable is an ordered sequence of rows over a fixed set of named
// columns. Column order is significant: by convention the first column
// is a timestamp and the last column is either the completion timestamp
// (execution-span tables) or the metric value (two-column time-series
// tables).
type RecordTable struct {
	columns []string
	rows    []Row
}

// NewRecordTable creates an empty table with the given column order.
func NewRecordTable(columns ...string) *RecordTable {
	return &RecordTable{columns: columns}
}

// Columns returns the column names in order.
func (t *RecordTable) Columns() []string { return t.columns }

// Len returns the number of rows.
func (t *RecordTable) Len() int { return len(t.rows) }

// Rows returns the rows in insertion order.
func (t *RecordTable) Rows() []Row { return t.rows }

// Append adds a row. Missing columns stay missing; they are surfaced as
// nil entries by ColumnSeries.
func (t *RecordTable) Append(r Row) {
	t.rows = append(t.rows, r)
}

// ColumnSeries returns the values of one column in row order, nil where
// the row has no value for the column.
func (t *RecordTable) ColumnSeries(name string) []*int64 {
	series := make([]*int64, 0, len(t.rows))
	for _, row := range t.rows {
		if v, ok := row[name]; ok {
			v := v
			series = append(series, &v)
		} else {
			series = append(series, nil)
		}
	}
	return series
}

// Range returns the minimum first-column and maximum last-column values
// across all rows. ok is false for an empty table or when every
// consulted cell is missing.
func (t *RecordTable) Range() (minTs, maxTs int64, ok bool) {
	if len(t.columns) == 0 {
		return 0, 0, false
	}
	first := t.columns[0]
	last := t.columns[len(t.columns)-1]
	minSet, maxSet := false, false
	for _, row := range t.rows {
		if v, present := row[first]; present {
			if !minSet || v < minTs {
				minTs = v
			}
			minSet = true
		}
		if v, present := row[last]; present {
			if !maxSet || v > maxTs {
				maxTs = v
			}
			maxSet = true
		}
	}
	ok = minSet && maxSet
	return minTs, maxTs, ok
}
