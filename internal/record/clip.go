package record

// Clip restricts a table to rows whose first-column timestamp falls
// inside [MinNs, MaxNs].
type Clip struct {
	MinNs int64
	MaxNs int64
}

// NewClip creates a clip over the given closed range.
func NewClip(minNs, maxNs int64) *Clip {
	return &Clip{MinNs: minNs, MaxNs: maxNs}
}

// TrimmedClip builds a clip from frame bounds, stripping lstripS
// seconds from the left edge and rstripS seconds from the right edge.
func TrimmedClip(frameMin, frameMax int64, lstripS, rstripS float64) *Clip {
	return &Clip{
		MinNs: frameMin + int64(lstripS*1e9),
		MaxNs: frameMax - int64(rstripS*1e9),
	}
}

// Apply returns a new table holding the rows inside the clip range, in
// the original order. Rows missing the first-column value are kept;
// missing-value handling belongs to the consumer.
func (c *Clip) Apply(t *RecordTable) *RecordTable {
	if t == nil || len(t.Columns()) == 0 {
		return t
	}
	first := t.Columns()[0]
	clipped := NewRecordTable(t.Columns()...)
	for _, row := range t.Rows() {
		if v, ok := row[first]; ok {
			if v < c.MinNs || v > c.MaxNs {
				continue
			}
		}
		clipped.Append(row)
	}
	return clipped
}
