package record

// ClockConverter maps a raw trace timestamp into another time domain,
// typically simulation time.
type ClockConverter interface {
	Convert(ns int64) float64
}

// LinearConverter converts t to Slope*t + Offset. It covers the common
// case of a simulation clock running at a fixed rate against the trace
// clock.
type LinearConverter struct {
	Slope  float64
	Offset float64
}

// NewLinearConverter creates a linear clock converter.
func NewLinearConverter(slope, offset float64) *LinearConverter {
	return &LinearConverter{Slope: slope, Offset: offset}
}

// Convert implements ClockConverter.
func (c *LinearConverter) Convert(ns int64) float64 {
	return c.Slope*float64(ns) + c.Offset
}
