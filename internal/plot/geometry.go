package plot

import "math"

// RectGeometry is the center/size form of a rectangle derived from a
// horizontal (start, end) interval and a vertical (min, max) band. It
// is ephemeral: computed per row and never persisted past one
// generation call.
type RectGeometry struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewRectGeometry converts interval pairs into center/size. Total over
// all inputs, including zero-width and reverse-ordered intervals.
func NewRectGeometry(xStart, xEnd, yMin, yMax float64) RectGeometry {
	return RectGeometry{
		X:      (xStart + xEnd) / 2,
		Y:      (yMin + yMax) / 2,
		Width:  math.Abs(xStart - xEnd),
		Height: math.Abs(yMin - yMax),
	}
}
