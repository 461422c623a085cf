package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRectGeometry(t *testing.T) {
	tests := []struct {
		name                   string
		xStart, xEnd           float64
		yMin, yMax             float64
		wantX, wantY           float64
		wantWidth, wantHeight  float64
	}{
		{
			name:   "simple interval",
			xStart: 0, xEnd: 10, yMin: -1, yMax: 1,
			wantX: 5, wantY: 0, wantWidth: 10, wantHeight: 2,
		},
		{
			name:   "zero width",
			xStart: 5, xEnd: 5, yMin: 2, yMax: 4,
			wantX: 5, wantY: 3, wantWidth: 0, wantHeight: 2,
		},
		{
			name:   "reverse ordered",
			xStart: 10, xEnd: 0, yMin: 1, yMax: -1,
			wantX: 5, wantY: 0, wantWidth: 10, wantHeight: 2,
		},
		{
			name:   "negative band",
			xStart: 100, xEnd: 200, yMin: -1.8, yMax: -1.2,
			wantX: 150, wantY: -1.5, wantWidth: 100, wantHeight: 0.6,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rect := NewRectGeometry(tt.xStart, tt.xEnd, tt.yMin, tt.yMax)
			assert.InDelta(t, tt.wantX, rect.X, 1e-9)
			assert.InDelta(t, tt.wantY, rect.Y, 1e-9)
			assert.InDelta(t, tt.wantWidth, rect.Width, 1e-9)
			assert.InDelta(t, tt.wantHeight, rect.Height, 1e-9)
		})
	}
}
