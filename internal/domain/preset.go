package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChartPreset is a saved chart request: kind, targets and options kept
// as the client submitted them, replayable against any trace session.
type ChartPreset struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	Metric    string    `json:"metric,omitempty"`
	Payload   []byte    `json:"payload"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
