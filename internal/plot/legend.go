package plot

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/rostrace/rostrace/internal/domain"
)

// legendPageSize is the number of entries emitted per legend page.
const legendPageSize = 10

// LegendEntry pairs a display label with the renderer handles it
// controls.
type LegendEntry struct {
	Label     string   `json:"label"`
	Renderers []string `json:"renderers"`
}

// LegendTarget receives paginated legend entries from the manager. The
// concrete renderer (HTML export, JSON response) implements it.
type LegendTarget interface {
	AddLegendPage(entries []LegendEntry)
	EnableHideOnClick()
}

// LegendManager assigns one stable display label per distinct entity
// and collects legend entries for paginated emission. Labels are keyed
// by entity identity, not value: the same pointer always yields the
// same label even if attributes mutate. Scope one manager per chart
// session; it is not safe for concurrent use.
type LegendManager struct {
	logger  *zap.Logger
	counts  map[string]int
	labels  map[domain.Entity]string
	entries []LegendEntry
}

// NewLegendManager creates a manager. A nil logger disables the
// truncation warning output.
func NewLegendManager(logger *zap.Logger) *LegendManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LegendManager{
		logger: logger,
		counts: make(map[string]int),
		labels: make(map[domain.Entity]string),
	}
}

// LabelFor returns the cached label for the entity, deriving and
// caching a new one on first sight: the kind name lowercased plus a
// per-kind counter (callback0, callback1, communication0, ...).
func (m *LegendManager) LabelFor(e domain.Entity) string {
	if label, ok := m.labels[e]; ok {
		return label
	}
	kind := e.Kind().String()
	label := fmt.Sprintf("%s%d", kind, m.counts[kind])
	m.counts[kind]++
	m.labels[e] = label
	return label
}

// Register records one legend entry for the entity's renderer. Entries
// are not merged by label; grouping renderers under one entry is the
// caller's choice.
func (m *LegendManager) Register(e domain.Entity, renderer string) {
	label := m.LabelFor(e)
	m.entries = append(m.entries, LegendEntry{Label: label, Renderers: []string{renderer}})
}

// Entries returns the registered entries in registration order.
func (m *LegendManager) Entries() []LegendEntry { return m.entries }

// Draw emits the registered entries to the target in pages of ten.
// Emission stops at the first page whose start index reaches
// maxLegends; a page that begins below the threshold is emitted whole,
// so up to nine entries beyond maxLegends can appear. showAll emits
// everything and suppresses the warning.
// Returns whether entries were withheld; on truncation exactly one
// warning is logged. Click-to-hide is always enabled on the target.
func (m *LegendManager) Draw(target LegendTarget, maxLegends int, showAll bool) bool {
	truncated := false
	for i := 0; i < len(m.entries); i += legendPageSize {
		if !showAll && i >= maxLegends {
			m.logger.Warn("too many legend entries, output truncated",
				zap.Int("max_legends", maxLegends),
				zap.Int("entries", len(m.entries)),
			)
			truncated = true
			break
		}
		end := i + legendPageSize
		if end > len(m.entries) {
			end = len(m.entries)
		}
		target.AddLegendPage(m.entries[i:end])
	}
	target.EnableHideOnClick()
	return truncated
}
