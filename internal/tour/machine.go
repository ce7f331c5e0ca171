// Package tour owns the step progression state machine. All guards are
// total: out-of-range navigation is a silent no-op rather than an error,
// because every index is internally generated.
package tour

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tourguide/internal/catalog"
	"tourguide/internal/gate"
)

// Event is the payload handed to host callbacks at transition time.
// RunID ties the callbacks of one tour run together for analytics.
type Event struct {
	TourID    string
	RunID     string
	StepIndex int
	StepCount int
}

// Hooks are invoked synchronously at the corresponding transitions. Skip
// and completion both mark the tour done durably, but they are observably
// different events: exactly one of OnComplete/OnSkip fires per run.
type Hooks struct {
	OnStart    func(Event)
	OnComplete func(Event)
	OnSkip     func(Event)
}

// Machine tracks whether a tour is active and which step is current.
// It is driven by a single event loop and needs no locking.
type Machine struct {
	catalog *catalog.Catalog
	gate    *gate.Gate
	hooks   Hooks
	logger  *zap.Logger

	active bool
	index  int
	runID  string
}

// New creates an inactive machine over the given catalog and gate.
func New(cat *catalog.Catalog, g *gate.Gate, hooks Hooks, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{catalog: cat, gate: g, hooks: hooks, logger: logger}
}

// Active reports whether a tour run is in progress.
func (m *Machine) Active() bool { return m.active }

// Index returns the current step index; meaningful only while active.
func (m *Machine) Index() int { return m.index }

// Len returns the number of steps in the catalog.
func (m *Machine) Len() int { return m.catalog.Len() }

// Current returns the current step descriptor while active.
func (m *Machine) Current() (catalog.Step, bool) {
	if !m.active {
		return catalog.Step{}, false
	}
	return m.catalog.Step(m.index)
}

// Catalog returns the catalog the machine is navigating.
func (m *Machine) Catalog() *catalog.Catalog { return m.catalog }

// Start activates the tour at step 0 and fires OnStart. Starting while
// already active resets to step 0; that reset is the defined behavior,
// not a guarded edge case. An empty catalog cannot start.
func (m *Machine) Start() {
	if m.catalog.Len() == 0 {
		return
	}
	m.active = true
	m.index = 0
	m.runID = uuid.NewString()
	m.logger.Info("tour started",
		zap.String("tour", m.catalog.ID()),
		zap.String("run", m.runID),
		zap.Int("steps", m.catalog.Len()))
	if m.hooks.OnStart != nil {
		m.hooks.OnStart(m.event())
	}
}

// Advance moves to the next step; from the last step it completes the
// tour, persisting the record and firing OnComplete exactly once.
func (m *Machine) Advance() {
	if !m.active {
		return
	}
	if m.index < m.catalog.Len()-1 {
		m.index++
		return
	}
	ev := m.event()
	m.finish()
	m.logger.Info("tour completed", zap.String("tour", ev.TourID), zap.String("run", ev.RunID))
	if m.hooks.OnComplete != nil {
		m.hooks.OnComplete(ev)
	}
}

// Retreat moves to the previous step; at step 0 it is a no-op.
func (m *Machine) Retreat() {
	if !m.active || m.index == 0 {
		return
	}
	m.index--
}

// Skip ends the run from any step. It persists the same record as
// completion (skipping still means "do not show again") but fires
// OnSkip instead of OnComplete.
func (m *Machine) Skip() {
	if !m.active {
		return
	}
	ev := m.event()
	m.finish()
	m.logger.Info("tour skipped",
		zap.String("tour", ev.TourID),
		zap.String("run", ev.RunID),
		zap.Int("at_step", ev.StepIndex))
	if m.hooks.OnSkip != nil {
		m.hooks.OnSkip(ev)
	}
}

// GoTo jumps directly to step n; out-of-range indices are ignored.
func (m *Machine) GoTo(n int) {
	if !m.active || n < 0 || n >= m.catalog.Len() {
		return
	}
	m.index = n
}

// ReplaceCatalog swaps in a reloaded definition (live authoring). An
// active index past the new end clamps to the last step; an empty
// replacement deactivates without firing callbacks.
func (m *Machine) ReplaceCatalog(cat *catalog.Catalog) {
	m.catalog = cat
	if !m.active {
		return
	}
	if cat.Len() == 0 {
		m.active = false
		m.index = 0
		return
	}
	if m.index >= cat.Len() {
		m.index = cat.Len() - 1
	}
}

// finish resets to the inactive state and writes the durable record.
// The write is fire-and-forget: a failed write never rolls back the
// transition.
func (m *Machine) finish() {
	m.active = false
	m.index = 0
	if m.gate != nil {
		m.gate.MarkCompleted(m.catalog.Version())
	}
}

func (m *Machine) event() Event {
	return Event{
		TourID:    m.catalog.ID(),
		RunID:     m.runID,
		StepIndex: m.index,
		StepCount: m.catalog.Len(),
	}
}
