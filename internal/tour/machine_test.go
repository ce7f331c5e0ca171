package tour

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tourguide/internal/catalog"
	"tourguide/internal/gate"
)

// hookRecorder counts callback invocations and keeps the last event.
type hookRecorder struct {
	starts, completes, skips int
	last                     Event
}

func (r *hookRecorder) hooks() Hooks {
	return Hooks{
		OnStart:    func(e Event) { r.starts++; r.last = e },
		OnComplete: func(e Event) { r.completes++; r.last = e },
		OnSkip:     func(e Event) { r.skips++; r.last = e },
	}
}

func testCatalog(t *testing.T, n int) *catalog.Catalog {
	t.Helper()
	steps := make([]catalog.Step, n)
	for i := range steps {
		steps[i] = catalog.Step{ID: string(rune('a' + i)), Kind: catalog.KindModal}
	}
	cat, err := catalog.New("test-tour", "1.0.0", steps)
	require.NoError(t, err)
	return cat
}

func newMachine(t *testing.T, n int) (*Machine, *hookRecorder, *gate.Gate) {
	t.Helper()
	rec := &hookRecorder{}
	g := gate.New(gate.NewFileStore(t.TempDir()), "test-tour", zap.NewNop())
	return New(testCatalog(t, n), g, rec.hooks(), zap.NewNop()), rec, g
}

func TestMachine_AdvanceThroughCompletes(t *testing.T) {
	// Three steps: start, advance, advance, advance ends the run with
	// exactly one completion.
	m, rec, g := newMachine(t, 3)

	m.Start()
	require.True(t, m.Active())
	assert.Equal(t, 1, rec.starts)

	m.Advance()
	assert.Equal(t, 1, m.Index())
	m.Advance()
	assert.Equal(t, 2, m.Index())
	m.Advance()

	assert.False(t, m.Active())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, 1, rec.completes)
	assert.Equal(t, 0, rec.skips)
	assert.True(t, g.Completed())
	assert.False(t, g.ShouldAutoStart("1.0.0"))
}

func TestMachine_CompletionFiresOnceForAnyLength(t *testing.T) {
	for n := 1; n <= 5; n++ {
		m, rec, _ := newMachine(t, n)
		m.Start()
		for i := 0; i < n; i++ {
			m.Advance()
		}
		assert.False(t, m.Active(), "n=%d", n)
		assert.Equal(t, 1, rec.completes, "n=%d", n)

		// Further advances are no-ops on an inactive machine.
		m.Advance()
		assert.Equal(t, 1, rec.completes, "n=%d", n)
	}
}

func TestMachine_RetreatAtZeroIsNoop(t *testing.T) {
	m, rec, _ := newMachine(t, 3)
	m.Start()

	m.Retreat()

	assert.True(t, m.Active())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, 1, rec.starts)
	assert.Equal(t, 0, rec.completes+rec.skips)
}

func TestMachine_RetreatStepsBack(t *testing.T) {
	m, _, _ := newMachine(t, 3)
	m.Start()
	m.Advance()
	m.Advance()

	m.Retreat()
	assert.Equal(t, 1, m.Index())
	m.Retreat()
	assert.Equal(t, 0, m.Index())
}

func TestMachine_SkipPersistsButFiresSkipOnly(t *testing.T) {
	m, rec, g := newMachine(t, 3)
	m.Start()
	m.Advance()

	m.Skip()

	assert.False(t, m.Active())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, 1, rec.skips)
	assert.Equal(t, 0, rec.completes)
	assert.Equal(t, 1, rec.last.StepIndex, "skip event carries the step it happened on")
	assert.True(t, g.Completed())
	v, ok := g.StoredVersion()
	require.True(t, ok)
	assert.Equal(t, "1.0.0", v)
}

func TestMachine_GoToBounds(t *testing.T) {
	m, _, _ := newMachine(t, 3)
	m.Start()

	m.GoTo(2)
	assert.Equal(t, 2, m.Index())

	m.GoTo(3)
	assert.Equal(t, 2, m.Index())
	m.GoTo(-1)
	assert.Equal(t, 2, m.Index())
}

func TestMachine_StartWhileActiveResets(t *testing.T) {
	m, rec, _ := newMachine(t, 3)
	m.Start()
	m.Advance()
	require.Equal(t, 1, m.Index())

	firstRun := rec.last.RunID
	m.Start()

	assert.True(t, m.Active())
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, 2, rec.starts)
	assert.NotEqual(t, firstRun, rec.last.RunID, "restart mints a new run id")
}

func TestMachine_InactiveOperationsAreNoops(t *testing.T) {
	m, rec, _ := newMachine(t, 3)

	m.Advance()
	m.Retreat()
	m.Skip()
	m.GoTo(1)

	assert.False(t, m.Active())
	assert.Zero(t, rec.starts+rec.completes+rec.skips)
	_, ok := m.Current()
	assert.False(t, ok)
}

func TestMachine_EmptyCatalogCannotStart(t *testing.T) {
	m, rec, _ := newMachine(t, 0)
	m.Start()
	assert.False(t, m.Active())
	assert.Zero(t, rec.starts)
}

func TestMachine_EventShape(t *testing.T) {
	m, rec, _ := newMachine(t, 2)
	m.Start()

	assert.Equal(t, "test-tour", rec.last.TourID)
	assert.NotEmpty(t, rec.last.RunID)
	assert.Equal(t, 0, rec.last.StepIndex)
	assert.Equal(t, 2, rec.last.StepCount)
}

func TestMachine_ReplaceCatalogClampsIndex(t *testing.T) {
	m, _, _ := newMachine(t, 4)
	m.Start()
	m.GoTo(3)

	m.ReplaceCatalog(testCatalog(t, 2))

	assert.True(t, m.Active())
	assert.Equal(t, 1, m.Index())

	m.ReplaceCatalog(testCatalog(t, 0))
	assert.False(t, m.Active())
}
