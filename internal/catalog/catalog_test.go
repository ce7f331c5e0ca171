package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourguide/internal/geometry"
)

const sampleDefinition = `
id: workspace-tour
version: "1.2.0"
steps:
  - id: welcome
    kind: modal
    title: Welcome
    description: A quick walk through the workspace.
  - id: sidebar
    kind: spotlight
    target: nav-sidebar
    title: Navigation
    description: Switch between panels here.
    placement: right
    emphasize: true
  - id: statusbar
    kind: spotlight
    target: status-bar
    title: Status
    description: Connection state lives here.
    placement: top-end
`

func TestParse_ValidDefinition(t *testing.T) {
	cat, err := Parse([]byte(sampleDefinition))
	require.NoError(t, err)

	assert.Equal(t, "workspace-tour", cat.ID())
	assert.Equal(t, "1.2.0", cat.Version())
	require.Equal(t, 3, cat.Len())

	first, ok := cat.Step(0)
	require.True(t, ok)
	assert.Equal(t, "welcome", first.ID)
	assert.Equal(t, KindModal, first.Kind)
	assert.Empty(t, first.TargetRef)
	assert.Equal(t, geometry.PlaceCenter, first.Placement)

	second, ok := cat.Step(1)
	require.True(t, ok)
	assert.Equal(t, KindSpotlight, second.Kind)
	assert.Equal(t, "nav-sidebar", second.TargetRef)
	assert.Equal(t, geometry.PlaceRight, second.Placement)
	assert.True(t, second.Emphasize)

	third, ok := cat.Step(2)
	require.True(t, ok)
	assert.Equal(t, geometry.PlaceTopEnd, third.Placement)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing id", "version: \"1.0\"\nsteps: []"},
		{"missing version", "id: t\nsteps: []"},
		{"duplicate step ids", `
id: t
version: "1.0"
steps:
  - id: a
    kind: modal
  - id: a
    kind: modal
`},
		{"spotlight without target", `
id: t
version: "1.0"
steps:
  - id: a
    kind: spotlight
`},
		{"unknown placement", `
id: t
version: "1.0"
steps:
  - id: a
    kind: spotlight
    target: x
    placement: diagonal
`},
		{"unknown kind", `
id: t
version: "1.0"
steps:
  - id: a
    kind: popover
`},
		{"not yaml", "{{{"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestCatalog_StepBounds(t *testing.T) {
	cat, err := New("t", "1.0", []Step{{ID: "only", Kind: KindModal}})
	require.NoError(t, err)

	_, ok := cat.Step(-1)
	assert.False(t, ok)
	_, ok = cat.Step(1)
	assert.False(t, ok)
	_, ok = cat.Step(0)
	assert.True(t, ok)
}

func TestNew_CopiesSteps(t *testing.T) {
	steps := []Step{{ID: "a", Kind: KindModal, Title: "before"}}
	cat, err := New("t", "1.0", steps)
	require.NoError(t, err)

	steps[0].Title = "after"

	got, ok := cat.Step(0)
	require.True(t, ok)
	assert.Equal(t, "before", got.Title)
}

func TestNew_EmptyCatalog(t *testing.T) {
	cat, err := New("t", "1.0", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, cat.Len())
}
