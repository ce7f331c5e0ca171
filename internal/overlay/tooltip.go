package overlay

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"tourguide/internal/catalog"
	"tourguide/internal/geometry"
)

// control identifies one interactive element of the tooltip. Keyboard
// focus cycles over these with wraparound in both directions.
type control int

const (
	controlBack control = iota
	controlNext
	controlSkip
	controlCount
)

func (c control) label(last bool) string {
	switch c {
	case controlBack:
		return "Back"
	case controlNext:
		if last {
			return "Done"
		}
		return "Next"
	default:
		return "Skip"
	}
}

// tooltipBodyWidth is the word-wrap width for the markdown body.
const tooltipBodyWidth = 42

// newMarkdownRenderer builds the glamour renderer for step descriptions.
func newMarkdownRenderer(theme Theme) *glamour.TermRenderer {
	style := "light"
	if theme.IsDark {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(tooltipBodyWidth),
	)
	if err != nil {
		return nil
	}
	return r
}

// renderTooltip draws the tooltip box for a step and returns the rendered
// block plus its measured size. The measurement feeds the next anchor
// computation.
func renderTooltip(styles Styles, renderer *glamour.TermRenderer, step catalog.Step, index, count int, focused control, helpLine string) (string, geometry.Size) {
	var b strings.Builder

	badge := styles.StepBadge.Render(fmt.Sprintf("%d/%d", index+1, count))
	title := styles.TooltipTitle.Render(step.Title)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, badge, " ", title))
	b.WriteString("\n")

	body := step.Description
	if renderer != nil {
		if rendered, err := renderer.Render(step.Description); err == nil {
			body = strings.Trim(rendered, "\n")
		}
	}
	b.WriteString(body)
	b.WriteString("\n\n")

	last := index == count-1
	buttons := make([]string, 0, int(controlCount))
	for c := control(0); c < controlCount; c++ {
		style := styles.Button
		if c == focused {
			style = styles.ButtonFocused
		}
		buttons = append(buttons, style.Render(c.label(last)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, buttons...))

	if helpLine != "" {
		b.WriteString("\n")
		b.WriteString(styles.Help.Render(helpLine))
	}

	box := styles.Tooltip.Render(b.String())
	size := geometry.Size{
		Width:  float64(lipgloss.Width(box)),
		Height: float64(lipgloss.Height(box)),
	}
	return box, size
}
