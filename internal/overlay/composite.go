package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"tourguide/internal/geometry"
)

// cellClass is the render treatment of one host cell.
type cellClass int

const (
	cellPlain cellClass = iota
	cellDim
	cellBlank
	cellEmphasis
)

// compose draws the overlay frame: the host content dimmed outside the
// spotlight cutout (or blanked entirely for modal steps), with the tooltip
// block spliced in at its anchor. The host frame is flattened to plain
// text first; the tooltip keeps its own styling.
func compose(host string, path geometry.CutoutPath, emphasize bool, tooltip string, at geometry.Point, vp geometry.Size, styles Styles) string {
	w, h := int(vp.Width), int(vp.Height)
	if w <= 0 || h <= 0 {
		return host
	}

	grid := hostGrid(host, w, h)

	tipLines := strings.Split(tooltip, "\n")
	tipW := lipgloss.Width(tooltip)
	tipX, tipY := int(at.X), int(at.Y)

	var out strings.Builder
	for y := 0; y < h; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		tipRow := tooltip != "" && y >= tipY && y < tipY+len(tipLines)
		if !tipRow {
			writeRun(&out, grid[y], 0, w, y, path, emphasize, styles)
			continue
		}
		line := tipLines[y-tipY]
		writeRun(&out, grid[y], 0, tipX, y, path, emphasize, styles)
		out.WriteString(line)
		if pad := tipW - lipgloss.Width(line); pad > 0 {
			out.WriteString(strings.Repeat(" ", pad))
		}
		writeRun(&out, grid[y], tipX+tipW, w, y, path, emphasize, styles)
	}
	return out.String()
}

// hostGrid flattens the host frame into an h × w rune grid, padding and
// truncating as needed.
func hostGrid(host string, w, h int) [][]rune {
	lines := strings.Split(ansi.Strip(host), "\n")
	grid := make([][]rune, h)
	for y := 0; y < h; y++ {
		var line string
		if y < len(lines) {
			line = runewidth.Truncate(lines[y], w, "")
		}
		row := []rune(runewidth.FillRight(line, w))
		if len(row) > w {
			row = row[:w]
		}
		grid[y] = row
	}
	return grid
}

// writeRun renders grid cells [from, to) of row y, batching contiguous
// cells with the same treatment so styling cost stays per-run, not
// per-cell.
func writeRun(out *strings.Builder, row []rune, from, to, y int, path geometry.CutoutPath, emphasize bool, styles Styles) {
	if from < 0 {
		from = 0
	}
	if to > len(row) {
		to = len(row)
	}
	if from >= to {
		return
	}

	classAt := func(x int) cellClass {
		// Sample the cell center so integer cell coordinates and the
		// continuous path agree at boundaries.
		if !path.Covers(float64(x)+0.5, float64(y)+0.5) {
			if emphasize && path.HasCutout {
				return cellEmphasis
			}
			return cellPlain
		}
		if !path.HasCutout {
			// Modal steps use an opaque backdrop: the host is hidden,
			// not merely dimmed.
			return cellBlank
		}
		return cellDim
	}

	start := from
	current := classAt(from)
	flush := func(end int) {
		segment := string(row[start:end])
		switch current {
		case cellDim:
			out.WriteString(styles.Dim.Render(segment))
		case cellBlank:
			out.WriteString(strings.Repeat(" ", end-start))
		case cellEmphasis:
			out.WriteString(styles.Emphasis.Render(segment))
		default:
			out.WriteString(segment)
		}
	}
	for x := from + 1; x < to; x++ {
		if c := classAt(x); c != current {
			flush(x)
			start = x
			current = c
		}
	}
	flush(to)
}
