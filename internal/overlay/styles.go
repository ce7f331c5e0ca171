// Package overlay renders the guided tour on top of a host bubbletea
// application: spotlight backdrop, tooltip, keyboard navigation, focus
// handling, and the assistive announcement line.
package overlay

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the overlay color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Card       lipgloss.Color
	Dim        lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#101F38"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#6b7a90"),
		Border:     lipgloss.Color("#dce0e5"),
		Card:       lipgloss.Color("#ffffff"),
		Dim:        lipgloss.Color("#9aa3ad"),
		IsDark:     false,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: lipgloss.Color("#f2f2f2"),
		Accent:     lipgloss.Color("#8BC34A"),
		Muted:      lipgloss.Color("#8a94a6"),
		Border:     lipgloss.Color("#2a3850"),
		Card:       lipgloss.Color("#1a2536"),
		Dim:        lipgloss.Color("#3a4254"),
		IsDark:     true,
	}
}

// DetectTheme picks a theme from the terminal environment, defaulting to
// light mode.
func DetectTheme() Theme {
	// COLORFGBG is "foreground;background"; low background indices are
	// dark terminals.
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			if bgIdx, err := strconv.Atoi(parts[1]); err == nil {
				if (bgIdx >= 0 && bgIdx <= 6) || bgIdx == 8 {
					return DarkTheme()
				}
			}
		}
	}
	if os.Getenv("TOURGUIDE_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds the styled overlay components.
type Styles struct {
	Theme Theme

	// Backdrop cells outside the spotlight cutout.
	Dim lipgloss.Style

	// Tooltip box and its parts.
	Tooltip      lipgloss.Style
	TooltipTitle lipgloss.Style
	StepBadge    lipgloss.Style

	// Tooltip controls.
	Button        lipgloss.Style
	ButtonFocused lipgloss.Style

	// Extra affordance for emphasized targets.
	Emphasis lipgloss.Style

	// Assistive announcement line.
	Announce lipgloss.Style

	Help lipgloss.Style
}

// NewStyles creates a Styles instance for the given theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Dim: lipgloss.NewStyle().
			Foreground(theme.Dim),

		Tooltip: lipgloss.NewStyle().
			Background(theme.Card).
			Foreground(theme.Foreground).
			Padding(0, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border),

		TooltipTitle: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			Bold(true),

		StepBadge: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Button: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 1),

		ButtonFocused: lipgloss.NewStyle().
			Background(theme.Accent).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 1).
			Bold(true),

		Emphasis: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),

		Announce: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Italic(true),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
