package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"tourguide/internal/catalog"
	"tourguide/internal/gate"
	"tourguide/internal/geometry"
	"tourguide/internal/tour"
)

// Cell-scale geometry: the engine defaults suit pixel coordinates, a
// terminal works in character cells.
const (
	cellPadding = 1
	cellRadius  = 1
	cellGap     = 1
	cellInset   = 1
)

// FocusTracker lets the overlay save the host's focused control when a
// tour starts and restore it when the tour ends. Restore silently ignores
// ids that no longer exist.
type FocusTracker interface {
	Current() string
	Restore(id string)
}

// ScrollMsg is forwarded by hosts whenever any scrollable ancestor of a
// tagged region scrolls. It invalidates all cached geometry, same as a
// resize; target rectangles are re-resolved from the registry because the
// widget may have moved for other reasons too.
type ScrollMsg struct{}

// CatalogReloadedMsg carries a freshly reloaded tour definition from the
// authoring watcher into the event loop.
type CatalogReloadedMsg struct {
	Catalog *catalog.Catalog
}

// Options configures a tour overlay.
type Options struct {
	Catalog *catalog.Catalog
	Gate    *gate.Gate

	// AutoStart requests the tour on mount if the gate allows it. The
	// decision is latched at Init time and never re-evaluated.
	AutoStart bool

	// Hooks are the host's transition callbacks (analytics etc.).
	Hooks tour.Hooks

	// Focus is optional; without it no focus save/restore happens.
	Focus FocusTracker

	// ScrollIntoView is optional; called with the target ref on every
	// step change so the host can center the widget.
	ScrollIntoView func(ref string)

	Logger *zap.Logger
}

// Model is the tour orchestrator: it resolves targets, runs geometry,
// renders the overlay, and drives the state machine from key events.
// It composes over a host bubbletea view rather than replacing it.
type Model struct {
	machine  *tour.Machine
	registry *Registry
	keys     KeyMap
	help     help.Model
	styles   Styles
	renderer *glamour.TermRenderer
	logger   *zap.Logger

	focusTracker FocusTracker
	scrollInto   func(ref string)

	autoStart bool
	gate      *gate.Gate

	vp geometry.Size

	// lastTipSize is the tooltip box measured after the previous render.
	// Position depends on size and size on content, so the first frame
	// after a step change anchors with the prior measurement.
	lastTipSize geometry.Size

	focused      control
	savedFocus   string
	warnedStep   string
	announcement string
}

// New builds an inactive overlay. The machine's terminal transitions are
// wrapped to save and restore host focus around the host's own hooks.
func New(opts Options) *Model {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Model{
		registry:     NewRegistry(),
		keys:         DefaultKeyMap(),
		help:         help.New(),
		styles:       DefaultStyles(),
		logger:       logger,
		focusTracker: opts.Focus,
		scrollInto:   opts.ScrollIntoView,
		autoStart:    opts.AutoStart,
		gate:         opts.Gate,
		focused:      controlNext,
	}
	m.renderer = newMarkdownRenderer(m.styles.Theme)

	hooks := opts.Hooks
	m.machine = tour.New(opts.Catalog, opts.Gate, tour.Hooks{
		OnStart: func(e tour.Event) {
			m.captureFocus()
			if hooks.OnStart != nil {
				hooks.OnStart(e)
			}
		},
		OnComplete: func(e tour.Event) {
			m.restoreFocus()
			if hooks.OnComplete != nil {
				hooks.OnComplete(e)
			}
		},
		OnSkip: func(e tour.Event) {
			m.restoreFocus()
			if hooks.OnSkip != nil {
				hooks.OnSkip(e)
			}
		},
	}, logger)
	return m
}

// Registry returns the target registry hosts tag their regions into.
func (m *Model) Registry() *Registry { return m.registry }

// Machine exposes the underlying state machine for direct control
// (Start, Skip, GoTo) outside the keyboard path.
func (m *Model) Machine() *tour.Machine { return m.machine }

// Active reports whether the tour is showing.
func (m *Model) Active() bool { return m.machine.Active() }

// Announcement returns the assistive step notification, e.g.
// "Step 2 of 5: Navigation". Empty while inactive. Hosts render it into
// their status/announcement region for non-visual users.
func (m *Model) Announcement() string { return m.announcement }

// Init latches the auto-start decision. It runs once at program mount;
// later re-renders never re-evaluate the condition.
func (m *Model) Init() tea.Cmd {
	if m.autoStart && m.gate != nil && m.gate.ShouldAutoStart(m.machine.Catalog().Version()) {
		m.Start()
	}
	return nil
}

// Start begins the tour regardless of the gate (e.g. a "replay the tour"
// menu item).
func (m *Model) Start() {
	m.machine.Start()
	m.onStepChange()
}

// Update handles messages. While the tour is active, tour keys are
// consumed; everything else (and every message while inactive) is left
// for the host. The boolean reports whether the message was consumed.
func (m *Model) Update(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp = geometry.Size{Width: float64(msg.Width), Height: float64(msg.Height)}
		return nil, false

	case ScrollMsg:
		// Nothing is cached across scrolls; the next View re-resolves
		// the target and recomputes the cutout and anchor.
		return nil, m.machine.Active()

	case CatalogReloadedMsg:
		m.machine.ReplaceCatalog(msg.Catalog)
		if m.machine.Active() {
			m.onStepChange()
		}
		return nil, true

	case tea.KeyMsg:
		if !m.machine.Active() {
			return nil, false
		}
		return nil, m.handleKey(msg)
	}
	return nil, false
}

func (m *Model) handleKey(msg tea.KeyMsg) bool {
	switch {
	case key.Matches(msg, m.keys.Skip):
		m.machine.Skip()
		m.onTourEnd()

	case key.Matches(msg, m.keys.Next):
		m.advance()

	case key.Matches(msg, m.keys.Prev):
		m.retreat()

	case key.Matches(msg, m.keys.FocusNext):
		m.focused = (m.focused + 1) % controlCount

	case key.Matches(msg, m.keys.FocusPrev):
		m.focused = (m.focused + controlCount - 1) % controlCount

	case key.Matches(msg, m.keys.Activate):
		switch m.focused {
		case controlBack:
			m.retreat()
		case controlNext:
			m.advance()
		case controlSkip:
			m.machine.Skip()
			m.onTourEnd()
		}

	default:
		// Swallow everything else: the host must not react to typing
		// while the tour owns the keyboard.
	}
	return true
}

func (m *Model) advance() {
	m.machine.Advance()
	if m.machine.Active() {
		m.onStepChange()
	} else {
		m.onTourEnd()
	}
}

func (m *Model) retreat() {
	before := m.machine.Index()
	m.machine.Retreat()
	if m.machine.Index() != before {
		m.onStepChange()
	}
}

// onStepChange resets per-step state: the unresolved-target diagnostic
// fires again for the new step, focus returns to the primary control, and
// the announcement and host scroll position follow the new target.
func (m *Model) onStepChange() {
	step, ok := m.machine.Current()
	if !ok {
		return
	}
	m.focused = controlNext
	m.warnedStep = ""
	m.announcement = fmt.Sprintf("Step %d of %d: %s", m.machine.Index()+1, m.machine.Len(), step.Title)
	if m.scrollInto != nil && step.TargetRef != "" {
		m.scrollInto(step.TargetRef)
	}
}

func (m *Model) onTourEnd() {
	m.announcement = ""
	m.focused = controlNext
}

func (m *Model) captureFocus() {
	if m.focusTracker != nil {
		m.savedFocus = m.focusTracker.Current()
	}
}

func (m *Model) restoreFocus() {
	if m.focusTracker != nil && m.savedFocus != "" {
		m.focusTracker.Restore(m.savedFocus)
		m.savedFocus = ""
	}
}

// resolveTarget looks up the current step's region. Spotlight steps whose
// target is missing from the document fall back to centered rendering
// with a one-shot diagnostic; modal steps never have a target.
func (m *Model) resolveTarget(step catalog.Step) *geometry.Rect {
	if step.Kind == catalog.KindModal || step.TargetRef == "" {
		return nil
	}
	rect, ok := m.registry.Resolve(step.TargetRef)
	if !ok {
		if m.warnedStep != step.ID {
			m.warnedStep = step.ID
			m.logger.Warn("tour target not found, rendering step centered",
				zap.String("step", step.ID),
				zap.String("target", step.TargetRef))
		}
		return nil
	}
	return &rect
}

// View composes the overlay over the host's rendered frame. While the
// tour is inactive the host frame passes through untouched.
func (m *Model) View(host string) string {
	step, ok := m.machine.Current()
	if !ok {
		return host
	}

	target := m.resolveTarget(step)
	path := geometry.Cutout(target, m.vp, geometry.CutoutOptions{
		Padding: cellPadding,
		Radius:  cellRadius,
	})

	helpLine := m.help.ShortHelpView(m.keys.ShortHelp())
	tooltip, size := renderTooltip(m.styles, m.renderer, step,
		m.machine.Index(), m.machine.Len(), m.focused, helpLine)

	// Anchor with the previous frame's measurement, then store the new
	// one for the next frame.
	at := geometry.AnchorWith(target, step.Placement, m.lastTipSize, m.vp,
		geometry.AnchorOptions{Gap: cellGap, Inset: cellInset})
	m.lastTipSize = size

	return compose(host, path, step.Emphasize, tooltip, at, m.vp, m.styles)
}
