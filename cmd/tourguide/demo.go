package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"tourguide/internal/catalog"
	"tourguide/internal/config"
	"tourguide/internal/gate"
	"tourguide/internal/geometry"
	"tourguide/internal/overlay"
	"tourguide/internal/tour"
)

// loadCatalog reads the configured definition, falling back to the
// built-in demo tour when no file exists.
func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.Tour.Definition)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return demoCatalog()
		}
		return nil, err
	}
	return cat, nil
}

// demoCatalog is the tour shipped with the demo dashboard.
func demoCatalog() (*catalog.Catalog, error) {
	return catalog.New("demo-dashboard", "1.0.0", []catalog.Step{
		{
			ID:          "welcome",
			Kind:        catalog.KindModal,
			Title:       "Welcome to the dashboard",
			Description: "This short tour points out the main areas. Use **→** and **←** to move around, or **Esc** to skip.",
		},
		{
			ID:          "sidebar",
			Kind:        catalog.KindSpotlight,
			TargetRef:   "nav-sidebar",
			Title:       "Navigation",
			Description: "Switch between panels here. The list follows your keyboard focus.",
			Placement:   geometry.PlaceRight,
			Emphasize:   true,
		},
		{
			ID:          "content",
			Kind:        catalog.KindSpotlight,
			TargetRef:   "main-content",
			Title:       "Workspace",
			Description: "Your selected panel renders here.",
			Placement:   geometry.PlaceLeft,
		},
		{
			ID:          "statusbar",
			Kind:        catalog.KindSpotlight,
			TargetRef:   "status-bar",
			Title:       "Status bar",
			Description: "Connection state and announcements live on this line. Press **t** any time to replay this tour.",
			Placement:   geometry.PlaceTop,
		},
	})
}

// panelFocus is the demo's own focus model; the tour saves and restores
// it across a run.
type panelFocus struct {
	panels  []string
	current int
}

func (f *panelFocus) Current() string { return f.panels[f.current] }

func (f *panelFocus) Restore(id string) {
	for i, p := range f.panels {
		if p == id {
			f.current = i
			return
		}
	}
	// The panel no longer exists; keep the current focus.
}

func (f *panelFocus) next() { f.current = (f.current + 1) % len(f.panels) }

// demoModel is a small dashboard hosting the tour overlay.
type demoModel struct {
	overlay *overlay.Model
	focus   *panelFocus
	width   int
	height  int
}

func newDemoModel(ov *overlay.Model, focus *panelFocus) demoModel {
	return demoModel{overlay: ov, focus: focus, width: 80, height: 24}
}

func (m demoModel) Init() tea.Cmd {
	return m.overlay.Init()
}

func (m demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = size.Width, size.Height
	}

	// The overlay sees every message first; while a tour is active it
	// owns the keyboard.
	cmd, consumed := m.overlay.Update(msg)
	if consumed {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.focus.next()
		case "t":
			m.overlay.Start()
		}
	}
	return m, cmd
}

// View lays out the dashboard, tags each region's rectangle for the
// tour, and lets the overlay compose on top.
func (m demoModel) View() string {
	sidebarW := 22
	statusH := 1
	bodyH := m.height - statusH
	if bodyH < 3 || m.width <= sidebarW {
		return "terminal too small"
	}

	reg := m.overlay.Registry()
	reg.Tag("nav-sidebar", geometry.Rect{
		Left: 0, Top: 0, Right: float64(sidebarW), Bottom: float64(bodyH),
	})
	reg.Tag("main-content", geometry.Rect{
		Left: float64(sidebarW), Top: 0, Right: float64(m.width), Bottom: float64(bodyH),
	})
	reg.Tag("status-bar", geometry.Rect{
		Left: 0, Top: float64(bodyH), Right: float64(m.width), Bottom: float64(m.height),
	})

	styles := overlay.DefaultStyles()
	border := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(styles.Theme.Border)

	items := []string{"Overview", "Reports", "Settings"}
	for i, item := range items {
		marker := "  "
		if m.focus.Current() == "nav-sidebar" && i == 0 {
			marker = "> "
		}
		items[i] = marker + item
	}
	sidebar := border.Width(sidebarW - 2).Height(bodyH - 2).
		Render(strings.Join(items, "\n"))

	content := border.Width(m.width - sidebarW - 2).Height(bodyH - 2).
		Render("Select a panel on the left.\n\nPress t to replay the tour, q to quit.")

	status := m.overlay.Announcement()
	if status == "" {
		status = "ready"
	}
	statusLine := styles.Announce.Render(status)

	host := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content),
		statusLine,
	)
	return m.overlay.View(host)
}

// runDemo wires config, storage, catalog, overlay, and the optional
// definition watcher, then runs the program.
func runDemo() error {
	cfg, err := config.Load(workspace)
	if err != nil {
		return err
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	g := gate.New(store, cat.ID(), logger)
	focus := &panelFocus{panels: []string{"nav-sidebar", "main-content", "status-bar"}}

	ov := overlay.New(overlay.Options{
		Catalog:   cat,
		Gate:      g,
		AutoStart: cfg.Tour.AutoStart,
		Focus:     focus,
		Logger:    logger,
		Hooks: tour.Hooks{
			OnStart: func(e tour.Event) {
				logger.Info("tour run started", zap.String("run", e.RunID))
			},
			OnComplete: func(e tour.Event) {
				logger.Info("tour run completed", zap.String("run", e.RunID))
			},
			OnSkip: func(e tour.Event) {
				logger.Info("tour run skipped",
					zap.String("run", e.RunID),
					zap.Int("at_step", e.StepIndex))
			},
		},
	})

	program := tea.NewProgram(newDemoModel(ov, focus), tea.WithAltScreen())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	group, ctx := errgroup.WithContext(ctx)

	if cfg.Tour.Watch {
		watcher, err := catalog.NewWatcher(cfg.Tour.Definition, func(c *catalog.Catalog) {
			program.Send(overlay.CatalogReloadedMsg{Catalog: c})
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to create definition watcher: %w", err)
		}
		if err := watcher.Start(ctx); err != nil {
			return fmt.Errorf("failed to start definition watcher: %w", err)
		}
		defer watcher.Stop()
	}

	group.Go(func() error {
		defer cancel()
		_, err := program.Run()
		return err
	})

	return group.Wait()
}
