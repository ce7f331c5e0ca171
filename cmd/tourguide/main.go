package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tourguide/internal/config"
	"tourguide/internal/gate"
	"tourguide/internal/logging"
)

var (
	// Global flags
	verbose   bool
	workspace string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "tourguide",
	Short: "tourguide - guided onboarding tours for terminal apps",
	Long: `tourguide renders a guided, step-by-step onboarding tour over an
interactive terminal interface: it spotlights UI regions in sequence, shows
explanatory tooltips, and remembers completion so the tour is not repeated
unnecessarily. Bumping the tour definition's version re-surfaces it.

Run without arguments to launch the demo dashboard with its tour.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if workspace == "" {
			cwd, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("failed to determine workspace: %w", err)
			}
			workspace = cwd
		}
		var err error
		logger, err = logging.New(workspace, verbose)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo()
	},
}

// resetCmd clears the persisted tour record.
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear the persisted tour completion record",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(workspace)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if err := gate.New(store, cat.ID(), logger).Reset(); err != nil {
			return fmt.Errorf("failed to reset tour record: %w", err)
		}
		fmt.Printf("Cleared tour record for %q\n", cat.ID())
		return nil
	},
}

// statusCmd prints the persisted record and the auto-start decision.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the persisted tour record",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(workspace)
		if err != nil {
			return err
		}
		store, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		cat, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		g := gate.New(store, cat.ID(), logger)

		fmt.Printf("Tour:           %s (definition version %s)\n", cat.ID(), cat.Version())
		fmt.Printf("Completed:      %v\n", g.Completed())
		if v, ok := g.StoredVersion(); ok {
			fmt.Printf("Stored version: %s\n", v)
		} else {
			fmt.Printf("Stored version: (none)\n")
		}
		fmt.Printf("Auto-start:     %v\n", g.ShouldAutoStart(cat.Version()))
		return nil
	},
}

// openStore builds the configured persistence backend.
func openStore(cfg *config.Config) (gate.Store, error) {
	switch cfg.Storage.Backend {
	case "sqlite":
		path := cfg.Storage.Path
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "state.db")
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		return gate.OpenSQLite(path)
	default:
		return gate.NewFileStore(cfg.Storage.Path), nil
	}
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&workspace, "workspace", "w", "", "workspace directory (default: current directory)")

	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
