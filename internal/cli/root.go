// Package cli implements the command-line interface for cuboid.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid/internal/config"
	"github.com/SeamusWaldron/cuboid/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	// Set by loadSettings before every command runs.
	settings config.Config
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cuboid",
	Short: "3x3x2 cuboid solver",
	Long: `cuboid - A solver for the 3x3x2 "domino" cuboid puzzle.

States are 42 facelet letters (r, b, o, g, w, y). The solver runs a
two-phase bidirectional breadth-first search: first every move fixes the
merged color pattern, then half turns finish the solve.

Solutions are kept in a local history database for later review, export
and step-by-step replay.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadSettings,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: $CUBOID_CONFIG or ~/.cuboid/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.cuboid/cuboid.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadSettings reads the config file and sets up logging.
func loadSettings(cmd *cobra.Command, args []string) error {
	var (
		f   *config.File
		err error
	)
	if configPath != "" {
		f, err = config.Open(configPath)
	} else {
		f, err = config.OpenDefault()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings = f.Config()

	level, err := config.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	logger.Debug("config loaded", "path", f.Path())
	return nil
}

// getDBPath returns the database path from flag, config or default.
func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	return settings.DBPath // Empty means default
}

// openDB opens the history database and applies migrations.
func openDB() (*storage.DB, error) {
	db, err := storage.OpenMigrated(getDBPath())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
