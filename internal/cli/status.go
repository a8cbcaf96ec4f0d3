package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid/internal/config"
	"github.com/SeamusWaldron/cuboid/internal/storage"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show configuration and history information",
	Long:  `Display the active configuration, the history database location and a summary of stored solutions.`,
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "Cuboid Solver Status")
	fmt.Fprintln(out, "====================")
	fmt.Fprintln(out)

	path := configPath
	if path == "" {
		path, _ = config.DefaultPath()
	}
	fmt.Fprintf(out, "Config:        %s\n", path)
	fmt.Fprintf(out, "Strategy:      %s\n", settings.Strategy)
	fmt.Fprintf(out, "Strict layers: %t\n", settings.StrictLayers)
	if settings.MaxDepth > 0 {
		fmt.Fprintf(out, "Max depth:     %d\n", settings.MaxDepth)
	} else {
		fmt.Fprintln(out, "Max depth:     unlimited")
	}
	fmt.Fprintln(out)

	db, err := openDB()
	if err != nil {
		fmt.Fprintf(out, "Database error: %v\n", err)
		return nil
	}
	defer db.Close()
	fmt.Fprintf(out, "Database:      %s\n", db.Path())

	version, err := db.CurrentVersion()
	if err == nil {
		fmt.Fprintf(out, "Schema:        v%d\n", version)
	}

	repo := storage.NewSolutionRepository(db)
	count, err := repo.Count()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Solutions:     %d\n", count)

	last, err := repo.GetLast()
	if err != nil {
		return err
	}
	if last != nil {
		fmt.Fprintf(out, "Last solution: %s (%s)\n", last.SolutionID, last.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintf(out, "               %s\n", last.MovesText())
	}
	return nil
}
