package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid/internal/export"
	"github.com/SeamusWaldron/cuboid/internal/storage"
)

var (
	exportSolutionID string
	exportFormat     string
	exportOutput     string
	exportLast       bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a stored solution",
	Long: `Export a stored solution as plain moves, JSON or CBOR.

CBOR output is binary and must go to a file.

Examples:
  cuboid export --last
  cuboid export --id <solution_id> --format json
  cuboid export --id <solution_id> --format cbor -o solution.cbor`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportSolutionID, "id", "", "Solution ID to export")
	exportCmd.Flags().BoolVar(&exportLast, "last", false, "Export the last solution")
	exportCmd.Flags().StringVar(&exportFormat, "format", "txt", "Export format (txt, json, cbor)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportSolutionID == "" && !exportLast {
		return errors.New("specify --id or --last")
	}
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	if format.Binary() && exportOutput == "" {
		return fmt.Errorf("%s output is binary; use -o FILE", format)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	var ids []string
	if exportSolutionID != "" {
		ids = []string{exportSolutionID}
	}
	s, err := lookupSolution(storage.NewSolutionRepository(db), ids, exportLast)
	if err != nil {
		return err
	}
	moves, err := storage.NewMoveRepository(db).GetBySolution(s.SolutionID)
	if err != nil {
		return err
	}
	phases, err := storage.NewPhaseRepository(db).GetBySolution(s.SolutionID)
	if err != nil {
		return err
	}

	data, err := export.NewDocument(s, moves, phases).Encode(format)
	if err != nil {
		return err
	}

	if exportOutput == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	dir := filepath.Dir(exportOutput)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(exportOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Exported solution %s (%d moves) to %s\n", s.SolutionID, len(moves), exportOutput)
	return nil
}
