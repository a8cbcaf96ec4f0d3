package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid"
	"github.com/SeamusWaldron/cuboid/internal/storage"
)

var (
	solveStrategy string
	solveStrict   bool
	solveMaxDepth int
	solveTimeout  time.Duration
	solveNoSave   bool
	solveShow     bool
	solveNotes    string
	solveSimplify bool
)

var solveCmd = &cobra.Command{
	Use:   "solve [state]",
	Short: "Solve a cuboid state",
	Long: `Solve a 42 facelet cuboid state and print the moves, or "No solution".

The state is read from the argument, or from the first line of stdin when
no argument is given. Facelets are listed F, U, B, D, L, R; see
'cuboid catalog --net' for the index layout.

Examples:
  cuboid solve ooorrrgbggbgbgbroorrobggbgbbbgwwywwywywyyy
  echo ooorrrgbggbgbgbroorrobggbgbbbgwwywwywywyyy | cuboid solve
  cuboid solve --strategy direct --strict <state>`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
	solveCmd.Flags().StringVar(&solveStrategy, "strategy", "", "Solving strategy: two-phase or direct (default from config)")
	solveCmd.Flags().BoolVar(&solveStrict, "strict", false, "Expand whole search layers to get shortest paths")
	solveCmd.Flags().IntVar(&solveMaxDepth, "max-depth", 0, "Maximum depth per search side (0 = unlimited)")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 0, "Give up after this long (0 = no limit)")
	solveCmd.Flags().BoolVar(&solveNoSave, "no-save", false, "Do not record the solution in the history database")
	solveCmd.Flags().BoolVar(&solveShow, "show", false, "Draw the start and goal states")
	solveCmd.Flags().StringVar(&solveNotes, "notes", "", "Notes stored with the solution")
	solveCmd.Flags().BoolVar(&solveSimplify, "simplify", false, "Merge adjacent turns of the same face in the printed moves")
}

// readState returns the state argument, or the first non-empty stdin line.
func readState(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read state: %w", err)
	}
	return "", errors.New("no state given: pass it as an argument or on stdin")
}

// newSolver builds a solver from config settings overridden by flags.
func newSolver(cmd *cobra.Command) (*cuboid.Solver, error) {
	cfg := settings
	flags := cmd.Flags()
	if flags.Changed("strategy") {
		cfg.Strategy = solveStrategy
	}
	if flags.Changed("strict") {
		cfg.StrictLayers = solveStrict
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = solveMaxDepth
	}

	opts, err := cfg.SolverOptions()
	if err != nil {
		return nil, err
	}
	opts = append(opts, cuboid.WithSolverLogger(logger))
	return cuboid.NewSolver(cuboid.Domino(), opts...)
}

func runSolve(cmd *cobra.Command, args []string) error {
	input, err := readState(cmd, args)
	if err != nil {
		return err
	}

	solver, err := newSolver(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if solveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, solveTimeout)
		defer cancel()
	}

	sol, err := solver.SolveString(ctx, input)
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("no result within %s", solveTimeout)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	line := sol.String()
	if solveSimplify && sol.Found {
		// The history keeps the per-phase moves; only the printed line is merged.
		line = cuboid.FormatLabels(cuboid.Simplify(solver.Catalog(), sol.Moves))
	}
	fmt.Fprintln(out, line)

	for _, ph := range sol.Phases {
		logger.Info("phase",
			"phase", ph.Phase.String(),
			"found", ph.Found,
			"moves", len(ph.Moves),
			"expanded", ph.Stats.Expanded(),
			"visited", ph.Stats.Visited(),
			"elapsed", ph.Elapsed,
		)
	}
	if !sol.Found && !sol.Exhausted {
		if sol.Strategy == cuboid.StrategyTwoPhase {
			logger.Warn("two-phase search gave up; the state may still be solvable with --strategy direct")
		} else {
			logger.Warn("search stopped at the depth limit; the state may still be solvable")
		}
	}

	if solveShow {
		fmt.Fprintln(out)
		fmt.Fprint(out, renderNets(solver.Puzzle(),
			[]string{"Start", "Goal"},
			[]cuboid.State{sol.Start, sol.Goal},
		))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s  %d moves, %d states visited\n",
			statusStyle.Render(formatDuration(sol.Elapsed)), len(sol.Moves), sol.Stats.Visited())
	}

	if solveNoSave {
		return nil
	}
	return saveSolution(solver, sol, solveNotes)
}

// saveSolution records sol in the history database.
func saveSolution(solver *cuboid.Solver, sol *cuboid.Solution, notes string) error {
	rec, err := storage.NewRecord(solver.Puzzle(), solver.Catalog(), sol, notes)
	if err != nil {
		return err
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	repo := storage.NewSolutionRepository(db)
	earlier, err := repo.FindByFingerprint(rec.Solution.Fingerprint)
	if err != nil {
		return err
	}
	id, err := repo.Create(rec)
	if err != nil {
		return err
	}
	logger.Info("solution saved", "id", id, "db", db.Path(), "earlier_runs", len(earlier))
	return nil
}
