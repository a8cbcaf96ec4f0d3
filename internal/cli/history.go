package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid"
	"github.com/SeamusWaldron/cuboid/internal/storage"
)

var (
	listLimit int
	showLast  bool
	showNet   bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse recorded solutions",
	Long:  `Commands for listing and inspecting solutions stored in the history database.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent solutions",
	Long:  `Display a list of recent solver runs, newest first.`,
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [solution-id]",
	Short: "Show details of a solution",
	Long: `Display detailed information about a stored solution:
- Start state, strategy and search statistics
- Phase breakdown
- Move sequence with the state after every move

Use --last to show the most recent solution.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistoryShow,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.AddCommand(historyListCmd)
	historyListCmd.Flags().IntVar(&listLimit, "limit", 20, "Maximum number of solutions to display")

	historyCmd.AddCommand(historyShowCmd)
	historyShowCmd.Flags().BoolVar(&showLast, "last", false, "Show the most recent solution")
	historyShowCmd.Flags().BoolVar(&showNet, "net", false, "Draw the start state")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	solutions, err := storage.NewSolutionRepository(db).List(listLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(solutions) == 0 {
		fmt.Fprintln(out, "No solutions recorded yet")
		fmt.Fprintln(out, "Solve a state with: cuboid solve <state>")
		return nil
	}

	fmt.Fprintf(out, "Recent solutions (showing %d):\n", len(solutions))
	fmt.Fprintln(out)
	fmt.Fprintf(out, "%-36s  %-19s  %-9s  %-6s  %-8s  %s\n", "ID", "Created", "Strategy", "Moves", "Time", "Notes")
	fmt.Fprintln(out, "------------------------------------  -------------------  ---------  ------  --------  -----")

	for _, s := range solutions {
		moves := fmt.Sprintf("%d", len(s.Moves))
		if !s.Found {
			moves = "-"
		}
		notes := ""
		if s.Notes != nil {
			notes = *s.Notes
			if len(notes) > 30 {
				notes = notes[:27] + "..."
			}
		}
		fmt.Fprintf(out, "%-36s  %-19s  %-9s  %-6s  %-8s  %s\n",
			s.SolutionID,
			s.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			s.Strategy,
			moves,
			formatDuration(time.Duration(s.ElapsedMs)*time.Millisecond),
			notes,
		)
	}

	return nil
}

// lookupSolution resolves an ID argument or --last.
func lookupSolution(repo *storage.SolutionRepository, args []string, last bool) (*storage.Solution, error) {
	var (
		s   *storage.Solution
		err error
	)
	switch {
	case last:
		s, err = repo.GetLast()
		if err == nil && s == nil {
			return nil, errors.New("no solutions found")
		}
	case len(args) > 0:
		s, err = repo.Get(args[0])
		if err == nil && s == nil {
			return nil, fmt.Errorf("solution not found: %s", args[0])
		}
	default:
		return nil, errors.New("specify a solution ID or --last")
	}
	return s, err
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := lookupSolution(storage.NewSolutionRepository(db), args, showLast)
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

	out := cmd.OutOrStdout()
	printSolution(out, s, phases, moves)

	if showNet {
		start, err := cuboid.ParseState(s.StartState)
		if err != nil {
			return err
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, renderNet(cuboid.Domino(), start))
	}
	return nil
}

func printSolution(out io.Writer, s *storage.Solution, phases []storage.PhaseResult, moves []storage.MoveRecord) {
	fmt.Fprintln(out, "Solution Details")
	fmt.Fprintln(out, "================")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "ID:       %s\n", s.SolutionID)
	fmt.Fprintf(out, "Created:  %s\n", s.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Puzzle:   %s\n", s.Puzzle)
	fmt.Fprintf(out, "Strategy: %s\n", s.Strategy)
	fmt.Fprintf(out, "Start:    %s\n", s.StartState)
	if s.Notes != nil {
		fmt.Fprintf(out, "Notes:    %s\n", *s.Notes)
	}
	fmt.Fprintln(out)

	fmt.Fprintln(out, "Result")
	fmt.Fprintln(out, "------")
	fmt.Fprintf(out, "Moves:    %s\n", s.MovesText())
	if s.Found {
		fmt.Fprintf(out, "Length:   %d\n", len(s.Moves))
	} else if !s.Exhausted {
		fmt.Fprintln(out, "          (stopped by a depth limit)")
	}
	fmt.Fprintf(out, "Time:     %s\n", formatDuration(time.Duration(s.ElapsedMs)*time.Millisecond))
	fmt.Fprintf(out, "Expanded: %d\n", s.Expanded)
	fmt.Fprintf(out, "Visited:  %d\n", s.Visited)
	fmt.Fprintln(out)

	if len(phases) > 0 {
		fmt.Fprintln(out, "Phases")
		fmt.Fprintln(out, "------")
		for _, p := range phases {
			name := p.Phase
			if ph, ok := cuboid.ParsePhase(p.Phase); ok {
				name = ph.DisplayName()
			}
			status := "found"
			if !p.Found {
				status = "not found"
			}
			fmt.Fprintf(out, "%-18s %-9s %3d moves  %8d visited  %s\n",
				name, status, p.MoveCount, p.ForwardVisited+p.BackwardVisited,
				formatDuration(time.Duration(p.ElapsedMs)*time.Millisecond))
		}
		fmt.Fprintln(out)
	}

	if len(moves) > 0 {
		fmt.Fprintln(out, "Moves")
		fmt.Fprintln(out, "-----")
		for _, m := range moves {
			fmt.Fprintf(out, "%3d  %-3s  %-9s  %s\n", m.MoveIndex+1, m.Notation, m.Phase, m.StateAfter)
		}
	}
}
