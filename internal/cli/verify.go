package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid"
)

var verifyShow bool

var verifyCmd = &cobra.Command{
	Use:   "verify <state> <moves...>",
	Short: "Apply moves to a state and report the result",
	Long: `Apply a move sequence to a state and report the state reached and its
stage: scrambled, projected (the merged color pattern is solved) or solved.

Moves may be given as separate arguments or as one quoted string.

Examples:
  cuboid verify <state> "U' L2 U L2"
  cuboid verify <state> U2 R2 D2`,
	Args: cobra.MinimumNArgs(1),
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().BoolVar(&verifyShow, "show", false, "Draw the state reached")
}

func runVerify(cmd *cobra.Command, args []string) error {
	p := cuboid.Domino()
	start, err := p.ParseState(args[0])
	if err != nil {
		return err
	}
	cat, err := p.Catalog()
	if err != nil {
		return err
	}

	labels := cuboid.ParseLabels(strings.Join(args[1:], " "))
	tracker := cuboid.NewTracker(p, cat, start)
	tracker.SetStageCallback(func(stage cuboid.Stage) {
		logger.Debug("stage reached", "stage", stage.String(), "move", len(tracker.History()))
	})
	if err := tracker.ApplyAll(labels); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "State: %s\n", tracker.State())
	fmt.Fprintf(out, "Moves: %d\n", len(labels))
	fmt.Fprintf(out, "Stage: %s\n", tracker.Stage().DisplayName())
	if !tracker.IsSolved() {
		fmt.Fprintf(out, "Wrong facelets: %d\n", len(p.Mismatches(tracker.State())))
	}
	if verifyShow {
		fmt.Fprintln(out)
		fmt.Fprint(out, renderNet(p, tracker.State()))
	}
	return nil
}
