package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid"
)

var catalogNet bool

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the available moves",
	Long: `List the cuboid move catalog in search order, with the facelet cycles of
every face turn.

U and D turn in quarters (X, X2, X'); L, R, F and B only turn 180 degrees.`,
	Args: cobra.NoArgs,
	RunE: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().BoolVar(&catalogNet, "net", false, "Show the facelet index layout")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	p := cuboid.Domino()
	cat, err := p.Catalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Moves (%d): %s\n", cat.Len(), cuboid.FormatLabels(cat.Labels()))
	fmt.Fprintf(out, "Half turns: %s\n", cuboid.FormatLabels(cat.HalfTurns().Labels()))
	fmt.Fprintln(out)

	for _, face := range p.Faces {
		kind := "half turn"
		if face.Quarter {
			kind = "quarter turn"
		}
		fmt.Fprintf(out, "%s (%s)\n", face.Name, kind)
		for _, c := range face.Cycles {
			fmt.Fprintf(out, "  %v\n", c)
		}
	}

	if catalogNet {
		fmt.Fprintln(out)
		for _, row := range p.Layout {
			for _, idx := range row {
				if idx < 0 {
					fmt.Fprint(out, "   ")
				} else {
					fmt.Fprintf(out, "%02d ", idx)
				}
			}
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out)
		fmt.Fprint(out, renderNet(p, p.Goal))
	}
	return nil
}
