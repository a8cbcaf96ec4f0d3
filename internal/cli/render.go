package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SeamusWaldron/cuboid"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	phaseStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))

	currentMoveStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(lipgloss.Color("82"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// faceletColors maps puzzle colors to terminal colors.
var faceletColors = map[cuboid.Color]lipgloss.Color{
	cuboid.Red:    lipgloss.Color("196"),
	cuboid.Orange: lipgloss.Color("208"),
	cuboid.Blue:   lipgloss.Color("33"),
	cuboid.Green:  lipgloss.Color("40"),
	cuboid.White:  lipgloss.Color("255"),
	cuboid.Yellow: lipgloss.Color("226"),
}

// renderNet draws the unfolded puzzle with one colored cell per facelet.
func renderNet(p cuboid.Puzzle, s cuboid.State) string {
	var b strings.Builder
	for _, row := range p.NetRows(s) {
		for _, c := range row {
			b.WriteString(renderFacelet(c))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func renderFacelet(c cuboid.Color) string {
	if c == 0 {
		return "   "
	}
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("16"))
	if bg, ok := faceletColors[c]; ok {
		style = style.Background(bg)
	}
	return style.Render(" " + c.String() + " ")
}

// renderNets places several labeled nets side by side.
func renderNets(p cuboid.Puzzle, labels []string, states []cuboid.State) string {
	blocks := make([]string, len(states))
	for i, s := range states {
		blocks[i] = lipgloss.JoinVertical(lipgloss.Left,
			phaseStyle.Render(labels[i]),
			renderNet(p, s),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, intersperse(blocks, "    ")...)
}

func intersperse(blocks []string, sep string) []string {
	out := make([]string, 0, 2*len(blocks))
	for i, b := range blocks {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, b)
	}
	return out
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%dm%.1fs", mins, secs)
}
