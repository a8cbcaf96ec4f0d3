package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cuboid"
	"github.com/SeamusWaldron/cuboid/internal/storage"
)

var (
	replayLast  bool
	replayState string
	replaySpeed float64
	replayAuto  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [solution-id]",
	Short: "Step through a solution",
	Long: `Step through a solution move by move, drawing the cuboid after each move.

The solution comes from the history database (an ID or --last), or is
computed on the spot with --state.

Usage:
  cuboid replay --last                  # Replay the most recent solution
  cuboid replay <solution-id>           # Replay a stored solution
  cuboid replay --state <state>         # Solve and replay without saving
  cuboid replay --last --auto --speed 2 # Play automatically at 2 moves/s`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().BoolVar(&replayLast, "last", false, "Replay the most recent solution")
	replayCmd.Flags().StringVar(&replayState, "state", "", "Solve this state and replay the result")
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Moves per second in auto mode")
	replayCmd.Flags().BoolVarP(&replayAuto, "auto", "a", false, "Start playing automatically")
}

// replaySource is what the replay model steps through.
type replaySource struct {
	title  string
	start  cuboid.State
	moves  []string
	phases []string // Phase of each move
}

func runReplay(cmd *cobra.Command, args []string) error {
	src, err := loadReplaySource(cmd, args)
	if err != nil {
		return err
	}
	if len(src.moves) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to replay: the solution has no moves")
		return nil
	}

	p := cuboid.Domino()
	cat, err := p.Catalog()
	if err != nil {
		return err
	}

	model := newReplayModel(p, cat, src, replaySpeed, replayAuto)
	prog := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("replay error: %w", err)
	}
	return nil
}

func loadReplaySource(cmd *cobra.Command, args []string) (*replaySource, error) {
	if replayState != "" {
		solver, err := newSolver(cmd)
		if err != nil {
			return nil, err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		sol, err := solver.SolveString(ctx, replayState)
		if err != nil {
			return nil, err
		}
		if !sol.Found {
			return nil, errors.New(cuboid.NoSolution)
		}
		return sourceFromSolution(sol), nil
	}

	db, err := openDB()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	s, err := lookupSolution(storage.NewSolutionRepository(db), args, replayLast)
	if err != nil {
		return nil, err
	}
	if !s.Found {
		return nil, fmt.Errorf("solution %s has no moves: %s", s.SolutionID, s.MovesText())
	}
	records, err := storage.NewMoveRepository(db).GetBySolution(s.SolutionID)
	if err != nil {
		return nil, err
	}
	start, err := cuboid.ParseState(s.StartState)
	if err != nil {
		return nil, err
	}

	src := &replaySource{title: "Solution " + s.SolutionID, start: start}
	for _, r := range records {
		src.moves = append(src.moves, r.Notation)
		src.phases = append(src.phases, r.Phase)
	}
	return src, nil
}

func sourceFromSolution(sol *cuboid.Solution) *replaySource {
	src := &replaySource{title: "Solution for " + sol.Start.String(), start: sol.Start}
	for _, ph := range sol.Phases {
		for _, m := range ph.Moves {
			src.moves = append(src.moves, m)
			src.phases = append(src.phases, ph.Phase.String())
		}
	}
	return src
}

// Replay model
type replayModel struct {
	puzzle   cuboid.Puzzle
	tracker  *cuboid.Tracker
	src      *replaySource
	speed    float64
	playing  bool
	stageMsg string
	stageAt  int // Move count when stageMsg was set
	quitting bool
}

type replayTickMsg time.Time

func newReplayModel(p cuboid.Puzzle, cat *cuboid.Catalog, src *replaySource, speed float64, auto bool) *replayModel {
	if speed <= 0 {
		speed = 1
	}
	m := &replayModel{
		puzzle:  p,
		tracker: cuboid.NewTracker(p, cat, src.start),
		src:     src,
		speed:   speed,
		playing: auto,
	}
	m.tracker.SetStageCallback(func(stage cuboid.Stage) {
		m.stageAt = len(m.tracker.History())
		m.stageMsg = fmt.Sprintf("Reached %s after %d moves", stage.DisplayName(), m.stageAt)
	})
	return m
}

func (m *replayModel) Init() tea.Cmd {
	if m.playing {
		return m.tick()
	}
	return nil
}

func (m *replayModel) tick() tea.Cmd {
	delay := time.Duration(float64(time.Second) / m.speed)
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return replayTickMsg(t)
	})
}

func (m *replayModel) position() int {
	return len(m.tracker.History())
}

func (m *replayModel) done() bool {
	return m.position() >= len(m.src.moves)
}

// step applies the next move. Moves come from a solved path, so an error
// means the stored data is corrupt.
func (m *replayModel) step() {
	if m.done() {
		return
	}
	if err := m.tracker.Apply(m.src.moves[m.position()]); err != nil {
		m.stageAt = m.position()
		m.stageMsg = errorStyle.Render(err.Error())
	}
}

// stageMessage returns the last stage message while the replay is at or
// past the move that produced it. The tracker reports each stage once, so
// stepping back hides the message instead of dropping it.
func (m *replayModel) stageMessage() string {
	if m.position() < m.stageAt {
		return ""
	}
	return m.stageMsg
}

func (m *replayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n", "right", "l":
			m.playing = false
			m.step()

		case "b", "left", "h":
			m.playing = false
			m.tracker.Undo()

		case "p":
			m.playing = !m.playing
			if m.playing {
				return m, m.tick()
			}

		case "r":
			m.tracker.Reset()
			m.stageMsg = ""
			m.stageAt = 0
			m.playing = false

		case "e":
			for !m.done() {
				m.step()
			}
			m.playing = false

		case "+", "=":
			m.speed *= 2
			if m.speed > 16 {
				m.speed = 16
			}

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
		}

	case replayTickMsg:
		if !m.playing {
			return m, nil
		}
		m.step()
		if m.done() {
			m.playing = false
			return m, nil
		}
		return m, m.tick()
	}

	return m, nil
}

func (m *replayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Cuboid Replay"))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.src.title))
	b.WriteString("\n\n")

	pos := m.position()
	progress := fmt.Sprintf("Move %d/%d", pos, len(m.src.moves))
	if m.playing {
		progress += fmt.Sprintf(" [PLAYING %.2gx]", m.speed)
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString("\n")

	if pos > 0 {
		b.WriteString(fmt.Sprintf("Phase: %s\n", phaseStyle.Render(m.phaseName(pos-1))))
	}
	if m.tracker.IsSolved() {
		b.WriteString(fmt.Sprintf("State: %s\n", phaseStyle.Render("SOLVED!")))
	} else {
		b.WriteString(fmt.Sprintf("Stage: %s\n", phaseStyle.Render(m.tracker.Stage().DisplayName())))
	}
	if msg := m.stageMessage(); msg != "" {
		b.WriteString(statusStyle.Render(msg))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("Moves: ")
	b.WriteString(m.renderMoves(pos))
	b.WriteString("\n\n")

	b.WriteString(renderNet(m.puzzle, m.tracker.State()))
	b.WriteString("\n")

	b.WriteString(helpStyle.Render("SPACE/n=next  b=back  p=play/pause  e=end  r=reset  +/-=speed  q=quit"))
	b.WriteString("\n")

	return b.String()
}

// renderMoves highlights the most recently applied move.
func (m *replayModel) renderMoves(pos int) string {
	parts := make([]string, len(m.src.moves))
	for i, mv := range m.src.moves {
		switch {
		case i == pos-1:
			parts[i] = currentMoveStyle.Render(mv)
		case i < pos:
			parts[i] = moveStyle.Render(mv)
		default:
			parts[i] = statusStyle.Render(mv)
		}
	}
	return strings.Join(parts, " ")
}

func (m *replayModel) phaseName(i int) string {
	if i < 0 || i >= len(m.src.phases) {
		return ""
	}
	if ph, ok := cuboid.ParsePhase(m.src.phases[i]); ok {
		return ph.DisplayName()
	}
	return m.src.phases[i]
}
