package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SeamusWaldron/cuboid"
	"github.com/SeamusWaldron/cuboid/internal/export"
)

const referenceStart = "ooorrrgbggbgbgbroorrobggbgbbbgwwywwywywyyy"

// resetFlags restores every flag to its default so runs do not leak into
// each other through the package-level flag variables.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

type testEnv struct {
	config string
	db     string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	return testEnv{
		config: filepath.Join(dir, "config.yaml"),
		db:     filepath.Join(dir, "history.db"),
	}
}

func (e testEnv) run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(append([]string{"--config", e.config, "--db", e.db}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func scramble(t *testing.T, labels ...string) string {
	t.Helper()
	p := cuboid.Domino()
	cat, err := p.Catalog()
	require.NoError(t, err)
	s, err := cat.Replay(p.Goal, labels)
	require.NoError(t, err)
	return s.String()
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return line
}

func TestSolveCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "solve", "--no-save", scramble(t, "U"))
	require.NoError(t, err)
	assert.Equal(t, "U'", firstLine(out))
}

func TestSolveFromStdin(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "\n"+scramble(t, "F2")+"\n", "solve", "--no-save")
	require.NoError(t, err)
	assert.Equal(t, "F2", firstLine(out))
}

func TestSolveGoalPrintsEmptyLine(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "solve", "--no-save", cuboid.DominoGoal)
	require.NoError(t, err)
	assert.Equal(t, "\n", out)
}

func TestSolveNoSolutionIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "solve", "--no-save", "--max-depth", "1", referenceStart)
	require.NoError(t, err)
	assert.Equal(t, cuboid.NoSolution, firstLine(out))
}

func TestSolveSimplify(t *testing.T) {
	env := newTestEnv(t)
	start := scramble(t, "U2", "B2")
	out, err := env.run(t, "", "solve", "--no-save", start)
	require.NoError(t, err)
	raw := cuboid.ParseLabels(firstLine(out))

	out, err = env.run(t, "", "solve", "--no-save", "--simplify", start)
	require.NoError(t, err)
	merged := cuboid.ParseLabels(firstLine(out))
	assert.LessOrEqual(t, len(merged), len(raw))

	p := cuboid.Domino()
	cat, err := p.Catalog()
	require.NoError(t, err)
	end, err := cat.Replay(cuboid.State(start), merged)
	require.NoError(t, err)
	assert.True(t, p.IsSolved(end))
}

func TestSolveInvalidState(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "solve", "--no-save", "rrr")
	assert.ErrorIs(t, err, cuboid.ErrInvalidLength)

	_, err = env.run(t, "", "solve", "--no-save", "--strategy", "greedy", referenceStart)
	assert.ErrorIs(t, err, cuboid.ErrOptionViolation)

	_, err = env.run(t, "", "solve", "--no-save")
	assert.Error(t, err)
}

func TestSolveUsesConfig(t *testing.T) {
	env := newTestEnv(t)
	require.NoError(t, os.WriteFile(env.config, []byte("max_depth: 1\n"), 0644))

	out, err := env.run(t, "", "solve", "--no-save", referenceStart)
	require.NoError(t, err)
	assert.Equal(t, cuboid.NoSolution, firstLine(out))

	// Flags override the file
	out, err = env.run(t, "", "solve", "--no-save", "--max-depth", "0", scramble(t, "U"))
	require.NoError(t, err)
	assert.Equal(t, "U'", firstLine(out))
}

func TestSolveHistoryExport(t *testing.T) {
	env := newTestEnv(t)
	start := scramble(t, "U", "L2", "D'")

	out, err := env.run(t, "", "solve", "--notes", "evening session", start)
	require.NoError(t, err)
	moves := firstLine(out)
	require.NotEqual(t, cuboid.NoSolution, moves)

	out, err = env.run(t, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Recent solutions (showing 1)")
	assert.Contains(t, out, "evening session")

	out, err = env.run(t, "", "history", "show", "--last")
	require.NoError(t, err)
	assert.Contains(t, out, "Solution Details")
	assert.Contains(t, out, start)
	assert.Contains(t, out, moves)

	out, err = env.run(t, "", "export", "--last")
	require.NoError(t, err)
	assert.Equal(t, moves+"\n", out)

	out, err = env.run(t, "", "export", "--last", "--format", "json")
	require.NoError(t, err)
	var doc export.Document
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, start, doc.Start)
	assert.Equal(t, "evening session", doc.Notes)
	require.NotEmpty(t, doc.Moves)
	assert.Equal(t, cuboid.DominoGoal, doc.Moves[len(doc.Moves)-1].StateAfter)

	cborPath := filepath.Join(t.TempDir(), "out", "solution.cbor")
	_, err = env.run(t, "", "export", "--id", doc.ID, "--format", "cbor", "-o", cborPath)
	require.NoError(t, err)
	data, err := os.ReadFile(cborPath)
	require.NoError(t, err)
	decoded, err := export.DecodeCBOR(data)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, decoded.ID)
	assert.Equal(t, doc.Text(), decoded.Text())
}

func TestExportErrors(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run(t, "", "export")
	assert.Error(t, err)

	_, err = env.run(t, "", "export", "--last", "--format", "cbor")
	assert.Error(t, err, "cbor needs an output file")

	_, err = env.run(t, "", "export", "--last")
	assert.Error(t, err, "empty history")

	_, err = env.run(t, "", "history", "show", "missing-id")
	assert.Error(t, err)
}

func TestHistoryListEmpty(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No solutions recorded yet")
}

func TestVerifyCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run(t, "", "verify", scramble(t, "U", "L2"), "L2 U'")
	require.NoError(t, err)
	assert.Contains(t, out, "Stage: Solved")
	assert.Contains(t, out, "State: "+cuboid.DominoGoal)

	out, err = env.run(t, "", "verify", scramble(t, "U"), "U2")
	require.NoError(t, err)
	assert.NotContains(t, out, "Stage: Solved")
	assert.Contains(t, out, "Wrong facelets:")

	_, err = env.run(t, "", "verify", cuboid.DominoGoal, "R")
	assert.ErrorIs(t, err, cuboid.ErrUnknownMove)
}

func TestCatalogCommand(t *testing.T) {
	env := newTestEnv(t)
	out, err := env.run(t, "", "catalog", "--net")
	require.NoError(t, err)
	assert.Contains(t, out, "Moves (10): L2 R2 F2 B2 U U2 U' D D2 D'")
	assert.Contains(t, out, "Half turns: L2 R2 F2 B2 U2 D2")
	assert.Contains(t, out, "U (quarter turn)")
	assert.Contains(t, out, "30 31 32 00 01 02 36 37 38")
}

func TestStatusCommand(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run(t, "", "solve", scramble(t, "D"))
	require.NoError(t, err)

	out, err := env.run(t, "", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Solutions:     1")
	assert.Contains(t, out, "Last solution:")
}

func keyPress(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestReplayModel(t *testing.T) {
	p := cuboid.Domino()
	cat, err := p.Catalog()
	require.NoError(t, err)

	start, err := cat.Replay(p.Goal, []string{"U", "L2"})
	require.NoError(t, err)
	src := &replaySource{
		title:  "test",
		start:  start,
		moves:  []string{"L2", "U'"},
		phases: []string{"projected", "projected"},
	}
	m := newReplayModel(p, cat, src, 1, false)
	assert.Nil(t, m.Init())

	m.Update(keyPress("n"))
	assert.Equal(t, 1, m.position())
	assert.False(t, m.tracker.IsSolved())

	m.Update(keyPress(" "))
	assert.True(t, m.done())
	assert.True(t, m.tracker.IsSolved())
	assert.Contains(t, m.View(), "Move 2/2")
	assert.Contains(t, m.View(), "SOLVED!")

	// Stepping past the end is a no-op
	m.Update(keyPress("n"))
	assert.Equal(t, 2, m.position())

	assert.Contains(t, m.View(), "Reached Solved after 2 moves")

	m.Update(keyPress("b"))
	assert.Equal(t, 1, m.position())
	assert.Empty(t, m.stageMessage())
	assert.NotContains(t, m.View(), "Reached Solved")

	m.Update(keyPress("n"))
	assert.Contains(t, m.View(), "Reached Solved after 2 moves")
	m.Update(keyPress("b"))

	m.Update(keyPress("r"))
	assert.Equal(t, 0, m.position())

	m.Update(keyPress("e"))
	assert.True(t, m.tracker.IsSolved())

	_, cmd := m.Update(keyPress("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, "Replay ended.\n", m.View())
}

func TestReplayModelAutoplay(t *testing.T) {
	p := cuboid.Domino()
	cat, err := p.Catalog()
	require.NoError(t, err)

	start, err := cat.Replay(p.Goal, []string{"D"})
	require.NoError(t, err)
	src := &replaySource{title: "auto", start: start, moves: []string{"D'"}, phases: []string{"direct"}}
	m := newReplayModel(p, cat, src, 4, true)
	require.NotNil(t, m.Init())

	_, cmd := m.Update(replayTickMsg{})
	assert.Nil(t, cmd, "playback stops at the end")
	assert.True(t, m.tracker.IsSolved())
	assert.False(t, m.playing)
}
