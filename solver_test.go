package cuboid

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// swapPuzzle is a four facelet toy: its only move swaps the first two
// facelets, so most states cannot be solved.
func swapPuzzle() Puzzle {
	return Puzzle{
		Name:       "swap",
		Size:       4,
		Alphabet:   []Color{Red, Green, Blue, Orange},
		Goal:       State("rgbo"),
		Projection: Projection{Orange: Red, Green: Blue},
		Faces:      []FaceTurn{{Name: "A", Cycles: [][]int{{0, 1}}}},
	}
}

func TestSolveReferenceExample(t *testing.T) {
	sol, err := Solve(referenceStart)
	require.NoError(t, err)
	require.True(t, sol.Found)
	require.Len(t, sol.Phases, 2)

	cat := dominoCatalog(t)
	end, err := cat.Replay(State(referenceStart), sol.Moves)
	require.NoError(t, err)
	assert.Equal(t, DominoGoal, end.String())

	// The first phase only has to fix the merged color classes.
	first := sol.Phases[0]
	assert.Equal(t, PhaseProjected, first.Phase)
	mid, err := cat.Replay(State(referenceStart), first.Moves)
	require.NoError(t, err)
	assert.True(t, Domino().IsProjectedSolved(mid))

	// The second phase must not use quarter turns.
	second := sol.Phases[1]
	assert.Equal(t, PhaseHalfTurn, second.Phase)
	for _, m := range second.Moves {
		assert.True(t, IsHalfTurn(m), "phase 2 used %s", m)
	}
	assert.Equal(t, FormatLabels(sol.Moves), sol.String())
}

func TestSolveGoalIsEmpty(t *testing.T) {
	sol, err := Solve(DominoGoal)
	require.NoError(t, err)
	assert.True(t, sol.Found)
	assert.NotNil(t, sol.Moves)
	assert.Empty(t, sol.Moves)
	assert.Equal(t, "", sol.String())
}

func TestSolveDirectStrategy(t *testing.T) {
	solver, err := NewSolver(Domino(), WithStrategy(StrategyDirect), WithStrictSearch(true))
	require.NoError(t, err)
	assert.Equal(t, StrategyDirect, solver.Strategy())

	cat := solver.Catalog()
	start := scrambled(t, cat, "U", "F2", "D")
	sol, err := solver.Solve(context.Background(), start)
	require.NoError(t, err)
	require.True(t, sol.Found)
	require.Len(t, sol.Phases, 1)
	assert.Equal(t, PhaseDirect, sol.Phases[0].Phase)
	assert.LessOrEqual(t, len(sol.Moves), 3)

	end, err := cat.Replay(start, sol.Moves)
	require.NoError(t, err)
	assert.True(t, Domino().IsSolved(end))
}

func TestSolveQuarterTurnScramble(t *testing.T) {
	// Needs phase 1 to undo the quarter turn since phase 2 cannot.
	cat := dominoCatalog(t)
	start := scrambled(t, cat, "U")

	sol, err := Solve(start.String())
	require.NoError(t, err)
	require.True(t, sol.Found)
	end, err := cat.Replay(start, sol.Moves)
	require.NoError(t, err)
	assert.True(t, Domino().IsSolved(end))
}

func TestSolveUnreachableTwoPhase(t *testing.T) {
	solver, err := NewSolver(swapPuzzle())
	require.NoError(t, err)

	sol, err := solver.SolveString(context.Background(), "rgob")
	require.NoError(t, err)
	assert.False(t, sol.Found)
	assert.True(t, sol.Exhausted)
	assert.Equal(t, NoSolution, sol.String())
	require.Len(t, sol.Phases, 1, "phase 2 must not run after phase 1 fails")
}

func TestSolveUnreachableDirect(t *testing.T) {
	solver, err := NewSolver(swapPuzzle(), WithStrategy(StrategyDirect))
	require.NoError(t, err)

	sol, err := solver.SolveString(context.Background(), "rgob")
	require.NoError(t, err)
	assert.False(t, sol.Found)
	assert.True(t, sol.Exhausted)
	assert.Equal(t, NoSolution, sol.String())
}

func TestSolveSwapPuzzle(t *testing.T) {
	for _, strategy := range []Strategy{StrategyTwoPhase, StrategyDirect} {
		t.Run(string(strategy), func(t *testing.T) {
			solver, err := NewSolver(swapPuzzle(), WithStrategy(strategy))
			require.NoError(t, err)

			sol, err := solver.SolveString(context.Background(), "grbo")
			require.NoError(t, err)
			require.True(t, sol.Found)
			assert.Equal(t, []string{"A2"}, sol.Moves)
		})
	}
}

func TestSolveInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"short", "rrr", ErrInvalidLength},
		{"bad color", strings.Repeat("x", DominoSize), ErrInvalidColor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sol, err := Solve(tt.input)
			assert.Nil(t, sol)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrInvalidState)
		})
	}
}

func TestSolveWrongColorCounts(t *testing.T) {
	for _, strategy := range []Strategy{StrategyTwoPhase, StrategyDirect} {
		t.Run(string(strategy), func(t *testing.T) {
			solver, err := NewSolver(Domino(), WithStrategy(strategy))
			require.NoError(t, err)

			sol, err := solver.SolveString(context.Background(), strings.Repeat("r", DominoSize))
			require.NoError(t, err)
			assert.False(t, sol.Found)
			assert.True(t, sol.Exhausted)
			assert.Empty(t, sol.Phases)
			assert.Equal(t, NoSolution, sol.String())
		})
	}
}

func TestSolveTwoPhaseFailureIsNotProof(t *testing.T) {
	// Solvable by construction, but the first projected path leads to an
	// intermediate state that half turns cannot finish.
	cat := dominoCatalog(t)
	start := scrambled(t, cat, ParseLabels(
		"D U' B2 D B2 F2 U D D2 F2 U2 F2 D' R2 D' B2 D D2 D' L2 D U U2 F2 D D' U F2 D2 U2")...)
	require.Equal(t, "wowoyrbbbbbggbgyrwywwggggggbbboyrrwyoroyor", start.String())

	sol, err := Solve(start.String())
	require.NoError(t, err)
	assert.False(t, sol.Found)
	assert.False(t, sol.Exhausted)
	require.Len(t, sol.Phases, 2)
	assert.True(t, sol.Phases[0].Found)
	assert.False(t, sol.Phases[1].Found)
	assert.Equal(t, NoSolution, sol.String())
}

func TestSolveDepthLimited(t *testing.T) {
	solver, err := NewSolver(Domino(), WithSearchDepth(1))
	require.NoError(t, err)

	sol, err := solver.SolveString(context.Background(), referenceStart)
	require.NoError(t, err)
	assert.False(t, sol.Found)
	assert.False(t, sol.Exhausted)
	assert.Equal(t, NoSolution, sol.String())
}

func TestSolveCanceled(t *testing.T) {
	solver, err := NewSolver(Domino())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = solver.SolveString(ctx, referenceStart)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewSolverOptions(t *testing.T) {
	_, err := NewSolver(Domino(), WithStrategy("sideways"))
	assert.ErrorIs(t, err, ErrOptionViolation)

	_, err = NewSolver(Domino(), WithSearchDepth(-2))
	assert.ErrorIs(t, err, ErrOptionViolation)

	bad := Domino()
	bad.Faces = append(bad.Faces, FaceTurn{Name: "X", Cycles: [][]int{{0, 99}}})
	_, err = NewSolver(bad)
	assert.ErrorIs(t, err, ErrInvalidGeometry)
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyTwoPhase, s)

	s, err = ParseStrategy("direct")
	require.NoError(t, err)
	assert.Equal(t, StrategyDirect, s)

	_, err = ParseStrategy("greedy")
	assert.ErrorIs(t, err, ErrOptionViolation)
}
