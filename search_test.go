package cuboid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrambled(t *testing.T, cat *Catalog, labels ...string) State {
	t.Helper()
	s, err := cat.Replay(Domino().Goal, labels)
	require.NoError(t, err)
	return s
}

func TestSearchStartIsGoal(t *testing.T) {
	cat := dominoCatalog(t)
	goal := Domino().Goal

	res, err := Search(goal, goal, cat)
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Empty(t, res.Forward)
	assert.Empty(t, res.Backward)
	assert.NotNil(t, res.Path())
	assert.Empty(t, res.Path())
	assert.Zero(t, res.Stats.Expanded())
}

func TestSearchSingleMove(t *testing.T) {
	cat := dominoCatalog(t)
	start := scrambled(t, cat, "U")

	res, err := Search(start, Domino().Goal, cat)
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Equal(t, []string{"U'"}, res.Path())
}

func TestSearchPathAssembly(t *testing.T) {
	cat := dominoCatalog(t)
	goal := Domino().Goal
	start := scrambled(t, cat, "U", "L2", "D'", "F2")

	res, err := Search(start, goal, cat)
	require.NoError(t, err)
	require.True(t, res.Found)

	viaForward, err := cat.Replay(start, res.Forward)
	require.NoError(t, err)
	assert.True(t, viaForward.Equal(res.Meeting), "forward path should reach the meeting state")

	viaBackward, err := cat.Replay(goal, res.Backward)
	require.NoError(t, err)
	assert.True(t, viaBackward.Equal(res.Meeting), "backward path should reach the meeting state from the goal")

	end, err := cat.Replay(start, res.Path())
	require.NoError(t, err)
	assert.True(t, end.Equal(goal), "assembled path should solve, got %s", end)
	assert.LessOrEqual(t, len(res.Path()), 4)
}

func TestSearchStrictLayersIsShortest(t *testing.T) {
	cat := dominoCatalog(t)
	goal := Domino().Goal
	scrambles := [][]string{
		{"U", "L2", "D'"},
		{"F2", "U2", "R2", "D"},
		{"U'", "L2", "U", "L2", "U2"},
	}
	for _, sc := range scrambles {
		start := scrambled(t, cat, sc...)

		loose, err := Search(start, goal, cat)
		require.NoError(t, err)
		strict, err := Search(start, goal, cat, WithStrictLayers(true))
		require.NoError(t, err)

		require.True(t, loose.Found)
		require.True(t, strict.Found)
		assert.LessOrEqual(t, len(strict.Path()), len(loose.Path()), "scramble %v", sc)
		assert.LessOrEqual(t, len(strict.Path()), len(sc), "scramble %v", sc)

		end, err := cat.Replay(start, strict.Path())
		require.NoError(t, err)
		assert.True(t, end.Equal(goal))
	}
}

func TestSearchUnreachableIsExhausted(t *testing.T) {
	cat := dominoCatalog(t)
	// A quarter turn cannot be undone with half turns only.
	start := scrambled(t, cat, "U")

	res, err := Search(start, Domino().Goal, cat.HalfTurns())
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.True(t, res.Exhausted)
	assert.Nil(t, res.Path())
	assert.Positive(t, res.Stats.ForwardVisited)
	assert.Positive(t, res.Stats.BackwardVisited)
}

func TestSearchMaxDepthGivesUp(t *testing.T) {
	cat := dominoCatalog(t)
	start := State(referenceStart)

	res, err := Search(start, Domino().Goal, cat, WithMaxDepth(1))
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.False(t, res.Exhausted, "a depth limited failure proves nothing")
	assert.LessOrEqual(t, res.Stats.ForwardDepth, 1)
	assert.LessOrEqual(t, res.Stats.BackwardDepth, 1)
}

func TestSearchMaxDepthStillFindsShortPaths(t *testing.T) {
	cat := dominoCatalog(t)
	start := scrambled(t, cat, "U", "L2")

	res, err := Search(start, Domino().Goal, cat, WithMaxDepth(1))
	require.NoError(t, err)
	require.True(t, res.Found)
	assert.Len(t, res.Path(), 2)
}

func TestSearchNegativeDepth(t *testing.T) {
	cat := dominoCatalog(t)
	_, err := Search(State(referenceStart), Domino().Goal, cat, WithMaxDepth(-1))
	assert.ErrorIs(t, err, ErrOptionViolation)
}

func TestSearchLengthMismatch(t *testing.T) {
	cat := dominoCatalog(t)
	_, err := Search(State("rrbb"), Domino().Goal, cat)
	assert.ErrorIs(t, err, ErrInvalidLength)
	assert.True(t, errors.Is(err, ErrInvalidState))
}

func TestSearchCanceled(t *testing.T) {
	cat := dominoCatalog(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Search(State(referenceStart), Domino().Goal, cat, WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSearchStatsAdd(t *testing.T) {
	a := SearchStats{ForwardExpanded: 1, BackwardExpanded: 2, ForwardVisited: 3, BackwardVisited: 4, ForwardDepth: 5, BackwardDepth: 1}
	b := SearchStats{ForwardExpanded: 10, BackwardExpanded: 20, ForwardVisited: 30, BackwardVisited: 40, ForwardDepth: 2, BackwardDepth: 6}
	sum := a.Add(b)
	assert.Equal(t, 33, sum.Expanded())
	assert.Equal(t, 77, sum.Visited())
	assert.Equal(t, 5, sum.ForwardDepth)
	assert.Equal(t, 6, sum.BackwardDepth)
}
