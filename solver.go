package cuboid

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoSolution is the text printed when a state cannot reach the goal.
const NoSolution = "No solution"

// PhaseResult describes one search inside a solve.
type PhaseResult struct {
	Phase     Phase
	Start     State // Root of the forward frontier
	Goal      State // Root of the backward frontier
	Found     bool
	Exhausted bool
	Moves     []string
	Stats     SearchStats
	Elapsed   time.Duration
}

// Solution is the outcome of Solver.Solve.
type Solution struct {
	Strategy Strategy
	Start    State
	Goal     State

	// Found is false when the goal could not be reached. Exhausted is
	// true only when that is proven: the color counts differ from the goal,
	// or a direct search ran out of states. The two-phase strategy commits
	// to the first projected path it finds, so its failures are never
	// proven; StrategyDirect may still solve such a state.
	Found     bool
	Exhausted bool

	// Moves leads from Start to Goal. It is empty, not nil, when Start
	// already equals Goal.
	Moves []string

	Phases  []PhaseResult
	Stats   SearchStats
	Elapsed time.Duration
}

// String returns the space-separated moves, or NoSolution.
func (s *Solution) String() string {
	if !s.Found {
		return NoSolution
	}
	return FormatLabels(s.Moves)
}

// Solver finds move sequences from arbitrary states to a puzzle's goal.
// A Solver is safe for concurrent use: Solve keeps all search state local.
type Solver struct {
	puzzle    Puzzle
	catalog   *Catalog
	halfTurns *Catalog
	cfg       *solverConfig
}

// NewSolver creates a solver for p.
func NewSolver(p Puzzle, opts ...Option) (*Solver, error) {
	cfg := defaultSolverConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	cat, err := p.Catalog()
	if err != nil {
		return nil, err
	}
	return &Solver{
		puzzle:    p,
		catalog:   cat,
		halfTurns: cat.HalfTurns(),
		cfg:       cfg,
	}, nil
}

// Puzzle returns the puzzle the solver works on.
func (s *Solver) Puzzle() Puzzle {
	return s.puzzle
}

// Catalog returns the full move catalog.
func (s *Solver) Catalog() *Catalog {
	return s.catalog
}

// Strategy returns the configured strategy.
func (s *Solver) Strategy() Strategy {
	return s.cfg.strategy
}

// SolveString parses start and solves it.
func (s *Solver) SolveString(ctx context.Context, start string) (*Solution, error) {
	state, err := s.puzzle.ParseState(start)
	if err != nil {
		return nil, err
	}
	return s.Solve(ctx, state)
}

// Solve finds moves leading from start to the puzzle goal.
//
// Malformed input is reported as an error matching ErrInvalidState before
// any search runs. An unreachable goal is not an error: the solution has
// Found == false.
func (s *Solver) Solve(ctx context.Context, start State) (*Solution, error) {
	if _, err := s.puzzle.ParseState(start.String()); err != nil {
		return nil, err
	}

	began := time.Now()
	sol := &Solution{
		Strategy: s.cfg.strategy,
		Start:    start.Clone(),
		Goal:     s.puzzle.Goal.Clone(),
		Moves:    []string{},
	}

	// Moves only permute facelets, so a color count mismatch is unreachable.
	if err := s.puzzle.CheckCounts(start); err != nil {
		s.cfg.logger.Debug("goal unreachable", "reason", err)
		sol.Exhausted = true
		sol.Elapsed = time.Since(began)
		return sol, nil
	}

	var err error
	switch s.cfg.strategy {
	case StrategyDirect:
		err = s.solveDirect(ctx, sol)
	default:
		err = s.solveTwoPhase(ctx, sol)
	}
	if err != nil {
		return nil, err
	}

	sol.Elapsed = time.Since(began)
	for _, ph := range sol.Phases {
		sol.Stats = sol.Stats.Add(ph.Stats)
	}
	s.cfg.logger.Debug("solve finished",
		"strategy", sol.Strategy,
		"found", sol.Found,
		"moves", len(sol.Moves),
		"elapsed", sol.Elapsed,
	)
	return sol, nil
}

func (s *Solver) solveDirect(ctx context.Context, sol *Solution) error {
	ph, err := s.runPhase(ctx, PhaseDirect, sol.Start, sol.Goal, s.catalog)
	if err != nil {
		return err
	}
	sol.Phases = append(sol.Phases, ph)
	sol.Found, sol.Exhausted = ph.Found, ph.Exhausted
	if ph.Found {
		sol.Moves = ph.Moves
	}
	return nil
}

// solveTwoPhase solves the projected puzzle with every move, replays that
// path on the real state and finishes with half turns only.
func (s *Solver) solveTwoPhase(ctx context.Context, sol *Solution) error {
	proj := s.puzzle.Projection
	first, err := s.runPhase(ctx, PhaseProjected, sol.Start.Project(proj), sol.Goal.Project(proj), s.catalog)
	if err != nil {
		return err
	}
	sol.Phases = append(sol.Phases, first)
	if !first.Found {
		sol.Exhausted = first.Exhausted
		return nil
	}

	intermediate, err := s.catalog.Replay(sol.Start, first.Moves)
	if err != nil {
		return fmt.Errorf("replay projected path: %w", err)
	}
	s.cfg.logger.Debug("projected pattern solved", "state", intermediate.String())

	second, err := s.runPhase(ctx, PhaseHalfTurn, intermediate, sol.Goal, s.halfTurns)
	if err != nil {
		return err
	}
	sol.Phases = append(sol.Phases, second)
	if !second.Found {
		// Another projected path might have led to a solvable intermediate.
		sol.Exhausted = false
		return nil
	}

	sol.Found = true
	sol.Moves = append(append([]string{}, first.Moves...), second.Moves...)
	return nil
}

func (s *Solver) runPhase(ctx context.Context, phase Phase, start, goal State, cat *Catalog) (PhaseResult, error) {
	began := time.Now()
	logger := s.cfg.logger.With(slog.String("phase", phase.String()))
	res, err := Search(start, goal, cat,
		WithContext(ctx),
		WithLogger(logger),
		WithMaxDepth(s.cfg.maxDepth),
		WithStrictLayers(s.cfg.strictLayers),
	)
	if err != nil {
		return PhaseResult{}, fmt.Errorf("%s phase: %w", phase, err)
	}

	ph := PhaseResult{
		Phase:     phase,
		Start:     start,
		Goal:      goal,
		Found:     res.Found,
		Exhausted: res.Exhausted,
		Moves:     res.Path(),
		Stats:     res.Stats,
		Elapsed:   time.Since(began),
	}
	logger.Debug("phase finished",
		"found", ph.Found,
		"moves", len(ph.Moves),
		"visited", ph.Stats.Visited(),
		"elapsed", ph.Elapsed,
	)
	return ph, nil
}

// Solve solves a domino state with the two-phase strategy.
//
//	sol, err := cuboid.Solve("ooorrrgbggbgbgbroorrobggbgbbbgwwywwywywyyy")
//	if err != nil {
//	    log.Fatal(err) // malformed input
//	}
//	fmt.Println(sol) // moves, or "No solution"
func Solve(start string) (*Solution, error) {
	solver, err := NewSolver(Domino())
	if err != nil {
		return nil, err
	}
	return solver.SolveString(context.Background(), start)
}
