package cuboid

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// SearchOption configures a bidirectional search.
type SearchOption func(*searchConfig)

type searchConfig struct {
	ctx          context.Context
	logger       *slog.Logger
	maxDepth     int
	strictLayers bool

	// err records an invalid option; Search reports it.
	err error
}

func defaultSearchConfig() *searchConfig {
	return &searchConfig{
		ctx:    context.Background(),
		logger: discardLogger(),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// WithContext makes the search stop with ctx.Err() once ctx is done.
func WithContext(ctx context.Context) SearchOption {
	return func(c *searchConfig) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

// WithLogger sets the logger used for progress messages. Progress is
// logged at debug level.
func WithLogger(logger *slog.Logger) SearchOption {
	return func(c *searchConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMaxDepth limits how deep each frontier grows.
//
//	d > 0: neither side records states more than d moves from its root
//	d == 0: no limit (default)
//	d < 0: invalid, reported as ErrOptionViolation
//
// A search that fails after cutting off states is not proof that the goal
// is unreachable; see SearchResult.Exhausted.
func WithMaxDepth(d int) SearchOption {
	return func(c *searchConfig) {
		if d < 0 {
			c.err = fmt.Errorf("%w: max depth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		c.maxDepth = d
	}
}

// WithStrictLayers switches the search from expanding one state per side in
// turn to expanding whole breadth-first layers, smaller frontier first.
// Strict layering returns a shortest combined path; the default
// interleaving always returns a valid path but may return a longer one
// when the two frontiers drift to different depths.
func WithStrictLayers(enabled bool) SearchOption {
	return func(c *searchConfig) {
		c.strictLayers = enabled
	}
}

// Strategy selects how a Solver attacks a state.
type Strategy string

const (
	// StrategyTwoPhase solves the projected puzzle with every move, then
	// finishes with half turns only.
	StrategyTwoPhase Strategy = "two-phase"
	// StrategyDirect runs a single search with every move.
	StrategyDirect Strategy = "direct"
)

// ParseStrategy converts a strategy name, as used on the command line.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyTwoPhase, StrategyDirect:
		return Strategy(s), nil
	case "":
		return StrategyTwoPhase, nil
	default:
		return "", fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, s)
	}
}

// Option configures a Solver.
type Option func(*solverConfig)

type solverConfig struct {
	strategy     Strategy
	logger       *slog.Logger
	maxDepth     int
	strictLayers bool
	err          error
}

func defaultSolverConfig() *solverConfig {
	return &solverConfig{
		strategy: StrategyTwoPhase,
		logger:   discardLogger(),
	}
}

// WithStrategy selects the solving strategy. Default: StrategyTwoPhase.
func WithStrategy(s Strategy) Option {
	return func(c *solverConfig) {
		switch s {
		case StrategyTwoPhase, StrategyDirect:
			c.strategy = s
		default:
			c.err = fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, s)
		}
	}
}

// WithSolverLogger sets the logger for the solver and its searches.
func WithSolverLogger(logger *slog.Logger) Option {
	return func(c *solverConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSearchDepth applies WithMaxDepth to every search the solver runs.
func WithSearchDepth(d int) Option {
	return func(c *solverConfig) {
		if d < 0 {
			c.err = fmt.Errorf("%w: max depth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		c.maxDepth = d
	}
}

// WithStrictSearch applies WithStrictLayers to every search the solver runs.
func WithStrictSearch(enabled bool) Option {
	return func(c *solverConfig) {
		c.strictLayers = enabled
	}
}
