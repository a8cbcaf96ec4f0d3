package cuboid

import (
	"fmt"
	"log/slog"
)

// progressEvery is how many expansions pass between debug progress logs.
const progressEvery = 50000

// SearchStats describes the work done by one search.
type SearchStats struct {
	ForwardExpanded  int
	BackwardExpanded int
	ForwardVisited   int
	BackwardVisited  int
	ForwardDepth     int // Deepest state expanded from the start
	BackwardDepth    int // Deepest state expanded from the goal
}

// Expanded returns the number of states expanded on both sides.
func (s SearchStats) Expanded() int {
	return s.ForwardExpanded + s.BackwardExpanded
}

// Visited returns the number of states recorded on both sides.
func (s SearchStats) Visited() int {
	return s.ForwardVisited + s.BackwardVisited
}

// Add returns the sum of two stats. Depths keep the maximum.
func (s SearchStats) Add(o SearchStats) SearchStats {
	return SearchStats{
		ForwardExpanded:  s.ForwardExpanded + o.ForwardExpanded,
		BackwardExpanded: s.BackwardExpanded + o.BackwardExpanded,
		ForwardVisited:   s.ForwardVisited + o.ForwardVisited,
		BackwardVisited:  s.BackwardVisited + o.BackwardVisited,
		ForwardDepth:     max(s.ForwardDepth, o.ForwardDepth),
		BackwardDepth:    max(s.BackwardDepth, o.BackwardDepth),
	}
}

// SearchResult is the outcome of a bidirectional search.
type SearchResult struct {
	// Found is true when a meeting state was reached from both sides.
	Found bool
	// Exhausted is true when the search failed after enumerating every
	// state reachable from both roots, which proves the goal unreachable.
	// It is false when a depth limit cut the search short.
	Exhausted bool
	// Forward leads from the start to Meeting.
	Forward []string
	// Backward leads from the goal to Meeting.
	Backward []string
	Meeting  State
	Stats    SearchStats
}

// Path returns the full solution from start to goal, or nil if nothing
// was found.
func (r *SearchResult) Path() []string {
	if !r.Found {
		return nil
	}
	return Assemble(r.Forward, r.Backward)
}

// frontier is one side of the search: the states seen from its root, each
// with the first path that reached it, and the states not yet expanded.
type frontier struct {
	name     string
	visited  map[string][]string
	queue    []string
	expanded int
	depth    int
	cutoff   bool
}

func newFrontier(name string, root State) *frontier {
	key := root.Key()
	return &frontier{
		name:    name,
		visited: map[string][]string{key: {}},
		queue:   []string{key},
	}
}

func (f *frontier) empty() bool {
	return len(f.queue) == 0
}

func (f *frontier) pop() (string, []string) {
	key := f.queue[0]
	f.queue = f.queue[1:]
	f.expanded++
	path := f.visited[key]
	if len(path) > f.depth {
		f.depth = len(path)
	}
	return key, path
}

// meeting is a state reached from both sides.
type meeting struct {
	key      string
	forward  []string
	backward []string
}

func (m *meeting) length() int {
	return len(m.forward) + len(m.backward)
}

// searcher holds the state of one Search call.
type searcher struct {
	cfg    *searchConfig
	labels []string
	moves  []Move
	fwd    *frontier
	bwd    *frontier
	logger *slog.Logger
}

// Search looks for a sequence of catalog moves leading from start to goal,
// exploring forward from start and backward from goal at the same time.
//
// Failing to find a path is not an error: the result has Found == false.
// Errors are reserved for invalid arguments and context cancellation.
func Search(start, goal State, cat *Catalog, opts ...SearchOption) (*SearchResult, error) {
	cfg := defaultSearchConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if len(start) != cat.Size() || len(goal) != cat.Size() {
		return nil, fmt.Errorf("%w: start has %d facelets, goal %d, catalog %d",
			ErrInvalidLength, len(start), len(goal), cat.Size())
	}

	if start.Equal(goal) {
		return &SearchResult{
			Found:    true,
			Forward:  []string{},
			Backward: []string{},
			Meeting:  start.Clone(),
			Stats:    SearchStats{ForwardVisited: 1, BackwardVisited: 1},
		}, nil
	}

	s := &searcher{
		cfg:    cfg,
		labels: cat.Labels(),
		fwd:    newFrontier("forward", start),
		bwd:    newFrontier("backward", goal),
		logger: cfg.logger,
	}
	s.moves = make([]Move, len(s.labels))
	for i, l := range s.labels {
		s.moves[i], _ = cat.Move(l)
	}

	var (
		m   *meeting
		err error
	)
	if cfg.strictLayers {
		m, err = s.runLayers()
	} else {
		m, err = s.runInterleaved()
	}
	if err != nil {
		return nil, err
	}
	return s.result(m), nil
}

// runInterleaved expands one state from the forward queue, then one from
// the backward queue, until the sides meet or both queues are empty.
func (s *searcher) runInterleaved() (*meeting, error) {
	for !s.fwd.empty() || !s.bwd.empty() {
		for _, side := range [2]*frontier{s.fwd, s.bwd} {
			if side.empty() {
				continue
			}
			if err := s.checkContext(); err != nil {
				return nil, err
			}
			if m := s.expand(side, s.other(side), false); m != nil {
				return m, nil
			}
		}
	}
	return nil, nil
}

// runLayers expands complete layers, always growing the side with the
// smaller queue. Every meeting inside the layer is considered and the
// shortest is kept.
func (s *searcher) runLayers() (*meeting, error) {
	for !s.fwd.empty() || !s.bwd.empty() {
		side := s.fwd
		if s.fwd.empty() || (!s.bwd.empty() && len(s.bwd.queue) < len(s.fwd.queue)) {
			side = s.bwd
		}
		other := s.other(side)

		var best *meeting
		for n := len(side.queue); n > 0; n-- {
			if err := s.checkContext(); err != nil {
				return nil, err
			}
			if m := s.expand(side, other, true); m != nil && (best == nil || m.length() < best.length()) {
				best = m
			}
		}
		if best != nil {
			return best, nil
		}
	}
	return nil, nil
}

func (s *searcher) other(side *frontier) *frontier {
	if side == s.fwd {
		return s.bwd
	}
	return s.fwd
}

func (s *searcher) checkContext() error {
	select {
	case <-s.cfg.ctx.Done():
		return s.cfg.ctx.Err()
	default:
		return nil
	}
}

// expand pops the next state of side and generates its neighbors. New
// neighbors are recorded and queued; any neighbor already known to other is
// a meeting. With best set, every neighbor is checked and the shortest
// meeting is returned, otherwise the first one is.
func (s *searcher) expand(side, other *frontier, best bool) *meeting {
	key, path := side.pop()
	current := stateFromKey(key)

	if side.expanded%progressEvery == 0 {
		s.logger.Debug("search progress",
			"side", side.name,
			"expanded", side.expanded,
			"visited", len(side.visited),
			"queued", len(side.queue),
			"depth", len(path),
		)
	}

	var found *meeting
	for i, move := range s.moves {
		next := current.Clone()
		move.Apply(next)
		nextKey := next.Key()

		own, seen := side.visited[nextKey]
		if !seen {
			own = make([]string, len(path)+1)
			copy(own, path)
			own[len(path)] = s.labels[i]
			if s.cfg.maxDepth > 0 && len(own) > s.cfg.maxDepth {
				side.cutoff = true
			} else {
				side.visited[nextKey] = own
				side.queue = append(side.queue, nextKey)
			}
		}

		theirs, ok := other.visited[nextKey]
		if !ok {
			continue
		}
		m := &meeting{key: nextKey, forward: own, backward: theirs}
		if side == s.bwd {
			m.forward, m.backward = theirs, own
		}
		if !best {
			return m
		}
		if found == nil || m.length() < found.length() {
			found = m
		}
	}
	return found
}

func (s *searcher) result(m *meeting) *SearchResult {
	r := &SearchResult{
		Stats: SearchStats{
			ForwardExpanded:  s.fwd.expanded,
			BackwardExpanded: s.bwd.expanded,
			ForwardVisited:   len(s.fwd.visited),
			BackwardVisited:  len(s.bwd.visited),
			ForwardDepth:     s.fwd.depth,
			BackwardDepth:    s.bwd.depth,
		},
	}
	if m == nil {
		r.Exhausted = !s.fwd.cutoff && !s.bwd.cutoff
		s.logger.Debug("search failed",
			"exhausted", r.Exhausted,
			"visited", r.Stats.Visited(),
		)
		return r
	}

	r.Found = true
	r.Forward = m.forward
	r.Backward = m.backward
	r.Meeting = stateFromKey(m.key)
	s.logger.Debug("meeting point found",
		"forward", len(m.forward),
		"backward", len(m.backward),
		"visited", r.Stats.Visited(),
	)
	return r
}
