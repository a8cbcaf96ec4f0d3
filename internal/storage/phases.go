package storage

import (
	"database/sql"
	"fmt"
)

// PhaseResult is the stored outcome of one search inside a solver run.
type PhaseResult struct {
	PhaseResultID    int64
	SolutionID       string
	OrderIndex       int
	Phase            string
	StartState       string
	GoalState        string
	Found            bool
	Exhausted        bool
	MoveCount        int
	ForwardExpanded  int
	BackwardExpanded int
	ForwardVisited   int
	BackwardVisited  int
	ElapsedMs        int64
}

// PhaseRepository reads phase results.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

func insertPhases(tx *sql.Tx, solutionID string, phases []PhaseResult) error {
	for _, p := range phases {
		_, err := tx.Exec(`
			INSERT INTO phase_results (solution_id, order_index, phase, start_state, goal_state,
				found, exhausted, move_count, forward_expanded, backward_expanded,
				forward_visited, backward_visited, elapsed_ms)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, solutionID, p.OrderIndex, p.Phase, p.StartState, p.GoalState,
			p.Found, p.Exhausted, p.MoveCount, p.ForwardExpanded, p.BackwardExpanded,
			p.ForwardVisited, p.BackwardVisited, p.ElapsedMs)
		if err != nil {
			return fmt.Errorf("failed to create phase result %s: %w", p.Phase, err)
		}
	}
	return nil
}

// GetBySolution retrieves the phase results of a solution in run order.
func (r *PhaseRepository) GetBySolution(solutionID string) ([]PhaseResult, error) {
	rows, err := r.db.Query(`
		SELECT phase_result_id, solution_id, order_index, phase, start_state, goal_state,
			found, exhausted, move_count, forward_expanded, backward_expanded,
			forward_visited, backward_visited, elapsed_ms
		FROM phase_results
		WHERE solution_id = ?
		ORDER BY order_index
	`, solutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase results: %w", err)
	}
	defer rows.Close()

	var phases []PhaseResult
	for rows.Next() {
		var p PhaseResult
		err := rows.Scan(
			&p.PhaseResultID, &p.SolutionID, &p.OrderIndex, &p.Phase, &p.StartState, &p.GoalState,
			&p.Found, &p.Exhausted, &p.MoveCount, &p.ForwardExpanded, &p.BackwardExpanded,
			&p.ForwardVisited, &p.BackwardVisited, &p.ElapsedMs,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan phase result: %w", err)
		}
		phases = append(phases, p)
	}

	return phases, rows.Err()
}
