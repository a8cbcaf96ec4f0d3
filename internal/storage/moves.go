package storage

import (
	"database/sql"
	"fmt"
)

// MoveRecord is one move of a stored solution.
type MoveRecord struct {
	MoveID     int64
	SolutionID string
	MoveIndex  int
	Phase      string
	Notation   string
	StateAfter string
}

// MoveRepository reads solution moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

func insertMoves(tx *sql.Tx, solutionID string, moves []MoveRecord) error {
	for _, m := range moves {
		_, err := tx.Exec(`
			INSERT INTO solution_moves (solution_id, move_index, phase, notation, state_after)
			VALUES (?, ?, ?, ?, ?)
		`, solutionID, m.MoveIndex, m.Phase, m.Notation, m.StateAfter)
		if err != nil {
			return fmt.Errorf("failed to create move %d: %w", m.MoveIndex, err)
		}
	}
	return nil
}

// GetBySolution retrieves all moves of a solution in order.
func (r *MoveRepository) GetBySolution(solutionID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, solution_id, move_index, phase, notation, state_after
		FROM solution_moves
		WHERE solution_id = ?
		ORDER BY move_index
	`, solutionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.SolutionID, &m.MoveIndex, &m.Phase, &m.Notation, &m.StateAfter); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}

	return moves, rows.Err()
}

// Count returns the number of moves of a solution.
func (r *MoveRepository) Count(solutionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM solution_moves WHERE solution_id = ?", solutionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get move count: %w", err)
	}
	return count, nil
}
