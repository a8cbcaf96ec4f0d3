package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// timeFormat sorts lexically in chronological order.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// Solution is a stored solver run.
type Solution struct {
	SolutionID  string
	CreatedAt   time.Time
	Puzzle      string
	Strategy    string
	StartState  string
	GoalState   string
	Found       bool
	Exhausted   bool
	Moves       []string
	Fingerprint string
	ElapsedMs   int64
	Expanded    int
	Visited     int
	Notes       *string
}

// MovesText returns the moves in notation, or "No solution".
func (s *Solution) MovesText() string {
	if !s.Found {
		return "No solution"
	}
	return strings.Join(s.Moves, " ")
}

// SolutionRepository provides CRUD operations for solutions.
type SolutionRepository struct {
	db *DB
}

// NewSolutionRepository creates a new solution repository.
func NewSolutionRepository(db *DB) *SolutionRepository {
	return &SolutionRepository{db: db}
}

// Create stores a record with its moves and phases in one transaction and
// returns the new solution ID.
func (r *SolutionRepository) Create(rec *Record) (string, error) {
	id := uuid.New().String()
	createdAt := time.Now().UTC()
	s := rec.Solution

	err := r.db.Transaction(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO solutions (solution_id, created_at, puzzle, strategy, start_state, goal_state,
				found, exhausted, move_count, moves_text, fingerprint, elapsed_ms, expanded, visited, notes)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, createdAt.Format(timeFormat), s.Puzzle, s.Strategy, s.StartState, s.GoalState,
			s.Found, s.Exhausted, len(s.Moves), strings.Join(s.Moves, " "), s.Fingerprint,
			s.ElapsedMs, s.Expanded, s.Visited, s.Notes)
		if err != nil {
			return fmt.Errorf("failed to create solution: %w", err)
		}

		if err := insertMoves(tx, id, rec.Moves); err != nil {
			return err
		}
		return insertPhases(tx, id, rec.Phases)
	})
	if err != nil {
		return "", err
	}

	rec.Solution.SolutionID = id
	rec.Solution.CreatedAt = createdAt
	return id, nil
}

const solutionColumns = `solution_id, created_at, puzzle, strategy, start_state, goal_state,
	found, exhausted, moves_text, fingerprint, elapsed_ms, expanded, visited, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSolution(row rowScanner) (*Solution, error) {
	var s Solution
	var createdAtStr, movesText string

	err := row.Scan(
		&s.SolutionID, &createdAtStr, &s.Puzzle, &s.Strategy, &s.StartState, &s.GoalState,
		&s.Found, &s.Exhausted, &movesText, &s.Fingerprint, &s.ElapsedMs,
		&s.Expanded, &s.Visited, &s.Notes,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt, _ = time.Parse(timeFormat, createdAtStr)
	s.Moves = strings.Fields(movesText)
	return &s, nil
}

// Get retrieves a solution by ID. It returns nil if there is none.
func (r *SolutionRepository) Get(solutionID string) (*Solution, error) {
	row := r.db.QueryRow(`SELECT `+solutionColumns+` FROM solutions WHERE solution_id = ?`, solutionID)

	s, err := scanSolution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solution: %w", err)
	}
	return s, nil
}

// GetLast retrieves the most recent solution.
func (r *SolutionRepository) GetLast() (*Solution, error) {
	row := r.db.QueryRow(`
		SELECT ` + solutionColumns + ` FROM solutions
		ORDER BY created_at DESC, rowid DESC
		LIMIT 1
	`)

	s, err := scanSolution(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last solution: %w", err)
	}
	return s, nil
}

// List retrieves recent solutions, newest first.
func (r *SolutionRepository) List(limit int) ([]Solution, error) {
	return r.query(`
		SELECT `+solutionColumns+` FROM solutions
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
}

// FindByFingerprint retrieves earlier runs on the same problem instance,
// newest first.
func (r *SolutionRepository) FindByFingerprint(fingerprint string) ([]Solution, error) {
	return r.query(`
		SELECT `+solutionColumns+` FROM solutions
		WHERE fingerprint = ?
		ORDER BY created_at DESC, rowid DESC
	`, fingerprint)
}

func (r *SolutionRepository) query(q string, args ...any) ([]Solution, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}
	defer rows.Close()

	var solutions []Solution
	for rows.Next() {
		s, err := scanSolution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solution: %w", err)
		}
		solutions = append(solutions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list solutions: %w", err)
	}

	return solutions, nil
}

// Count returns the number of stored solutions.
func (r *SolutionRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM solutions").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count solutions: %w", err)
	}
	return count, nil
}

// Delete deletes a solution and its moves and phases (cascading).
func (r *SolutionRepository) Delete(solutionID string) error {
	_, err := r.db.Exec("DELETE FROM solutions WHERE solution_id = ?", solutionID)
	if err != nil {
		return fmt.Errorf("failed to delete solution: %w", err)
	}
	return nil
}
