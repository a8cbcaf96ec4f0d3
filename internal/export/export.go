// Package export serializes stored solutions as text, JSON or CBOR.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/SeamusWaldron/cuboid/internal/storage"
)

// Format is an export encoding.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat converts a --format value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format: %s (use txt, json or cbor)", s)
	}
}

// Binary reports whether the format should not be written to a terminal.
func (f Format) Binary() bool {
	return f == FormatCBOR
}

// encMode uses Core Deterministic Encoding: the same solution always
// produces the same bytes.
var encMode cbor.EncMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("export: CBOR encoder initialization failed: " + err.Error())
	}
}

// Document is the exported form of a solution.
type Document struct {
	ID          string  `json:"id" cbor:"id"`
	CreatedAt   string  `json:"created_at" cbor:"created_at"`
	Puzzle      string  `json:"puzzle" cbor:"puzzle"`
	Strategy    string  `json:"strategy" cbor:"strategy"`
	Start       string  `json:"start" cbor:"start"`
	Goal        string  `json:"goal" cbor:"goal"`
	Found       bool    `json:"found" cbor:"found"`
	Exhausted   bool    `json:"exhausted" cbor:"exhausted"`
	Fingerprint string  `json:"fingerprint" cbor:"fingerprint"`
	ElapsedMs   int64   `json:"elapsed_ms" cbor:"elapsed_ms"`
	Notes       string  `json:"notes,omitempty" cbor:"notes,omitempty"`
	Moves       []Move  `json:"moves" cbor:"moves"`
	Phases      []Phase `json:"phases" cbor:"phases"`
}

// Move is one exported move.
type Move struct {
	Index      int    `json:"index" cbor:"index"`
	Phase      string `json:"phase" cbor:"phase"`
	Notation   string `json:"notation" cbor:"notation"`
	StateAfter string `json:"state_after" cbor:"state_after"`
}

// Phase is one exported search.
type Phase struct {
	Phase     string `json:"phase" cbor:"phase"`
	Found     bool   `json:"found" cbor:"found"`
	Exhausted bool   `json:"exhausted" cbor:"exhausted"`
	Moves     int    `json:"moves" cbor:"moves"`
	Expanded  int    `json:"expanded" cbor:"expanded"`
	Visited   int    `json:"visited" cbor:"visited"`
	ElapsedMs int64  `json:"elapsed_ms" cbor:"elapsed_ms"`
}

// NewDocument builds a document from stored rows.
func NewDocument(s *storage.Solution, moves []storage.MoveRecord, phases []storage.PhaseResult) *Document {
	doc := &Document{
		ID:          s.SolutionID,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
		Puzzle:      s.Puzzle,
		Strategy:    s.Strategy,
		Start:       s.StartState,
		Goal:        s.GoalState,
		Found:       s.Found,
		Exhausted:   s.Exhausted,
		Fingerprint: s.Fingerprint,
		ElapsedMs:   s.ElapsedMs,
		Moves:       make([]Move, 0, len(moves)),
		Phases:      make([]Phase, 0, len(phases)),
	}
	if s.Notes != nil {
		doc.Notes = *s.Notes
	}
	for _, m := range moves {
		doc.Moves = append(doc.Moves, Move{
			Index:      m.MoveIndex,
			Phase:      m.Phase,
			Notation:   m.Notation,
			StateAfter: m.StateAfter,
		})
	}
	for _, p := range phases {
		doc.Phases = append(doc.Phases, Phase{
			Phase:     p.Phase,
			Found:     p.Found,
			Exhausted: p.Exhausted,
			Moves:     p.MoveCount,
			Expanded:  p.ForwardExpanded + p.BackwardExpanded,
			Visited:   p.ForwardVisited + p.BackwardVisited,
			ElapsedMs: p.ElapsedMs,
		})
	}
	return doc
}

// Text returns the moves in notation, or "No solution".
func (d *Document) Text() string {
	if !d.Found {
		return "No solution"
	}
	notations := make([]string, len(d.Moves))
	for i, m := range d.Moves {
		notations[i] = m.Notation
	}
	return strings.Join(notations, " ")
}

// Encode serializes the document. Text and JSON end with a newline.
func (d *Document) Encode(f Format) ([]byte, error) {
	switch f {
	case FormatText:
		return []byte(d.Text() + "\n"), nil
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to marshal JSON: %w", err)
		}
		return append(data, '\n'), nil
	case FormatCBOR:
		data, err := encMode.Marshal(d)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal CBOR: %w", err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unknown format: %s", f)
	}
}

// DecodeCBOR parses a document written with FormatCBOR.
func DecodeCBOR(data []byte) (*Document, error) {
	var d Document
	if err := cbor.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal CBOR: %w", err)
	}
	return &d, nil
}
