package cuboid

import "errors"

// Sentinel errors for the cuboid package.
var (
	// Input errors. ErrInvalidLength and ErrInvalidColor both match
	// ErrInvalidState with errors.Is.
	ErrInvalidState  = errors.New("cuboid: invalid state")
	ErrInvalidLength = &stateError{msg: "cuboid: invalid state length"}
	ErrInvalidColor  = &stateError{msg: "cuboid: invalid facelet color"}
	ErrColorCount    = &stateError{msg: "cuboid: color counts do not match goal"}

	// Notation errors
	ErrUnknownMove = errors.New("cuboid: unknown move")

	// Construction errors
	ErrInvalidGeometry = errors.New("cuboid: invalid geometry table")
	ErrOptionViolation = errors.New("cuboid: invalid option supplied")
)

// stateError is a malformed-input error that also matches ErrInvalidState.
type stateError struct {
	msg string
}

func (e *stateError) Error() string {
	return e.msg
}

func (e *stateError) Is(target error) bool {
	return target == ErrInvalidState
}
