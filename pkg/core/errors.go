package core

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRange is returned for positions or layers outside the board.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidArgument is returned for placements onto an occupied cell and
	// other rejected inputs.
	ErrInvalidArgument = errors.New("invalid argument")
)

// ErrorCode categorizes board errors.
type ErrorCode string

const (
	// CodeOutOfRange marks position or layer bound violations.
	CodeOutOfRange ErrorCode = "OUT_OF_RANGE"
	// CodeOccupied marks a placement onto an occupied cell.
	CodeOccupied ErrorCode = "OCCUPIED"
)

// BoardError carries the operation and location that failed.
type BoardError struct {
	Op    string
	Code  ErrorCode
	Pos   *Pos
	Layer int
	Err   error
}

func (e *BoardError) Error() string {
	if e.Pos != nil {
		return fmt.Sprintf("%s: %s (pos=%s, layer=%d): %v", e.Op, e.Code, e.Pos, e.Layer, e.Err)
	}
	return fmt.Sprintf("%s: %s (layer=%d): %v", e.Op, e.Code, e.Layer, e.Err)
}

func (e *BoardError) Unwrap() error { return e.Err }

// IsOutOfRange reports whether err wraps ErrOutOfRange.
func IsOutOfRange(err error) bool { return errors.Is(err, ErrOutOfRange) }

// IsInvalidArgument reports whether err wraps ErrInvalidArgument.
func IsInvalidArgument(err error) bool { return errors.Is(err, ErrInvalidArgument) }
