package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ============================================================================
// ERRORS — Typed failures surfaced to the caller
// ============================================================================
// Every error type matches its sentinel through errors.Is, so callers can
// branch on the sentinel and still read the details with errors.As.
// Operations never return partial results alongside an error.
// ============================================================================

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrLengthMismatch  = errors.New("length mismatch")
	ErrInvalidValue    = errors.New("invalid value")
	ErrNilDataset      = errors.New("nil dataset")
)

// ColumnNotFoundError reports a reference to a column the dataset lacks.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	if len(e.Available) == 0 {
		return fmt.Sprintf("column %q not found", e.Column)
	}
	return fmt.Sprintf("column %q not found (available: %s)", e.Column, strings.Join(e.Available, ", "))
}

func (e *ColumnNotFoundError) Is(target error) bool { return target == ErrColumnNotFound }

// TypeMismatchError reports values of incomparable kinds, or a Go type
// that has no Value representation.
type TypeMismatchError struct {
	Column string
	Want   Kind
	Got    Kind
	GoType string
}

func (e *TypeMismatchError) Error() string {
	var msg string
	if e.GoType != "" {
		msg = fmt.Sprintf("unsupported value type %s", e.GoType)
	} else {
		msg = fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
	}
	if e.Column != "" {
		return fmt.Sprintf("column %q: %s", e.Column, msg)
	}
	return msg
}

func (e *TypeMismatchError) Is(target error) bool { return target == ErrTypeMismatch }

// DuplicateColumnError reports a column name used twice in one schema.
type DuplicateColumnError struct {
	Column string
}

func (e *DuplicateColumnError) Error() string {
	return fmt.Sprintf("column %q already exists", e.Column)
}

func (e *DuplicateColumnError) Is(target error) bool { return target == ErrDuplicateColumn }

// LengthMismatchError reports columns (or slices) of unequal length.
type LengthMismatchError struct {
	Column string
	Want   int
	Got    int
}

func (e *LengthMismatchError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("column %q has %d rows, want %d", e.Column, e.Got, e.Want)
	}
	return fmt.Sprintf("length mismatch: want %d, got %d", e.Want, e.Got)
}

func (e *LengthMismatchError) Is(target error) bool { return target == ErrLengthMismatch }

// InvalidValueError reports a cell that cannot take part in grouping:
// the zero Value, a NaN, or an empty column name.
type InvalidValueError struct {
	Column string
	Row    int
	Reason string
}

func (e *InvalidValueError) Error() string {
	switch {
	case e.Column == "" && e.Row < 0:
		return e.Reason
	case e.Row < 0:
		return fmt.Sprintf("column %q: %s", e.Column, e.Reason)
	}
	return fmt.Sprintf("column %q row %d: %s", e.Column, e.Row, e.Reason)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }
