package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidChangeSet marks pre-flight validation failures. A run failing with it
	// performed no side effects.
	ErrInvalidChangeSet = errors.New("invalid change set")

	// ErrDuplicateMapping marks attempts to map an ID already paired with another counterpart.
	ErrDuplicateMapping = errors.New("duplicate mapping")

	// ErrNotFound must be wrapped by SideAdapter implementations when an item does not exist.
	ErrNotFound = errors.New("item not found")

	// ErrConversion marks failures of a Converter.
	ErrConversion = errors.New("conversion failed")

	// ErrAborted is returned by Apply when FailFast stopped the run early.
	ErrAborted = errors.New("sync aborted")
)

// InvalidChangeSetError describes why a change set (or a conflict derived from it)
// cannot be processed.
type InvalidChangeSetError struct {
	Side   Side
	ID     string
	Reason string
	Err    error
}

func (e *InvalidChangeSetError) Error() string {
	msg := fmt.Sprintf("invalid change set for side %s: id %q: %s", e.Side, e.ID, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidChangeSetError) Is(target error) bool {
	return target == ErrInvalidChangeSet
}

func (e *InvalidChangeSetError) Unwrap() error {
	return e.Err
}

// DuplicateMappingError is returned when Put would break the bijection.
type DuplicateMappingError struct {
	IDA string
	IDB string
	// Existing is the pair already holding one of the IDs.
	Existing Pair
}

func (e *DuplicateMappingError) Error() string {
	return fmt.Sprintf("cannot map %q <-> %q: already mapped as %q <-> %q", e.IDA, e.IDB, e.Existing.A, e.Existing.B)
}

func (e *DuplicateMappingError) Is(target error) bool {
	return target == ErrDuplicateMapping
}

// Op names a SideAdapter operation.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
	OpGet    Op = "get"
)

// OpError wraps a SideAdapter failure with the operation, side and ID involved.
// errors.Is(err, ErrNotFound) sees through it.
type OpError struct {
	Op   Op
	Side Side
	ID   string
	Err  error
}

func (e *OpError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s on side %s: %v", e.Op, e.Side, e.Err)
	}
	return fmt.Sprintf("%s %q on side %s: %v", e.Op, e.ID, e.Side, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// ConversionError wraps a Converter failure.
type ConversionError struct {
	// From is the side the source item belongs to.
	From Side
	ID   string
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %q from side %s to side %s: %v", e.ID, e.From, e.From.Other(), e.Err)
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}
