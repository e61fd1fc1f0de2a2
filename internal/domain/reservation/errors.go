package reservation

import (
	"errors"
	"fmt"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

var ErrNotFound = errors.New("record not found")

// ValidationError is a malformed or missing input the caller can fix.
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func ErrValidation(code, message string) error {
	return &ValidationError{Code: code, Message: message}
}

// NotOfferedError means the barber does not provide at least one of the
// requested services.
type NotOfferedError struct {
	BarberID    uint
	ServiceIDs  []uint
	DurationMin int
}

func (e *NotOfferedError) Error() string {
	return "barber does not offer all of the selected services"
}

// ScheduleUnavailableError carries the closed outcome of schedule resolution.
type ScheduleUnavailableError struct {
	Resolution schedule.Resolution
}

func (e *ScheduleUnavailableError) Error() string { return e.Resolution.Reason() }

func (e *ScheduleUnavailableError) Outcome() schedule.Outcome { return e.Resolution.Outcome }

type ConflictReason string

const (
	ConflictPastClosing     ConflictReason = ConflictReason(availability.ReasonPastClosing)
	ConflictOverlap         ConflictReason = ConflictReason(availability.ReasonOverlap)
	ConflictBeforeOpening   ConflictReason = "before_opening"
	ConflictConcurrentWrite ConflictReason = "concurrent_write"
)

// ConflictError rejects a requested slot. DurationMin and Conflicts are
// returned to the caller for display.
type ConflictError struct {
	Reason      ConflictReason
	DurationMin int
	Conflicts   []availability.Interval
}

func (e *ConflictError) Error() string {
	switch e.Reason {
	case ConflictPastClosing:
		return "service would end after closing time"
	case ConflictBeforeOpening:
		return "requested time is before opening time"
	case ConflictConcurrentWrite:
		return "slot was taken by a concurrent request"
	default:
		return "requested time overlaps an existing reservation"
	}
}

// StateError is an illegal lifecycle transition.
type StateError struct {
	Code    string
	Message string
}

func (e *StateError) Error() string { return e.Message }

func ErrState(code, message string) error {
	return &StateError{Code: code, Message: message}
}

// StorageError hides a record store failure from callers; Err is kept for logs.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return "storage failure" }

func (e *StorageError) Unwrap() error { return e.Err }

// Storage wraps err unless it already belongs to the taxonomy.
func Storage(op string, err error) error {
	if err == nil || IsDomain(err) {
		return err
	}
	return &StorageError{Op: op, Err: fmt.Errorf("%s: %w", op, err)}
}

func IsDomain(err error) bool {
	var (
		ve *ValidationError
		no *NotOfferedError
		su *ScheduleUnavailableError
		ce *ConflictError
		se *StateError
		st *StorageError
	)
	return errors.Is(err, ErrNotFound) ||
		errors.As(err, &ve) ||
		errors.As(err, &no) ||
		errors.As(err, &su) ||
		errors.As(err, &ce) ||
		errors.As(err, &se) ||
		errors.As(err, &st)
}
