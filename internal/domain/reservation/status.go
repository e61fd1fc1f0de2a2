package reservation

// ===============================
// Reservation Status
// ===============================

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanCancel allows only ACTIVE -> CANCELLED.
func CanCancel(current Status) error {
	if current != StatusActive {
		return ErrState("already_cancelled", "reservation is already cancelled or completed")
	}
	return nil
}

// CanEdit rejects edits of anything that is not ACTIVE.
func CanEdit(current Status) error {
	if current != StatusActive {
		return ErrState("not_active", "only active reservations can be edited")
	}
	return nil
}

func InitialStatus() Status {
	return StatusActive
}
