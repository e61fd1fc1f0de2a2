package reservation

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// EditLeadTime is how long before the appointment edits stop being accepted.
const EditLeadTime = 24 * time.Hour

// ===============================
// Domain Actions
// ===============================

func Cancel(r *models.Reservation, now time.Time) error {
	if err := CanCancel(Status(r.Status)); err != nil {
		return err
	}

	r.Status = string(StatusCancelled)
	r.CancelledAt = &now
	return nil
}

// EnsureEditable enforces the ACTIVE status and the 24 hour edit lock,
// measured against the currently scheduled start.
func EnsureEditable(r *models.Reservation, now time.Time) error {
	if err := CanEdit(Status(r.Status)); err != nil {
		return err
	}

	if r.StartAt.Sub(now) < EditLeadTime {
		return ErrState("edit_window_closed", "reservation cannot be modified with less than 24 hours remaining")
	}
	return nil
}
