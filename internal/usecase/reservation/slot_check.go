package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// checkSlot is the write-path validation of one requested start. It must run
// inside a transaction: it takes the (barber, day) lock before reading the
// day's reservations.
func checkSlot(
	ctx context.Context,
	tx domain.Store,
	barberID uint,
	startAt time.Time,
	durationMin int,
	excludeID uint,
) error {

	day, _ := timezone.DayBounds(startAt)

	res, err := resolveSchedule(ctx, tx, barberID, day)
	if err != nil {
		return err
	}
	if !res.Open() {
		return &domain.ScheduleUnavailableError{Resolution: res}
	}

	if startAt.Before(res.Window.OpenOn(day)) {
		return &domain.ConflictError{
			Reason:      domain.ConflictBeforeOpening,
			DurationMin: durationMin,
		}
	}

	if err := tx.LockBarberDay(ctx, barberID, day); err != nil {
		return domain.Storage("lock barber day", err)
	}

	occupied, err := loadOccupancy(ctx, tx, barberID, day, excludeID, true)
	if err != nil {
		return err
	}

	decision := availability.Check(startAt, durationMin, res.Window.CloseOn(day), occupied)
	if !decision.Bookable {
		return &domain.ConflictError{
			Reason:      domain.ConflictReason(decision.Reason),
			DurationMin: durationMin,
			Conflicts:   decision.Conflicts,
		}
	}
	return nil
}
