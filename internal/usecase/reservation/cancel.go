package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CancelReservation struct {
	repo  domain.Store
	audit *audit.Dispatcher
	cache availability.Cache
	now   func() time.Time
}

func NewCancelReservation(
	repo domain.Store,
	audit *audit.Dispatcher,
	cache availability.Cache,
	now func() time.Time,
) *CancelReservation {
	return &CancelReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
		now:   now,
	}
}

// Execute flips an ACTIVE reservation to CANCELLED and records the
// cancellation in the same transaction. A second call fails with a
// StateError and writes nothing.
func (uc *CancelReservation) Execute(
	ctx context.Context,
	id uint,
	actorID *uint,
) (*models.Reservation, error) {

	if id == 0 {
		return nil, domain.ErrValidation("missing_reservation", "reservation is required")
	}

	now := uc.now()

	var cancelled *models.Reservation

	err := uc.repo.Transaction(ctx, func(tx domain.Store) error {
		res, err := tx.GetReservationForUpdate(ctx, id)
		if err != nil {
			return domain.Storage("get reservation", err)
		}

		if err := domain.Cancel(res, now); err != nil {
			return err
		}

		if err := tx.UpdateReservationStatus(ctx, res.ID, domain.StatusCancelled, now); err != nil {
			return domain.Storage("update reservation status", err)
		}

		if err := tx.InsertCancellation(ctx, &models.ReservationCancellation{
			ReservationID: res.ID,
			CancelledAt:   now,
		}); err != nil {
			return domain.Storage("insert cancellation", err)
		}

		cancelled = res
		return nil
	})
	if err != nil {
		return nil, domain.Storage("cancel reservation", err)
	}

	invalidateDays(ctx, uc.cache, cancelled.BarberID, cancelled.StartAt)

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   audit.ActionReservationCancelled,
		Entity:   audit.EntityReservation,
		EntityID: &cancelled.ID,
	})

	return cancelled, nil
}
