package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ======================================================
// INPUT
// ======================================================

// EditReservationInput changes the start and/or the detail. Nil fields are
// left as they are; services and barber cannot be edited.
type EditReservationInput struct {
	ID      uint
	StartAt *time.Time
	Detail  *string

	ActorID *uint
}

// ======================================================
// USE CASE
// ======================================================

type EditReservation struct {
	repo  domain.Store
	audit *audit.Dispatcher
	cache availability.Cache
	now   func() time.Time
}

func NewEditReservation(
	repo domain.Store,
	audit *audit.Dispatcher,
	cache availability.Cache,
	now func() time.Time,
) *EditReservation {
	return &EditReservation{
		repo:  repo,
		audit: audit,
		cache: cache,
		now:   now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *EditReservation) Execute(
	ctx context.Context,
	in EditReservationInput,
) (*models.Reservation, error) {

	if in.ID == 0 {
		return nil, domain.ErrValidation("missing_reservation", "reservation is required")
	}
	if in.StartAt == nil && in.Detail == nil {
		return nil, domain.ErrValidation("nothing_to_update", "start or detail must be provided")
	}

	now := uc.now()

	var (
		updated  *models.Reservation
		oldStart time.Time
		moved    bool
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Store) error {
		res, err := tx.GetReservationForUpdate(ctx, in.ID)
		if err != nil {
			return domain.Storage("get reservation", err)
		}

		if err := domain.EnsureEditable(res, now); err != nil {
			return err
		}

		oldStart = res.StartAt

		if in.StartAt != nil && !in.StartAt.Equal(res.StartAt) {
			if in.StartAt.Before(now) {
				return domain.ErrValidation("start_in_past", "requested time has already passed")
			}

			// The stored duration is authoritative; services never change.
			if err := checkSlot(ctx, tx, res.BarberID, *in.StartAt, res.DurationMin, res.ID); err != nil {
				return err
			}

			res.StartAt = *in.StartAt
			moved = true
		}

		if in.Detail != nil {
			res.Detail = *in.Detail
		}

		if err := tx.UpdateReservation(ctx, res); err != nil {
			return domain.Storage("update reservation", err)
		}

		updated = res
		return nil
	})
	if err != nil {
		return nil, domain.Storage("edit reservation", err)
	}

	if moved {
		invalidateDays(ctx, uc.cache, updated.BarberID, oldStart, updated.StartAt)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   in.ActorID,
		Action:   audit.ActionReservationEdited,
		Entity:   audit.EntityReservation,
		EntityID: &updated.ID,
		Metadata: map[string]any{
			"previous_start": oldStart,
			"start":          updated.StartAt,
			"detail":         updated.Detail,
		},
	})

	return updated, nil
}
