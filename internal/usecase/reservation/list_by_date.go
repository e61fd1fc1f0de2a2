package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// ListReservationsByDate lists every reservation of a barber's day,
// cancelled ones included, ordered by start.
type ListReservationsByDate struct {
	repo domain.Store
}

func NewListReservationsByDate(repo domain.Store) *ListReservationsByDate {
	return &ListReservationsByDate{repo: repo}
}

func (uc *ListReservationsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]models.Reservation, error) {

	if barberID == 0 {
		return nil, domain.ErrValidation("missing_barber", "barber is required")
	}

	dayStart, dayEnd := timezone.DayBounds(date)

	out, err := uc.repo.ListReservationsForDay(ctx, barberID, dayStart, dayEnd)
	if err != nil {
		return nil, domain.Storage("list reservations", err)
	}
	return out, nil
}

// ListActiveReservations pages through the ACTIVE reservations of every
// barber, latest start first.
type ListActiveReservations struct {
	repo domain.Store
}

func NewListActiveReservations(repo domain.Store) *ListActiveReservations {
	return &ListActiveReservations{repo: repo}
}

func (uc *ListActiveReservations) Execute(
	ctx context.Context,
	limit int,
	offset int,
) ([]models.Reservation, int64, error) {

	if limit <= 0 {
		return nil, 0, domain.ErrValidation("invalid_limit", "limit must be positive")
	}

	out, total, err := uc.repo.ListActiveReservationsPage(ctx, limit, max(offset, 0))
	if err != nil {
		return nil, 0, domain.Storage("list active reservations", err)
	}
	return out, total, nil
}
