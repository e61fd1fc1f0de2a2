package reservation

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// ReservationDetail is a reservation plus what the caller may still change.
type ReservationDetail struct {
	Reservation *models.Reservation

	// Editable covers date, time and detail. Services and barber are
	// never editable.
	Editable      bool
	BlockedReason string
}

type GetReservation struct {
	repo domain.Store
	now  func() time.Time
}

func NewGetReservation(
	repo domain.Store,
	now func() time.Time,
) *GetReservation {
	return &GetReservation{
		repo: repo,
		now:  now,
	}
}

func (uc *GetReservation) Execute(
	ctx context.Context,
	id uint,
) (*ReservationDetail, error) {

	res, err := uc.repo.GetReservation(ctx, id)
	if err != nil {
		return nil, domain.Storage("get reservation", err)
	}

	out := &ReservationDetail{Reservation: res, Editable: true}
	if err := domain.EnsureEditable(res, uc.now()); err != nil {
		out.Editable = false
		out.BlockedReason = err.Error()
	}
	return out, nil
}
