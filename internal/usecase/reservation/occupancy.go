package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

// loadOccupancy lists the ACTIVE reservations of the barber's day, in day's
// location. excludeID, when set, leaves one reservation out.
func loadOccupancy(
	ctx context.Context,
	store domain.Store,
	barberID uint,
	day time.Time,
	excludeID uint,
	forUpdate bool,
) ([]availability.Interval, error) {

	dayStart, dayEnd := timezone.DayBounds(day)

	occupied, err := store.ListActiveReservations(ctx, domain.OccupancyQuery{
		BarberID:  barberID,
		DayStart:  dayStart,
		DayEnd:    dayEnd,
		ExcludeID: excludeID,
		ForUpdate: forUpdate,
	})
	if err != nil {
		return nil, domain.Storage("list active reservations", err)
	}

	for i := range occupied {
		occupied[i].Start = occupied[i].Start.In(day.Location())
	}
	return occupied, nil
}
