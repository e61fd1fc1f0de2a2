package reservation

import (
	"context"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
)

// resolveDuration sums the requested services and checks the barber offers
// every one of them. serviceIDs must already be normalized.
func resolveDuration(
	ctx context.Context,
	store domain.Store,
	barberID uint,
	serviceIDs []uint,
) (int, error) {

	total, err := store.SumServiceDurations(ctx, serviceIDs)
	if err != nil {
		return 0, domain.Storage("sum service durations", err)
	}
	if total == 0 {
		return 0, domain.ErrValidation("services_not_available", "selected services are not valid")
	}

	offered, err := store.CountOfferedServices(ctx, barberID, serviceIDs)
	if err != nil {
		return 0, domain.Storage("count offered services", err)
	}
	if offered != len(serviceIDs) {
		return 0, &domain.NotOfferedError{
			BarberID:    barberID,
			ServiceIDs:  serviceIDs,
			DurationMin: total,
		}
	}

	return total, nil
}
