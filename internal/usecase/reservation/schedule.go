package reservation

import (
	"context"
	"errors"
	"time"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func resolveSchedule(
	ctx context.Context,
	store domain.Store,
	barberID uint,
	day time.Time,
) (schedule.Resolution, error) {

	exception, err := store.FindScheduleException(ctx, barberID, day.Format(schedule.DateLayout))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return schedule.Resolution{}, domain.Storage("find schedule exception", err)
	}

	var weekly *models.WorkingSchedule
	if exception == nil {
		weekly, err = store.FindWeeklySchedule(ctx, barberID, schedule.Weekday(day))
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return schedule.Resolution{}, domain.Storage("find weekly schedule", err)
		}
	}

	res, err := schedule.Resolve(day, exception, weekly)
	if err != nil {
		return res, domain.Storage("resolve schedule", err)
	}
	return res, nil
}
