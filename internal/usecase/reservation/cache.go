package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// invalidateDays drops cached slot listings touched by a committed write.
func invalidateDays(
	ctx context.Context,
	cache availability.Cache,
	barberID uint,
	days ...time.Time,
) {
	if cache == nil {
		return
	}
	for _, d := range days {
		cache.InvalidateDay(ctx, barberID, d.Format(schedule.DateLayout))
	}
}
