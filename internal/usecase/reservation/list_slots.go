package reservation

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
)

type ListSlotsInput struct {
	BarberID   uint
	Date       time.Time
	ServiceIDs []uint
}

// ListAvailableSlots is the read path. It takes no locks; its answer can be
// stale by the time a reservation is attempted.
type ListAvailableSlots struct {
	repo  domain.Store
	cache availability.Cache
	now   func() time.Time
}

func NewListAvailableSlots(
	repo domain.Store,
	cache availability.Cache,
	now func() time.Time,
) *ListAvailableSlots {
	return &ListAvailableSlots{
		repo:  repo,
		cache: cache,
		now:   now,
	}
}

func (uc *ListAvailableSlots) Execute(
	ctx context.Context,
	in ListSlotsInput,
) (*availability.Day, error) {

	if in.BarberID == 0 {
		return nil, domain.ErrValidation("missing_barber", "barber is required")
	}
	if in.Date.IsZero() {
		return nil, domain.ErrValidation("missing_date", "date is required")
	}

	serviceIDs, err := NormalizeServiceIDs(in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	day, _ := timezone.DayBounds(in.Date)
	now := uc.now()

	// Today's answer depends on the wall clock, so it is never cached.
	key := availability.Key{
		BarberID: in.BarberID,
		Date:     day.Format(schedule.DateLayout),
		Services: serviceIDs,
	}
	cacheable := uc.cache != nil && !availability.SameDay(day, now)

	var stamp availability.Stamp
	if cacheable {
		if cached, ok := uc.cache.Get(ctx, key); ok {
			return cached, nil
		}
		stamp = uc.cache.Stamp(ctx, key)
	}

	total, err := resolveDuration(ctx, uc.repo, in.BarberID, serviceIDs)
	if err != nil {
		return nil, err
	}

	res, err := resolveSchedule(ctx, uc.repo, in.BarberID, day)
	if err != nil {
		return nil, err
	}

	out := &availability.Day{
		Date:             key.Date,
		TotalDurationMin: total,
		Slots:            []string{},
		ExceptionApplied: res.ExceptionApplied,
		Outcome:          res.Outcome,
	}

	if !res.Open() {
		out.Message = res.Reason()
	} else {
		occupied, err := loadOccupancy(ctx, uc.repo, in.BarberID, day, 0, false)
		if err != nil {
			return nil, err
		}

		window := res.Window
		out.Window = &window

		for _, start := range availability.Slots(window, day, now, total, occupied) {
			out.Slots = append(out.Slots, start.Format(timezone.TimeLayout))
		}
	}

	if cacheable {
		uc.cache.Set(ctx, key, out, stamp)
	}
	return out, nil
}
