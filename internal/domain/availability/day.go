package availability

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/BruksfildServices01/barber-booking/internal/domain/schedule"
)

// Day answers a slot query for one barber, date and service set.
type Day struct {
	Date             string           `json:"date"`
	TotalDurationMin int              `json:"total_duration_min"`
	Slots            []string         `json:"available_start_times"`
	Window           *schedule.Window `json:"resolved_window,omitempty"`
	ExceptionApplied bool             `json:"exception_applied"`
	Outcome          schedule.Outcome `json:"outcome"`
	Message          string           `json:"message,omitempty"`
}

// Key identifies a cached Day. Services must be sorted.
type Key struct {
	BarberID uint
	Date     string
	Services []uint
}

func (k Key) ServicesField() string {
	parts := make([]string, len(k.Services))
	for i, id := range k.Services {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}

func DayScope(barberID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", barberID, date)
}

func BarberScope(barberID uint) string {
	return fmt.Sprintf("slots:%d:", barberID)
}

// Stamp is the invalidation generation of a key's day and barber scopes.
type Stamp struct {
	Day    int64
	Barber int64
}

// Cache holds computed Days between writes. Implementations are best
// effort: failures are logged and reported as misses.
//
// A reader takes a Stamp before computing a Day and hands it to Set, which
// drops the Day if either scope was invalidated in between.
type Cache interface {
	Get(ctx context.Context, key Key) (*Day, bool)
	Stamp(ctx context.Context, key Key) Stamp
	Set(ctx context.Context, key Key, day *Day, stamp Stamp)
	InvalidateDay(ctx context.Context, barberID uint, date string)
	InvalidateBarber(ctx context.Context, barberID uint)
}
