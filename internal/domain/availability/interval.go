package availability

import "time"

// Interval is an occupied stretch of a barber's day.
type Interval struct {
	ReservationID uint      `json:"reservation_id,omitempty"`
	Start         time.Time `json:"start"`
	DurationMin   int       `json:"duration_min"`
}

func (i Interval) End() time.Time {
	return i.Start.Add(time.Duration(i.DurationMin) * time.Minute)
}
