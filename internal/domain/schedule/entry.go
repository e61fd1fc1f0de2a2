package schedule

import (
	"errors"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var (
	ErrWeekdayAndDate = errors.New("weekday and specific_date cannot both be set")
	ErrNoRuleKey      = errors.New("either weekday or specific_date is required")
	ErrInvalidWeekday = errors.New("weekday must be between 1 (Monday) and 7 (Sunday)")
	ErrInvalidDate    = errors.New("specific_date must be YYYY-MM-DD")
	ErrInvalidClock   = errors.New("invalid time of day")
	ErrEmptyWindow    = errors.New("end_time must be after start_time")
)

// ValidateEntry checks the invariants of a schedule row before it is stored.
func ValidateEntry(ws models.WorkingSchedule) error {
	hasWeekday := ws.Weekday != nil
	hasDate := ws.SpecificDate != nil && *ws.SpecificDate != ""

	switch {
	case hasWeekday && hasDate:
		return ErrWeekdayAndDate
	case !hasWeekday && !hasDate:
		return ErrNoRuleKey
	}

	if hasWeekday && (*ws.Weekday < 1 || *ws.Weekday > 7) {
		return ErrInvalidWeekday
	}
	if hasDate {
		if _, err := time.Parse(DateLayout, *ws.SpecificDate); err != nil {
			return ErrInvalidDate
		}
	}

	// A day off may be stored without hours.
	if !ws.Active && ws.StartTime == "" && ws.EndTime == "" {
		return nil
	}

	start, err := ParseClock(ws.StartTime)
	if err != nil {
		return err
	}
	end, err := ParseClock(ws.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return ErrEmptyWindow
	}

	return nil
}
