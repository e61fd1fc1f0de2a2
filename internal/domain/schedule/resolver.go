package schedule

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// Outcome tags how a (barber, date) pair resolved. Callers render a
// different message for each closed variant.
type Outcome string

const (
	OutcomeOpen               Outcome = "open"
	OutcomeNoWeeklyRule       Outcome = "no_weekly_rule"
	OutcomeInactiveWeeklyRule Outcome = "inactive_weekly_rule"
	OutcomeInactiveException  Outcome = "inactive_exception"
)

type Window struct {
	Start Clock `json:"start"`
	End   Clock `json:"end"`
}

// CloseOn is the closing instant of the window on the given day.
func (w Window) CloseOn(date time.Time) time.Time {
	return w.End.On(date)
}

func (w Window) OpenOn(date time.Time) time.Time {
	return w.Start.On(date)
}

type Resolution struct {
	Outcome          Outcome
	Window           Window
	ExceptionApplied bool
	Weekday          int
	Date             time.Time
}

func (r Resolution) Open() bool {
	return r.Outcome == OutcomeOpen
}

func (r Resolution) Reason() string {
	switch r.Outcome {
	case OutcomeInactiveException:
		return fmt.Sprintf("barber does not work on %s (day of rest)", r.Date.Format(DateLayout))
	case OutcomeNoWeeklyRule:
		return fmt.Sprintf("barber does not work on %s", WeekdayPlural(r.Weekday))
	case OutcomeInactiveWeeklyRule:
		return fmt.Sprintf("barber does not work on %s (inactive day)", WeekdayPlural(r.Weekday))
	default:
		return ""
	}
}

// Resolve applies exception-over-weekly precedence. exception and weekly are
// the rows found for the date and its weekday; either may be nil.
func Resolve(
	date time.Time,
	exception *models.WorkingSchedule,
	weekly *models.WorkingSchedule,
) (Resolution, error) {

	res := Resolution{
		Weekday: Weekday(date),
		Date:    date,
	}

	rule := exception
	if rule != nil {
		res.ExceptionApplied = true
		if !rule.Active {
			res.Outcome = OutcomeInactiveException
			return res, nil
		}
	} else {
		rule = weekly
		if rule == nil {
			res.Outcome = OutcomeNoWeeklyRule
			return res, nil
		}
		if !rule.Active {
			res.Outcome = OutcomeInactiveWeeklyRule
			return res, nil
		}
	}

	start, err := ParseClock(rule.StartTime)
	if err != nil {
		return res, fmt.Errorf("schedule %d: start: %w", rule.ID, err)
	}
	end, err := ParseClock(rule.EndTime)
	if err != nil {
		return res, fmt.Errorf("schedule %d: end: %w", rule.ID, err)
	}

	res.Outcome = OutcomeOpen
	res.Window = Window{Start: start, End: end}
	return res, nil
}
