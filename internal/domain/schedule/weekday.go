package schedule

import "time"

// Weekday numbers days 1=Monday..7=Sunday.
func Weekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

var weekdayPlural = map[int]string{
	1: "Mondays",
	2: "Tuesdays",
	3: "Wednesdays",
	4: "Thursdays",
	5: "Fridays",
	6: "Saturdays",
	7: "Sundays",
}

func WeekdayPlural(weekday int) string {
	if name, ok := weekdayPlural[weekday]; ok {
		return name
	}
	return "that weekday"
}
