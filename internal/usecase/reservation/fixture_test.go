package reservation

import (
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

var testLoc = time.FixedZone("BRT", -3*60*60)

// Saturday morning; the test Monday is two days later.
var testNow = time.Date(2030, time.June, 1, 8, 0, 0, 0, testLoc)

var monday = time.Date(2030, time.June, 3, 0, 0, 0, 0, testLoc)

func clockAt(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, testLoc)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

const barberID uint = 1

// newFixture: services 1 (30m), 2 (45m), 3 (60m); barber 1 offers 1 and 2,
// works Mondays 09:00-17:00 and has Tuesdays marked inactive. Client 1 is
// active.
func newFixture() *memStore {
	s := newMemStore()
	s.addClient("Rui", "555-0101", true)
	s.addService(1, 30)
	s.addService(2, 45)
	s.addService(3, 60)
	s.offer(barberID, 1, 2)
	s.addWeekly(barberID, 1, "09:00", "17:00", true)
	s.addWeekly(barberID, 2, "09:00", "12:00", false)
	return s
}

func seedReservation(s *memStore, start time.Time, durationMin int) uint {
	return s.addReservation(models.Reservation{
		ClientID:    1,
		BarberID:    barberID,
		StartAt:     start,
		DurationMin: durationMin,
	})
}
