package reservation

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	domain "github.com/BruksfildServices01/barber-booking/internal/domain/reservation"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

// memStore is an in-memory domain.Store. Transactions are fully serialized
// and roll back reservation state when fn fails.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	services      map[uint]models.Service
	offered       map[uint]map[uint]bool
	schedules     []models.WorkingSchedule
	reservations  map[uint]models.Reservation
	links         map[uint][]uint
	cancellations []models.ReservationCancellation
	clients       map[uint]models.Client
	nextID        uint
	nextClientID  uint

	scheduleLookups int
	dayLocks        int
	insertErr       error

	// onOccupancy runs after every occupancy read, outside the store lock.
	onOccupancy func()
}

func newMemStore() *memStore {
	return &memStore{
		services:     map[uint]models.Service{},
		offered:      map[uint]map[uint]bool{},
		reservations: map[uint]models.Reservation{},
		links:        map[uint][]uint{},
		clients:      map[uint]models.Client{},
		nextID:       1,
		nextClientID: 1,
	}
}

// -------- fixtures --------

func (s *memStore) addService(id uint, durationMin int) {
	s.services[id] = models.Service{ID: id, Name: "service", DurationMin: durationMin}
}

func (s *memStore) offer(barberID uint, serviceIDs ...uint) {
	if s.offered[barberID] == nil {
		s.offered[barberID] = map[uint]bool{}
	}
	for _, id := range serviceIDs {
		s.offered[barberID][id] = true
	}
}

func (s *memStore) addWeekly(barberID uint, weekday int, start, end string, active bool) {
	s.schedules = append(s.schedules, models.WorkingSchedule{
		ID:        uint(len(s.schedules) + 1),
		BarberID:  barberID,
		Weekday:   &weekday,
		StartTime: start,
		EndTime:   end,
		Active:    active,
	})
}

func (s *memStore) addException(barberID uint, date, start, end string, active bool) {
	s.schedules = append(s.schedules, models.WorkingSchedule{
		ID:           uint(len(s.schedules) + 1),
		BarberID:     barberID,
		SpecificDate: &date,
		StartTime:    start,
		EndTime:      end,
		Active:       active,
	})
}

func (s *memStore) addClient(name, phone string, active bool) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++
	s.clients[id] = models.Client{ID: id, Name: name, Phone: phone, Active: active}
	return id
}

func (s *memStore) clientCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *memStore) addReservation(r models.Reservation) uint {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID
	s.nextID++
	if r.Status == "" {
		r.Status = string(domain.StatusActive)
	}
	s.reservations[r.ID] = r
	return r.ID
}

func (s *memStore) reservation(id uint) models.Reservation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reservations[id]
}

func (s *memStore) activeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, r := range s.reservations {
		if r.Status == string(domain.StatusActive) {
			n++
		}
	}
	return n
}

// -------- domain.Store --------

func (s *memStore) SumServiceDurations(_ context.Context, ids []uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, id := range ids {
		total += s.services[id].DurationMin
	}
	return total, nil
}

func (s *memStore) CountOfferedServices(_ context.Context, barberID uint, ids []uint) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, id := range ids {
		if s.offered[barberID][id] {
			n++
		}
	}
	return n, nil
}

func (s *memStore) FindScheduleException(_ context.Context, barberID uint, date string) (*models.WorkingSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduleLookups++
	for _, ws := range s.schedules {
		if ws.BarberID == barberID && ws.SpecificDate != nil && *ws.SpecificDate == date {
			found := ws
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) FindWeeklySchedule(_ context.Context, barberID uint, weekday int) (*models.WorkingSchedule, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.scheduleLookups++
	for _, ws := range s.schedules {
		if ws.BarberID == barberID && ws.SpecificDate == nil && ws.Weekday != nil && *ws.Weekday == weekday {
			found := ws
			return &found, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memStore) ListActiveReservations(_ context.Context, q domain.OccupancyQuery) ([]availability.Interval, error) {
	if s.onOccupancy != nil {
		defer s.onOccupancy()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var out []availability.Interval
	for _, r := range s.reservations {
		if r.BarberID != q.BarberID || r.Status != string(domain.StatusActive) || r.ID == q.ExcludeID {
			continue
		}
		if r.StartAt.Before(q.DayStart) || !r.StartAt.Before(q.DayEnd) {
			continue
		}
		out = append(out, availability.Interval{
			ReservationID: r.ID,
			Start:         r.StartAt,
			DurationMin:   r.DurationMin,
		})
	}

	slices.SortFunc(out, func(a, b availability.Interval) int {
		return a.Start.Compare(b.Start)
	})
	return out, nil
}

func (s *memStore) LockBarberDay(context.Context, uint, time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayLocks++
	return nil
}

func (s *memStore) InsertReservation(_ context.Context, r *models.Reservation, ids []uint) error {
	if s.insertErr != nil {
		return s.insertErr
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID
	s.nextID++
	s.reservations[r.ID] = *r
	s.links[r.ID] = slices.Clone(ids)
	return nil
}

func (s *memStore) GetReservation(_ context.Context, id uint) (*models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reservations[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	for _, sid := range s.links[id] {
		r.Services = append(r.Services, s.services[sid])
	}
	return &r, nil
}

func (s *memStore) GetReservationForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	return s.GetReservation(ctx, id)
}

func (s *memStore) UpdateReservation(_ context.Context, r *models.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reservations[r.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.StartAt = r.StartAt
	stored.Detail = r.Detail
	s.reservations[r.ID] = stored
	return nil
}

func (s *memStore) UpdateReservationStatus(_ context.Context, id uint, status domain.Status, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.reservations[id]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Status = string(status)
	if status == domain.StatusCancelled {
		stored.CancelledAt = &at
	}
	s.reservations[id] = stored
	return nil
}

func (s *memStore) InsertCancellation(_ context.Context, c *models.ReservationCancellation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = uint(len(s.cancellations) + 1)
	s.cancellations = append(s.cancellations, *c)
	return nil
}

func (s *memStore) ListReservationsForDay(_ context.Context, barberID uint, dayStart, dayEnd time.Time) ([]models.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Reservation
	for _, r := range s.reservations {
		if r.BarberID == barberID && !r.StartAt.Before(dayStart) && r.StartAt.Before(dayEnd) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.Reservation) int {
		return a.StartAt.Compare(b.StartAt)
	})
	return out, nil
}

func (s *memStore) ListActiveReservationsPage(_ context.Context, limit int, offset int) ([]models.Reservation, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Reservation
	for _, r := range s.reservations {
		if r.Status == string(domain.StatusActive) {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b models.Reservation) int {
		if c := b.StartAt.Compare(a.StartAt); c != 0 {
			return c
		}
		return int(b.ID) - int(a.ID)
	})

	total := int64(len(out))
	out = out[min(offset, len(out)):]
	return out[:min(limit, len(out))], total, nil
}

func (s *memStore) GetClient(_ context.Context, id uint) (*models.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.clients[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (s *memStore) FindOrCreateClient(_ context.Context, c *models.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.clients {
		if existing.Phone == c.Phone {
			*c = existing
			return nil
		}
	}

	c.ID = s.nextClientID
	c.Active = true
	s.nextClientID++
	s.clients[c.ID] = *c
	return nil
}

func (s *memStore) Transaction(_ context.Context, fn func(tx domain.Store) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	savedReservations := maps.Clone(s.reservations)
	savedLinks := maps.Clone(s.links)
	savedCancellations := slices.Clone(s.cancellations)
	savedClients := maps.Clone(s.clients)
	savedNextID, savedNextClientID := s.nextID, s.nextClientID
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.reservations = savedReservations
		s.links = savedLinks
		s.cancellations = savedCancellations
		s.clients = savedClients
		s.nextID, s.nextClientID = savedNextID, savedNextClientID
		s.mu.Unlock()
		return err
	}
	return nil
}

var _ domain.Store = (*memStore)(nil)

// -------- slot cache --------

type memCache struct {
	mu          sync.Mutex
	days        map[string]availability.Day
	gens        map[string]int64
	gets        int
	invalidated []string
}

func newMemCache() *memCache {
	return &memCache{
		days: map[string]availability.Day{},
		gens: map[string]int64{},
	}
}

func cacheKey(k availability.Key) string {
	return availability.DayScope(k.BarberID, k.Date) + "|" + k.ServicesField()
}

func (c *memCache) Get(_ context.Context, k availability.Key) (*availability.Day, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gets++
	d, ok := c.days[cacheKey(k)]
	if !ok {
		return nil, false
	}
	return &d, true
}

func (c *memCache) Stamp(_ context.Context, k availability.Key) availability.Stamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stampLocked(k)
}

func (c *memCache) stampLocked(k availability.Key) availability.Stamp {
	return availability.Stamp{
		Day:    c.gens[availability.DayScope(k.BarberID, k.Date)],
		Barber: c.gens[availability.BarberScope(k.BarberID)],
	}
}

func (c *memCache) Set(_ context.Context, k availability.Key, d *availability.Day, stamp availability.Stamp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stampLocked(k) != stamp {
		return
	}
	c.days[cacheKey(k)] = *d
}

func (c *memCache) InvalidateDay(_ context.Context, barberID uint, date string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scope := availability.DayScope(barberID, date)
	c.gens[scope]++
	c.invalidated = append(c.invalidated, scope)
	for k := range c.days {
		if len(k) > len(scope) && k[:len(scope)+1] == scope+"|" {
			delete(c.days, k)
		}
	}
}

func (c *memCache) InvalidateBarber(_ context.Context, barberID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scope := availability.BarberScope(barberID)
	c.gens[scope]++
	c.invalidated = append(c.invalidated, scope)
	c.days = map[string]availability.Day{}
}
