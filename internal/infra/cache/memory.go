package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/BruksfildServices01/barber-booking/internal/domain/availability"
	"github.com/BruksfildServices01/barber-booking/internal/metrics"
)

// MemorySlotCache is the in-process fallback used when no redis is configured.
type MemorySlotCache struct {
	items   *gocache.Cache
	metrics *metrics.Metrics

	// mu orders Set against invalidation.
	mu        sync.Mutex
	dayGen    map[string]int64
	barberGen map[uint]int64
}

func NewMemorySlotCache(ttl time.Duration, m *metrics.Metrics) *MemorySlotCache {
	return &MemorySlotCache{
		items:     gocache.New(ttl, 2*ttl),
		metrics:   m,
		dayGen:    map[string]int64{},
		barberGen: map[uint]int64{},
	}
}

func memoryKey(key availability.Key) string {
	return availability.DayScope(key.BarberID, key.Date) + "|" + key.ServicesField()
}

func (c *MemorySlotCache) Get(_ context.Context, key availability.Key) (*availability.Day, bool) {
	v, ok := c.items.Get(memoryKey(key))
	if !ok {
		c.metrics.ObserveCache(false)
		return nil, false
	}

	day := v.(availability.Day)
	c.metrics.ObserveCache(true)
	return &day, true
}

func (c *MemorySlotCache) Stamp(_ context.Context, key availability.Key) availability.Stamp {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stampLocked(key)
}

func (c *MemorySlotCache) stampLocked(key availability.Key) availability.Stamp {
	return availability.Stamp{
		Day:    c.dayGen[availability.DayScope(key.BarberID, key.Date)],
		Barber: c.barberGen[key.BarberID],
	}
}

func (c *MemorySlotCache) Set(_ context.Context, key availability.Key, day *availability.Day, stamp availability.Stamp) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stampLocked(key) != stamp {
		return
	}
	c.items.SetDefault(memoryKey(key), *day)
}

func (c *MemorySlotCache) InvalidateDay(_ context.Context, barberID uint, date string) {
	scope := availability.DayScope(barberID, date)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.dayGen[scope]++
	c.deletePrefix(scope + "|")
}

func (c *MemorySlotCache) InvalidateBarber(_ context.Context, barberID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.barberGen[barberID]++
	c.deletePrefix(availability.BarberScope(barberID))
}

func (c *MemorySlotCache) deletePrefix(prefix string) {
	for k := range c.items.Items() {
		if strings.HasPrefix(k, prefix) {
			c.items.Delete(k)
		}
	}
}

var _ availability.Cache = (*MemorySlotCache)(nil)
