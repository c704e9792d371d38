package offline

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"civictrack-be/models"
)

// MaxCachedIssues caps how many issues the snapshot record keeps.
const MaxCachedIssues = 20

// State of the connectivity machine.
type State string

const (
	StateOnline       State = "online"
	StateOffline      State = "offline"
	StateReconnecting State = "reconnecting"
)

// Probe checks whether the canonical issue source is reachable.
type Probe func(ctx context.Context) error

var errNoProbe = errors.New("no connectivity probe configured")

// Record is the persisted snapshot: the most recent issues (caller order,
// capped at MaxCachedIssues) plus the viewer location at cache time. It is
// replaced wholesale on every write, never merged.
type Record struct {
	Issues       []models.Issue   `json:"issues"`
	LastUpdated  time.Time        `json:"lastUpdated"`
	UserLocation *models.Location `json:"userLocation,omitempty"`
}

// Cache persists the latest issue snapshot and tracks connectivity to the
// canonical source. Storage failures are logged and degrade to cache-miss /
// no-op; they are never returned to the caller.
type Cache struct {
	store Store
	probe Probe
	now   func() time.Time

	mu    sync.Mutex
	state State
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) CacheOption {
	return func(c *Cache) { c.now = now }
}

// New builds a cache over store. probe is consulted by RetryConnection and
// may be nil, in which case retries always fail. The cache starts Online.
func New(store Store, probe Probe, opts ...CacheOption) *Cache {
	c := &Cache{
		store: store,
		probe: probe,
		now:   time.Now,
		state: StateOnline,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current connectivity state.
func (c *Cache) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsOnline reports whether the canonical source should be used.
func (c *Cache) IsOnline() bool {
	return c.State() == StateOnline
}

// MarkOffline records a lost connection.
func (c *Cache) MarkOffline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateOffline
}

// MarkOnline records a restored connection, clearing any reconnect attempt.
func (c *Cache) MarkOnline() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateOnline
}

// RetryConnection runs the liveness probe and reports whether the cache is
// online afterwards. Probe failures are swallowed: the state simply stays
// Offline.
func (c *Cache) RetryConnection(ctx context.Context) bool {
	c.mu.Lock()
	c.state = StateReconnecting
	c.mu.Unlock()

	err := c.runProbe(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateOffline
		return false
	}
	c.state = StateOnline
	return true
}

func (c *Cache) runProbe(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("offline: connectivity probe panicked: %v", r)
			err = errNoProbe
		}
	}()
	if c.probe == nil {
		return errNoProbe
	}
	return c.probe(ctx)
}

// CacheIssues replaces the snapshot with the first MaxCachedIssues elements
// of issues, in the order the caller supplied them. The per-view Distance
// field is stripped before persisting.
func (c *Cache) CacheIssues(ctx context.Context, issues []models.Issue, userLocation *models.Location) {
	keep := issues
	if len(keep) > MaxCachedIssues {
		keep = keep[:MaxCachedIssues]
	}

	snapshot := make([]models.Issue, len(keep))
	copy(snapshot, keep)
	for i := range snapshot {
		snapshot[i].Distance = nil
	}

	record := Record{
		Issues:       snapshot,
		LastUpdated:  c.now(),
		UserLocation: userLocation,
	}

	data, err := json.Marshal(record)
	if err != nil {
		log.Printf("offline: failed to encode cache record: %v", err)
		return
	}
	if err := c.store.Write(ctx, data); err != nil {
		log.Printf("offline: failed to write cache record: %v", err)
	}
}

// CachedIssues returns the last persisted snapshot, or an empty slice if
// nothing was ever cached or the record cannot be read.
func (c *Cache) CachedIssues(ctx context.Context) []models.Issue {
	record, ok := c.read(ctx)
	if !ok {
		return []models.Issue{}
	}
	return record.Issues
}

// CachedLocation returns the viewer location persisted with the snapshot.
func (c *Cache) CachedLocation(ctx context.Context) *models.Location {
	record, ok := c.read(ctx)
	if !ok {
		return nil
	}
	return record.UserLocation
}

// LastUpdate returns when the snapshot was last written, or nil if never.
func (c *Cache) LastUpdate(ctx context.Context) *time.Time {
	record, ok := c.read(ctx)
	if !ok {
		return nil
	}
	t := record.LastUpdated
	return &t
}

// ClearCache removes the persisted record entirely.
func (c *Cache) ClearCache(ctx context.Context) {
	if err := c.store.Delete(ctx); err != nil {
		log.Printf("offline: failed to clear cache: %v", err)
	}
}

func (c *Cache) read(ctx context.Context) (Record, bool) {
	data, ok, err := c.store.Read(ctx)
	if err != nil {
		log.Printf("offline: failed to read cache record: %v", err)
		return Record{}, false
	}
	if !ok {
		return Record{}, false
	}

	var record Record
	if err := json.Unmarshal(data, &record); err != nil {
		log.Printf("offline: corrupt cache record, treating as miss: %v", err)
		return Record{}, false
	}
	return record, true
}

// Watch polls the probe on the given interval and flips the connectivity
// state accordingly, standing in for platform online/offline events. It
// returns when ctx is done. A reconnect attempt in flight is left alone.
func Watch(ctx context.Context, c *Cache, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if c.State() == StateReconnecting {
				continue
			}
			if err := c.runProbe(ctx); err != nil {
				c.MarkOffline()
			} else {
				c.MarkOnline()
			}
		}
	}
}
