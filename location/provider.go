package location

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"civictrack-be/geo"
	"civictrack-be/models"
)

// Error kinds surfaced when a position fix cannot be obtained. All of them
// are retryable; none is fatal to the process.
var (
	ErrPermissionDenied    = errors.New("location access denied")
	ErrPositionUnavailable = errors.New("location information unavailable")
	ErrTimeout             = errors.New("location request timed out")
	ErrUnsupported         = errors.New("geolocation is not supported")
)

const (
	// DefaultTimeout bounds a single device query.
	DefaultTimeout = 10 * time.Second
	// DefaultMaxAge is how old a cached fix may be before the device is
	// queried again.
	DefaultMaxAge = 5 * time.Minute
)

// Provider yields the viewer's current location. Implementations must only
// query the underlying device when Current is called, never at construction.
type Provider interface {
	Current(ctx context.Context) (models.Location, error)
}

// Geocoder resolves a coordinate to a human-readable address. Optional
// collaborator; when absent a placeholder address is used.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, c geo.Coordinate) (string, error)
}

// PlaceholderAddress formats a coordinate the way the UI shows it when no
// geocoding service is wired in.
func PlaceholderAddress(c geo.Coordinate) string {
	return fmt.Sprintf("%.4f, %.4f", c.Latitude, c.Longitude)
}

// StaticProvider always returns a fixed location. Used in development and
// tests in place of a real positioning device.
type StaticProvider struct {
	Fix models.Location
}

func (p StaticProvider) Current(ctx context.Context) (models.Location, error) {
	if err := ctx.Err(); err != nil {
		return models.Location{}, ErrTimeout
	}
	return p.Fix, nil
}

// CachedProvider wraps a position source with the platform's maximumAge and
// timeout semantics: a fix obtained within MaxAge is reused without a new
// device query, and each device query is bounded by Timeout.
type CachedProvider struct {
	source   Provider
	geocoder Geocoder
	timeout  time.Duration
	maxAge   time.Duration
	now      func() time.Time

	mu     sync.Mutex
	fix    models.Location
	fixAt  time.Time
	hasFix bool
}

// Option configures a CachedProvider.
type Option func(*CachedProvider)

// WithGeocoder wires a reverse-geocoding collaborator.
func WithGeocoder(g Geocoder) Option {
	return func(p *CachedProvider) { p.geocoder = g }
}

// WithTimeout overrides the per-query timeout.
func WithTimeout(d time.Duration) Option {
	return func(p *CachedProvider) { p.timeout = d }
}

// WithMaxAge overrides how long a fix stays fresh.
func WithMaxAge(d time.Duration) Option {
	return func(p *CachedProvider) { p.maxAge = d }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(p *CachedProvider) { p.now = now }
}

// NewCachedProvider wraps source. It performs no device query until Current
// is called.
func NewCachedProvider(source Provider, opts ...Option) *CachedProvider {
	if source == nil {
		panic("location: nil source")
	}
	p := &CachedProvider{
		source:  source,
		timeout: DefaultTimeout,
		maxAge:  DefaultMaxAge,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Current returns the viewer's location, reusing a fix younger than MaxAge.
func (p *CachedProvider) Current(ctx context.Context) (models.Location, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.hasFix && p.now().Sub(p.fixAt) <= p.maxAge {
		return p.fix, nil
	}

	queryCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	loc, err := p.source.Current(queryCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(queryCtx.Err(), context.DeadlineExceeded) {
			return models.Location{}, ErrTimeout
		}
		return models.Location{}, err
	}

	if loc.Address == "" {
		loc.Address = p.resolveAddress(queryCtx, loc.Coordinate())
	}

	p.fix = loc
	p.fixAt = p.now()
	p.hasFix = true
	return loc, nil
}

func (p *CachedProvider) resolveAddress(ctx context.Context, c geo.Coordinate) string {
	if p.geocoder != nil {
		if addr, err := p.geocoder.ReverseGeocode(ctx, c); err == nil && addr != "" {
			return addr
		}
	}
	return PlaceholderAddress(c)
}
