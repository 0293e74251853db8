// Package urlcache keeps one short-lived signed display URL per photo,
// renewing each entry shortly before it expires.
package urlcache

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"

	"github.com/AJMerr/little-moments-client/internal/dedupe"
	gl "github.com/AJMerr/little-moments-client/pkg/gallery"
)

const (
	// DefaultTTL is the lifetime requested from the backend for each URL.
	DefaultTTL = 5 * time.Minute

	// stalenessMargin is how close to expiry a cached URL may get before a
	// read triggers a fresh fetch instead.
	stalenessMargin = 10 * time.Second

	// renewalLead is how long before expiry the proactive renewal fires.
	renewalLead = 5 * time.Second

	// minRenewalDelay floors the renewal timer so a very short TTL or a
	// skewed clock cannot produce a tight renewal loop.
	minRenewalDelay = 10 * time.Second
)

// Source issues signed display URLs.
type Source interface {
	PhotoURL(ctx context.Context, id string, ttl time.Duration) (gl.SignedURL, error)
}

// CancelFunc stops a scheduled renewal.
type CancelFunc func()

// Scheduler runs a function once after a delay. It exists so tests can fire
// renewals deterministically.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) CancelFunc
}

type timerScheduler struct{}

func (timerScheduler) AfterFunc(d time.Duration, fn func()) CancelFunc {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Config contains the dependencies for a Cache. Source and Logger are
// required; the rest default to production implementations.
type Config struct {
	Source    Source
	Logger    tools.Logger
	Clock     clock.Clock
	Scheduler Scheduler
	TTL       time.Duration
}

// Cache is the per-photo signed URL cache. All fetches for one photo id are
// coalesced, and each successful fetch schedules a one-shot renewal before
// the returned expiry. Renewal stops when an entry is forgotten or the cache
// is reset; a failed renewal is logged and left for the next read to repair.
type Cache struct {
	source Source
	logger tools.Logger
	clock  clock.Clock
	sched  Scheduler
	ttl    time.Duration

	group dedupe.Group[gl.SignedURL]

	mu      sync.Mutex
	epoch   int
	gens    map[string]int
	entries map[string]gl.SignedURL
	timers  map[string]CancelFunc
}

// New creates a Cache from the provided config.
func New(c Config) (*Cache, error) {
	if c.Source == nil {
		return nil, errors.New("urlcache: source is required")
	}
	if c.Logger == nil {
		return nil, errors.New("urlcache: logger is required")
	}
	if c.Clock == nil {
		c.Clock = &clock.Default{}
	}
	if c.Scheduler == nil {
		c.Scheduler = timerScheduler{}
	}
	if c.TTL <= 0 {
		c.TTL = DefaultTTL
	}
	return &Cache{
		source:  c.Source,
		logger:  c.Logger,
		clock:   c.Clock,
		sched:   c.Scheduler,
		ttl:     c.TTL,
		gens:    make(map[string]int),
		entries: make(map[string]gl.SignedURL),
		timers:  make(map[string]CancelFunc),
	}, nil
}

// GetURL returns the cached signed URL for the photo, fetching a fresh one
// when no entry exists or the entry is within the staleness margin of expiry.
func (c *Cache) GetURL(ctx context.Context, id string) (gl.SignedURL, error) {
	c.mu.Lock()
	e, ok := c.entries[id]
	fresh := ok && e.ExpiresAt.Sub(c.clock.Now()) > stalenessMargin
	c.mu.Unlock()
	if fresh {
		return e, nil
	}
	return c.fetch(ctx, id)
}

// Recover fetches a fresh URL regardless of the cached entry's expiry. It is
// the reactive path for a render-time authorization failure; callers should
// gate it with a RenderRetry so a permanently broken photo is not retried
// forever.
func (c *Cache) Recover(ctx context.Context, id string) (gl.SignedURL, error) {
	return c.fetch(ctx, id)
}

// Forget cancels the photo's renewal and drops its entry. A fetch for the
// photo still in flight is discarded when it completes rather than allowed
// to re-insert the entry.
func (c *Cache) Forget(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[id]++
	if cancel, ok := c.timers[id]; ok {
		cancel()
		delete(c.timers, id)
	}
	delete(c.entries, id)
}

// Reset cancels every renewal and drops all entries. The cache remains
// usable; in-flight fetches from before the reset are discarded when they
// complete.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	for id, cancel := range c.timers {
		cancel()
		delete(c.timers, id)
	}
	c.gens = make(map[string]int)
	c.entries = make(map[string]gl.SignedURL)
}

func (c *Cache) fetch(ctx context.Context, id string) (gl.SignedURL, error) {
	c.mu.Lock()
	epoch := c.epoch
	gen := c.gens[id]
	c.mu.Unlock()

	u, err := c.group.Do(id, func() (gl.SignedURL, error) {
		return c.source.PhotoURL(ctx, id, c.ttl)
	})
	if err != nil {
		return gl.SignedURL{}, errors.Wrap(err, "fetch signed url")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch || gen != c.gens[id] {
		// Cache was reset or the entry forgotten while the fetch was in
		// flight; the caller still gets the URL but nothing is stored.
		return u, nil
	}
	c.entries[id] = u
	c.scheduleRenewalLocked(id, u.ExpiresAt, epoch)
	return u, nil
}

func (c *Cache) scheduleRenewalLocked(id string, expiresAt time.Time, epoch int) {
	if cancel, ok := c.timers[id]; ok {
		cancel()
	}
	delay := expiresAt.Sub(c.clock.Now()) - renewalLead
	if delay < minRenewalDelay {
		delay = minRenewalDelay
	}
	c.timers[id] = c.sched.AfterFunc(delay, func() { c.renew(id, epoch) })
}

// renew is the proactive timer callback. It re-fetches once; the fetch's
// success schedules the next cycle, so a failed renewal ends the chain and
// the next GetURL repairs the entry lazily.
func (c *Cache) renew(id string, epoch int) {
	c.mu.Lock()
	if epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	if _, ok := c.timers[id]; !ok {
		// Forgotten between firing and running.
		c.mu.Unlock()
		return
	}
	delete(c.timers, id)
	c.mu.Unlock()

	if _, err := c.fetch(context.Background(), id); err != nil {
		c.logger.Warn("[renew] signed url renewal failed",
			"photo_id", id,
			"details", err.Error(),
		)
	}
}

// RenderRetry limits reactive URL recovery to a single attempt for one
// render instance of a photo.
type RenderRetry struct {
	used bool
}

// Allow reports whether a recovery attempt may proceed, consuming the
// attempt when it does.
func (r *RenderRetry) Allow() bool {
	if r.used {
		return false
	}
	r.used = true
	return true
}
