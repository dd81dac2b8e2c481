// Package catalog maintains a TTL-bounded snapshot of model profiles
// regenerated from a remote source feed.
package catalog

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"selectd/internal/profile"
	"selectd/pkg/types"
)

// DefaultTTL bounds snapshot age before the next read triggers a rebuild.
const DefaultTTL = 7 * 24 * time.Hour

var (
	rebuildsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "selectd",
		Subsystem: "catalog",
		Name:      "rebuilds_total",
		Help:      "Total successful catalog rebuilds",
	})
	rebuildFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "selectd",
		Subsystem: "catalog",
		Name:      "rebuild_failures_total",
		Help:      "Total failed catalog rebuilds",
	})
	profileCount = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "selectd",
		Subsystem: "catalog",
		Name:      "profiles",
		Help:      "Profiles in the current snapshot",
	})
)

func init() {
	prometheus.MustRegister(rebuildsTotal, rebuildFailures, profileCount)
}

// Cache owns a snapshot of profiles built from a single fetch generation.
// The snapshot is replaced wholesale on rebuild; readers never observe a
// mix of two generations. Not a process-wide singleton: construct one per
// engine (or per test) and inject it.
type Cache struct {
	// reqCh serializes all state access through the run loop, so a rebuild
	// in progress naturally queues concurrent readers behind it.
	reqCh chan cacheReq

	fetcher  Fetcher
	profiler *profile.Profiler
	ttl      time.Duration
	log      zerolog.Logger

	profiles      []types.ModelProfile
	lastRefreshed time.Time
}

type cacheReq struct {
	ctx   context.Context
	op    cacheOp
	reply chan cacheReply
}

type cacheOp int

const (
	opGet cacheOp = iota
	opClear
	opStats
)

type cacheReply struct {
	profiles      []types.ModelProfile
	lastRefreshed time.Time
	err           error
}

// NewCache builds a cache around a fetcher and profiler. ttl <= 0 selects
// DefaultTTL.
func NewCache(f Fetcher, p *profile.Profiler, ttl time.Duration, log zerolog.Logger) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := &Cache{
		reqCh:    make(chan cacheReq),
		fetcher:  f,
		profiler: p,
		ttl:      ttl,
		log:      log,
	}
	go c.run()
	return c
}

func (c *Cache) run() {
	for req := range c.reqCh {
		switch req.op {
		case opGet:
			profiles, err := c.ensure(req.ctx)
			req.reply <- cacheReply{profiles: profiles, lastRefreshed: c.lastRefreshed, err: err}
		case opClear:
			c.profiles = nil
			c.lastRefreshed = time.Time{}
			profileCount.Set(0)
			req.reply <- cacheReply{}
		case opStats:
			req.reply <- cacheReply{profiles: c.profiles, lastRefreshed: c.lastRefreshed}
		}
	}
}

// ensure returns the current snapshot, rebuilding it first when the cache
// is empty or past its TTL. Runs on the loop goroutine only.
func (c *Cache) ensure(ctx context.Context) ([]types.ModelProfile, error) {
	if len(c.profiles) > 0 && time.Since(c.lastRefreshed) <= c.ttl {
		return c.snapshot(), nil
	}
	descs, err := c.fetcher.FetchCatalog(ctx)
	if err != nil {
		// No stale serving: a failed rebuild leaves the cache empty until
		// the next successful fetch.
		c.profiles = nil
		c.lastRefreshed = time.Time{}
		rebuildFailures.Inc()
		profileCount.Set(0)
		return nil, err
	}
	next := make([]types.ModelProfile, 0, len(descs))
	skipped := 0
	for _, d := range descs {
		if d.ID == "" {
			skipped++
			c.log.Warn().Str("name", d.Name).Msg("skipping descriptor without id")
			continue
		}
		next = append(next, c.profiler.Profile(d))
	}
	c.profiles = next
	c.lastRefreshed = time.Now()
	rebuildsTotal.Inc()
	profileCount.Set(float64(len(next)))
	c.log.Info().Int("profiles", len(next)).Int("skipped", skipped).Msg("catalog rebuilt")
	return c.snapshot(), nil
}

func (c *Cache) snapshot() []types.ModelProfile {
	out := make([]types.ModelProfile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Profiles returns the snapshot, triggering a synchronous fetch-and-rebuild
// when the cache is empty or stale. Concurrent callers during a rebuild
// serialize behind it and then observe the fresh generation.
func (c *Cache) Profiles(ctx context.Context) ([]types.ModelProfile, error) {
	reply := make(chan cacheReply, 1)
	c.reqCh <- cacheReq{ctx: ctx, op: opGet, reply: reply}
	r := <-reply
	return r.profiles, r.err
}

// Clear forces the cache back to the empty state.
func (c *Cache) Clear() {
	reply := make(chan cacheReply, 1)
	c.reqCh <- cacheReq{op: opClear, reply: reply}
	<-reply
}

// Stats reports the current snapshot size and refresh time without
// triggering a rebuild.
func (c *Cache) Stats() (count int, lastRefreshed time.Time, ttl time.Duration) {
	reply := make(chan cacheReply, 1)
	c.reqCh <- cacheReq{op: opStats, reply: reply}
	r := <-reply
	return len(r.profiles), r.lastRefreshed, c.ttl
}

// Close stops the cache loop. No methods may be called afterwards.
func (c *Cache) Close() {
	close(c.reqCh)
}
