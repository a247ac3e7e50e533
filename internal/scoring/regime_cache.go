package scoring

import (
	"context"
	"sync"
	"time"

	"github.com/rxtech-lab/argo-signal-engine/internal/logger"
	"github.com/rxtech-lab/argo-signal-engine/internal/provider"
	"github.com/rxtech-lab/argo-signal-engine/internal/types"
	"go.uber.org/zap"
)

// RegimeCache reuses one market regime reading for a fixed window.
// A failed read is served as NEUTRAL and is not cached.
type RegimeCache struct {
	provider provider.RegimeProvider
	ttl      time.Duration
	clock    func() time.Time
	log      *logger.Logger

	mu        sync.Mutex
	reading   types.RegimeReading
	fetchedAt time.Time
	valid     bool
}

// NewRegimeCache wraps a regime provider. A nil clock uses time.Now.
func NewRegimeCache(p provider.RegimeProvider, ttl time.Duration, clock func() time.Time, log *logger.Logger) *RegimeCache {
	if clock == nil {
		clock = time.Now
	}

	return &RegimeCache{
		provider:  p,
		ttl:       ttl,
		clock:     clock,
		log:       log,
		mu:        sync.Mutex{},
		reading:   types.NeutralRegime(),
		fetchedAt: time.Time{},
		valid:     false,
	}
}

// Get returns the cached reading, refreshing it once the window has passed.
func (c *RegimeCache) Get(ctx context.Context) types.RegimeReading {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock()
	if c.valid && now.Sub(c.fetchedAt) < c.ttl {
		return c.reading
	}

	reading, err := c.provider.GetMarketRegime(ctx)
	if err != nil {
		c.log.Warn("Market regime unavailable, using NEUTRAL", zap.Error(err))

		return types.NeutralRegime()
	}

	c.reading = reading
	c.fetchedAt = now
	c.valid = true

	return reading
}

// Invalidate forces the next Get to hit the provider.
func (c *RegimeCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.valid = false
}
