// file: internal/token/cache.go

package token

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"apiprobe/internal/logger"
)

// Timing constants for the refresh loop
const (
	// DefaultRefreshBuffer is how long before expiry a token is renewed
	DefaultRefreshBuffer = 2 * time.Minute

	// defaultMinDelay is the floor for a computed refresh delay. Tokens whose
	// lifetime is shorter than the buffer refresh near-immediately instead of
	// producing a non-positive timer interval.
	defaultMinDelay = 1 * time.Second

	// defaultRetryDelay is the cadence for retrying after a failed refresh
	defaultRetryDelay = 30 * time.Second
)

// Cache holds the current bearer token and renews it in the background
// before it expires. Reads never block behind an in-flight issuer call;
// the lock covers only the credential swap. A failed refresh keeps the
// last good token in place and reschedules itself.
type Cache struct {
	fetcher    Fetcher
	buffer     time.Duration
	minDelay   time.Duration
	retryDelay time.Duration
	logger     *logger.Logger
	metrics    *Metrics
	onFault    func(error)

	mu      sync.RWMutex
	current Token
	ready   bool

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// Option configures a Cache
type Option func(*Cache)

// WithRefreshBuffer sets how long before expiry the token is renewed
func WithRefreshBuffer(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.buffer = d
		}
	}
}

// WithMinDelay sets the floor for computed refresh delays
func WithMinDelay(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.minDelay = d
		}
	}
}

// WithRetryDelay sets the retry cadence after a failed refresh
func WithRetryDelay(d time.Duration) Option {
	return func(c *Cache) {
		if d > 0 {
			c.retryDelay = d
		}
	}
}

// WithLogger sets the logger
func WithLogger(log *logger.Logger) Option {
	return func(c *Cache) {
		if log != nil {
			c.logger = log
		}
	}
}

// WithMetrics sets the metrics collector
func WithMetrics(m *Metrics) Option {
	return func(c *Cache) {
		c.metrics = m
	}
}

// WithFaultHook registers a callback invoked whenever a background refresh
// fails. The hook runs on the refresh goroutine and must not block.
func WithFaultHook(fn func(error)) Option {
	return func(c *Cache) {
		c.onFault = fn
	}
}

// NewCache creates a token cache around the given fetcher
func NewCache(fetcher Fetcher, opts ...Option) *Cache {
	c := &Cache{
		fetcher:    fetcher,
		buffer:     DefaultRefreshBuffer,
		minDelay:   defaultMinDelay,
		retryDelay: defaultRetryDelay,
		logger:     logger.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start performs the initial fetch synchronously and launches the refresh
// loop. Configuration and first-fetch errors propagate to the caller;
// nothing is scheduled when Start fails.
func (c *Cache) Start(ctx context.Context) error {
	if c.started {
		return fmt.Errorf("token cache already started")
	}

	tok, err := c.fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	c.store(tok)

	loopCtx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.started = true

	c.wg.Add(1)
	go c.refreshLoop(loopCtx, tok.Expiry)

	return nil
}

// refreshLoop drives periodic renewal until Stop is called
func (c *Cache) refreshLoop(ctx context.Context, firstExpiry time.Time) {
	defer c.wg.Done()

	delay := c.refreshDelay(firstExpiry)
	c.logger.Info("token refresh schedule established", "nextRefreshIn", delay)

	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("token refresh loop stopped")
			return

		case <-timer.C:
			timer.Reset(c.refresh(ctx))
		}
	}
}

// refresh performs one renewal attempt and returns the delay until the next
// one. On failure the last good token stays installed and the loop retries
// on a fixed cadence; a refresh error never stops the schedule.
func (c *Cache) refresh(ctx context.Context) time.Duration {
	start := time.Now()

	tok, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.logger.Error("token refresh failed",
			"error", err,
			"nextRetry", c.retryDelay)
		if c.metrics != nil {
			c.metrics.IncRefreshFailure()
		}
		if c.onFault != nil {
			c.onFault(err)
		}
		return c.retryDelay
	}

	c.store(tok)

	duration := time.Since(start)
	c.logger.Info("token refreshed",
		"expiry", tok.Expiry,
		"duration", duration)
	if c.metrics != nil {
		c.metrics.IncRefreshSuccess()
		c.metrics.ObserveRefreshDuration(duration.Seconds())
	}

	return c.refreshDelay(tok.Expiry)
}

// refreshDelay computes the time until the next renewal: expiry minus the
// buffer, clamped so the timer interval is always positive.
func (c *Cache) refreshDelay(expiry time.Time) time.Duration {
	delay := time.Until(expiry) - c.buffer
	if delay < c.minDelay {
		delay = c.minDelay
	}
	return delay
}

// store swaps in a new token. Token and expiry change together under the
// write lock; readers never observe a partial update.
func (c *Cache) store(t Token) {
	c.mu.Lock()
	c.current = t
	c.ready = true
	c.mu.Unlock()
}

// AccessToken returns the currently installed token string, or empty before
// the first successful fetch. Safe for concurrent use with the refresh loop.
func (c *Cache) AccessToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.AccessToken
}

// Current returns the installed token and whether one has been fetched yet
func (c *Cache) Current() (Token, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current, c.ready
}

// Token implements oauth2.TokenSource, so the cache can back an
// oauth2.NewClient transport directly.
func (c *Cache) Token() (*oauth2.Token, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.ready {
		return nil, fmt.Errorf("token cache not started")
	}
	return &oauth2.Token{AccessToken: c.current.AccessToken, Expiry: c.current.Expiry}, nil
}

// Stop cancels the refresh loop and waits for it to exit. The last token
// remains readable after Stop.
func (c *Cache) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.wg.Wait()
}
