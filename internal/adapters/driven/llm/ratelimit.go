package llm

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBackoff is used when a 429 response carries no Retry-After header.
const DefaultBackoff = 20 * time.Second

// Pacer spaces outbound provider requests with a token bucket and
// holds all requests back after the provider reports a rate limit.
// A nil *Pacer never blocks.
type Pacer struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
	now     func() time.Time
}

// NewPacer creates a pacer allowing requestsPerMinute requests.
// Returns nil when requestsPerMinute is not positive.
func NewPacer(requestsPerMinute int) *Pacer {
	if requestsPerMinute <= 0 {
		return nil
	}
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		now:     time.Now,
	}
}

// Wait blocks until a request may be sent.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return nil
	}

	p.mu.Lock()
	retryAt := p.retryAt
	p.mu.Unlock()

	if wait := retryAt.Sub(p.now()); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return p.limiter.Wait(ctx)
}

// Backoff defers further requests after a 429.
// retryAfter is the raw Retry-After header value in seconds; empty uses DefaultBackoff.
func (p *Pacer) Backoff(retryAfter string) {
	if p == nil {
		return
	}

	delay := DefaultBackoff
	if secs, err := strconv.Atoi(retryAfter); err == nil && secs > 0 {
		delay = time.Duration(secs) * time.Second
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if until := p.now().Add(delay); until.After(p.retryAt) {
		p.retryAt = until
	}
}

// RetryAt returns the time before which requests are held back.
func (p *Pacer) RetryAt() time.Time {
	if p == nil {
		return time.Time{}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.retryAt
}
