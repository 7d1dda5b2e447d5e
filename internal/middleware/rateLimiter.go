package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/akolanti/EarningsAPI/internal/config"
	"golang.org/x/time/rate"
)

// POST /summary starts a full pipeline run (EDGAR fetches plus six model
// calls), so submissions get their own, tighter budget than status polling.
var (
	limiterOnce    sync.Once
	pollLimiter    *clientLimiter
	summaryLimiter *clientLimiter
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// clientLimiter keeps one token bucket per client and forgets clients that
// have been quiet for longer than idleTTL.
type clientLimiter struct {
	mu        sync.Mutex
	visitors  map[string]*visitor
	limit     rate.Limit
	burst     int
	idleTTL   time.Duration
	lastSweep time.Time
	now       func() time.Time
}

func newClientLimiter(limit rate.Limit, burst int, idleTTL time.Duration) *clientLimiter {
	return &clientLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		burst:    burst,
		idleTTL:  idleTTL,
		now:      time.Now,
	}
}

func (c *clientLimiter) Allow(client string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	c.sweep(now)

	v, ok := c.visitors[client]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(c.limit, c.burst)}
		c.visitors[client] = v
	}
	v.lastSeen = now
	return v.limiter.AllowN(now, 1)
}

// sweep runs at most once per idleTTL.
func (c *clientLimiter) sweep(now time.Time) {
	if now.Sub(c.lastSweep) < c.idleTTL {
		return
	}
	for client, v := range c.visitors {
		if now.Sub(v.lastSeen) >= c.idleTTL {
			delete(c.visitors, client)
		}
	}
	c.lastSweep = now
}

func (c *clientLimiter) tracked() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.visitors)
}

func initLimiters() {
	if pollLimiter == nil {
		pollLimiter = newClientLimiter(rate.Limit(config.RATE_LIMIT_PER_SECOND), config.BURST_RATE_LIMIT_PER_SECOND, config.RateLimiterIdleTTL)
	}
	if summaryLimiter == nil {
		perMinute := config.SummaryRequestsPerMinute()
		summaryLimiter = newClientLimiter(rate.Every(time.Minute/time.Duration(max(perMinute, 1))), config.SummaryRequestBurst(), config.RateLimiterIdleTTL)
	}
}

func limiterFor(r *http.Request) *clientLimiter {
	limiterOnce.Do(initLimiters)
	if r.Method == http.MethodPost {
		return summaryLimiter
	}
	return pollLimiter
}
