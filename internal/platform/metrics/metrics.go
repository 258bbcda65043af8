package metrics

import (
	"sync/atomic"
	"time"
)

// Collector keeps cheap in-process request counters. It is intentionally not a
// full metrics pipeline; the snapshot is exposed on an admin-only endpoint.
type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal": total,
		"errorsTotal":   errs,
		"avgDurationMs": avg,
	}
}
