package dispatch

import (
	"sync"
	"time"
)

// HealthStatus summarizes how an observer has been behaving recently.
type HealthStatus string

const (
	StatusHealthy  HealthStatus = "healthy"
	StatusDegraded HealthStatus = "degraded"
	StatusFailed   HealthStatus = "failed"
)

// failureThreshold is the number of consecutive failures that marks an
// observer failed. Any failure below it marks the observer degraded.
const failureThreshold = 3

// observerHealth tracks failures for one observer. It is written from
// executor tasks and the pre-phase and read by the registry.
type observerHealth struct {
	mu          sync.Mutex
	consecutive int
	total       int
	lastErr     string
	lastFail    time.Time
}

func (h *observerHealth) recordSuccess() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.consecutive = 0
}

func (h *observerHealth) recordFailure(err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.consecutive++
	h.total++
	h.lastErr = err.Error()
	h.lastFail = time.Now()
}

// snapshot returns a consistent copy of the health fields.
func (h *observerHealth) snapshot() (status HealthStatus, failures int, lastErr string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.statusLocked(), h.total, h.lastErr
}

// statusLocked computes health status. Caller must hold h.mu.
func (h *observerHealth) statusLocked() HealthStatus {
	switch {
	case h.consecutive >= failureThreshold:
		return StatusFailed
	case h.consecutive > 0:
		return StatusDegraded
	default:
		return StatusHealthy
	}
}

func (h *observerHealth) status() HealthStatus {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.statusLocked()
}
