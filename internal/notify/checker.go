package notify

import (
	"context"
	"log"
	"time"

	"maintenance-backend/internal/manager"
)

// Checker periodically evaluates maintenance alerts and dispatches a push
// notification the first time each equipment enters the alerted state. Once
// an equipment drops out of the alert list it is re-armed, so the next
// episode notifies again.
type Checker struct {
	mgr      *manager.Manager
	pool     *WorkerPool
	interval time.Duration
	notified map[string]bool
}

// NewChecker creates an alert checker.
func NewChecker(mgr *manager.Manager, pool *WorkerPool, interval time.Duration) *Checker {
	return &Checker{
		mgr:      mgr,
		pool:     pool,
		interval: interval,
		notified: make(map[string]bool),
	}
}

// Run evaluates alerts on a fixed interval until the context is cancelled.
func (c *Checker) Run(ctx context.Context) {
	log.Printf("Alert checker running every %s", c.interval)
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	c.CheckOnce()
	for {
		select {
		case <-ticker.C:
			c.CheckOnce()
		case <-ctx.Done():
			log.Println("Alert checker shutting down")
			return
		}
	}
}

// CheckOnce evaluates alerts a single time and dispatches newly alerted
// equipment to the worker pool.
func (c *Checker) CheckOnce() {
	alerts := c.mgr.MaintenanceAlerts()

	current := make(map[string]bool, len(alerts))
	for _, eq := range alerts {
		current[eq.ID] = true
		if c.notified[eq.ID] {
			continue
		}
		c.notified[eq.ID] = true
		c.pool.Dispatch(Alert{EquipmentID: eq.ID, EquipmentName: eq.Name})
	}

	// Re-arm equipment that left the alert list.
	for id := range c.notified {
		if !current[id] {
			delete(c.notified, id)
		}
	}
}
