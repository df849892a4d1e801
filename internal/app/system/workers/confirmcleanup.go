// internal/app/system/workers/confirmcleanup.go
package workers

import (
	"sync"
	"time"

	"github.com/dalemusser/employeehub/internal/app/system/confirm"
	"go.uber.org/zap"
)

// ConfirmCleanup is a background worker that drops confirmation
// coordinators of sessions that have gone quiet, rejecting any request
// still open on them.
type ConfirmCleanup struct {
	registry *confirm.Registry
	log      *zap.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewConfirmCleanup creates a new cleanup worker.
//
// Parameters:
//   - registry: the per-session confirmation registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
func NewConfirmCleanup(registry *confirm.Registry, logger *zap.Logger, interval time.Duration) *ConfirmCleanup {
	return &ConfirmCleanup{
		registry: registry,
		log:      logger,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the background cleanup loop.
func (w *ConfirmCleanup) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("confirm cleanup worker started",
		zap.Duration("interval", w.interval))
}

// Stop signals the worker to stop and waits for it to finish.
// It is safe to call more than once.
func (w *ConfirmCleanup) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("confirm cleanup worker stopped")
	})
}

func (w *ConfirmCleanup) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.sweep()
		}
	}
}

func (w *ConfirmCleanup) sweep() {
	if n := w.registry.Sweep(w.now()); n > 0 {
		w.log.Info("dropped idle confirmation sessions",
			zap.Int("count", n),
			zap.Int("remaining", w.registry.Len()))
	}
}
