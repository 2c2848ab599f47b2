package runs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Janitor periodically sweeps expired runs out of a manager so the
// in-memory run table does not grow without bound.
type Janitor struct {
	manager   *Manager
	retention time.Duration
	interval  time.Duration
	log       *zap.Logger
}

func NewJanitor(m *Manager, retention, interval time.Duration, log *zap.Logger) *Janitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Janitor{manager: m, retention: retention, interval: interval, log: log}
}

// Start blocks until ctx is canceled; run it in a goroutine.
func (j *Janitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := j.manager.Sweep(j.retention); removed > 0 {
				j.log.Info("swept expired runs", zap.Int("removed", removed))
			}
		}
	}
}
