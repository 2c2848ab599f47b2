package runs

import (
	"sync"
	"time"
)

// Update is one progress event for a run.
type Update struct {
	RunID     string    `json:"run_id"`
	Status    Status    `json:"status"`
	Progress  float64   `json:"progress"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Dispatcher fans run updates out to per-run subscribers. Slow
// subscribers are skipped rather than blocking the run; they can
// always re-read the run state from the manager.
type Dispatcher struct {
	mu   sync.Mutex
	subs map[string]map[chan Update]struct{} // run id -> subscribers
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		subs: make(map[string]map[chan Update]struct{}),
	}
}

// Publish delivers an update to the run's subscribers.
func (d *Dispatcher) Publish(u Update) {
	if u.Timestamp.IsZero() {
		u.Timestamp = time.Now().UTC()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for ch := range d.subs[u.RunID] {
		select {
		case ch <- u:
		default:
			// drop for slow subscribers
		}
	}
}

// Subscribe creates a channel subscription for a run's updates.
// Caller must call the returned cancel func.
func (d *Dispatcher) Subscribe(runID string) (chan Update, func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ch := make(chan Update, 8)
	if d.subs[runID] == nil {
		d.subs[runID] = make(map[chan Update]struct{})
	}
	d.subs[runID][ch] = struct{}{}
	return ch, func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		if subs := d.subs[runID]; subs != nil {
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(d.subs, runID)
			}
		}
	}
}
