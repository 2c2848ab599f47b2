package runs

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/RosterIO/rosterd/internal/models"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run tracks one background optimization from submission to result.
type Run struct {
	ID         string                `json:"id"`
	Status     Status                `json:"status"`
	Progress   float64               `json:"progress"`
	Message    string                `json:"message"`
	CreatedAt  time.Time             `json:"created_at"`
	StartedAt  *time.Time            `json:"started_at,omitempty"`
	FinishedAt *time.Time            `json:"finished_at,omitempty"`
	Error      string                `json:"error,omitempty"`
	Result     *models.SolveResponse `json:"result,omitempty"`
}

type Manager struct {
	mu     sync.RWMutex
	runs   map[string]*Run
	events *Dispatcher
}

func NewManager() *Manager {
	return &Manager{
		runs:   make(map[string]*Run),
		events: NewDispatcher(),
	}
}

var Default = NewManager()

// Events exposes the progress dispatcher for subscribers (the
// websocket handler, mainly).
func (m *Manager) Events() *Dispatcher {
	return m.events
}

// Enqueue registers a new queued run and returns it.
func (m *Manager) Enqueue() *Run {
	r := &Run{
		ID:        uuid.NewString(),
		Status:    StatusQueued,
		Message:   "Optimization queued",
		CreatedAt: time.Now().UTC(),
	}
	m.mu.Lock()
	m.runs[r.ID] = r
	m.mu.Unlock()
	return r
}

// Get returns a copy of the run, so callers never see concurrent
// mutation.
func (m *Manager) Get(id string) (Run, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.runs[id]
	if !ok {
		return Run{}, false
	}
	return *r, true
}

// List returns all runs, newest first.
func (m *Manager) List() []Run {
	m.mu.RLock()
	out := make([]Run, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, *r)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// SetRunning marks a run as started and stamps StartedAt once.
func (m *Manager) SetRunning(id string) {
	m.mu.Lock()
	if r, ok := m.runs[id]; ok {
		now := time.Now().UTC()
		r.Status = StatusRunning
		r.Message = "Optimization running"
		if r.StartedAt == nil {
			r.StartedAt = &now
		}
	}
	m.mu.Unlock()
	m.events.Publish(Update{RunID: id, Status: StatusRunning, Message: "Optimization running"})
}

// SetProgress updates progress and notifies subscribers.
func (m *Manager) SetProgress(id string, progress float64, message string) {
	m.mu.Lock()
	if r, ok := m.runs[id]; ok {
		r.Progress = progress
		r.Message = message
	}
	m.mu.Unlock()
	m.events.Publish(Update{RunID: id, Status: StatusRunning, Progress: progress, Message: message})
}

// SetCompleted stores the final result and stamps FinishedAt.
func (m *Manager) SetCompleted(id string, result *models.SolveResponse) {
	m.mu.Lock()
	if r, ok := m.runs[id]; ok {
		now := time.Now().UTC()
		r.Status = StatusCompleted
		r.Progress = 100
		r.Message = "Optimization completed"
		r.FinishedAt = &now
		r.Error = ""
		r.Result = result
	}
	m.mu.Unlock()
	m.events.Publish(Update{RunID: id, Status: StatusCompleted, Progress: 100, Message: "Optimization completed"})
}

// SetFailed records a failure. Progress -1 mirrors what the dashboard
// expects for failed runs.
func (m *Manager) SetFailed(id string, errMsg string) {
	m.mu.Lock()
	if r, ok := m.runs[id]; ok {
		now := time.Now().UTC()
		r.Status = StatusFailed
		r.Progress = -1
		r.Message = errMsg
		r.FinishedAt = &now
		r.Error = errMsg
	}
	m.mu.Unlock()
	m.events.Publish(Update{RunID: id, Status: StatusFailed, Progress: -1, Message: errMsg})
}

// Sweep removes finished runs older than retention and returns how
// many were dropped.
func (m *Manager) Sweep(retention time.Duration) int {
	cutoff := time.Now().UTC().Add(-retention)
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, r := range m.runs {
		if r.FinishedAt != nil && r.FinishedAt.Before(cutoff) {
			delete(m.runs, id)
			removed++
		}
	}
	return removed
}
