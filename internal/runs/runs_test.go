package runs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosterIO/rosterd/internal/models"
)

func TestRunLifecycle(t *testing.T) {
	m := NewManager()

	r := m.Enqueue()
	require.NotEmpty(t, r.ID)
	assert.Equal(t, StatusQueued, r.Status)

	m.SetRunning(r.ID)
	got, ok := m.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, StatusRunning, got.Status)
	require.NotNil(t, got.StartedAt)

	m.SetProgress(r.ID, 50, "halfway")
	got, _ = m.Get(r.ID)
	assert.Equal(t, 50.0, got.Progress)
	assert.Equal(t, "halfway", got.Message)

	m.SetCompleted(r.ID, &models.SolveResponse{Status: "completed"})
	got, _ = m.Get(r.ID)
	assert.Equal(t, StatusCompleted, got.Status)
	assert.Equal(t, 100.0, got.Progress)
	require.NotNil(t, got.FinishedAt)
	require.NotNil(t, got.Result)
}

func TestRunFailure(t *testing.T) {
	m := NewManager()
	r := m.Enqueue()

	m.SetFailed(r.ID, "solver blew up")
	got, ok := m.Get(r.ID)
	require.True(t, ok)
	assert.Equal(t, StatusFailed, got.Status)
	assert.Equal(t, -1.0, got.Progress)
	assert.Equal(t, "solver blew up", got.Error)
}

func TestListNewestFirst(t *testing.T) {
	m := NewManager()
	first := m.Enqueue()

	// CreatedAt resolution is fine-grained but not guaranteed to
	// differ between immediate calls; nudge the first run back.
	m.mu.Lock()
	m.runs[first.ID].CreatedAt = m.runs[first.ID].CreatedAt.Add(-time.Second)
	m.mu.Unlock()

	second := m.Enqueue()

	list := m.List()
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestSweepRemovesOnlyExpiredFinishedRuns(t *testing.T) {
	m := NewManager()

	expired := m.Enqueue()
	m.SetCompleted(expired.ID, nil)
	m.mu.Lock()
	old := time.Now().UTC().Add(-2 * time.Hour)
	m.runs[expired.ID].FinishedAt = &old
	m.mu.Unlock()

	fresh := m.Enqueue()
	m.SetCompleted(fresh.ID, nil)

	active := m.Enqueue()
	m.SetRunning(active.ID)

	removed := m.Sweep(time.Hour)
	assert.Equal(t, 1, removed)

	_, ok := m.Get(expired.ID)
	assert.False(t, ok)
	_, ok = m.Get(fresh.ID)
	assert.True(t, ok)
	_, ok = m.Get(active.ID)
	assert.True(t, ok)
}

func TestDispatcherSubscribeAndPublish(t *testing.T) {
	m := NewManager()
	r := m.Enqueue()

	ch, cancel := m.Events().Subscribe(r.ID)
	defer cancel()

	m.SetProgress(r.ID, 30, "building model")

	select {
	case u := <-ch:
		assert.Equal(t, r.ID, u.RunID)
		assert.Equal(t, 30.0, u.Progress)
		assert.Equal(t, "building model", u.Message)
		assert.False(t, u.Timestamp.IsZero())
	case <-time.After(200 * time.Millisecond):
		t.Fatal("timed out waiting for update")
	}
}

func TestDispatcherDropsWhenSubscriberSlow(t *testing.T) {
	d := NewDispatcher()
	ch, cancel := d.Subscribe("run-1")
	defer cancel()

	// Fill the buffer past capacity; Publish must never block.
	for i := 0; i < 20; i++ {
		d.Publish(Update{RunID: "run-1", Progress: float64(i)})
	}
	assert.Equal(t, 8, len(ch))
}
