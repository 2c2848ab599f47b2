package solver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosterIO/rosterd/internal/models"
)

type stubRemote struct {
	resp  *models.SolveResponse
	err   error
	calls int
}

func (s *stubRemote) Solve(ctx context.Context, c models.Case) (*models.SolveResponse, error) {
	s.calls++
	return s.resp, s.err
}

func orchestratorCase() models.Case {
	return models.Case{
		Calendar:  models.CalendarInput{Days: []string{"2025-01-06"}},
		Shifts:    []models.Shift{{ID: "s1", Date: "2025-01-06", StartTime: "08:00", EndTime: "16:00"}},
		Providers: []models.Provider{{ID: "p1", Name: "Alice"}},
		Run:       models.RunConfig{K: 1},
	}
}

func TestRunPrefersExternalSolver(t *testing.T) {
	remote := &stubRemote{resp: &models.SolveResponse{Status: "completed", Message: "OR-Tools optimization completed"}}
	o := NewOrchestrator(remote, New(nil), nil)

	resp := o.Run(context.Background(), orchestratorCase(), "run-1", nil)
	assert.Equal(t, 1, remote.calls)
	assert.Equal(t, "completed", resp.Status)
	assert.Equal(t, "run-1", resp.RunID)
	assert.Contains(t, resp.Message, "OR-Tools")
}

func TestRunFallsBackWhenRemoteFails(t *testing.T) {
	remote := &stubRemote{err: errors.New("connection refused")}
	o := NewOrchestrator(remote, New(nil), nil)

	resp := o.Run(context.Background(), orchestratorCase(), "run-2", nil)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Results)
	assert.True(t, resp.Results.SolverStats.FallbackUsed)
	assert.Equal(t, SolverType, resp.Results.SolverStats.SolverType)
	require.NotNil(t, resp.Statistics)
	assert.True(t, resp.Statistics.Feasible)
}

func TestRunFallsBackWhenRemoteReportsError(t *testing.T) {
	remote := &stubRemote{resp: &models.SolveResponse{Status: "error", Message: "model invalid"}}
	o := NewOrchestrator(remote, New(nil), nil)

	resp := o.Run(context.Background(), orchestratorCase(), "run-3", nil)
	assert.Equal(t, "completed", resp.Status)
	require.NotNil(t, resp.Results)
	assert.True(t, resp.Results.SolverStats.FallbackUsed)
}

func TestRunWithoutRemoteUsesLocal(t *testing.T) {
	o := NewOrchestrator(nil, New(nil), nil)

	var progress []float64
	resp := o.Run(context.Background(), orchestratorCase(), "run-4", func(p float64, msg string) {
		progress = append(progress, p)
	})
	assert.Equal(t, "completed", resp.Status)
	assert.Contains(t, progress, 70.0)
	assert.Contains(t, progress, 100.0)
}

func TestRunValidationErrorIsFatal(t *testing.T) {
	o := NewOrchestrator(nil, New(nil), nil)
	c := orchestratorCase()
	c.Shifts = nil

	resp := o.Run(context.Background(), c, "run-5", nil)
	assert.Equal(t, "error", resp.Status)
	assert.Contains(t, resp.Message, "No shifts provided")
	require.NotNil(t, resp.Statistics)
	assert.False(t, resp.Statistics.Feasible)
	assert.Nil(t, resp.Results)
}
