package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RosterIO/rosterd/internal/models"
)

func testSolveCase() models.Case {
	return models.Case{
		Calendar:  models.CalendarInput{Days: []string{"2025-01-06"}},
		Shifts:    []models.Shift{{ID: "s1", Date: "2025-01-06", StartTime: "08:00", EndTime: "16:00"}},
		Providers: []models.Provider{{ID: "p1", Name: "Alice"}},
		Run:       models.RunConfig{K: 1},
	}
}

func TestSolveRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/solve", r.URL.Path)

		var c models.Case
		require.NoError(t, json.NewDecoder(r.Body).Decode(&c))
		assert.Len(t, c.Shifts, 1)

		_ = json.NewEncoder(w).Encode(models.SolveResponse{
			Status:  "completed",
			Message: "OR-Tools optimization completed",
			RunID:   "ortools_run_1",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nil)
	out, err := c.Solve(context.Background(), testSolveCase())
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
}

func TestSolveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nil)
	_, err := c.Solve(context.Background(), testSolveCase())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	// No server listening: every request fails at the dial.
	c := NewClient("http://127.0.0.1:1", time.Second, nil)

	for i := 0; i < 3; i++ {
		_, err := c.Solve(context.Background(), testSolveCase())
		require.ErrorIs(t, err, ErrUnavailable)
	}

	// Breaker is now open: the failure is immediate, no dial attempt.
	_, err := c.Solve(context.Background(), testSolveCase())
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "circuit open")
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/health", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, nil)
	assert.NoError(t, c.Health(context.Background()))

	down := NewClient("http://127.0.0.1:1", time.Second, nil)
	assert.ErrorIs(t, down.Health(context.Background()), ErrUnavailable)
}
