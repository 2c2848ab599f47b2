package v1

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/RosterIO/rosterd/internal/artifacts"
	"github.com/RosterIO/rosterd/internal/runs"
)

// listRuns handles GET /runs
func (a *api) listRuns(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"runs": a.Runs.List()})
}

// getRun handles GET /runs/{runID}
func (a *api) getRun(w http.ResponseWriter, r *http.Request) {
	run, ok := a.Runs.Get(chi.URLParam(r, "runID"))
	if !ok {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	writeJSON(w, http.StatusOK, run)
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The dashboard may be served from a different origin than the API.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// runProgressWS handles GET /runs/{runID}/ws: streams progress
// updates for one run until the run finishes or the client hangs up.
func (a *api) runProgressWS(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return // Upgrade already wrote the error response
	}
	defer func() { _ = conn.Close() }()

	ch, cancel := a.Runs.Events().Subscribe(runID)
	defer cancel()

	// Send the current state first, so late subscribers are not stuck
	// waiting for the next transition.
	if run, ok := a.Runs.Get(runID); ok {
		if err := conn.WriteJSON(runs.Update{
			RunID:    run.ID,
			Status:   run.Status,
			Progress: run.Progress,
			Message:  run.Message,
		}); err != nil {
			return
		}
		if run.Status == runs.StatusCompleted || run.Status == runs.StatusFailed {
			return
		}
	}

	// Reader goroutine: we ignore client messages but need the read
	// loop to notice a closed connection.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case u, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(u); err != nil {
				return
			}
			if u.Status == runs.StatusCompleted || u.Status == runs.StatusFailed {
				return
			}
		}
	}
}

// listRunArtifacts handles GET /runs/{runID}/artifacts
func (a *api) listRunArtifacts(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	files, err := a.Artifacts.List(runID)
	if err != nil {
		if errors.Is(err, artifacts.ErrNotFound) {
			writeError(w, http.StatusNotFound, "no artifacts for run")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"run_id": runID, "files": files})
}

// downloadRunArtifact handles GET /runs/{runID}/artifacts/{name}
func (a *api) downloadRunArtifact(w http.ResponseWriter, r *http.Request) {
	runID := chi.URLParam(r, "runID")
	name := chi.URLParam(r, "name")

	f, err := a.Artifacts.Open(runID, name)
	if err != nil {
		if errors.Is(err, artifacts.ErrNotFound) {
			writeError(w, http.StatusNotFound, "artifact not found")
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	defer func() { _ = f.Close() }()

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+`"`)
	if _, err := io.Copy(w, f); err != nil {
		a.Log.Warn("artifact download aborted", zap.String("run_id", runID), zap.Error(err))
	}
}
