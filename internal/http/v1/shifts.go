package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RosterIO/rosterd/internal/models"
	"github.com/RosterIO/rosterd/internal/store"
)

// listShifts handles GET /shifts
func (a *api) listShifts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": a.Store.Shifts()})
}

// createShift handles POST /shifts
func (a *api) createShift(w http.ResponseWriter, r *http.Request) {
	var sh models.Shift
	if err := json.NewDecoder(r.Body).Decode(&sh); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if sh.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}
	created, err := a.Store.CreateShift(sh)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getShift handles GET /shifts/{shiftID}
func (a *api) getShift(w http.ResponseWriter, r *http.Request) {
	sh, ok := a.Store.Shift(chi.URLParam(r, "shiftID"))
	if !ok {
		writeError(w, http.StatusNotFound, "shift not found")
		return
	}
	writeJSON(w, http.StatusOK, sh)
}

// updateShift handles PUT /shifts/{shiftID}
func (a *api) updateShift(w http.ResponseWriter, r *http.Request) {
	var sh models.Shift
	if err := json.NewDecoder(r.Body).Decode(&sh); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := chi.URLParam(r, "shiftID")
	if err := a.Store.UpdateShift(id, sh); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shift not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	sh.ID = id
	writeJSON(w, http.StatusOK, sh)
}

// deleteShift handles DELETE /shifts/{shiftID}
func (a *api) deleteShift(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.DeleteShift(chi.URLParam(r, "shiftID")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "shift not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
