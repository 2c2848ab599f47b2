package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RosterIO/rosterd/internal/models"
	"github.com/RosterIO/rosterd/internal/store"
)

// listCalendars handles GET /calendars
func (a *api) listCalendars(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": a.Store.Calendars()})
}

// createCalendar handles POST /calendars
func (a *api) createCalendar(w http.ResponseWriter, r *http.Request) {
	var c models.Calendar
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if c.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	created, err := a.Store.CreateCalendar(c)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getCalendar handles GET /calendars/{calendarID}
func (a *api) getCalendar(w http.ResponseWriter, r *http.Request) {
	c, ok := a.Store.Calendar(chi.URLParam(r, "calendarID"))
	if !ok {
		writeError(w, http.StatusNotFound, "calendar not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// updateCalendar handles PUT /calendars/{calendarID}
func (a *api) updateCalendar(w http.ResponseWriter, r *http.Request) {
	var c models.Calendar
	if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := chi.URLParam(r, "calendarID")
	if err := a.Store.UpdateCalendar(id, c); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "calendar not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	updated, _ := a.Store.Calendar(id)
	writeJSON(w, http.StatusOK, updated)
}

// deleteCalendar handles DELETE /calendars/{calendarID}
func (a *api) deleteCalendar(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.DeleteCalendar(chi.URLParam(r, "calendarID")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "calendar not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
