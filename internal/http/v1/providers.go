package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/RosterIO/rosterd/internal/models"
	"github.com/RosterIO/rosterd/internal/store"
)

// listProviders handles GET /providers
func (a *api) listProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": a.Store.Providers()})
}

// createProvider handles POST /providers
func (a *api) createProvider(w http.ResponseWriter, r *http.Request) {
	var p models.Provider
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	created, err := a.Store.CreateProvider(p)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// getProvider handles GET /providers/{providerID}
func (a *api) getProvider(w http.ResponseWriter, r *http.Request) {
	p, ok := a.Store.Provider(chi.URLParam(r, "providerID"))
	if !ok {
		writeError(w, http.StatusNotFound, "provider not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// updateProvider handles PUT /providers/{providerID}
func (a *api) updateProvider(w http.ResponseWriter, r *http.Request) {
	var p models.Provider
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id := chi.URLParam(r, "providerID")
	if err := a.Store.UpdateProvider(id, p); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "provider not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	p.ID = id
	writeJSON(w, http.StatusOK, p)
}

// deleteProvider handles DELETE /providers/{providerID}
func (a *api) deleteProvider(w http.ResponseWriter, r *http.Request) {
	if err := a.Store.DeleteProvider(chi.URLParam(r, "providerID")); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "provider not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
