package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/villaflora/go-resto-console/internal/auth"
	"github.com/villaflora/go-resto-console/internal/site"
)

// SiteHandler serves the routine restaurant-site content: the public menu
// and contact form, and their staff-side counterparts.
type SiteHandler struct {
	Repo     *site.Repo
	Sessions *auth.Sessions
}

func (h *SiteHandler) Register(r *chi.Mux) {
	r.Group(func(r chi.Router) {
		r.Use(Timeout())

		r.Get("/menu", h.listMenu)
		r.Post("/contact", h.createContact)

		r.Put("/staff/menu", h.upsertMenuItem)
		r.Get("/staff/contact", h.listContact)
	})
}

func (h *SiteHandler) authorized(w http.ResponseWriter, r *http.Request) bool {
	if _, err := h.Sessions.Authorize(r.Context(), bearerToken(r)); err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return false
	}
	return true
}

func (h *SiteHandler) listMenu(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Repo.ListMenu(ctx)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *SiteHandler) upsertMenuItem(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	var item site.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	saved, err := h.Repo.UpsertMenuItem(r.Context(), item)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (h *SiteHandler) createContact(w http.ResponseWriter, r *http.Request) {
	var msg site.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	saved, err := h.Repo.CreateContactMessage(r.Context(), msg)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusAccepted, saved)
}

func (h *SiteHandler) listContact(w http.ResponseWriter, r *http.Request) {
	if !h.authorized(w, r) {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	msgs, err := h.Repo.ListContactMessages(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}
