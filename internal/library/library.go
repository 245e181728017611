// Package library serves the saved designs of the signed-in user.
package library

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"Barnframe/internal/auth"
	"Barnframe/internal/design"
	"Barnframe/internal/repo"
)

type Handler struct {
	Repo repo.DesignRepository
}

type SaveRequest struct {
	ID     string        `json:"id,omitempty"`
	Design design.Design `json:"design"`
}

// Entry is a design listing without its body.
type Entry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Items     int       `json:"items"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	designs, err := h.Repo.ListDesigns(r.Context(), userID)
	if err != nil {
		log.Error("list designs failed", "user", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	out := make([]Entry, 0, len(designs))
	for _, d := range designs {
		out = append(out, Entry{ID: d.ID, Name: d.Name, Items: len(d.Design.Items), UpdatedAt: d.UpdatedAt})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (h *Handler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	var req SaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	d := req.Design.Normalize()
	if err := d.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	saved, err := h.Repo.SaveDesign(r.Context(), userID, req.ID, d)
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Design not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("save design failed", "user", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	status := http.StatusCreated
	if req.ID != "" {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(saved)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	d, err := h.Repo.GetDesign(r.Context(), userID, mux.Vars(r)["id"])
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Design not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("get design failed", "user", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(d)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	err := h.Repo.DeleteDesign(r.Context(), userID, mux.Vars(r)["id"])
	if errors.Is(err, repo.ErrNotFound) {
		http.Error(w, "Design not found", http.StatusNotFound)
		return
	}
	if err != nil {
		log.Error("delete design failed", "user", userID, "err", err)
		http.Error(w, "DB error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Register mounts the handlers on an authenticated router.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/designs", h.List).Methods("GET")
	r.HandleFunc("/designs", h.Save).Methods("POST")
	r.HandleFunc("/designs/{id}", h.Get).Methods("GET")
	r.HandleFunc("/designs/{id}", h.Delete).Methods("DELETE")
}
