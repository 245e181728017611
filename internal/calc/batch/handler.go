package batch

import (
	"encoding/json"
	"errors"
	"net/http"

	"Barnframe/internal/calc/frame"
)

type Handler struct {
	Settings frame.Settings
}

func (h *Handler) Layout(w http.ResponseWriter, r *http.Request) {
	var input Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	res, err := Layout(r.Context(), input, h.Settings)
	if errors.Is(err, ErrNoItems) {
		http.Error(w, "No designs", http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Calculation error", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}
