package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"enquetebot/internal/core/domain"
	"enquetebot/internal/core/ports"
)

type PollHandler struct {
	service ports.PollService
}

func NewPollHandler(service ports.PollService) *PollHandler {
	return &PollHandler{
		service: service,
	}
}

func (h *PollHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing poll id", http.StatusBadRequest)
		return
	}

	votes, err := h.service.TallyPoll(r.Context(), id)
	if err != nil && !errors.Is(err, domain.ErrNoVotes) {
		http.Error(w, "failed to fetch votes", http.StatusInternalServerError)
		return
	}
	if votes == nil {
		votes = []*domain.Vote{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(votes); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}
