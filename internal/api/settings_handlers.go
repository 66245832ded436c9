package api

import (
	"net/http"

	"github.com/yeonsu/vocaflash/internal/models"
)

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.Settings.Get(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		QuestionsPerSession int    `json:"questions_per_session"`
		TimeLimitSeconds    int    `json:"time_limit_seconds"`
		Direction           string `json:"direction"`
		FuzzyMatchEnabled   bool   `json:"fuzzy_match_enabled"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.Settings.Update(r.Context(), models.Settings{
		QuestionsPerSession: req.QuestionsPerSession,
		TimeLimitSeconds:    req.TimeLimitSeconds,
		Direction:           req.Direction,
		FuzzyMatchEnabled:   req.FuzzyMatchEnabled,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}
