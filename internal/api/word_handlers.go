package api

import (
	"net/http"

	"github.com/yeonsu/vocaflash/internal/models"
)

func (s *Server) handleUpdateWord(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Term        string `json:"term"`
		Translation string `json:"translation"`
		ImageURL    string `json:"image_url"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Words.UpdateWord(r.Context(), models.Word{
		ID:          id,
		Term:        req.Term,
		Translation: req.Translation,
		ImageURL:    req.ImageURL,
	}); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.Words.GetWord(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, word)
}

func (s *Server) handleDeleteWord(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Words.DeleteWord(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleDueWords(w http.ResponseWriter, r *http.Request) {
	lessonID := int64(queryInt(r, "lesson_id", 0))
	limit := queryInt(r, "limit", 50)

	words, err := s.Words.DueWords(r.Context(), lessonID, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if words == nil {
		words = []models.Word{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}
