package api

import (
	"net/http"

	"github.com/yeonsu/vocaflash/internal/models"
)

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.Lessons.ListLessons(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if lessons == nil {
		lessons = []models.LessonWithCounts{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"lessons": lessons})
}

func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	lesson, err := s.Lessons.CreateLesson(r.Context(), models.Lesson{Name: req.Name, Description: req.Description})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, lesson)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	lesson, err := s.Lessons.GetLesson(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lesson)
}

func (s *Server) handleDeleteLesson(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.Lessons.DeleteLesson(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": id})
}

func (s *Server) handleLessonWords(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	// The lesson lookup doubles as the 404 check for empty lessons.
	if _, err := s.Lessons.GetLesson(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	words, err := s.Words.ListWords(r.Context(), models.WordFilter{
		LessonID: id,
		OrderBy:  r.URL.Query().Get("order_by"),
		OrderDir: r.URL.Query().Get("order_dir"),
		Limit:    queryInt(r, "limit", 0),
		Offset:   queryInt(r, "offset", 0),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if words == nil {
		words = []models.Word{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"words": words})
}

func (s *Server) handleAddWord(w http.ResponseWriter, r *http.Request) {
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

	if _, err := s.Lessons.GetLesson(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.Words.AddWord(r.Context(), models.Word{
		LessonID:    id,
		Term:        req.Term,
		Translation: req.Translation,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, word)
}

func (s *Server) handleImportWords(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Words []models.ImportWord `json:"words"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	queued, err := s.Imports.QueueImport(r.Context(), id, req.Words)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"queued": queued})
}
