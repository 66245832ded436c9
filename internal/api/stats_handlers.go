package api

import (
	"net/http"

	"github.com/yeonsu/vocaflash/internal/models"
)

func (s *Server) handleOverallStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Stats.Overall(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleLessonStats(w http.ResponseWriter, r *http.Request) {
	id, err := urlParamInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	stats, err := s.Stats.Lesson(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleRecentSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.Stats.RecentSessions(r.Context(), models.SessionFilter{
		LessonID: int64(queryInt(r, "lesson_id", 0)),
		Shape:    r.URL.Query().Get("shape"),
		Limit:    queryInt(r, "limit", 20),
		Offset:   queryInt(r, "offset", 0),
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	if sessions == nil {
		sessions = []models.PracticeSession{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}
