package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)

	r.Get("/lessons", s.handleListLessons)
	r.Post("/lessons", s.handleCreateLesson)
	r.Get("/lessons/{id}", s.handleGetLesson)
	r.Post("/lessons/{id}/delete", s.handleDeleteLesson)
	r.Get("/lessons/{id}/words", s.handleLessonWords)
	r.Post("/lessons/{id}/words", s.handleAddWord)
	r.Post("/lessons/{id}/import", s.handleImportWords)

	r.Post("/words/{id}/update", s.handleUpdateWord)
	r.Post("/words/{id}/delete", s.handleDeleteWord)
	r.Get("/words/due", s.handleDueWords)

	r.Post("/practice/start", s.handleStartPractice)
	r.Get("/practice/{id}", s.handleGetPractice)
	r.Post("/practice/{id}/answer", s.handleSubmitAnswer)
	r.Get("/practice/{id}/stats", s.handlePracticeStats)
	r.Post("/practice/{id}/abandon", s.handleAbandonPractice)

	r.Get("/settings", s.handleGetSettings)
	r.Post("/settings", s.handleUpdateSettings)

	r.Get("/stats", s.handleOverallStats)
	r.Get("/stats/lessons/{id}", s.handleLessonStats)
	r.Get("/stats/sessions", s.handleRecentSessions)

	return r
}
