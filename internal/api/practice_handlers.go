package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/yeonsu/vocaflash/internal/engine"
	"github.com/yeonsu/vocaflash/internal/errors"
	"github.com/yeonsu/vocaflash/internal/services"
)

// roundView is the client-facing shape of the current round. Expected
// answers never leave the server.
type roundView struct {
	Index          int      `json:"index"`
	Prompt         string   `json:"prompt,omitempty"`
	AudioRef       string   `json:"audio_ref,omitempty"`
	Options        []string `json:"options,omitempty"`
	SequenceLength int      `json:"sequence_length,omitempty"`
	DeadlineMs     int64    `json:"deadline_ms,omitempty"`
}

type sessionView struct {
	ID          string     `json:"id"`
	LessonID    int64      `json:"lesson_id"`
	Shape       string     `json:"shape"`
	Status      string     `json:"status"`
	Position    int        `json:"position"`
	TotalRounds int        `json:"total_rounds"`
	Round       *roundView `json:"round,omitempty"`
}

func newSessionView(session *engine.Session) sessionView {
	view := sessionView{
		ID:          session.ID.String(),
		LessonID:    session.LessonID,
		Shape:       string(session.Shape),
		Status:      string(session.Status),
		Position:    session.Position,
		TotalRounds: len(session.Rounds),
	}
	if round := session.Current(); round != nil {
		view.Round = &roundView{
			Index:          session.Position,
			Prompt:         round.Prompt,
			AudioRef:       round.AudioRef,
			Options:        round.Options,
			SequenceLength: len(round.Sequence),
			DeadlineMs:     round.Deadline.Milliseconds(),
		}
	}
	return view
}

func (s *Server) handleStartPractice(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LessonID int64  `json:"lesson_id"`
		Shape    string `json:"shape"`
		Count    int    `json:"count"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if req.LessonID <= 0 {
		handleError(w, r, errors.NewValidationError("lesson_id", "is required"))
		return
	}

	session, err := s.Practice.Start(r.Context(), services.StartOptions{
		LessonID: req.LessonID,
		Shape:    req.Shape,
		Count:    req.Count,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSessionView(session))
}

func (s *Server) handleGetPractice(w http.ResponseWriter, r *http.Request) {
	session, err := s.Practice.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSessionView(session))
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text      string   `json:"text"`
		Sequence  []string `json:"sequence"`
		ElapsedMs int64    `json:"elapsed_ms"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	publicID := chi.URLParam(r, "id")
	result, err := s.Practice.Submit(r.Context(), publicID, engine.Answer{
		Text:      req.Text,
		Sequence:  req.Sequence,
		ElapsedMs: req.ElapsedMs,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}

	body := map[string]any{
		"outcome":   result.Outcome,
		"completed": result.Completed,
	}
	if result.Completed {
		body["stats"] = result.Stats
	} else if session, err := s.Practice.Get(r.Context(), publicID); err == nil {
		body["session"] = newSessionView(session)
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) handlePracticeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Practice.Stats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAbandonPractice(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Practice.Abandon(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"abandoned": id})
}
