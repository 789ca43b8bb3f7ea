package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/leitnerbox/internal/logger"
)

type startSessionRequest struct {
	Size int `json:"size" validate:"required,gt=0"`
}

type answerRequest struct {
	Input string `json:"input" validate:"max=1024"`
}

func (s *Server) handleLoadDeck(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	deck, err := s.StudyService.LoadDeck(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("deck loaded: %d cards", deck.Total)
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleSaveDeck(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	deck, err := s.StudyService.SaveDeck(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req startSessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	session, err := s.StudyService.StartSession(r.Context(), profile.ID, req.Size)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).WithField("session_id", session.ID).
		Info("session started with %d of %d cards", len(session.Prompts), session.Size)
	writeJSON(w, r, http.StatusCreated, session)
}

func (s *Server) handleAnswer(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	var req answerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	result, err := s.StudyService.Answer(r.Context(), profile.ID, sessionID, req.Input)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	sessionID := chi.URLParam(r, "id")

	result, err := s.StudyService.EndSession(r.Context(), profile.ID, sessionID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).WithField("session_id", sessionID).
		Info("session ended: %d/%d correct, score %.1f", result.Correct, result.Size, result.Score)
	writeJSON(w, r, http.StatusOK, result)
}
