package api

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/vytor/leitnerbox/internal/errors"
	"github.com/vytor/leitnerbox/internal/leitner"
	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
	"github.com/vytor/leitnerbox/internal/worker"
)

const (
	defaultCardPageSize = 50
	maxCardPageSize     = 200
)

type addCardRequest struct {
	Answer         string  `json:"answer" validate:"required"`
	QuestionInput  *string `json:"question_input" validate:"required_without=QuestionChoice"`
	QuestionChoice *string `json:"question_choice" validate:"required_without=QuestionInput"`
}

type importCardsRequest struct {
	Records []leitner.Record `json:"records" validate:"required,min=1,max=5000"`
}

type cardsResponse struct {
	Cards  []models.Card `json:"cards"`
	Total  int           `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	box, err := queryInt(r, "box", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	limit, err := queryInt(r, "limit", defaultCardPageSize)
	if err != nil {
		handleError(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if limit < 1 || limit > maxCardPageSize {
		limit = defaultCardPageSize
	}
	if offset < 0 {
		offset = 0
	}

	filter := models.CardFilter{
		ProfileID: profile.ID,
		Box:       box,
		Limit:     limit,
		Offset:    offset,
	}
	if raw := r.URL.Query().Get("checked_out"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			handleError(w, r, errors.NewValidationError("checked_out", "must be a boolean"))
			return
		}
		filter.CheckedOut = &v
	}

	cards, total, err := s.CardService.ListCards(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if cards == nil {
		cards = []models.Card{}
	}

	writeJSON(w, r, http.StatusOK, cardsResponse{Cards: cards, Total: total, Limit: limit, Offset: offset})
}

// handleAddCard puts a new card into the working set; it is stored with the
// next deck save.
func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req addCardRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	card, err := s.StudyService.AddCard(r.Context(), profile.ID, req.Answer, leitner.Questions{req.QuestionInput, req.QuestionChoice})
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusCreated, card)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	id := chi.URLParam(r, "id")

	if err := s.CardService.DeleteCard(r.Context(), profile.ID, id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	profile := profileFromContext(r.Context())

	var req importCardsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.JobQueue.EnqueueImport(profile.ID, req.Records); err != nil {
		if stderrors.Is(err, worker.ErrQueueFull) || stderrors.Is(err, worker.ErrPoolStopped) {
			handleError(w, r, errors.NewBusyError("import queue is busy, try again later"))
			return
		}
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	log.Info("import of %d cards queued", len(req.Records))
	writeJSON(w, r, http.StatusAccepted, map[string]int{"queued": len(req.Records)})
}
