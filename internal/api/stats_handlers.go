package api

import (
	"net/http"

	"github.com/vytor/leitnerbox/internal/logger"
)

type addFocusRequest struct {
	Seconds int64 `json:"seconds" validate:"required,min=1,max=86400"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())
	logger.FromContext(r.Context()).Debug("fetching stats summary")

	summary, err := s.StatsService.Summary(r.Context(), profile.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, summary)
}

func (s *Server) handleAddFocus(w http.ResponseWriter, r *http.Request) {
	profile := profileFromContext(r.Context())

	var req addFocusRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	total, err := s.StatsService.AddFocus(r.Context(), profile.ID, req.Seconds)
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]int64{"focus_seconds": total})
}
