package api

import (
	"net/http"

	"github.com/vytor/leitnerbox/internal/logger"
	"github.com/vytor/leitnerbox/internal/models"
)

type createProfileRequest struct {
	Username string `json:"username" validate:"required,max=64"`
}

type profilesResponse struct {
	Profiles []models.Profile `json:"profiles"`
	Current  *int64           `json:"current,omitempty"`
}

func (s *Server) handleProfiles(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	log.Debug("listing profiles")

	profiles, err := s.ProfileService.ListProfiles(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}

	resp := profilesResponse{Profiles: profiles}
	if id, ok, err := requestProfileID(r); ok && err == nil {
		resp.Current = &id
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) handleCreateProfile(w http.ResponseWriter, r *http.Request) {
	var req createProfileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.CreateProfile(r.Context(), req.Username)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("profile ready: id=%d username=%s", profile.ID, profile.Username)
	setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusCreated, profile)
}

func (s *Server) handleSelectProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	profile, err := s.ProfileService.GetProfile(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setProfileCookie(w, profile.ID)
	writeJSON(w, r, http.StatusOK, profile)
}

func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.ProfileService.DeleteProfile(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	if current, ok, err := requestProfileID(r); ok && err == nil && current == id {
		clearProfileCookie(w)
	}
	w.WriteHeader(http.StatusNoContent)
}
