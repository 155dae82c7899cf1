package api

import (
	"net/http"

	"fact-tracker/internal/domain"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.services.Participants.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	resp := make([]participantResponse, 0, len(participants))
	for _, p := range participants {
		resp = append(resp, newParticipantResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRegisterParticipant(w http.ResponseWriter, r *http.Request) {
	var candidate domain.ParticipantCandidate
	if err := decodeBody(r, &candidate, false); err != nil {
		respondError(w, r, err)
		return
	}

	id, err := s.services.Participants.Register(r.Context(), candidate)
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, idResponse{ID: id})
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	participant, err := s.services.Participants.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newParticipantResponse(*participant))
}

func (s *Server) handleUpdateParticipant(w http.ResponseWriter, r *http.Request) {
	var patch domain.ParticipantPatch
	if err := decodeBody(r, &patch, false); err != nil {
		respondError(w, r, err)
		return
	}

	if err := s.services.Participants.Update(r.Context(), chi.URLParam(r, "id"), patch); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteParticipant(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Participants.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
