package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/passkeep/passkeep/internal/common"
	"github.com/passkeep/passkeep/internal/server/auth"
	"github.com/passkeep/passkeep/internal/vault"
	"github.com/passkeep/passkeep/internal/vault/password"
)

type errorResponse struct {
	Error string `json:"error"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

type passwordResponse struct {
	Password string `json:"password,omitempty"`
	Score    int    `json:"score"`
	Strength string `json:"strength"`
}

type scoreRequest struct {
	Password string `json:"password"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if s.config.MasterPasswordHash == "" {
		s.logger.Warn(r.Context(), "login attempted with no master password configured")
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ok, err := auth.VerifyPassword(req.Password, s.config.MasterPasswordHash)
	if err != nil {
		s.logger.Error(r.Context(), "password verification failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if !ok {
		s.writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	token, err := auth.GenerateToken([]byte(s.config.SecretKey), s.config.AccessTokenValidity)
	if err != nil {
		s.logger.Error(r.Context(), "token generation failed", "error", err.Error())
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "login succeeded")
	s.writeJSON(w, http.StatusOK, loginResponse{AccessToken: token})
}

// handleList serves both GetAll and Search: a ?q= parameter narrows the
// result to matching records.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var records []vault.Record
	if term := r.URL.Query().Get("q"); term != "" {
		records = s.store.Search(r.Context(), term)
	} else {
		records = s.store.GetAll(r.Context())
	}

	out := make([]vault.Plain, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.Snapshot())
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	rec, err := s.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "record not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	s.writeJSON(w, http.StatusOK, rec.Snapshot())
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var draft vault.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec := s.store.Add(r.Context(), draft)
	s.logger.Info(r.Context(), "record added", "id", rec.ID)
	s.writeJSON(w, http.StatusCreated, rec.Snapshot())
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch vault.Patch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.store.Update(r.Context(), id, patch)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "record not found")
			return
		}
		s.writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "record updated", "id", id)
	s.writeJSON(w, http.StatusOK, rec.Snapshot())
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if !s.store.Delete(r.Context(), id) {
		s.writeError(w, http.StatusNotFound, "record not found")
		return
	}

	s.logger.Info(r.Context(), "record deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	s.store.ClearAll(r.Context())
	s.logger.Warn(r.Context(), "vault cleared")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var policy password.Policy
	if err := json.NewDecoder(r.Body).Decode(&policy); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pw, err := password.Generate(policy)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	score := password.Score(pw)
	s.writeJSON(w, http.StatusOK, passwordResponse{
		Password: pw,
		Score:    score,
		Strength: string(password.Classify(score)),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	score := password.Score(req.Password)
	s.writeJSON(w, http.StatusOK, passwordResponse{
		Score:    score,
		Strength: string(password.Classify(score)),
	})
}
