package server

import (
	"errors"
	"net/http"

	"github.com/bobmcallan/folio/internal/common"
)

// handleRegister handles POST /api/register — create a new account.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	err := s.app.Credentials.Register(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		WriteJSON(w, http.StatusCreated, map[string]string{
			"message": "User registered successfully",
		})
	case errors.Is(err, common.ErrAlreadyExists):
		WriteErrorWithCode(w, http.StatusBadRequest, "User already exists", "already_exists")
	case errors.Is(err, common.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to register user")
		WriteError(w, http.StatusInternalServerError, "failed to register user")
	}
}

// handleLogin handles POST /api/login — verify credentials and issue a token.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !DecodeJSON(w, r, &req) {
		return
	}

	identity, err := s.app.Credentials.Verify(r.Context(), req.Username, req.Password)
	switch {
	case err == nil:
		// fall through to token issuance
	case errors.Is(err, common.ErrNotFound):
		WriteErrorWithCode(w, http.StatusBadRequest, "User does not exist", "not_found")
		return
	case errors.Is(err, common.ErrUnauthorized):
		WriteErrorWithCode(w, http.StatusBadRequest, "Incorrect password", "unauthorized")
		return
	default:
		s.logger.Error().Err(err).Str("username", req.Username).Msg("Failed to verify credentials")
		WriteError(w, http.StatusInternalServerError, "failed to log in")
		return
	}

	token, err := s.app.Tokens.Issue(identity)
	if err != nil {
		s.logger.Error().Err(err).Str("username", identity).Msg("Failed to sign session token")
		WriteError(w, http.StatusInternalServerError, "failed to sign token")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}
