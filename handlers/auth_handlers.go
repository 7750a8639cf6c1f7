package handlers

import (
	"net/http"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/utils"
)

// handleRegister handles POST /register
func (s *APIServer) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req models.RegisterRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.authService.Register(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp, err := s.userService.GetUser(r.Context(), user.Username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// handleLogin handles POST /login
func (s *APIServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req models.LoginRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := s.authService.Login(r.Context(), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp, err := s.userService.GetUser(r.Context(), user.Username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// handleChangePassword handles POST /api/users/{username}/change-password
func (s *APIServer) handleChangePassword(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req models.ChangePasswordRequest
	if err := utils.ParseJSONRequest(r, &req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := s.authService.ChangePassword(r.Context(), username, req.Password); err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "password updated"})
}
