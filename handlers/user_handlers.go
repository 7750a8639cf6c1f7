package handlers

import (
	"net/http"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/utils"
)

// handleUsers handles the user collection: GET /api/users and POST /api/users
// (an alias for /register).
func (s *APIServer) handleUsers(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		users, err := s.userService.GetUsers(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(users, len(users)))
	case http.MethodPost:
		s.handleRegister(w, r)
	default:
		methodNotAllowed(w)
	}
}

// handleUserPath dispatches everything under /api/users/:
//
//	GET|PATCH|DELETE  /api/users/{username}
//	POST              /api/users/{username}/change-password
//	GET|PUT|DELETE    /api/users/{username}/favorites
//	GET|PUT|DELETE    /api/users/{username}/clubs
//	GET               /api/users/{username}/officer-clubs
//	GET|PUT|DELETE    /api/users/{username}/reviews
func (s *APIServer) handleUserPath(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path, "/api/users/")
	if len(segments) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Username is required")
		return
	}

	username := segments[0]
	if len(segments) == 1 {
		s.handleUserByUsername(w, r, username)
		return
	}

	switch segments[1] {
	case "change-password":
		s.handleChangePassword(w, r, username)
	case "favorites":
		s.handleUserFavorites(w, r, username)
	case "clubs":
		s.handleUserClubs(w, r, username)
	case "officer-clubs":
		s.handleUserOfficerClubs(w, r, username)
	case "reviews":
		s.handleUserReviews(w, r, username)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Unknown user resource")
	}
}

func (s *APIServer) handleUserByUsername(w http.ResponseWriter, r *http.Request, username string) {
	switch r.Method {
	case http.MethodGet:
		user, err := s.userService.GetUser(r.Context(), username)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, user)
	case http.MethodPatch:
		var req models.UpdateUserRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		user, err := s.userService.UpdateUser(r.Context(), username, req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, user)
	case http.MethodDelete:
		if err := s.userService.DeleteUser(r.Context(), username); err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "user deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *APIServer) handleUserFavorites(w http.ResponseWriter, r *http.Request, username string) {
	switch r.Method {
	case http.MethodGet:
		favorites, err := s.userService.ListFavorites(r.Context(), username)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(favorites, len(favorites)))
	case http.MethodPut, http.MethodDelete:
		var req models.NameRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Club name is required")
			return
		}
		var err error
		if r.Method == http.MethodPut {
			err = s.userService.AddFavorite(r.Context(), username, req.Name)
		} else {
			err = s.userService.RemoveFavorite(r.Context(), username, req.Name)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "ok"})
	default:
		methodNotAllowed(w)
	}
}

func (s *APIServer) handleUserClubs(w http.ResponseWriter, r *http.Request, username string) {
	switch r.Method {
	case http.MethodGet:
		clubs, err := s.userService.ListClubs(r.Context(), username)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(clubs, len(clubs)))
	case http.MethodPut, http.MethodDelete:
		var req models.NameRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Name == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Club name is required")
			return
		}
		var err error
		if r.Method == http.MethodPut {
			err = s.userService.JoinClub(r.Context(), username, req.Name)
		} else {
			err = s.userService.LeaveClub(r.Context(), username, req.Name)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "ok"})
	default:
		methodNotAllowed(w)
	}
}

func (s *APIServer) handleUserOfficerClubs(w http.ResponseWriter, r *http.Request, username string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	clubs, err := s.userService.ListOfficerClubs(r.Context(), username)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(clubs, len(clubs)))
}

func (s *APIServer) handleUserReviews(w http.ResponseWriter, r *http.Request, username string) {
	switch r.Method {
	case http.MethodGet:
		reviews, err := s.reviewService.ListByUser(r.Context(), username)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(reviews, len(reviews)))
	case http.MethodPost, http.MethodPut:
		var req models.CreateReviewRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.Username = username
		review, err := s.reviewService.CreateReview(r.Context(), req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, review)
	case http.MethodDelete:
		var req models.DeleteReviewRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := s.reviewService.DeleteUserReview(r.Context(), username, req.ID); err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "review deleted"})
	default:
		methodNotAllowed(w)
	}
}
