package handlers

import (
	"net/http"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/utils"
)

// handleClubs handles the club collection: GET /api/clubs and POST /api/clubs.
func (s *APIServer) handleClubs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clubs, err := s.clubService.GetClubs(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(clubs, len(clubs)))
	case http.MethodPost:
		var req models.CreateClubRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		club, err := s.clubService.CreateClub(r.Context(), req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, club)
	default:
		methodNotAllowed(w)
	}
}

// handleClubPath dispatches everything under /api/clubs/:
//
//	GET               /api/clubs/search-club/{query}
//	GET|PATCH|DELETE  /api/clubs/{name}
//	GET|PUT|DELETE    /api/clubs/{name}/tags
//	GET|PUT|DELETE    /api/clubs/{name}/members
//	GET               /api/clubs/{name}/members/emails
//	GET|PUT|DELETE    /api/clubs/{name}/officers
//	GET|PUT|DELETE    /api/clubs/{name}/reviews
func (s *APIServer) handleClubPath(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path, "/api/clubs/")
	if len(segments) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Club name is required")
		return
	}

	if segments[0] == "search-club" {
		if len(segments) != 2 {
			utils.RespondWithError(w, http.StatusBadRequest, "Search query is required")
			return
		}
		s.handleClubSearch(w, r, segments[1])
		return
	}

	name := segments[0]
	if len(segments) == 1 {
		s.handleClubByName(w, r, name)
		return
	}

	switch segments[1] {
	case "tags":
		s.handleClubTags(w, r, name)
	case "members":
		if len(segments) == 3 && segments[2] == "emails" {
			s.handleClubMemberEmails(w, r, name)
			return
		}
		s.handleClubMembers(w, r, name, models.RoleMember)
	case "officers":
		s.handleClubMembers(w, r, name, models.RoleOfficer)
	case "reviews":
		s.handleClubReviews(w, r, name)
	default:
		utils.RespondWithError(w, http.StatusNotFound, "Unknown club resource")
	}
}

func (s *APIServer) handleClubSearch(w http.ResponseWriter, r *http.Request, query string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	clubs, err := s.clubService.SearchClubs(r.Context(), query)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(clubs, len(clubs)))
}

func (s *APIServer) handleClubByName(w http.ResponseWriter, r *http.Request, name string) {
	switch r.Method {
	case http.MethodGet:
		club, err := s.clubService.GetClub(r.Context(), name)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, club)
	case http.MethodPatch:
		var req models.UpdateClubRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		club, err := s.clubService.UpdateClub(r.Context(), name, req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, club)
	case http.MethodDelete:
		if err := s.clubService.DeleteClub(r.Context(), name); err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "club deleted"})
	default:
		methodNotAllowed(w)
	}
}

func (s *APIServer) handleClubTags(w http.ResponseWriter, r *http.Request, name string) {
	switch r.Method {
	case http.MethodGet:
		tags, err := s.clubService.ListTags(r.Context(), name)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(tags, len(tags)))
	case http.MethodPut, http.MethodDelete:
		var req models.NameRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		var err error
		if r.Method == http.MethodPut {
			err = s.clubService.AddTag(r.Context(), name, req.Name)
		} else {
			err = s.clubService.RemoveTag(r.Context(), name, req.Name)
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

// handleClubMembers serves both the members and officers sub-resources; the
// role decides which slice is listed and which role a PUT enrolls with.
func (s *APIServer) handleClubMembers(w http.ResponseWriter, r *http.Request, name string, role models.MemberRole) {
	switch r.Method {
	case http.MethodGet:
		var usernames []string
		var err error
		if role == models.RoleMember {
			usernames, err = s.clubService.ListMembers(r.Context(), name)
		} else {
			usernames, err = s.clubService.ListOfficers(r.Context(), name)
		}
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(usernames, len(usernames)))
	case http.MethodPut, http.MethodDelete:
		var req models.UsernameRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.Username == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Username is required")
			return
		}
		var err error
		if r.Method == http.MethodPut {
			err = s.clubService.AddMember(r.Context(), name, req.Username, role)
		} else {
			err = s.clubService.RemoveMember(r.Context(), name, req.Username)
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

func (s *APIServer) handleClubMemberEmails(w http.ResponseWriter, r *http.Request, name string) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	emails, err := s.clubService.ListMemberEmails(r.Context(), name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(emails, len(emails)))
}

func (s *APIServer) handleClubReviews(w http.ResponseWriter, r *http.Request, name string) {
	switch r.Method {
	case http.MethodGet:
		reviews, err := s.reviewService.ListByClub(r.Context(), name)
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
		req.ClubName = name
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
		if err := s.reviewService.DeleteClubReview(r.Context(), name, req.ID); err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "review deleted"})
	default:
		methodNotAllowed(w)
	}
}
