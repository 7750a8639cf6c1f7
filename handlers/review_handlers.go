package handlers

import (
	"net/http"
	"strconv"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/utils"
)

// handleReviews handles the review collection: GET /api/reviews and
// POST /api/reviews.
func (s *APIServer) handleReviews(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		reviews, err := s.reviewService.GetReviews(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(reviews, len(reviews)))
	case http.MethodPost:
		var req models.CreateReviewRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		review, err := s.reviewService.CreateReview(r.Context(), req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, review)
	default:
		methodNotAllowed(w)
	}
}

// handleReviewPath handles GET/PATCH/DELETE /api/reviews/{id}.
func (s *APIServer) handleReviewPath(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path, "/api/reviews/")
	if len(segments) != 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Review ID is required")
		return
	}

	id, err := strconv.ParseUint(segments[0], 10, 32)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Review ID must be a number")
		return
	}
	reviewID := uint(id)

	switch r.Method {
	case http.MethodGet:
		review, err := s.reviewService.GetReview(r.Context(), reviewID)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, review)
	case http.MethodPatch:
		var req models.UpdateReviewRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		review, err := s.reviewService.UpdateReview(r.Context(), reviewID, req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, review)
	case http.MethodDelete:
		if err := s.reviewService.DeleteReview(r.Context(), reviewID); err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "review deleted"})
	default:
		methodNotAllowed(w)
	}
}
