package handlers

import (
	"net/http"

	"github.com/clubreview/club-review-service/models"
	"github.com/clubreview/club-review-service/utils"
)

// handleTags handles the tag collection: GET /api/tags and POST /api/tags.
func (s *APIServer) handleTags(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		tags, err := s.tagService.GetTags(r.Context())
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.CreateCollectionResponse(tags, len(tags)))
	case http.MethodPost:
		var req models.CreateTagRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		tag, err := s.tagService.CreateTag(r.Context(), req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusCreated, tag)
	default:
		methodNotAllowed(w)
	}
}

// handleTagPath handles GET/PATCH/DELETE /api/tags/{name}.
func (s *APIServer) handleTagPath(w http.ResponseWriter, r *http.Request) {
	segments := pathSegments(r.URL.Path, "/api/tags/")
	if len(segments) != 1 {
		utils.RespondWithError(w, http.StatusBadRequest, "Tag name is required")
		return
	}
	name := segments[0]

	switch r.Method {
	case http.MethodGet:
		tag, err := s.tagService.GetTag(r.Context(), name)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, tag)
	case http.MethodPatch:
		var req models.UpdateTagRequest
		if err := utils.ParseJSONRequest(r, &req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		tag, err := s.tagService.UpdateTag(r.Context(), name, req)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, tag)
	case http.MethodDelete:
		if err := s.tagService.DeleteTag(r.Context(), name); err != nil {
			respondServiceError(w, err)
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, models.MessageResponse{Message: "tag deleted"})
	default:
		methodNotAllowed(w)
	}
}
