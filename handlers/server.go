package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gorm.io/gorm"

	"github.com/clubreview/club-review-service/pkg/apperrors"
	"github.com/clubreview/club-review-service/services"
	"github.com/clubreview/club-review-service/utils"
)

// APIServer manages all API routes and handlers
type APIServer struct {
	authService   *services.AuthService
	userService   *services.UserService
	clubService   *services.ClubService
	tagService    *services.TagService
	reviewService *services.ReviewService
}

// NewAPIServer creates a new API server instance backed by the given store.
func NewAPIServer(db *gorm.DB) *APIServer {
	return &APIServer{
		authService:   services.NewAuthService(db),
		userService:   services.NewUserService(db),
		clubService:   services.NewClubService(db),
		tagService:    services.NewTagService(db),
		reviewService: services.NewReviewService(db),
	}
}

// SetupRoutes configures all API routes
func (s *APIServer) SetupRoutes(mux *http.ServeMux) {
	mux.Handle("/register", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleRegister)))
	mux.Handle("/login", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleLogin)))

	// Club routes
	mux.Handle("/api/clubs", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleClubs)))
	mux.Handle("/api/clubs/", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleClubPath)))

	// User routes
	mux.Handle("/api/users", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleUsers)))
	mux.Handle("/api/users/", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleUserPath)))

	// Tag routes
	mux.Handle("/api/tags", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleTags)))
	mux.Handle("/api/tags/", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleTagPath)))

	// Review routes
	mux.Handle("/api/reviews", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleReviews)))
	mux.Handle("/api/reviews/", utils.PanicRecoveryMiddleware(http.HandlerFunc(s.handleReviewPath)))
}

// pathSegments strips the prefix from the request path and splits the rest
// into non-empty segments.
func pathSegments(path, prefix string) []string {
	rest := strings.TrimPrefix(path, prefix)
	rest = strings.Trim(rest, "/")
	if rest == "" {
		return nil
	}
	return strings.Split(rest, "/")
}

// respondServiceError translates a typed service error into an HTTP response.
func respondServiceError(w http.ResponseWriter, err error) {
	code := apperrors.CodeOf(err)

	var status int
	switch code {
	case apperrors.CodeMissingField, apperrors.CodeInvalidReference,
		apperrors.CodeDuplicateKey, apperrors.CodeInvalidRating:
		status = http.StatusBadRequest
	case apperrors.CodeNotFound, apperrors.CodeLinkNotFound:
		status = http.StatusNotFound
	case apperrors.CodeForbidden:
		status = http.StatusForbidden
	case apperrors.CodeInvalidCredentials:
		status = http.StatusUnauthorized
	default:
		status = http.StatusInternalServerError
	}

	message := "Internal server error"
	var appErr *apperrors.Error
	if errors.As(err, &appErr) && code != apperrors.CodeStoreFailure {
		message = appErr.Message
	}
	if status == http.StatusInternalServerError {
		slog.Error("Request failed", "error", err)
	}

	utils.RespondWithErrorCode(w, status, string(code), message)
}

func methodNotAllowed(w http.ResponseWriter) {
	utils.RespondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
