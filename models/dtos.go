package models

// Request DTOs. Each endpoint decodes its body into one of these once at the
// boundary; services only ever see typed structs. Pointer fields distinguish
// "absent" from "zero" on partial updates.

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginRequest is the body of POST /login. Identifier may be a username or
// an email address.
type LoginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// ChangePasswordRequest is the body of POST /api/users/{username}/change-password.
type ChangePasswordRequest struct {
	Password string `json:"password"`
}

// UpdateUserRequest is the body of PATCH /api/users/{username}.
type UpdateUserRequest struct {
	Username  *string `json:"username,omitempty"`
	Email     *string `json:"email,omitempty"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
}

// CreateClubRequest is the body of POST /api/clubs. Tags are optional and
// find-or-created at creation time.
type CreateClubRequest struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateClubRequest is the body of PATCH /api/clubs/{name}.
type UpdateClubRequest struct {
	Code        *string `json:"code,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// NameRequest carries a single name field, used by the tag and favorite and
// membership link endpoints (PUT/DELETE with {"name": ...}).
type NameRequest struct {
	Name string `json:"name"`
}

// UsernameRequest carries a single username field, used by the club member
// link endpoints.
type UsernameRequest struct {
	Username string `json:"username"`
}

// CreateTagRequest is the body of POST /api/tags.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// UpdateTagRequest is the body of PATCH /api/tags/{name}.
type UpdateTagRequest struct {
	Name *string `json:"name,omitempty"`
}

// CreateReviewRequest is the body of POST /api/reviews and of the club/user
// review sub-resources (where the club name or username comes from the path).
type CreateReviewRequest struct {
	Title       string  `json:"title"`
	Rating      *int    `json:"rating"`
	Description *string `json:"description,omitempty"`
	Username    string  `json:"username,omitempty"`
	ClubName    string  `json:"club_name,omitempty"`
}

// UpdateReviewRequest is the body of PATCH /api/reviews/{id}. Ownership
// fields are immutable and deliberately absent.
type UpdateReviewRequest struct {
	Title       *string `json:"title,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
	Description *string `json:"description,omitempty"`
}

// DeleteReviewRequest is the body of DELETE on the review sub-resources.
type DeleteReviewRequest struct {
	ID uint `json:"id"`
}

// Response DTOs.

// UserResponse is the API view of a user, with relationship sets resolved to
// natural keys.
type UserResponse struct {
	Username    string   `json:"username"`
	Email       string   `json:"email"`
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	Favorites   []string `json:"favorites"`
	Membership  []string `json:"membership"`
	Officership []string `json:"officership"`
	Reviews     []uint   `json:"reviews"`
}

// ClubResponse is the API view of a club. FavoriteCount is recomputed from
// the favorites join table on every read.
type ClubResponse struct {
	Code          string   `json:"code"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	FavoriteCount int64    `json:"favorite_count"`
	Tags          []string `json:"tags"`
	Members       []string `json:"members"`
	Officers      []string `json:"officers"`
	Reviews       []uint   `json:"reviews"`
}

// TagResponse is the API view of a tag. TaggedClubsCount is derived from the
// join table.
type TagResponse struct {
	Name             string   `json:"name"`
	TaggedClubsCount int64    `json:"tagged_clubs_count"`
	TaggedClubs      []string `json:"tagged_clubs"`
}

// ReviewResponse is the API view of a review. Description is always a string,
// never null.
type ReviewResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Rating      int    `json:"rating"`
	Description string `json:"description"`
	User        string `json:"user"`
	Club        string `json:"club"`
}

// MessageResponse is the generic acknowledgement envelope used by mutation
// endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}
