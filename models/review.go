package models

const (
	// RatingMin and RatingMax bound a review rating, inclusive.
	RatingMin = 0
	RatingMax = 10
)

// Review is a rating posted by a user for a club. The user/club association
// is fixed at creation; only title, rating and description are mutable.
type Review struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"type:varchar(120);not null" json:"title"`
	Rating      int    `gorm:"not null" json:"rating"`
	Description string `gorm:"type:varchar(500);not null;default:''" json:"description"`
	UserID      uint   `gorm:"not null;index" json:"-"`
	ClubID      uint   `gorm:"not null;index" json:"-"`
	BaseModel
}

// TableName sets the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// ValidRating reports whether a rating is inside the allowed bounds.
func ValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
