package models

import "time"

// PasswordHashCost is the bcrypt cost used for every stored password hash,
// seeded accounts included.
const PasswordHashCost = 12

// User represents a registered account. Username and email are both natural
// keys: lookups accept either.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	Username  string `gorm:"type:varchar(20);not null;uniqueIndex" json:"username"`
	Email     string `gorm:"type:varchar(80);not null;uniqueIndex" json:"email"`
	Password  string `gorm:"type:varchar(128);not null" json:"-"` // bcrypt hash, never serialized
	FirstName string `gorm:"type:varchar(20);not null" json:"firstName"`
	LastName  string `gorm:"type:varchar(20);not null" json:"lastName"`
	BaseModel
}

// TableName sets the table name for GORM
func (User) TableName() string {
	return "users"
}

// FullName returns the user's display name.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// MemberRole is the role a user holds within a club.
type MemberRole int

const (
	RoleMember MemberRole = iota
	RoleOfficer
	RoleFounder
)

// String returns the display name for a role.
func (r MemberRole) String() string {
	switch r {
	case RoleOfficer:
		return "Officer"
	case RoleFounder:
		return "Founder"
	default:
		return "Member"
	}
}

// Valid reports whether the role is one of the known values.
func (r MemberRole) Valid() bool {
	return r >= RoleMember && r <= RoleFounder
}

// Membership is a row in the user<->club membership join table. The composite
// primary key makes duplicate links impossible at the store level.
type Membership struct {
	UserID   uint       `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	ClubID   uint       `gorm:"primaryKey;autoIncrement:false" json:"clubId"`
	Role     MemberRole `gorm:"not null;default:0" json:"role"`
	JoinedAt time.Time  `gorm:"not null" json:"joinedAt"`
}

// TableName sets the table name for GORM
func (Membership) TableName() string {
	return "memberships"
}

// Favorite is a row in the user<->club favorites join table.
type Favorite struct {
	UserID    uint      `gorm:"primaryKey;autoIncrement:false" json:"userId"`
	ClubID    uint      `gorm:"primaryKey;autoIncrement:false" json:"clubId"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}

// TableName sets the table name for GORM
func (Favorite) TableName() string {
	return "favorites"
}
