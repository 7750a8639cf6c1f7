package models

// Club represents a club listed in the directory. Name is the natural key
// used by the API; code is a short unique identifier.
type Club struct {
	ID          uint   `gorm:"primaryKey" json:"-"`
	Code        string `gorm:"type:varchar(30);not null;uniqueIndex" json:"code"`
	Name        string `gorm:"type:varchar(180);not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:varchar(300);not null" json:"description"`
	BaseModel
}

// TableName sets the table name for GORM
func (Club) TableName() string {
	return "clubs"
}

// ClubTag is a row in the club<->tag join table.
type ClubTag struct {
	ClubID uint `gorm:"primaryKey;autoIncrement:false" json:"clubId"`
	TagID  uint `gorm:"primaryKey;autoIncrement:false" json:"tagId"`
}

// TableName sets the table name for GORM
func (ClubTag) TableName() string {
	return "club_tags"
}
