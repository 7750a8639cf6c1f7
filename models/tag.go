package models

// Tag is a category label attached to clubs. The tagged-clubs count is
// derived from the join table on read, never stored.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"type:varchar(80);not null;uniqueIndex" json:"name"`
	BaseModel
}

// TableName sets the table name for GORM
func (Tag) TableName() string {
	return "tags"
}
