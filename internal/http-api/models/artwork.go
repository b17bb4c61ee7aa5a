package models

import "time"

type Artwork struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	AccountID   uint      `gorm:"not null;index" json:"owner_id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	ImagePath   string    `gorm:"size:255;not null" json:"image_path"`
	Pending     bool      `gorm:"not null;default:true;index" json:"pending"`
	SubmittedAt time.Time `gorm:"autoCreateTime;index" json:"submitted_at"`

	// Associations
	Owner    Account   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE;" json:"owner,omitempty"`
	Comments []Comment `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
	Likes    []Like    `gorm:"constraint:OnDelete:CASCADE;" json:"-"`
}

func (Artwork) TableName() string {
	return "artworks"
}
