package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ArtworkID uint      `gorm:"not null;index" json:"artwork_id"`
	AccountID uint      `gorm:"not null;index" json:"author_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`

	// Associations
	Author Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE;" json:"author,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
