package models

import "time"

// Like is hard-deleted on unlike; the composite unique index is the authority
// for "at most one like per account and artwork".
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;uniqueIndex:idx_likes_account_artwork,priority:1" json:"account_id"`
	ArtworkID uint      `gorm:"not null;uniqueIndex:idx_likes_account_artwork,priority:2;index" json:"artwork_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE;" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}
