package models

import "time"

// Role is the single authorization attribute of an account.
type Role string

const (
	RoleEnthusiast Role = "enthusiast"
	RoleArtist     Role = "artist"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleEnthusiast, RoleArtist, RoleAdmin:
		return true
	}
	return false
}

type Account struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;size:254;not null" json:"-"`
	Password  string    `gorm:"column:password_hash;not null" json:"-"` // bcrypt, never plaintext
	FirstName string    `gorm:"size:100;not null" json:"first_name"`
	Surname   string    `gorm:"size:100;not null" json:"surname"`
	Role      Role      `gorm:"type:varchar(20);default:'enthusiast';not null" json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func (Account) TableName() string {
	return "accounts"
}
