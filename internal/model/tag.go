package model

import "time"

// Tag is a user-owned label attachable to recipes. Names are not unique:
// two users may own identically named tags as distinct rows, and there is
// deliberately no (user_id, name) constraint, so a racing pair of
// get-or-create calls may leave exact duplicates for one user.
type Tag struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
