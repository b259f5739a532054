package model

import "time"

// Ingredient is a user-owned recipe component. Same lifecycle rules as
// Tag: owner-scoped, created implicitly during recipe writes, persists
// independently of the recipes that reference it.
type Ingredient struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	Name      string    `json:"name" gorm:"size:255;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}
