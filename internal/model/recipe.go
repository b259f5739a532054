package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Recipe is the central aggregate: owned by exactly one user, linked
// many-to-many to that user's tags and ingredients. Deleting a recipe
// removes the join rows but never the tag/ingredient rows themselves.
type Recipe struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	UserID      uint            `json:"user_id" gorm:"not null;index"`
	Title       string          `json:"title" gorm:"size:255;not null"`
	TimeMinutes int             `json:"time_minutes" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Link        string          `json:"link,omitempty" gorm:"size:255"`
	Description string          `json:"description,omitempty" gorm:"type:text"`
	Image       string          `json:"image,omitempty" gorm:"size:255"` // path of the uploaded file
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Relations
	User        User         `json:"-" gorm:"foreignKey:UserID"`
	Tags        []Tag        `json:"tags" gorm:"many2many:recipe_tags"`
	Ingredients []Ingredient `json:"ingredients" gorm:"many2many:recipe_ingredients"`
}
