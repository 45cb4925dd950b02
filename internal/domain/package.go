package domain

import "time"

// Category of a travel package. Values are the ones stored in the packages table.
type Category string

const (
	CategoryBeach     Category = "praia"
	CategoryAdventure Category = "aventura"
	CategoryFamily    Category = "família"
	CategoryRomantic  Category = "romântico"
	CategoryCity      Category = "cidade"
	CategoryHoneymoon Category = "lua-de-mel"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryBeach, CategoryAdventure, CategoryFamily,
	CategoryRomantic, CategoryCity, CategoryHoneymoon,
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Package Model
type Package struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Slug        string    `gorm:"size:220;index" json:"slug"`
	Destination string    `gorm:"size:200;not null" json:"destination"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int       `gorm:"not null" json:"duration"` // Days
	Category    Category  `gorm:"size:40;not null;index" json:"category"`
	ImageURL    string    `gorm:"size:500;not null" json:"image_url"`
	Includes    string    `gorm:"type:text;not null" json:"includes"`
	Hotel       string    `gorm:"size:200;not null" json:"hotel"`
	Transport   string    `gorm:"size:200;not null" json:"transport"`
	Featured    bool      `gorm:"not null;default:false;index" json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
