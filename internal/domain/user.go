package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // Unique e-mail, stored lower-cased
	PasswordHash string    `gorm:"not null" json:"-"`                          // bcrypt hash
	Name         string    `gorm:"size:100;not null" json:"name"`              // Display name
	Phone        string    `gorm:"size:40" json:"phone,omitempty"`             // Optional phone
	IsAdmin      bool      `gorm:"not null;default:false" json:"is_admin"`     // Catalog management privilege
	CreatedAt    time.Time `json:"created_at"`                                 // Registration time
}

// Principal is the authenticated caller threaded through every authorized operation
type Principal struct {
	UserID  uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

// Principal returns the session view of the user
func (u User) Principal() Principal {
	return Principal{UserID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}
