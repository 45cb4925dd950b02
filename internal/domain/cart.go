package domain

import "time"

// CartEntry is a staged, not yet purchased reservation intent.
// At most one entry exists per (user, package) pair.
type CartEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_package" json:"user_id"`
	PackageID uint      `gorm:"not null;uniqueIndex:idx_cart_user_package" json:"package_id"`
	Travelers int       `gorm:"not null" json:"travelers"`
	CheckIn   time.Time `gorm:"type:date;not null" json:"check_in"`
	CheckOut  time.Time `gorm:"type:date;not null" json:"check_out"`
	CreatedAt time.Time `json:"created_at"`

	User    *User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Package *Package `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"package,omitempty"`
}

// TableName pins the table to "cart"
func (CartEntry) TableName() string { return "cart" }

// Subtotal is price times travelers, zero when the package is not loaded
func (e CartEntry) Subtotal() float64 {
	if e.Package == nil {
		return 0
	}
	return RoundCents(e.Package.Price * float64(e.Travelers))
}
