package domain

import (
	"math"
	"time"
)

// BookingStatus is the lifecycle state of a booking
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking Model. Totals are snapshotted at checkout and never recomputed.
type Booking struct {
	ID                  uint          `gorm:"primaryKey" json:"id"`
	UserID              uint          `gorm:"not null;index" json:"user_id"`
	PackageID           *uint         `gorm:"index" json:"package_id"` // NULL once the package is deleted
	PackageTitle        string        `gorm:"size:200" json:"package_title"`
	Travelers           int           `gorm:"not null" json:"travelers"`
	CheckIn             time.Time     `gorm:"type:date;not null" json:"check_in"`
	CheckOut            time.Time     `gorm:"type:date;not null" json:"check_out"`
	TotalPrice          float64       `gorm:"type:decimal(12,2);not null" json:"total_price"`
	Status              BookingStatus `gorm:"size:20;not null;default:pending;index" json:"status"`
	PaymentMethod       string        `gorm:"size:50" json:"payment_method"`
	PaymentInstallments int           `gorm:"not null;default:1" json:"payment_installments"`
	CreatedAt           time.Time     `gorm:"index" json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`

	User    *User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Package *Package `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"package,omitempty"`
}

// Cancellable reports whether the booking may still move to cancelled
func (b Booking) Cancellable() bool { return b.Status == BookingConfirmed }

// RoundCents rounds a monetary amount to two decimals
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
