package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"travel_booking/internal/domain"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BookingNotifier is told about bookings after they are committed
type BookingNotifier interface {
	BookingsConfirmed(ctx context.Context, to domain.Principal, bookings []domain.Booking) error
}

// Payment carries the checkout form
type Payment struct {
	Method       string
	Installments int
}

// Validate checks the payment form. There is no gateway behind it.
func (p Payment) Validate() error {
	if strings.TrimSpace(p.Method) == "" {
		return domain.Invalid("payment_method", "selecione a forma de pagamento")
	}
	if p.Installments < 1 {
		return domain.Invalid("installments", "número de parcelas inválido")
	}
	return nil
}

// Stats are the admin dashboard aggregates
type Stats struct {
	ConfirmedBookings int64   `json:"total_bookings"`
	Customers         int64   `json:"total_users"`
	Revenue           float64 `json:"total_revenue"`
}

// BookingService turns carts into bookings and manages their lifecycle.
type BookingService struct {
	db       *gorm.DB
	notifier BookingNotifier
}

// NewBookingService creates the booking ledger. notifier may be nil.
func NewBookingService(db *gorm.DB, notifier BookingNotifier) *BookingService {
	return &BookingService{db: db, notifier: notifier}
}

// Checkout converts every cart entry of the user into a confirmed booking and
// empties the cart, all in one transaction.
func (s *BookingService) Checkout(ctx context.Context, p domain.Principal, pay Payment) ([]domain.Booking, error) {
	if err := pay.Validate(); err != nil {
		return nil, err
	}
	var created []domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the cart rows so concurrent checkouts by the same user serialize
		var entries []domain.CartEntry
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", p.UserID).
			Order("id").
			Find(&entries).Error
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(entries) == 0 {
			return domain.ErrEmptyCart
		}

		ids := make([]uint, 0, len(entries))
		entryIDs := make([]uint, 0, len(entries))
		for _, e := range entries {
			ids = append(ids, e.PackageID)
			entryIDs = append(entryIDs, e.ID)
		}
		var packages []domain.Package
		if err := tx.Where("id IN ?", ids).Find(&packages).Error; err != nil {
			return fmt.Errorf("load packages: %w", err)
		}
		byID := make(map[uint]domain.Package, len(packages))
		for _, pkg := range packages {
			byID[pkg.ID] = pkg
		}

		bookings := make([]domain.Booking, 0, len(entries))
		for _, e := range entries {
			pkg, ok := byID[e.PackageID]
			if !ok {
				return fmt.Errorf("package %d: %w", e.PackageID, domain.ErrNotFound)
			}
			packageID := pkg.ID
			bookings = append(bookings, domain.Booking{
				UserID:              p.UserID,
				PackageID:           &packageID,
				PackageTitle:        pkg.Title,
				Travelers:           e.Travelers,
				CheckIn:             e.CheckIn,
				CheckOut:            e.CheckOut,
				TotalPrice:          domain.RoundCents(pkg.Price * float64(e.Travelers)),
				Status:              domain.BookingConfirmed,
				PaymentMethod:       pay.Method,
				PaymentInstallments: pay.Installments,
			})
		}
		if err := tx.Create(&bookings).Error; err != nil {
			return fmt.Errorf("create bookings: %w", err)
		}
		// Only the locked rows; entries added meanwhile stay in the cart
		if err := tx.Where("id IN ?", entryIDs).Delete(&domain.CartEntry{}).Error; err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		created = bookings
		return nil
	})
	if err != nil {
		return nil, err
	}

	var total float64
	for _, b := range created {
		total += b.TotalPrice
	}
	logrus.WithFields(logrus.Fields{
		"user_id":      p.UserID,
		"bookings":     len(created),
		"total":        domain.RoundCents(total),
		"method":       pay.Method,
		"installments": pay.Installments,
		"timestamp":    time.Now().Format(time.RFC3339),
	}).Info("Checkout completed")

	if s.notifier != nil {
		go s.notify(context.WithoutCancel(ctx), p, created)
	}
	return created, nil
}

func (s *BookingService) notify(ctx context.Context, p domain.Principal, bookings []domain.Booking) {
	if err := s.notifier.BookingsConfirmed(ctx, p, bookings); err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": p.UserID,
			"error":   err.Error(),
		}).Warn("Booking confirmation notice failed")
	}
}

// Cancel moves a confirmed booking owned by the user to cancelled.
// It reports whether a booking actually changed.
func (s *BookingService) Cancel(ctx context.Context, p domain.Principal, bookingID uint) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ? AND user_id = ? AND status = ?", bookingID, p.UserID, domain.BookingConfirmed).
		Update("status", domain.BookingCancelled)
	if res.Error != nil {
		return false, fmt.Errorf("cancel booking %d: %w", bookingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	logrus.WithFields(logrus.Fields{
		"user_id":    p.UserID,
		"booking_id": bookingID,
	}).Info("Booking cancelled")
	return true, nil
}

// ListForUser returns the user's bookings, most recent first.
func (s *BookingService) ListForUser(ctx context.Context, p domain.Principal) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := s.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ?", p.UserID).
		Order("created_at DESC").Order("id DESC").
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// Stats computes the admin dashboard numbers
func (s *BookingService) Stats(ctx context.Context) (Stats, error) {
	var st Stats
	db := s.db.WithContext(ctx)
	if err := db.Model(&domain.Booking{}).Where("status = ?", domain.BookingConfirmed).Count(&st.ConfirmedBookings).Error; err != nil {
		return st, fmt.Errorf("count bookings: %w", err)
	}
	if err := db.Model(&domain.User{}).Where("is_admin = ?", false).Count(&st.Customers).Error; err != nil {
		return st, fmt.Errorf("count users: %w", err)
	}
	err := db.Model(&domain.Booking{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("status = ?", domain.BookingConfirmed).
		Scan(&st.Revenue).Error
	if err != nil {
		return st, fmt.Errorf("sum revenue: %w", err)
	}
	st.Revenue = domain.RoundCents(st.Revenue)
	return st, nil
}
