package service

import (
	"context"
	"fmt"
	"time"

	"travel_booking/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateLayout is the wire format of check-in/check-out dates
const DateLayout = "2006-01-02"

// CartItem is the staging request for one package
type CartItem struct {
	PackageID uint
	Travelers int
	CheckIn   time.Time
	CheckOut  time.Time
}

// Validate enforces the reservation-intent invariants. now decides which
// check-in days are already in the past.
func (i CartItem) Validate(now time.Time) error {
	if i.PackageID == 0 {
		return domain.Invalid("package_id", "pacote obrigatório")
	}
	if i.CheckIn.IsZero() || i.CheckOut.IsZero() {
		return domain.Invalid("check_in", "selecione as datas de check-in e check-out")
	}
	if truncateDay(i.CheckIn).Before(truncateDay(now)) {
		return domain.Invalid("check_in", "a data de check-in não pode estar no passado")
	}
	if !truncateDay(i.CheckIn).Before(truncateDay(i.CheckOut)) {
		return domain.Invalid("check_out", "check-out deve ser posterior ao check-in")
	}
	if i.Travelers < 1 {
		return domain.Invalid("travelers", "informe ao menos um viajante")
	}
	return nil
}

// ParseDate reads a form date, returning the zero time for an empty value
func ParseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return time.Time{}, domain.Invalid(field, "data inválida")
	}
	return t, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CartService manages each user's staged reservations.
type CartService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewCartService creates the cart manager
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db, now: time.Now}
}

// Upsert stages item for the user, overwriting travelers and dates when the
// package is already in the cart.
func (s *CartService) Upsert(ctx context.Context, p domain.Principal, item CartItem) error {
	if err := item.Validate(s.now()); err != nil {
		return err
	}
	db := s.db.WithContext(ctx)
	var exists int64
	if err := db.Model(&domain.Package{}).Where("id = ?", item.PackageID).Count(&exists).Error; err != nil {
		return fmt.Errorf("check package %d: %w", item.PackageID, err)
	}
	if exists == 0 {
		return fmt.Errorf("package %d: %w", item.PackageID, domain.ErrNotFound)
	}
	entry := domain.CartEntry{
		UserID:    p.UserID,
		PackageID: item.PackageID,
		Travelers: item.Travelers,
		CheckIn:   truncateDay(item.CheckIn),
		CheckOut:  truncateDay(item.CheckOut),
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "package_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"travelers", "check_in", "check_out"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("upsert cart entry: %w", err)
	}
	return nil
}

// List returns the user's entries with their packages, in insertion order.
func (s *CartService) List(ctx context.Context, p domain.Principal) ([]domain.CartEntry, error) {
	var entries []domain.CartEntry
	err := s.db.WithContext(ctx).
		Preload("Package").
		Where("user_id = ?", p.UserID).
		Order("id").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	return entries, nil
}

// Remove deletes an entry only when it belongs to the user. Anything else is a no-op.
func (s *CartService) Remove(ctx context.Context, p domain.Principal, entryID uint) error {
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, p.UserID).
		Delete(&domain.CartEntry{}).Error
	if err != nil {
		return fmt.Errorf("remove cart entry %d: %w", entryID, err)
	}
	return nil
}

// Total is the price of the user's whole cart
func (s *CartService) Total(ctx context.Context, p domain.Principal) (float64, error) {
	entries, err := s.List(ctx, p)
	if err != nil {
		return 0, err
	}
	return CartTotal(entries), nil
}

// CartTotal sums price times travelers over loaded entries
func CartTotal(entries []domain.CartEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Subtotal()
	}
	return domain.RoundCents(total)
}

// Count returns how many entries the user has staged
func (s *CartService) Count(ctx context.Context, p domain.Principal) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.CartEntry{}).Where("user_id = ?", p.UserID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count cart: %w", err)
	}
	return n, nil
}

// PurgeExpired drops entries whose check-in day is already in the past
func (s *CartService) PurgeExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("check_in < ?", truncateDay(now)).
		Delete(&domain.CartEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge cart: %w", res.Error)
	}
	return res.RowsAffected, nil
}
