package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"travel_booking/internal/domain"

	"github.com/gosimple/slug"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// PackageForm holds the raw admin form values
type PackageForm struct {
	Title       string `form:"title"`
	Destination string `form:"destination"`
	Description string `form:"description"`
	Price       string `form:"price"`
	Duration    string `form:"duration"`
	Category    string `form:"category"`
	ImageURL    string `form:"image_url"`
	Includes    string `form:"includes"`
	Hotel       string `form:"hotel"`
	Transport   string `form:"transport"`
	Featured    string `form:"featured"`
}

// Truthy coerces a checkbox-style form value
func Truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no", "n":
		return false
	}
	return true
}

// Parse validates the form and builds the package it describes
func (f PackageForm) Parse() (domain.Package, error) {
	required := []struct{ field, value string }{
		{"title", f.Title},
		{"destination", f.Destination},
		{"description", f.Description},
		{"price", f.Price},
		{"duration", f.Duration},
		{"category", f.Category},
		{"image_url", f.ImageURL},
		{"includes", f.Includes},
		{"hotel", f.Hotel},
		{"transport", f.Transport},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return domain.Package{}, domain.Invalid(r.field, "campo obrigatório")
		}
	}
	price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(f.Price), ",", "."), 64)
	if err != nil || price <= 0 {
		return domain.Package{}, domain.Invalid("price", "preço inválido")
	}
	duration, err := strconv.Atoi(strings.TrimSpace(f.Duration))
	if err != nil || duration <= 0 {
		return domain.Package{}, domain.Invalid("duration", "duração inválida")
	}
	category := domain.Category(strings.TrimSpace(f.Category))
	if !category.Valid() {
		return domain.Package{}, domain.Invalid("category", "categoria inválida")
	}
	title := strings.TrimSpace(f.Title)
	return domain.Package{
		Title:       title,
		Slug:        slug.Make(title),
		Destination: strings.TrimSpace(f.Destination),
		Description: strings.TrimSpace(f.Description),
		Price:       domain.RoundCents(price),
		Duration:    duration,
		Category:    category,
		ImageURL:    strings.TrimSpace(f.ImageURL),
		Includes:    strings.TrimSpace(f.Includes),
		Hotel:       strings.TrimSpace(f.Hotel),
		Transport:   strings.TrimSpace(f.Transport),
		Featured:    Truthy(f.Featured),
	}, nil
}

// FormOf renders a package back into form values for the edit page
func FormOf(p domain.Package) PackageForm {
	featured := ""
	if p.Featured {
		featured = "on"
	}
	return PackageForm{
		Title:       p.Title,
		Destination: p.Destination,
		Description: p.Description,
		Price:       strconv.FormatFloat(p.Price, 'f', 2, 64),
		Duration:    strconv.Itoa(p.Duration),
		Category:    string(p.Category),
		ImageURL:    p.ImageURL,
		Includes:    p.Includes,
		Hotel:       p.Hotel,
		Transport:   p.Transport,
		Featured:    featured,
	}
}

// editableColumns are written on every update so false/zero values stick
var editableColumns = []string{
	"title", "slug", "destination", "description", "price", "duration",
	"category", "image_url", "includes", "hotel", "transport", "featured",
}

// InventoryService is the admin-only editor over the catalog.
type InventoryService struct {
	db      *gorm.DB
	catalog *CatalogService
}

// NewInventoryService creates the inventory editor
func NewInventoryService(db *gorm.DB, catalog *CatalogService) *InventoryService {
	return &InventoryService{db: db, catalog: catalog}
}

func requireAdmin(actor domain.Principal) error {
	if !actor.IsAdmin {
		return domain.ErrAccessDenied
	}
	return nil
}

// Create adds a package to the catalog
func (s *InventoryService) Create(ctx context.Context, actor domain.Principal, form PackageForm) (*domain.Package, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	pkg, err := form.Parse()
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(&pkg).Error; err != nil {
		return nil, fmt.Errorf("create package: %w", err)
	}
	s.catalog.Invalidate(ctx, pkg.ID)
	logrus.WithFields(logrus.Fields{
		"admin_id":   actor.UserID,
		"package_id": pkg.ID,
		"title":      pkg.Title,
	}).Info("Package created")
	return &pkg, nil
}

// Update overwrites every editable field of a package. Last write wins.
func (s *InventoryService) Update(ctx context.Context, actor domain.Principal, id uint, form PackageForm) (*domain.Package, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	changes, err := form.Parse()
	if err != nil {
		return nil, err
	}
	var pkg domain.Package
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&pkg, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("package %d: %w", id, domain.ErrNotFound)
			}
			return err
		}
		return tx.Model(&pkg).Select(editableColumns).Updates(&changes).Error
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update package %d: %w", id, err)
	}
	s.catalog.Invalidate(ctx, id)
	logrus.WithFields(logrus.Fields{
		"admin_id":   actor.UserID,
		"package_id": id,
	}).Info("Package updated")
	changes.ID, changes.CreatedAt = pkg.ID, pkg.CreatedAt
	return &changes, nil
}

// Delete removes a package. Cart entries go with it; bookings keep their snapshot.
func (s *InventoryService) Delete(ctx context.Context, actor domain.Principal, id uint) error {
	if err := requireAdmin(actor); err != nil {
		return err
	}
	res := s.db.WithContext(ctx).Delete(&domain.Package{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete package %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("package %d: %w", id, domain.ErrNotFound)
	}
	s.catalog.Invalidate(ctx, id)
	logrus.WithFields(logrus.Fields{
		"admin_id":   actor.UserID,
		"package_id": id,
	}).Info("Package deleted")
	return nil
}
