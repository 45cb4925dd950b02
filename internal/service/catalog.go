package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"travel_booking/internal/domain"
	"travel_booking/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const (
	catalogTTL         = 60 * time.Second
	featuredCacheKey   = "catalog:featured"
	allCacheKey        = "catalog:all"
	packageCachePrefix = "catalog:package:"
)

// SearchFilter narrows a catalog search. Zero values mean "no constraint";
// every set field must match.
type SearchFilter struct {
	Text     string          // Substring of title or destination, case-insensitive
	Category domain.Category // Exact category
	MinPrice *float64        // Inclusive lower bound
	MaxPrice *float64        // Inclusive upper bound
}

// CatalogService answers read queries over packages.
type CatalogService struct {
	db    *gorm.DB
	cache *utils.Cache
}

// NewCatalogService creates the catalog store. cache may wrap a nil client.
func NewCatalogService(db *gorm.DB, cache *utils.Cache) *CatalogService {
	return &CatalogService{db: db, cache: cache}
}

// Search returns the packages matching f, cheapest first. With Redis configured
// the filter runs over the cached catalog instead of the database.
func (s *CatalogService) Search(ctx context.Context, f SearchFilter) ([]domain.Package, error) {
	if s.cache.Enabled() {
		all, err := s.byPrice(ctx)
		if err != nil {
			return nil, err
		}
		return FilterPackages(all, f), nil
	}
	q := s.db.WithContext(ctx).Model(&domain.Package{})
	if text := strings.TrimSpace(f.Text); text != "" {
		like := "%" + escapeLike(strings.ToLower(text)) + "%"
		q = q.Where("LOWER(destination) LIKE ? ESCAPE '!' OR LOWER(title) LIKE ? ESCAPE '!'", like, like)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	var packages []domain.Package
	if err := q.Order("price ASC").Order("id ASC").Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("search packages: %w", err)
	}
	return packages, nil
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// escapeLike makes LIKE wildcards in user text match literally ('!' is the escape)
func escapeLike(s string) string { return likeEscaper.Replace(s) }

// byPrice is the whole catalog cheapest first, cached
func (s *CatalogService) byPrice(ctx context.Context) ([]domain.Package, error) {
	var packages []domain.Package
	if found, err := s.cache.Get(ctx, allCacheKey, &packages); err == nil && found {
		return packages, nil
	}
	packages = nil
	if err := s.db.WithContext(ctx).Order("price ASC").Order("id ASC").Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("search packages: %w", err)
	}
	_ = s.cache.Set(ctx, allCacheKey, packages, catalogTTL)
	return packages, nil
}

// Matches reports whether p satisfies every set field of f
func (f SearchFilter) Matches(p domain.Package) bool {
	if text := strings.ToLower(strings.TrimSpace(f.Text)); text != "" &&
		!strings.Contains(strings.ToLower(p.Destination), text) &&
		!strings.Contains(strings.ToLower(p.Title), text) {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	return true
}

// FilterPackages keeps the packages matching f, ordered by price then id
func FilterPackages(packages []domain.Package, f SearchFilter) []domain.Package {
	out := make([]domain.Package, 0, len(packages))
	for _, p := range packages {
		if f.Matches(p) {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Package) int {
		if c := cmp.Compare(a.Price, b.Price); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// GetByID returns a single package or domain.ErrNotFound.
func (s *CatalogService) GetByID(ctx context.Context, id uint) (*domain.Package, error) {
	key := packageCachePrefix + strconv.FormatUint(uint64(id), 10)
	var pkg domain.Package
	if found, err := s.cache.Get(ctx, key, &pkg); err == nil && found {
		return &pkg, nil
	}
	if err := s.db.WithContext(ctx).First(&pkg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("package %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get package %d: %w", id, err)
	}
	_ = s.cache.Set(ctx, key, pkg, catalogTTL)
	return &pkg, nil
}

// GetBySlug looks a package up by its URL slug.
func (s *CatalogService) GetBySlug(ctx context.Context, slug string) (*domain.Package, error) {
	var pkg domain.Package
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).Order("id").First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("package %q: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get package %q: %w", slug, err)
	}
	return &pkg, nil
}

// ListFeatured returns at most limit featured packages, newest first.
func (s *CatalogService) ListFeatured(ctx context.Context, limit int) ([]domain.Package, error) {
	var featured []domain.Package
	if found, err := s.cache.Get(ctx, featuredCacheKey, &featured); err != nil || !found {
		featured = nil
		err := s.db.WithContext(ctx).
			Where("featured = ?", true).
			Order("created_at DESC").Order("id DESC").
			Find(&featured).Error
		if err != nil {
			return nil, fmt.Errorf("list featured: %w", err)
		}
		_ = s.cache.Set(ctx, featuredCacheKey, featured, catalogTTL)
	}
	if limit > 0 && len(featured) > limit {
		featured = featured[:limit]
	}
	return featured, nil
}

// ListAll returns the whole catalog, newest first.
func (s *CatalogService) ListAll(ctx context.Context) ([]domain.Package, error) {
	var packages []domain.Package
	if err := s.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&packages).Error; err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return packages, nil
}

// Invalidate drops cached copies after a package changed.
func (s *CatalogService) Invalidate(ctx context.Context, id uint) {
	key := packageCachePrefix + strconv.FormatUint(uint64(id), 10)
	if err := s.cache.Delete(ctx, key, featuredCacheKey, allCacheKey); err != nil {
		logrus.WithFields(logrus.Fields{
			"package_id": id,
			"error":      err.Error(),
		}).Warn("Catalog cache invalidation failed")
	}
}
