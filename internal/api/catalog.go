package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // Price parsing
	"strings"  // String manipulation

	"travel_booking/internal/domain"  // Domain models
	"travel_booking/internal/flash"   // One-shot notices
	"travel_booking/internal/service" // Catalog store

	"github.com/gin-gonic/gin" // Gin web framework
)

// HomeFeaturedLimit caps the featured strip on the landing page
const HomeFeaturedLimit = 6

// HomeHandler renders the landing page with featured and all packages
func HomeHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		featured, err := catalog.ListFeatured(ctx, HomeFeaturedLimit)
		if err != nil {
			fail(c, err, "home")
			return
		}
		all, err := catalog.ListAll(ctx)
		if err != nil {
			fail(c, err, "home")
			return
		}
		render(c, http.StatusOK, "home", gin.H{
			"featured_packages": featured,
			"all_packages":      all,
			"categories":        domain.Categories,
		})
	}
}

// SearchHandler filters the catalog by destination, category and price range
func SearchHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := service.SearchFilter{
			Text:     c.Query("destination"),
			Category: domain.Category(strings.TrimSpace(c.Query("category"))),
		}
		var ok bool
		if filter.MinPrice, ok = priceParam(c, "min_price"); !ok {
			flash.Redirect(c, "/", flash.Error, "Preço mínimo inválido!")
			return
		}
		if filter.MaxPrice, ok = priceParam(c, "max_price"); !ok {
			flash.Redirect(c, "/", flash.Error, "Preço máximo inválido!")
			return
		}
		packages, err := catalog.Search(c.Request.Context(), filter)
		if err != nil {
			fail(c, err, "search")
			return
		}
		render(c, http.StatusOK, "search", gin.H{
			"packages": packages,
			"search_params": gin.H{
				"destination": c.Query("destination"),
				"category":    c.Query("category"),
				"min_price":   c.Query("min_price"),
				"max_price":   c.Query("max_price"),
			},
			"categories": domain.Categories,
		})
	}
}

// priceParam reads an optional price bound; ok is false when it does not parse
func priceParam(c *gin.Context, name string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64)
	if err != nil || v < 0 {
		return nil, false
	}
	return &v, true
}

// PackageDetailHandler shows one package, addressed by id or slug
func PackageDetailHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var (
			pkg *domain.Package
			err error
		)
		if id, ok := paramID(c, "id"); ok {
			pkg, err = catalog.GetByID(ctx, id)
		} else {
			pkg, err = catalog.GetBySlug(ctx, c.Param("id"))
		}
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				flash.Redirect(c, "/", flash.Error, "Pacote não encontrado!")
				return
			}
			fail(c, err, "package_detail")
			return
		}
		render(c, http.StatusOK, "package_detail", gin.H{"package": pkg})
	}
}
