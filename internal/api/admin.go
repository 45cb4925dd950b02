package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // ID formatting

	"travel_booking/internal/domain"  // Domain models
	"travel_booking/internal/flash"   // One-shot notices
	"travel_booking/internal/service" // Catalog, ledger and inventory

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminDashboardHandler shows the inventory with booking and revenue totals
func AdminDashboardHandler(catalog *service.CatalogService, bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		packages, err := catalog.ListAll(ctx)
		if err != nil {
			fail(c, err, "admin_dashboard")
			return
		}
		stats, err := bookings.Stats(ctx)
		if err != nil {
			fail(c, err, "admin_dashboard")
			return
		}
		render(c, http.StatusOK, "admin_dashboard", gin.H{
			"packages": packages, // Whole catalog
			"stats":    stats,    // Confirmed bookings, customers and revenue
		})
	}
}

// AddPackagePageHandler renders the empty package form
func AddPackagePageHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		render(c, http.StatusOK, "add_package", gin.H{"categories": domain.Categories})
	}
}

// AddPackageHandler creates a package from the admin form
func AddPackageHandler(inventory *service.InventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form service.PackageForm
		_ = c.ShouldBind(&form) // Values are validated by the inventory service
		if _, err := inventory.Create(c.Request.Context(), principal(c), form); err != nil {
			respondError(c, err, "/admin/add_package", "add_package")
			return
		}
		flash.Redirect(c, "/admin", flash.Success, "Pacote adicionado com sucesso!")
	}
}

// EditPackagePageHandler renders the form filled with the current values
func EditPackagePageHandler(catalog *service.CatalogService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			flash.Redirect(c, "/admin", flash.Error, "Pacote não encontrado!")
			return
		}
		pkg, err := catalog.GetByID(c.Request.Context(), id)
		if err != nil {
			respondError(c, err, "/admin", "edit_package")
			return
		}
		render(c, http.StatusOK, "edit_package", gin.H{
			"package":    pkg,
			"form":       service.FormOf(*pkg),
			"categories": domain.Categories,
		})
	}
}

// EditPackageHandler overwrites a package from the admin form
func EditPackageHandler(inventory *service.InventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			flash.Redirect(c, "/admin", flash.Error, "Pacote não encontrado!")
			return
		}
		var form service.PackageForm
		_ = c.ShouldBind(&form)
		back := "/admin/edit_package/" + strconv.FormatUint(uint64(id), 10)
		if _, err := inventory.Update(c.Request.Context(), principal(c), id, form); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				back = "/admin"
			}
			respondError(c, err, back, "edit_package")
			return
		}
		flash.Redirect(c, "/admin", flash.Success, "Pacote atualizado com sucesso!")
	}
}

// DeletePackageHandler removes a package
func DeletePackageHandler(inventory *service.InventoryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			flash.Redirect(c, "/admin", flash.Error, "Pacote não encontrado!")
			return
		}
		if err := inventory.Delete(c.Request.Context(), principal(c), id); err != nil {
			respondError(c, err, "/admin", "delete_package")
			return
		}
		flash.Redirect(c, "/admin", flash.Success, "Pacote removido com sucesso!")
	}
}
