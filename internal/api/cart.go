package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // ID formatting
	"time"     // Date parsing

	"travel_booking/internal/domain"  // Domain errors
	"travel_booking/internal/flash"   // One-shot notices
	"travel_booking/internal/service" // Cart manager

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/go-playground/validator/v10" // Validator field access
)

// AddToCartRequest is the package detail form
type AddToCartRequest struct {
	PackageID uint   `form:"package_id" binding:"required"`
	Travelers int    `form:"travelers,default=1" binding:"min=1"`
	CheckIn   string `form:"check_in" binding:"omitempty,isodate"`
	CheckOut  string `form:"check_out" binding:"omitempty,isodate"`
}

// isoDate accepts YYYY-MM-DD strings
var isoDate validator.Func = func(fl validator.FieldLevel) bool {
	s, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, err := time.Parse(service.DateLayout, s)
	return err == nil
}

// AddToCartHandler stages a package in the caller's cart
func AddToCartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddToCartRequest
		if err := c.ShouldBind(&req); err != nil {
			back := "/"
			if id := c.PostForm("package_id"); id != "" {
				back = "/package/" + id
			}
			flash.Redirect(c, back, flash.Error, "Dados da reserva inválidos!")
			return
		}
		back := "/package/" + strconv.FormatUint(uint64(req.PackageID), 10)
		if req.CheckIn == "" || req.CheckOut == "" {
			flash.Redirect(c, back, flash.Error, "Por favor, selecione as datas de check-in e check-out!")
			return
		}
		// Format already checked by the isodate validator
		checkIn, _ := service.ParseDate("check_in", req.CheckIn)
		checkOut, _ := service.ParseDate("check_out", req.CheckOut)
		err := cart.Upsert(c.Request.Context(), principal(c), service.CartItem{
			PackageID: req.PackageID,
			Travelers: req.Travelers,
			CheckIn:   checkIn,
			CheckOut:  checkOut,
		})
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				flash.Redirect(c, "/", flash.Error, "Pacote não encontrado!")
				return
			}
			respondError(c, err, back, "add_to_cart")
			return
		}
		flash.Redirect(c, "/cart", flash.Success, "Pacote adicionado ao carrinho!")
	}
}

// CartHandler shows the caller's cart and its total
func CartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := cart.List(c.Request.Context(), principal(c))
		if err != nil {
			fail(c, err, "cart")
			return
		}
		render(c, http.StatusOK, "cart", gin.H{
			"cart_items": items,
			"total":      service.CartTotal(items),
		})
	}
}

// RemoveFromCartHandler drops one of the caller's entries
func RemoveFromCartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if ok {
			if err := cart.Remove(c.Request.Context(), principal(c), id); err != nil {
				fail(c, err, "remove_from_cart")
				return
			}
		}
		flash.Redirect(c, "/cart", flash.Success, "Item removido do carrinho!")
	}
}

// CartCountHandler answers {"count": n} for the header badge
func CartCountHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := cart.Count(c.Request.Context(), principal(c))
		if err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"count": n})
	}
}
