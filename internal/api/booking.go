package api

import (
	"net/http" // HTTP status codes

	"travel_booking/internal/flash"   // One-shot notices
	"travel_booking/internal/service" // Booking ledger and cart

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging
)

// PaymentRequest is the checkout form
type PaymentRequest struct {
	PaymentMethod string `form:"payment_method"`
	Installments  int    `form:"installments,default=1"`
}

// CheckoutHandler shows the cart one last time before payment
func CheckoutHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := cart.List(c.Request.Context(), principal(c))
		if err != nil {
			fail(c, err, "checkout")
			return
		}
		if len(items) == 0 {
			flash.Redirect(c, "/", flash.Error, "Carrinho vazio!")
			return
		}
		render(c, http.StatusOK, "checkout", gin.H{
			"cart_items": items,
			"total":      service.CartTotal(items),
		})
	}
}

// ProcessPaymentHandler confirms every cart entry as a booking
func ProcessPaymentHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentRequest
		if err := c.ShouldBind(&req); err != nil {
			flash.Redirect(c, "/checkout", flash.Error, "Número de parcelas inválido!")
			return
		}
		_, err := bookings.Checkout(c.Request.Context(), principal(c), service.Payment{
			Method:       req.PaymentMethod,
			Installments: req.Installments,
		})
		if err != nil {
			respondError(c, err, "/checkout", "process_payment")
			return
		}
		flash.Redirect(c, "/profile", flash.Success, "Pagamento processado com sucesso! Suas reservas foram confirmadas.")
	}
}

// ProfileHandler lists the caller's bookings
func ProfileHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := bookings.ListForUser(c.Request.Context(), principal(c))
		if err != nil {
			fail(c, err, "profile")
			return
		}
		render(c, http.StatusOK, "profile", gin.H{"bookings": list})
	}
}

// CancelBookingHandler cancels one of the caller's confirmed bookings
func CancelBookingHandler(bookings *service.BookingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id")
		if !ok {
			flash.Redirect(c, "/profile", flash.Error, "Não foi possível cancelar a reserva!")
			return
		}
		p := principal(c)
		cancelled, err := bookings.Cancel(c.Request.Context(), p, id)
		if err != nil {
			fail(c, err, "cancel_booking")
			return
		}
		if !cancelled {
			logrus.WithFields(logrus.Fields{
				"user_id":    p.UserID,
				"booking_id": id,
			}).Warn("Cancellation refused")
			flash.Redirect(c, "/profile", flash.Error, "Não foi possível cancelar a reserva!")
			return
		}
		flash.Redirect(c, "/profile", flash.Success, "Reserva cancelada com sucesso!")
	}
}
