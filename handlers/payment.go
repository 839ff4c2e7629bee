package handlers

import (
	"net/http"

	"homechef-api/middleware"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	OrderID string `json:"orderId"`
}

// CreateCheckoutSession starts a hosted checkout and returns its redirect URL
func (h *Handler) CreateCheckoutSession(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "orderId required")
		return
	}

	url, err := h.svc.Payments.CreateCheckout(c.Request.Context(), req.OrderID, middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// VerifyPayment settles the order once its checkout session is paid.
// Unpaid sessions answer success:false so the client can poll again.
func (h *Handler) VerifyPayment(c *gin.Context) {
	paid, err := h.svc.Payments.VerifyPayment(c.Request.Context(), c.Param("sessionId"), middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !paid {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": "Not paid"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetMyPayments returns the caller's payment ledger
func (h *Handler) GetMyPayments(c *gin.Context) {
	payments, err := h.svc.Payments.ListByUser(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": payments})
}
