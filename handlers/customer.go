package handlers

import (
	"encoding/json"
	"net/http"

	"homechef-api/middleware"
	"homechef-api/services"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	MealID          string  `json:"mealId"`
	FoodID          string  `json:"foodId"`
	Quantity        flexInt `json:"quantity"`
	DeliveryAddress string  `json:"deliveryAddress"`
	UserAddress     string  `json:"userAddress"`
}

// PlaceOrder creates a pending order for the logged-in buyer. Price and chef
// are taken from the meal, never from the request.
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid order")
		return
	}
	mealID := req.MealID
	if mealID == "" {
		mealID = req.FoodID
	}
	address := req.DeliveryAddress
	if address == "" {
		address = req.UserAddress
	}

	order, err := h.svc.Orders.Create(c.Request.Context(), middleware.GetEmail(c), services.CreateOrderInput{
		MealID:          mealID,
		Quantity:        int(req.Quantity),
		DeliveryAddress: address,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success":    true,
		"message":    "Order placed successfully!",
		"insertedId": order.ID,
		"data":       order,
	})
}

// GetOrdersByEmail returns the caller's orders, newest first
func (h *Handler) GetOrdersByEmail(c *gin.Context) {
	h.ordersFor(c, c.Param("userEmail"))
}

// GetMyOrders returns all orders for the logged-in buyer
func (h *Handler) GetMyOrders(c *gin.Context) {
	h.ordersFor(c, middleware.GetEmail(c))
}

func (h *Handler) ordersFor(c *gin.Context, email string) {
	orders, err := h.svc.Orders.ListByUser(c.Request.Context(), email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

// GetOrderHistory returns the audit trail of one order
func (h *Handler) GetOrderHistory(c *gin.Context) {
	history, err := h.svc.Orders.History(c.Request.Context(), c.Param("id"), middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": history})
}

type PayOrderRequest struct {
	TransactionID string          `json:"transactionId"`
	PaymentInfo   json.RawMessage `json:"paymentInfo"`
}

// PayOrder records a payment for the caller's accepted order
func (h *Handler) PayOrder(c *gin.Context) {
	var req PayOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.badRequest(c, "Invalid payment")
			return
		}
	}

	order, err := h.svc.Payments.MarkPaid(c.Request.Context(), c.Param("orderId"), middleware.GetEmail(c), req.TransactionID, req.PaymentInfo)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment successful", "order": order})
}
