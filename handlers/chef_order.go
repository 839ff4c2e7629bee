package handlers

import (
	"net/http"

	"homechef-api/apperr"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

// GetChefOrders returns the orders addressed to the calling chef's id
func (h *Handler) GetChefOrders(c *gin.Context) {
	chef := middleware.GetUser(c)
	chefID := c.Param("chefId")
	if chef == nil || chef.ChefID == nil || *chef.ChefID != chefID {
		h.respondError(c, apperr.Forbidden("Forbidden access"))
		return
	}

	orders, err := h.svc.Orders.ListByChef(c.Request.Context(), chefID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetMealOwnerOrders returns orders for every chef id on the caller's meals
func (h *Handler) GetMealOwnerOrders(c *gin.Context) {
	orders, err := h.svc.Orders.ListForMealOwner(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": orders})
}

// AcceptOrder moves a pending order to accepted
func (h *Handler) AcceptOrder(c *gin.Context) {
	h.transition(c, models.OrderAccepted)
}

// CancelOrder cancels a pending or accepted order
func (h *Handler) CancelOrder(c *gin.Context) {
	h.transition(c, models.OrderCancelled)
}

// DeliverOrder marks an accepted order delivered
func (h *Handler) DeliverOrder(c *gin.Context) {
	h.transition(c, models.OrderDelivered)
}

func (h *Handler) transition(c *gin.Context, to models.OrderStatus) {
	ctx := c.Request.Context()
	caller := middleware.GetUser(c)
	id := c.Param("id")

	var (
		order *models.Order
		err   error
	)
	switch to {
	case models.OrderAccepted:
		order, err = h.svc.Orders.Accept(ctx, id, caller)
	case models.OrderCancelled:
		order, err = h.svc.Orders.Cancel(ctx, id, caller)
	case models.OrderDelivered:
		order, err = h.svc.Orders.Deliver(ctx, id, caller)
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order " + string(to), "data": order})
}
