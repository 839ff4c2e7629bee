package handlers

import (
	"net/http"

	"homechef-api/statemachine"

	"github.com/gin-gonic/gin"
)

// Root is a liveness greeting
func (h *Handler) Root(c *gin.Context) {
	c.String(http.StatusOK, "HomeChef API is running")
}

// Health reports whether the database answers
func (h *Handler) Health(c *gin.Context) {
	if err := h.svc.Stats.Ping(c.Request.Context()); err != nil {
		h.logger.ErrorContext(c.Request.Context(), "health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "homechef-api"})
}

// GetStateMachineInfo returns the order lifecycle for documentation
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	var terminal []string
	for _, s := range statemachine.Statuses() {
		if statemachine.IsTerminal(s) {
			terminal = append(terminal, string(s))
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"state_machine":   statemachine.GetAllTransitions(),
		"statuses":        statemachine.Statuses(),
		"terminal_states": terminal,
		"payment_states":  []string{"pending", "paid"},
	})
}

// UserCount returns the number of registered identities
func (h *Handler) UserCount(c *gin.Context) {
	n, err := h.svc.Stats.UserCount(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "totalUsers": n})
}

// DeliveredCount returns how many orders were delivered
func (h *Handler) DeliveredCount(c *gin.Context) {
	n, err := h.svc.Stats.DeliveredCount(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deliveredOrders": n})
}

// PendingPaymentCount returns how many orders are still unpaid
func (h *Handler) PendingPaymentCount(c *gin.Context) {
	n, err := h.svc.Stats.PendingPaymentCount(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "pendingPayments": n})
}

// PaidTotal sums the value of paid orders
func (h *Handler) PaidTotal(c *gin.Context) {
	total, err := h.svc.Stats.PaidTotal(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, total)
}

// CatalogStats returns meal, review and favorite counts
func (h *Handler) CatalogStats(c *gin.Context) {
	counts, err := h.svc.Stats.Catalog(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"mealsCount":     counts.MealsCount,
		"reviewsCount":   counts.ReviewsCount,
		"favoritesCount": counts.FavoritesCount,
	})
}

// NotFound answers unmatched routes
func (h *Handler) NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"message": "Route not found"})
}
