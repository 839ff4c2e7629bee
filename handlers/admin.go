package handlers

import (
	"fmt"
	"net/http"

	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

// AdminGetAllUsers returns every identity
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	h.listUsers(c, "")
}

// AdminGetAdmins returns identities holding the admin role
func (h *Handler) AdminGetAdmins(c *gin.Context) {
	h.listUsers(c, models.RoleAdmin)
}

type UserStatusRequest struct {
	Status models.UserStatus `json:"status"`
}

// AdminSetUserStatus flags a user as fraud
func (h *Handler) AdminSetUserStatus(c *gin.Context) {
	var req UserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid status")
		return
	}

	user, err := h.svc.Users.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "User marked as fraud", "data": user})
}

// AdminListRoleRequests returns identities with an open role request
func (h *Handler) AdminListRoleRequests(c *gin.Context) {
	users, err := h.svc.Roles.Pending(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

// AdminApproveRoleRequest grants the requested role
func (h *Handler) AdminApproveRoleRequest(c *gin.Context) {
	user, err := h.svc.Roles.Approve(c.Request.Context(), c.Param("id"), middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Role updated successfully", "data": user})
}

// AdminDeclineRoleRequest drops the request and keeps the current role
func (h *Handler) AdminDeclineRoleRequest(c *gin.Context) {
	user, err := h.svc.Roles.Decline(c.Request.Context(), c.Param("id"), middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Role request declined", "data": user})
}

type ForceStatusRequest struct {
	OrderStatus string `json:"orderStatus"`
}

// AdminForceOrderStatus moves an order to any state reachable from its current one
func (h *Handler) AdminForceOrderStatus(c *gin.Context) {
	var req ForceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid order status")
		return
	}

	order, err := h.svc.Orders.ForceStatus(c.Request.Context(), c.Param("id"), req.OrderStatus, middleware.GetUser(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Order %s successfully", order.OrderStatus),
		"data":    order,
	})
}
