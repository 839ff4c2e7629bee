package handlers

import (
	"net/http"

	"homechef-api/apperr"
	"homechef-api/middleware"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

// GetUser returns the caller's own identity
func (h *Handler) GetUser(c *gin.Context) {
	user, err := h.svc.Users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// GetUserRole returns role, status and chef id for the caller
func (h *Handler) GetUserRole(c *gin.Context) {
	user, err := h.svc.Users.GetByEmail(c.Request.Context(), c.Param("email"))
	if apperr.Is(err, apperr.KindNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"role": models.RoleUser, "status": models.UserActive})
		return
	}
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": user.Role, "status": user.Status, "chefId": user.ChefID})
}

// CheckRole is the public role lookup used during sign-in
func (h *Handler) CheckRole(c *gin.Context) {
	user, err := h.svc.Users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "email": user.Email, "role": user.Role})
}

// ListChefs is public
func (h *Handler) ListChefs(c *gin.Context) {
	h.listUsers(c, models.RoleChef)
}

// GetChefID resolves the caller's chef id
func (h *Handler) GetChefID(c *gin.Context) {
	chefID, err := h.svc.Meals.ChefIDByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if chefID == "" {
		c.JSON(http.StatusOK, gin.H{"chefId": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chefId": chefID})
}

type RoleRequestBody struct {
	Email         string          `json:"email"`
	RequestedRole models.UserRole `json:"requestedRole"`
}

// SubmitRoleRequest asks an admin to upgrade the caller to chef or admin
func (h *Handler) SubmitRoleRequest(c *gin.Context) {
	var req RoleRequestBody
	if err := c.ShouldBindJSON(&req); err != nil || req.Email == "" || req.RequestedRole == "" {
		h.badRequest(c, "Email and requestedRole required")
		return
	}
	if err := middleware.RequireSelf(middleware.GetEmail(c), req.Email); err != nil {
		h.respondError(c, err)
		return
	}

	user, err := h.svc.Roles.Submit(c.Request.Context(), req.Email, req.RequestedRole)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Role request submitted", "data": user})
}

func (h *Handler) listUsers(c *gin.Context, role models.UserRole) {
	users, err := h.svc.Users.List(c.Request.Context(), role)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}
