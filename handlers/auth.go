package handlers

import (
	"net/http"

	"homechef-api/middleware"
	"homechef-api/models"
	"homechef-api/services"

	"github.com/gin-gonic/gin"
)

type TokenRequest struct {
	Email string `json:"email" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Image    string `json:"image"`
	Address  string `json:"address"`
	Password string `json:"password" binding:"omitempty,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IssueToken sets a session cookie for an email confirmed by the frontend's identity provider
func (h *Handler) IssueToken(c *gin.Context) {
	var req TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || models.NormalizeEmail(req.Email) == "" {
		h.badRequest(c, "Email required")
		return
	}

	token, err := h.sessions.Issue(req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.sessions.SetCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout clears the session cookie
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Register creates a new identity with the user role
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "A valid email is required")
		return
	}

	user, err := h.svc.Users.Register(c.Request.Context(), services.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Image:    req.Image,
		Address:  req.Address,
		Password: req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": user})
}

// Login verifies a password and sets the session cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Email and password required")
		return
	}

	user, err := h.svc.Users.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}
	token, err := h.sessions.Issue(user.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.sessions.SetCookie(c, token)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

// GetProfile returns the logged-in user's own record
func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.svc.Users.GetByEmail(c.Request.Context(), middleware.GetEmail(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}

type ProfileRequest struct {
	Name    *string `json:"name"`
	Image   *string `json:"image"`
	Address *string `json:"address"`
}

// UpdateProfile edits name, image and address of the logged-in user
func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, "Invalid profile")
		return
	}

	user, err := h.svc.Users.UpdateProfile(c.Request.Context(), middleware.GetEmail(c), services.ProfileInput{
		Name:    req.Name,
		Image:   req.Image,
		Address: req.Address,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
}
