package middleware

import (
	"context"
	"net/http"

	"homechef-api/apperr"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

const (
	ctxEmail = "email"
	ctxUser  = "user"
)

// RoleResolver looks up the caller's persisted role
type RoleResolver interface {
	RequireRole(ctx context.Context, email string, roles ...models.UserRole) (*models.User, error)
}

// SessionRequired validates the session token and injects the caller's email into context
func SessionRequired(sessions *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := sessions.Verify(sessions.TokenFromRequest(c))
		if err != nil {
			abort(c, apperr.Unauthorized("Unauthorized"))
			return
		}
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// RoleRequired enforces that the caller's stored role is one of roles
func RoleRequired(users RoleResolver, roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.RequireRole(c.Request.Context(), GetEmail(c), roles...)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set(ctxUser, user)
		c.Next()
	}
}

// SelfRequired rejects callers whose session email differs from the named path parameter
func SelfRequired(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := RequireSelf(GetEmail(c), c.Param(param)); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// RequireSelf compares two emails case-insensitively
func RequireSelf(sessionEmail, pathEmail string) error {
	s := models.NormalizeEmail(sessionEmail)
	if s == "" || s != models.NormalizeEmail(pathEmail) {
		return apperr.Forbidden("Forbidden access")
	}
	return nil
}

// RequireRole checks an already loaded identity against roles
func RequireRole(user *models.User, roles ...models.UserRole) error {
	if user == nil {
		return apperr.Forbidden("Forbidden access")
	}
	for _, r := range roles {
		if user.Role == r {
			return nil
		}
	}
	return apperr.Forbidden("Forbidden access")
}

// GetEmail extracts the caller's email from context
func GetEmail(c *gin.Context) string {
	return c.GetString(ctxEmail)
}

// GetUser extracts the identity loaded by RoleRequired, if any
func GetUser(c *gin.Context) *models.User {
	val, ok := c.Get(ctxUser)
	if !ok {
		return nil
	}
	user, _ := val.(*models.User)
	return user
}

func abort(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": apperr.Message(err)})
}
