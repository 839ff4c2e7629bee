package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"homechef-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidSession covers missing, malformed, badly signed and expired tokens
var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims carry nothing but the caller's email
type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// SessionManager issues and verifies session tokens and owns the cookie that carries them
type SessionManager struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	production bool
}

func NewSessionManager(secret string, ttl time.Duration, cookieName string, production bool) *SessionManager {
	if cookieName == "" {
		cookieName = "token"
	}
	return &SessionManager{
		secret:     []byte(secret),
		ttl:        ttl,
		cookieName: cookieName,
		production: production,
	}
}

// Issue creates a signed token for email
func (m *SessionManager) Issue(email string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: models.NormalizeEmail(email),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Verify checks signature and expiry and returns the claims
func (m *SessionManager) Verify(tokenStr string) (*SessionClaims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidSession
	}
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !token.Valid || claims.Email == "" {
		return nil, ErrInvalidSession
	}
	return claims, nil
}

// SetCookie attaches token as an HTTP-only cookie
func (m *SessionManager) SetCookie(c *gin.Context, token string) {
	m.writeCookie(c, token, int(m.ttl.Seconds()))
}

// ClearCookie tells the client to drop the session cookie. The token itself
// stays valid until it expires.
func (m *SessionManager) ClearCookie(c *gin.Context) {
	m.writeCookie(c, "", -1)
}

func (m *SessionManager) writeCookie(c *gin.Context, value string, maxAge int) {
	if m.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(m.cookieName, value, maxAge, "/", "", m.production, true)
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header
func (m *SessionManager) TokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
		return token
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// CookieName is the name of the session cookie
func (m *SessionManager) CookieName() string { return m.cookieName }
