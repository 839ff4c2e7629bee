package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"homechef-api/apperr"
	"homechef-api/models"

	"github.com/gin-gonic/gin"
)

type fakeResolver struct {
	roles map[string]models.UserRole
}

func (f *fakeResolver) RequireRole(_ context.Context, email string, roles ...models.UserRole) (*models.User, error) {
	role, ok := f.roles[email]
	if !ok {
		return nil, apperr.Forbidden("Forbidden access")
	}
	user := &models.User{Email: email, Role: role}
	if err := RequireRole(user, roles...); err != nil {
		return nil, err
	}
	return user, nil
}

func newTestRouter(sessions *SessionManager, resolver RoleResolver) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", SessionRequired(sessions))
	auth.GET("/orders/:userEmail", SelfRequired("userEmail"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": GetEmail(c)})
	})
	auth.GET("/admin", RoleRequired(resolver, models.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"role": GetUser(c).Role})
	})
	return r
}

func do(t *testing.T, r http.Handler, path, token string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestSessionRequired(t *testing.T) {
	sessions := NewSessionManager("secret", time.Hour, "token", false)
	r := newTestRouter(sessions, &fakeResolver{})

	w, body := do(t, r, "/orders/a@x.com", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if body["success"] != false || body["message"] != "Unauthorized" {
		t.Errorf("body = %v", body)
	}

	w, _ = do(t, r, "/orders/a@x.com", "tampered")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("invalid token status = %d, want 401", w.Code)
	}
}

func TestSelfRequired(t *testing.T) {
	sessions := NewSessionManager("secret", time.Hour, "token", false)
	r := newTestRouter(sessions, &fakeResolver{})
	token, _ := sessions.Issue("a@x.com")

	tests := []struct {
		path string
		want int
	}{
		{"/orders/a@x.com", http.StatusOK},
		{"/orders/A@X.com", http.StatusOK},
		{"/orders/b@x.com", http.StatusForbidden},
	}
	for _, tt := range tests {
		if w, _ := do(t, r, tt.path, token); w.Code != tt.want {
			t.Errorf("GET %s = %d, want %d", tt.path, w.Code, tt.want)
		}
	}
}

func TestRoleRequired(t *testing.T) {
	sessions := NewSessionManager("secret", time.Hour, "token", false)
	resolver := &fakeResolver{roles: map[string]models.UserRole{
		"admin@x.com": models.RoleAdmin,
		"chef@x.com":  models.RoleChef,
	}}
	r := newTestRouter(sessions, resolver)

	adminToken, _ := sessions.Issue("admin@x.com")
	chefToken, _ := sessions.Issue("chef@x.com")
	ghostToken, _ := sessions.Issue("ghost@x.com")

	w, body := do(t, r, "/admin", adminToken)
	if w.Code != http.StatusOK || body["role"] != "admin" {
		t.Errorf("admin: %d %v", w.Code, body)
	}
	if w, _ := do(t, r, "/admin", chefToken); w.Code != http.StatusForbidden {
		t.Errorf("chef: %d, want 403", w.Code)
	}
	if w, _ := do(t, r, "/admin", ghostToken); w.Code != http.StatusForbidden {
		t.Errorf("unknown user: %d, want 403", w.Code)
	}
}

func TestRequireSelf(t *testing.T) {
	if err := RequireSelf("a@x.com", " A@X.COM"); err != nil {
		t.Errorf("case-insensitive match rejected: %v", err)
	}
	if err := RequireSelf("", ""); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("empty session email err = %v", err)
	}
	if err := RequireSelf("a@x.com", "b@x.com"); !apperr.Is(err, apperr.KindForbidden) {
		t.Errorf("mismatch err = %v", err)
	}
}
