package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	helper "hostel-meal-management/helpers"

	"github.com/gin-gonic/gin"
)

var secret = []byte("0123456789abcdef")

type fakeRoles map[string]bool

func (f fakeRoles) IsAdmin(_ context.Context, email string) (bool, error) {
	if email == "broken@example.com" {
		return false, errors.New("db down")
	}
	return f[email], nil
}

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString(EmailKey)})
	})
	r.GET("/things/:email", handlers...)
	return r
}

func do(t *testing.T, r http.Handler, path, email string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if email != "" {
		token, err := helper.GenerateToken(secret, email, time.Minute)
		if err != nil {
			t.Fatal(err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthentication(t *testing.T) {
	r := newRouter(Authentication(secret))

	if w := do(t, r, "/things/x", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token: expected 401, got %d", w.Code)
	}
	if w := do(t, r, "/things/x", "ann@example.com"); w.Code != http.StatusOK {
		t.Errorf("valid token: expected 200, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/things/x", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token: expected 401, got %d", w.Code)
	}
}

func TestAdminOnly(t *testing.T) {
	roles := fakeRoles{"admin@example.com": true}
	r := newRouter(Authentication(secret), AdminOnly(roles, time.Second))

	tests := []struct {
		email string
		want  int
	}{
		{"admin@example.com", http.StatusOK},
		{"ann@example.com", http.StatusForbidden},
		{"broken@example.com", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if w := do(t, r, "/things/x", tt.email); w.Code != tt.want {
			t.Errorf("%s: expected %d, got %d", tt.email, tt.want, w.Code)
		}
	}
}

func TestOwnerOrAdmin(t *testing.T) {
	roles := fakeRoles{"admin@example.com": true}
	r := newRouter(Authentication(secret), OwnerOrAdmin(roles, "email", time.Second))

	if w := do(t, r, "/things/ann@example.com", "ann@example.com"); w.Code != http.StatusOK {
		t.Errorf("owner: expected 200, got %d", w.Code)
	}
	if w := do(t, r, "/things/ann@example.com", "bob@example.com"); w.Code != http.StatusForbidden {
		t.Errorf("stranger: expected 403, got %d", w.Code)
	}
	if w := do(t, r, "/things/ann@example.com", "admin@example.com"); w.Code != http.StatusOK {
		t.Errorf("admin: expected 200, got %d", w.Code)
	}
}

// deadlineRoles records the deadline the lookup was called with.
type deadlineRoles struct {
	deadline time.Time
	ok       bool
}

func (d *deadlineRoles) IsAdmin(ctx context.Context, _ string) (bool, error) {
	d.deadline, d.ok = ctx.Deadline()
	return true, nil
}

func TestRoleLookupHasDeadline(t *testing.T) {
	tests := []struct {
		name  string
		build func(RoleLookup) gin.HandlerFunc
	}{
		{"admin only", func(l RoleLookup) gin.HandlerFunc { return AdminOnly(l, 2*time.Second) }},
		{"owner or admin", func(l RoleLookup) gin.HandlerFunc { return OwnerOrAdmin(l, "email", 2*time.Second) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roles := &deadlineRoles{}
			r := newRouter(Authentication(secret), tt.build(roles))

			start := time.Now()
			if w := do(t, r, "/things/ann@example.com", "admin@example.com"); w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			if !roles.ok {
				t.Fatal("role lookup ran without a deadline")
			}
			if d := roles.deadline.Sub(start); d <= 0 || d > 2*time.Second {
				t.Errorf("deadline %v out of range", d)
			}
		})
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newRouter()

	w := do(t, r, "/things/x", "")
	if len(w.Header().Get("X-Request-Id")) != 36 {
		t.Errorf("expected generated uuid, got %q", w.Header().Get("X-Request-Id"))
	}

	req := httptest.NewRequest(http.MethodGet, "/things/x", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("expected client id to be kept, got %q", got)
	}
}
