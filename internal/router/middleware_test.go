package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/blog-console/internal/authz"
	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	got := resolveAllowedOrigin("https://example.com", []string{"*"}, false)
	if got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}

	got = resolveAllowedOrigin("https://example.com", []string{"*"}, true)
	if got != "https://example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://a.example.com", []string{"https://a.example.com", "https://b.example.com"}, false)
	if got != "https://a.example.com" {
		t.Fatalf("allow-list should return matched origin, got %s", got)
	}

	got = resolveAllowedOrigin("https://x.example.com", []string{"https://a.example.com"}, false)
	if got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-123")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}
	if w.Header().Get(requestIDHeader) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(requestIDHeader))
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp["request_id"] != "req-123" {
		t.Fatalf("context request id want req-123 got %s", resp["request_id"])
	}

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/ping", nil)
	r.ServeHTTP(w2, req2)
	generated := w2.Header().Get(requestIDHeader)
	if generated == "" {
		t.Fatalf("generated request id should not be empty")
	}
	if resp := strings.TrimSpace(generated); resp == "" {
		t.Fatalf("generated request id should not be blank")
	}
}

type stubResolver struct {
	sessions map[string]*service.Session
	err      error
}

func (s stubResolver) ResolveSession(_ context.Context, token string) (*service.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	session, ok := s.sessions[token]
	if !ok {
		return nil, service.ErrTokenInvalid
	}
	return session, nil
}

func decodeStatusCode(t *testing.T, w *httptest.ResponseRecorder) int {
	t.Helper()
	var resp struct {
		StatusCode int `json:"status_code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	return resp.StatusCode
}

func TestExtractToken(t *testing.T) {
	cases := map[string]string{
		"abc":          "abc",
		"Bearer abc":   "abc",
		"bearer  abc ": "abc",
		"":             "",
		"   ":          "",
	}

	for header, want := range cases {
		if got := extractToken(header); got != want {
			t.Fatalf("extractToken(%q) want %q got %q", header, want, got)
		}
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	resolver := stubResolver{sessions: map[string]*service.Session{
		"good": {UserID: 7, Username: "alice", Role: constants.RoleMarketer},
	}}
	r := gin.New()
	r.Use(AuthMiddleware(resolver))
	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status_code": 0,
			"user_id":     c.GetUint(constants.ContextKeyUserID),
			"role":        c.GetInt(constants.ContextKeyUserRole),
		})
	})

	for _, header := range []string{"good", "Bearer good"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		if code := decodeStatusCode(t, w); code != 0 {
			t.Fatalf("header %q want status_code 0 got %d", header, code)
		}
		if !strings.Contains(w.Body.String(), `"user_id":7`) || !strings.Contains(w.Body.String(), `"role":3`) {
			t.Fatalf("session should be stored in context, got %s", w.Body.String())
		}
	}

	for _, header := range []string{"", "bad"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)
		if code := decodeStatusCode(t, w); code != 401 {
			t.Fatalf("header %q want status_code 401 got %d", header, code)
		}
	}
}

func TestAuthMiddlewareDisabledUser(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(AuthMiddleware(stubResolver{err: service.ErrUserDisabled}))
	r.GET("/api/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status_code": 0})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/ping?lang=en-US", nil)
	req.Header.Set("Authorization", "any")
	r.ServeHTTP(w, req)
	if code := decodeStatusCode(t, w); code != 401 {
		t.Fatalf("status_code want 401 got %d", code)
	}
}

func TestRoleMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:router_role_middleware?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	authzService, err := authz.NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap roles failed: %v", err)
	}

	newRouter := func(role int) *gin.Engine {
		r := gin.New()
		r.Use(func(c *gin.Context) {
			c.Set(constants.ContextKeyUserID, uint(1))
			c.Set(constants.ContextKeyUserRole, role)
			c.Next()
		}, RoleMiddleware(authzService))
		handler := func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status_code": 0})
		}
		r.GET("/api/blog/directory", handler)
		r.GET("/api/blog/:id", handler)
		return r
	}

	cases := []struct {
		role int
		path string
		want int
	}{
		{constants.RoleUser, "/api/blog/12", 0},
		{constants.RoleUser, "/api/blog/directory", 403},
		{constants.RoleMarketer, "/api/blog/directory", 0},
		{constants.RoleSuperAdmin, "/api/blog/directory", 0},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		newRouter(tc.role).ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.path, nil))
		if code := decodeStatusCode(t, w); code != tc.want {
			t.Fatalf("role %d %s want %d got %d", tc.role, tc.path, tc.want, code)
		}
	}
}
