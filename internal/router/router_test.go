package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/provider"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
	Pagination struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"totalPages"`
	} `json:"pagination"`
}

func setupRouterTest(t *testing.T) (*gin.Engine, *provider.Container, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_%s_%d?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db failed: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "debug"},
		JWT:    config.JWTConfig{SecretKey: "router-test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
		CORS:  config.CORSConfig{AllowedOrigins: []string{"*"}},
		IDGen: config.IDGenConfig{MinLength: 10},
	}
	c, err := provider.NewContainerWithDB(cfg, db)
	if err != nil {
		t.Fatalf("init container failed: %v", err)
	}
	return SetupRouter(cfg, c), c, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body failed: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("%s %s http status want 200 got %d", method, path, w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s decode failed: %v (%s)", method, path, err, w.Body.String())
	}
	return resp
}

func TestEveryProtectedRouteHasPolicy(t *testing.T) {
	r, c, _ := setupRouterTest(t)

	if uncovered := UncoveredRoutes(r, c.AuthzService); len(uncovered) != 0 {
		t.Fatalf("routes without policy: %+v", uncovered)
	}

	catalog := BuildPermissionCatalog(r, c.AuthzService)
	want := map[string]string{
		"GET:/api/blog/paginated":             "user",
		"GET:/api/blog/directory":             "marketer",
		"GET:/api/employee-revenue/aggregate": "marketer",
		"DELETE:/api/user/:id":                "admin",
	}
	for _, item := range catalog {
		if role, ok := want[item.Method+":"+item.Path]; ok {
			if item.MinRole != role {
				t.Fatalf("%s %s min role want %s got %s", item.Method, item.Path, role, item.MinRole)
			}
			delete(want, item.Method+":"+item.Path)
		}
		if isPublicRoute(item.Method, item.Path) {
			t.Fatalf("public route %s %s should not be in catalog", item.Method, item.Path)
		}
	}
	if len(want) != 0 {
		t.Fatalf("routes missing from catalog: %v", want)
	}
}

func TestSignInAndRoleGate(t *testing.T) {
	r, _, _ := setupRouterTest(t)

	if resp := doJSON(t, r, http.MethodGet, "/health", "", nil); resp.StatusCode != 0 {
		t.Fatalf("health want 0 got %d", resp.StatusCode)
	}
	if resp := doJSON(t, r, http.MethodGet, "/api/user/profile", "", nil); resp.StatusCode != 401 {
		t.Fatalf("profile without token want 401 got %d", resp.StatusCode)
	}

	resp := doJSON(t, r, http.MethodPost, "/api/user/register", "", gin.H{
		"username": "alice",
		"password": "secret123",
		"email":    "alice@example.com",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("register want 0 got %d %s", resp.StatusCode, resp.Msg)
	}
	if resp := doJSON(t, r, http.MethodPost, "/api/user/signin", "", gin.H{"username": "alice", "password": "bad-pass"}); resp.StatusCode != 401 {
		t.Fatalf("wrong password want 401 got %d", resp.StatusCode)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/user/signin", "", gin.H{"username": "alice", "password": "secret123"})
	if resp.StatusCode != 0 {
		t.Fatalf("signin want 0 got %d %s", resp.StatusCode, resp.Msg)
	}
	var signin signInPayload
	if err := json.Unmarshal(resp.Data, &signin); err != nil || signin.Token == "" {
		t.Fatalf("signin token missing: %v %s", err, string(resp.Data))
	}

	resp = doJSON(t, r, http.MethodPost, "/api/employee-revenue", signin.Token, gin.H{
		"ad_platform": "google",
		"expenditure": "100",
		"revenue":     250.5,
		"record_time": "2026-03-01",
	})
	if resp.StatusCode != 0 {
		t.Fatalf("create revenue want 0 got %d %s", resp.StatusCode, resp.Msg)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/employee-revenue/user/revenue", signin.Token, nil)
	if resp.StatusCode != 0 || resp.Pagination.Total != 1 {
		t.Fatalf("own revenue want 1 record got code=%d total=%d", resp.StatusCode, resp.Pagination.Total)
	}
	if resp := doJSON(t, r, http.MethodGet, "/api/employee-revenue/aggregate", signin.Token, nil); resp.StatusCode != 403 {
		t.Fatalf("aggregate as user want 403 got %d", resp.StatusCode)
	}
	if resp := doJSON(t, r, http.MethodGet, "/api/user/admin/all", signin.Token, nil); resp.StatusCode != 403 {
		t.Fatalf("admin list as user want 403 got %d", resp.StatusCode)
	}
}

type signInPayload struct {
	Token string `json:"token"`
	Role  int    `json:"role"`
}
