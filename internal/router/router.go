package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/blog-console/internal/authz"
	"github.com/blog-console/internal/cache"
	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/constants"
	adminhandlers "github.com/blog-console/internal/http/handlers/admin"
	publichandlers "github.com/blog-console/internal/http/handlers/public"
	"github.com/blog-console/internal/http/response"
	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/provider"

	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api"

// 不需要登录的接口
var publicRoutes = map[string]struct{}{
	"POST:/api/user/register":             {},
	"POST:/api/user/signin":               {},
	"GET:/api/user/captcha":               {},
	"GET:/api/comment":                    {},
	"GET:/api/comment/:id":                {},
	"GET:/api/comment/blog/:blog_id":      {},
	"GET:/api/comment/blog/:blog_id/tree": {},
	"GET:/health":                         {},
}

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按用户侧/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	loginRule := LoginRateLimitRule(cache.Prefix(), cfg.Security.LoginRateLimit)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	api := r.Group(apiPrefix)
	{
		// 公开接口
		api.POST("/user/register", publicHandler.Register)
		api.POST("/user/signin", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), publicHandler.SignIn)
		api.GET("/user/captcha", publicHandler.GetCaptcha)
		api.GET("/comment", publicHandler.ListComments)
		api.GET("/comment/:id", publicHandler.GetComment)
		api.GET("/comment/blog/:blog_id", publicHandler.ListBlogComments)
		api.GET("/comment/blog/:blog_id/tree", publicHandler.GetCommentTree)

		// 需登录，最低角色由 RBAC 策略决定
		authed := api.Group("")
		authed.Use(AuthMiddleware(c.AuthService), RoleMiddleware(c.AuthzService))
		{
			authed.GET("/user/profile", publicHandler.GetProfile)
			authed.PUT("/user/profile", publicHandler.UpdateProfile)
			authed.GET("/user/all", adminHandler.ListMarketers)
			authed.GET("/user/admin/all", adminHandler.ListUsers)
			authed.POST("/user/admin/create", adminHandler.CreateUser)
			authed.PUT("/user/admin/:id", adminHandler.UpdateUser)
			authed.DELETE("/user/:id", adminHandler.DeleteUser)

			authed.POST("/blog", publicHandler.CreateBlog)
			authed.GET("/blog/paginated", publicHandler.ListBlogFeed)
			authed.GET("/blog/user", publicHandler.ListMyBlogs)
			authed.GET("/blog/directory", publicHandler.GetBlogDirectory)
			authed.GET("/blog/my", publicHandler.GetBlogOverview)
			authed.GET("/blog/:id", publicHandler.GetBlog)
			authed.PUT("/blog/:id", publicHandler.UpdateBlog)
			authed.DELETE("/blog/:id", publicHandler.DeleteBlog)

			authed.POST("/comment", publicHandler.CreateComment)
			authed.PUT("/comment/:id", publicHandler.UpdateComment)
			authed.DELETE("/comment/:id", publicHandler.DeleteComment)

			authed.POST("/employee-revenue", publicHandler.CreateRevenue)
			authed.GET("/employee-revenue", publicHandler.ListRevenue)
			authed.GET("/employee-revenue/user/revenue", publicHandler.ListMyRevenue)
			authed.GET("/employee-revenue/aggregate", publicHandler.AggregateRevenue)
			authed.GET("/employee-revenue/summary", publicHandler.RevenueSummary)
			authed.GET("/employee-revenue/monthly", publicHandler.MonthlyRevenue)
			authed.GET("/employee-revenue/:id", publicHandler.GetRevenue)
			authed.PUT("/employee-revenue/:id", publicHandler.UpdateRevenue)
			authed.DELETE("/employee-revenue/:id", publicHandler.DeleteRevenue)

			authed.POST("/notification", publicHandler.CreateNotification)
			authed.GET("/notification", publicHandler.ListNotifications)
			authed.PUT("/notification/read-all", publicHandler.MarkAllNotificationsRead)
			authed.GET("/notification/unread-count", publicHandler.GetUnreadCount)
			authed.GET("/notification/:id", publicHandler.GetNotification)
			authed.PUT("/notification/:id", publicHandler.UpdateNotification)
			authed.DELETE("/notification/:id", publicHandler.DeleteNotification)

			authed.POST("/recharge-transaction", publicHandler.CreateRecharge)
			authed.GET("/recharge-transaction", publicHandler.ListRecharges)
			authed.GET("/recharge-transaction/:id", publicHandler.GetRecharge)
			authed.PUT("/recharge-transaction/:id", publicHandler.UpdateRecharge)
			authed.DELETE("/recharge-transaction/:id", publicHandler.DeleteRecharge)
		}
	}

	for _, item := range UncoveredRoutes(r, c.AuthzService) {
		logger.Warnw("router_route_without_policy", "method", item.Method, "path", item.Path)
	}
	return r
}

// RoutePermission 受保护路由与其最低角色
type RoutePermission struct {
	Method  string `json:"method"`
	Path    string `json:"path"`
	Object  string `json:"object"`
	MinRole string `json:"min_role"`
}

func isPublicRoute(method, path string) bool {
	_, ok := publicRoutes[method+":"+path]
	return ok
}

// BuildPermissionCatalog 列出受保护路由以及可访问它的最低角色
func BuildPermissionCatalog(engine *gin.Engine, authzService *authz.Service) []RoutePermission {
	if engine == nil {
		return nil
	}
	items := make([]RoutePermission, 0)
	for _, route := range engine.Routes() {
		method := strings.ToUpper(strings.TrimSpace(route.Method))
		if method == http.MethodOptions || isPublicRoute(method, route.Path) {
			continue
		}
		item := RoutePermission{
			Method: method,
			Path:   route.Path,
			Object: authz.NormalizeObject(route.Path),
		}
		// 从最低权限往上找第一个放行的角色
		for role := constants.RoleUser; role >= constants.RoleSuperAdmin; role-- {
			allowed, err := authzService.EnforceRole(role, route.Path, method)
			if err == nil && allowed {
				item.MinRole = constants.RoleName(role)
				break
			}
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Object == items[j].Object {
			return items[i].Method < items[j].Method
		}
		return items[i].Object < items[j].Object
	})
	return items
}

// UncoveredRoutes 没有任何角色可访问的受保护路由
func UncoveredRoutes(engine *gin.Engine, authzService *authz.Service) []RoutePermission {
	uncovered := make([]RoutePermission, 0)
	for _, item := range BuildPermissionCatalog(engine, authzService) {
		if item.MinRole == "" {
			uncovered = append(uncovered, item)
		}
	}
	return uncovered
}
