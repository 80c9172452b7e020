package provider

import (
	"github.com/blog-console/internal/authz"
	"github.com/blog-console/internal/cache"
	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/idgen"
	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/queue"
	"github.com/blog-console/internal/repository"
	"github.com/blog-console/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	BlogRepo         repository.BlogRepository
	CommentRepo      repository.CommentRepository
	RevenueRepo      repository.RevenueRepository
	NotificationRepo repository.NotificationRepository
	RechargeRepo     repository.RechargeRepository

	// Services
	AuthzService        *authz.Service
	CaptchaService      *service.CaptchaService
	AuthService         *service.AuthService
	UserService         *service.UserService
	BlogService         *service.BlogService
	CommentService      *service.CommentService
	RevenueService      *service.RevenueService
	NotificationService *service.NotificationService
	RechargeService     *service.RechargeService
}

// NewContainer 初始化容器，使用全局数据库连接
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c, err := NewContainerWithDB(cfg, models.DB)
	if err != nil {
		logger.Errorw("provider_init_failed", "error", err)
		panic(err)
	}
	return c
}

// NewContainerWithDB 基于指定数据库初始化容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB) (*Container, error) {
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		// 队列不可用时通知直接落库
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(&config.QueueConfig{})
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.BlogRepo = repository.NewBlogRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.RevenueRepo = repository.NewRevenueRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.RechargeRepo = repository.NewRechargeRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return err
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		return err
	}

	ids, err := idgen.New(c.Config.IDGen)
	if err != nil {
		return err
	}

	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.CaptchaService)
	c.UserService = service.NewUserService(c.Config, c.UserRepo)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.QueueClient)
	c.BlogService = service.NewBlogService(c.BlogRepo, c.UserRepo)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.BlogRepo, c.UserRepo, c.NotificationService)
	c.RevenueService = service.NewRevenueService(c.RevenueRepo, c.QueueClient)
	c.RechargeService = service.NewRechargeService(c.RechargeRepo, ids, c.NotificationService)
	return nil
}
