package service

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/idgen"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/queue"
	"github.com/blog-console/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type serviceTestEnv struct {
	db            *gorm.DB
	cfg           *config.Config
	users         *repository.GormUserRepository
	auth          *AuthService
	user          *UserService
	blogs         *BlogService
	comments      *CommentService
	revenue       *RevenueService
	notifications *NotificationService
	recharge      *RechargeService
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 24},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
	}
}

func setupServiceTest(t *testing.T) *serviceTestEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_%s_%d?mode=memory&cache=shared",
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

	cfg := newTestConfig()
	queueClient, _ := queue.NewClient(&config.QueueConfig{})
	ids, err := idgen.New(config.IDGenConfig{MinLength: 10})
	if err != nil {
		t.Fatalf("init idgen failed: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	notifications := NewNotificationService(repository.NewNotificationRepository(db), queueClient)

	return &serviceTestEnv{
		db:            db,
		cfg:           cfg,
		users:         userRepo,
		auth:          NewAuthService(cfg, userRepo, NewCaptchaService(cfg.Captcha)),
		user:          NewUserService(cfg, userRepo),
		blogs:         NewBlogService(blogRepo, userRepo),
		comments:      NewCommentService(commentRepo, blogRepo, userRepo, notifications),
		revenue:       NewRevenueService(repository.NewRevenueRepository(db), queueClient),
		notifications: notifications,
		recharge:      NewRechargeService(repository.NewRechargeRepository(db), ids, notifications),
	}
}

func (env *serviceTestEnv) createUser(t *testing.T, username string, role int) *models.User {
	t.Helper()
	hashed, err := HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password failed: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Nickname:     strings.ToUpper(username),
		Email:        username + "@example.com",
		Role:         role,
		Avatar:       constants.DefaultAvatar,
		Status:       constants.UserStatusActive,
	}
	if err := env.db.Create(user).Error; err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	return user
}

func actorOf(user *models.User) Actor {
	return Actor{UserID: user.ID, Role: user.Role}
}

func (env *serviceTestEnv) notificationsOf(t *testing.T, userID uint) []models.Notification {
	t.Helper()
	var rows []models.Notification
	if err := env.db.Where("user_id = ?", userID).Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("query notifications failed: %v", err)
	}
	return rows
}
