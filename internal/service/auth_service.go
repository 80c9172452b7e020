package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/blog-console/internal/cache"
	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenExpired Token 已过期
var ErrTokenExpired = errors.New("token expired")

// AuthService 注册、登录与会话校验
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	captcha  *CaptchaService
}

// NewAuthService 创建认证服务
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, captcha *CaptchaService) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		captcha:  captcha,
	}
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	Role         int    `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// Session 已校验的登录会话，角色取自最新的用户状态
type Session struct {
	UserID   uint
	Username string
	Role     int
}

// RegisterInput 注册参数
type RegisterInput struct {
	Username string
	Password string
	Nickname string
	Email    string
}

// LoginInput 登录参数
type LoginInput struct {
	Username string
	Password string
	Captcha  CaptchaVerifyPayload
}

// LoginResult 登录结果
type LoginResult struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

func (s *AuthService) expireHours() int {
	if s.cfg == nil || s.cfg.JWT.ExpireHours <= 0 {
		return 24
	}
	return s.cfg.JWT.ExpireHours
}

func (s *AuthService) secret() []byte {
	return []byte(s.cfg.JWT.SecretKey)
}

// GenerateJWT 签发 Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expireHours()) * time.Hour)
	claims := JWTClaims{
		UserID:       user.ID,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.Username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret())
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseJWT 解析 Token，仅接受 HS256
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &JWTClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret(), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

// Register 注册普通用户，角色固定为 user
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if !IsValidUsername(username) {
		return nil, ErrUsernameInvalid
	}
	email := strings.TrimSpace(input.Email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := CheckPassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
		return nil, err
	}
	exists, err := s.userRepo.ExistsUsername(username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}
	nickname := strings.TrimSpace(input.Nickname)
	if nickname == "" {
		nickname = username
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hashed,
		Nickname:     nickname,
		Email:        email,
		Role:         constants.RoleUser,
		Avatar:       constants.DefaultAvatar,
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户名密码登录
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	if err := s.captcha.Verify(input.Captcha); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByUsername(input.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !VerifyPassword(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}
	if user.Status != constants.UserStatusActive {
		return nil, ErrUserDisabled
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.UpdateLastLogin(user); err != nil {
		return nil, err
	}
	storeAuthState(ctx, user)

	return &LoginResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ResolveSession 校验 Token 并返回会话，用户被禁用或 Token 被吊销时拒绝
func (s *AuthService) ResolveSession(ctx context.Context, tokenString string) (*Session, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, err
	}
	state, err := s.loadAuthState(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, ErrTokenInvalid
	}
	if state.Status != constants.UserStatusActive {
		return nil, ErrUserDisabled
	}
	if state.TokenVersion != claims.TokenVersion {
		return nil, ErrTokenInvalid
	}
	if state.TokenInvalidBefore > 0 && claims.IssuedAt != nil && claims.IssuedAt.Unix() < state.TokenInvalidBefore {
		return nil, ErrTokenInvalid
	}
	return &Session{UserID: state.UserID, Username: state.Username, Role: state.Role}, nil
}

func (s *AuthService) loadAuthState(ctx context.Context, userID uint) (*cache.UserAuthState, error) {
	state, hit, err := cache.GetUserAuthState(ctx, userID)
	if err != nil {
		logger.Warnw("auth_state_cache_get_failed", "user_id", userID, "error", err)
	}
	if hit && state != nil {
		return state, nil
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	storeAuthState(ctx, user)
	return cache.BuildUserAuthState(user), nil
}

// ChangePassword 修改密码，旧 Token 全部失效
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if !VerifyPassword(user.PasswordHash, oldPassword) {
		return ErrInvalidPassword
	}
	if err := CheckPassword(s.cfg.Security.PasswordPolicy, newPassword); err != nil {
		return err
	}
	hashed, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashed
	revokeTokens(user)
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	storeAuthState(ctx, user)
	return nil
}

// revokeTokens 使该用户此前签发的 Token 失效
func revokeTokens(user *models.User) {
	now := time.Now()
	user.TokenVersion++
	user.TokenInvalidBefore = &now
}

func storeAuthState(ctx context.Context, user *models.User) {
	if err := cache.SetUserAuthState(ctx, cache.BuildUserAuthState(user)); err != nil {
		logger.Warnw("auth_state_cache_set_failed", "user_id", user.ID, "error", err)
	}
}
