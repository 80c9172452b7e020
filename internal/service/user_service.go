package service

import (
	"context"
	"strings"

	"github.com/blog-console/internal/cache"
	"github.com/blog-console/internal/config"
	"github.com/blog-console/internal/constants"
	"github.com/blog-console/internal/logger"
	"github.com/blog-console/internal/models"
	"github.com/blog-console/internal/repository"

	"github.com/jinzhu/copier"
)

// UserService 个人资料与后台用户管理
type UserService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(cfg *config.Config, userRepo repository.UserRepository) *UserService {
	return &UserService{cfg: cfg, userRepo: userRepo}
}

// ProfileUpdateInput 个人资料更新，nil 字段保持不变
type ProfileUpdateInput struct {
	Nickname    *string
	Email       *string
	Avatar      *string
	Bio         *string
	Website     *string
	OldPassword string
	NewPassword string
}

// AdminCreateUserInput 后台创建用户
type AdminCreateUserInput struct {
	Username string
	Password string
	Nickname string
	Email    string
	Role     int
}

// AdminUpdateUserInput 后台更新用户
type AdminUpdateUserInput struct {
	Nickname *string
	Email    *string
	Role     *int
	Status   *int
	Password *string
}

// UserListQuery 后台用户列表查询
type UserListQuery struct {
	Page    int
	Limit   int
	Keyword string
}

// Profile 获取个人资料
func (s *UserService) Profile(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile 更新个人资料，修改密码需校验旧密码
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileUpdateInput) (*models.User, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}
	if err := copier.CopyWithOption(user, &input, copier.Option{IgnoreEmpty: true}); err != nil {
		return nil, err
	}
	user.Nickname = strings.TrimSpace(user.Nickname)
	user.Email = strings.TrimSpace(user.Email)
	if input.Email != nil {
		if err := validateEmail(user.Email); err != nil {
			return nil, err
		}
	}
	if user.Avatar == "" {
		user.Avatar = constants.DefaultAvatar
	}

	passwordChanged := false
	if input.NewPassword != "" {
		if !VerifyPassword(user.PasswordHash, input.OldPassword) {
			return nil, ErrInvalidPassword
		}
		if err := CheckPassword(s.cfg.Security.PasswordPolicy, input.NewPassword); err != nil {
			return nil, err
		}
		hashed, err := HashPassword(input.NewPassword)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
		revokeTokens(user)
		passwordChanged = true
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	if passwordChanged {
		storeAuthState(ctx, user)
	}
	return user, nil
}

// ListMarketers 全部投放员，用于收益筛选下拉
func (s *UserService) ListMarketers() ([]models.User, error) {
	role := constants.RoleMarketer
	users, _, err := s.userRepo.List(repository.UserListFilter{Role: &role})
	return users, err
}

// AdminList 后台用户列表，仅包含管理员及以下角色
func (s *UserService) AdminList(query UserListQuery) ([]models.User, int64, error) {
	minRole := constants.RoleAdmin
	return s.userRepo.List(repository.UserListFilter{
		Page:    query.Page,
		Limit:   query.Limit,
		MinRole: &minRole,
		Keyword: strings.TrimSpace(query.Keyword),
	})
}

// assignableRole 后台只能分配管理员以下的角色
func assignableRole(role int) bool {
	return constants.IsValidRole(role) && role > constants.RoleAdmin
}

// AdminCreate 后台创建用户
func (s *UserService) AdminCreate(input AdminCreateUserInput) (*models.User, error) {
	username := strings.TrimSpace(input.Username)
	if !IsValidUsername(username) {
		return nil, ErrUsernameInvalid
	}
	if !assignableRole(input.Role) {
		return nil, ErrRoleInvalid
	}
	email := strings.TrimSpace(input.Email)
	if email != "" {
		if err := validateEmail(email); err != nil {
			return nil, err
		}
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
		Role:         input.Role,
		Avatar:       constants.DefaultAvatar,
		Status:       constants.UserStatusActive,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// AdminUpdate 后台修改其他用户，角色或状态变化、重置密码都会吊销旧 Token
func (s *UserService) AdminUpdate(ctx context.Context, actorID, targetID uint, input AdminUpdateUserInput) (*models.User, error) {
	if actorID == targetID {
		return nil, ErrSelfModify
	}
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if user.Role == constants.RoleSuperAdmin {
		return nil, ErrUserProtected
	}

	revoke := false
	if input.Nickname != nil {
		user.Nickname = strings.TrimSpace(*input.Nickname)
	}
	if input.Email != nil {
		email := strings.TrimSpace(*input.Email)
		if err := validateEmail(email); err != nil {
			return nil, err
		}
		user.Email = email
	}
	if input.Role != nil && *input.Role != user.Role {
		if !assignableRole(*input.Role) {
			return nil, ErrRoleInvalid
		}
		user.Role = *input.Role
		revoke = true
	}
	if input.Status != nil && *input.Status != user.Status {
		if *input.Status != constants.UserStatusActive && *input.Status != constants.UserStatusDisabled {
			return nil, ErrUserStatusInvalid
		}
		user.Status = *input.Status
		revoke = true
	}
	if input.Password != nil && *input.Password != "" {
		if err := CheckPassword(s.cfg.Security.PasswordPolicy, *input.Password); err != nil {
			return nil, err
		}
		hashed, err := HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hashed
		revoke = true
	}
	if revoke {
		revokeTokens(user)
	}
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	storeAuthState(ctx, user)
	return user, nil
}

// Delete 软删除用户，不能删除自己与超级管理员
func (s *UserService) Delete(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return ErrSelfModify
	}
	user, err := s.userRepo.GetByID(targetID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.Role == constants.RoleSuperAdmin {
		return ErrUserProtected
	}
	if err := s.userRepo.Delete(targetID); err != nil {
		return err
	}
	if err := cache.DelUserAuthState(ctx, targetID); err != nil {
		logger.Warnw("auth_state_cache_del_failed", "user_id", targetID, "error", err)
	}
	return nil
}
