package repository

import (
	"strings"

	"github.com/blog-console/internal/models"

	"gorm.io/gorm"
)

// UserRepository 用户数据访问接口
type UserRepository interface {
	GetByID(id uint) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ExistsUsername(username string) (bool, error)
	List(filter UserListFilter) ([]models.User, int64, error)
	Create(user *models.User) error
	Update(user *models.User) error
	Delete(id uint) error
	UpdateLastLogin(user *models.User) error
}

// GormUserRepository GORM 实现
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓库
func NewUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// GetByID 根据 ID 获取用户
func (r *GormUserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	return notFoundAsNil(&user, r.db.First(&user, id).Error)
}

// GetByUsername 根据用户名获取用户
func (r *GormUserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	return notFoundAsNil(&user, err)
}

// ExistsUsername 用户名是否已占用，包含软删除的账号
func (r *GormUserRepository) ExistsUsername(username string) (bool, error) {
	var count int64
	err := r.db.Unscoped().Model(&models.User{}).Where("username = ?", strings.TrimSpace(username)).Count(&count).Error
	return count > 0, err
}

// List 用户列表，按创建时间倒序
func (r *GormUserRepository) List(filter UserListFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	if filter.MinRole != nil {
		query = query.Where("role >= ?", *filter.MinRole)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if strings.TrimSpace(filter.Keyword) != "" {
		condition, args := buildLikeCondition(r.db, filter.Keyword, "username", "nickname")
		query = query.Where(condition, args...)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := applyPagination(query, filter.Page, filter.Limit).Order("created_at DESC, id DESC").Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Create 创建用户
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update 更新用户
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// Delete 软删除用户
func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Delete(&models.User{}, id).Error
}

// UpdateLastLogin 只更新最后登录时间
func (r *GormUserRepository) UpdateLastLogin(user *models.User) error {
	return r.db.Model(user).UpdateColumn("last_login_at", user.LastLoginAt).Error
}
