package repository

import (
	"github.com/blog-console/internal/models"

	"gorm.io/gorm"
)

// BlogRepository 博客数据访问接口
type BlogRepository interface {
	GetByID(id uint) (*models.Blog, error)
	List(filter BlogListFilter) ([]models.Blog, int64, error)
	ListDirectory(authorID uint) ([]BlogDirectoryRow, error)
	Create(blog *models.Blog) error
	Update(blog *models.Blog) error
	Delete(id uint) error
}

// GormBlogRepository GORM 实现
type GormBlogRepository struct {
	db *gorm.DB
}

// NewBlogRepository 创建博客仓库
func NewBlogRepository(db *gorm.DB) *GormBlogRepository {
	return &GormBlogRepository{db: db}
}

// GetByID 根据 ID 获取博客，附带作者
func (r *GormBlogRepository) GetByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	return notFoundAsNil(&blog, r.db.Preload("Author").First(&blog, id).Error)
}

// List 博客列表，按创建时间倒序
func (r *GormBlogRepository) List(filter BlogListFilter) ([]models.Blog, int64, error) {
	query := r.db.Model(&models.Blog{})
	if filter.AuthorID != 0 {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var blogs []models.Blog
	err := applyPagination(query, filter.Page, filter.Limit).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Find(&blogs).Error
	if err != nil {
		return nil, 0, err
	}
	return blogs, total, nil
}

// ListDirectory 作者全部博客的轻量列表，用于按月目录
func (r *GormBlogRepository) ListDirectory(authorID uint) ([]BlogDirectoryRow, error) {
	var rows []BlogDirectoryRow
	err := r.db.Model(&models.Blog{}).
		Select("id, title, created_at").
		Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Create 创建博客
func (r *GormBlogRepository) Create(blog *models.Blog) error {
	return r.db.Create(blog).Error
}

// Update 更新博客
func (r *GormBlogRepository) Update(blog *models.Blog) error {
	return r.db.Omit("Author").Save(blog).Error
}

// Delete 软删除博客及其评论
func (r *GormBlogRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("blog_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Blog{}, id).Error
	})
}
