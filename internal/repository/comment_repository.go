package repository

import (
	"github.com/blog-console/internal/models"

	"gorm.io/gorm"
)

// CommentRepository 评论数据访问接口
type CommentRepository interface {
	GetByID(id uint) (*models.Comment, error)
	List(filter CommentListFilter) ([]models.Comment, int64, error)
	ListAllByBlog(blogID uint) ([]models.Comment, error)
	Create(comment *models.Comment) error
	Update(comment *models.Comment) error
	Delete(id uint) error
}

// GormCommentRepository GORM 实现
type GormCommentRepository struct {
	db *gorm.DB
}

// NewCommentRepository 创建评论仓库
func NewCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// GetByID 根据 ID 获取评论
func (r *GormCommentRepository) GetByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	return notFoundAsNil(&comment, r.db.Preload("User").First(&comment, id).Error)
}

// List 评论分页列表
func (r *GormCommentRepository) List(filter CommentListFilter) ([]models.Comment, int64, error) {
	query := r.db.Model(&models.Comment{})
	if filter.BlogID != 0 {
		query = query.Where("blog_id = ?", filter.BlogID)
	}
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC, id DESC"
	if filter.OldestFirst {
		order = "created_at ASC, id ASC"
	}
	var comments []models.Comment
	if err := applyPagination(query, filter.Page, filter.Limit).Preload("User").Order(order).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// ListAllByBlog 博客下的全部评论，按时间正序
func (r *GormCommentRepository) ListAllByBlog(blogID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").
		Where("blog_id = ?", blogID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// Create 创建评论
func (r *GormCommentRepository) Create(comment *models.Comment) error {
	return r.db.Omit("User").Create(comment).Error
}

// Update 只更新内容与上级评论
func (r *GormCommentRepository) Update(comment *models.Comment) error {
	return r.db.Model(comment).Updates(map[string]interface{}{
		"content":   comment.Content,
		"parent_id": comment.ParentID,
	}).Error
}

// Delete 软删除评论，子评论上提为顶层
func (r *GormCommentRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Comment{}).Where("parent_id = ?", id).Update("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, id).Error
	})
}
