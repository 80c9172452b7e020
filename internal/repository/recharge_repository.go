package repository

import (
	"github.com/blog-console/internal/models"

	"gorm.io/gorm"
)

// RechargeRepository 充值流水数据访问接口
type RechargeRepository interface {
	GetByID(id uint) (*models.RechargeTransaction, error)
	List(filter RechargeListFilter) ([]models.RechargeTransaction, int64, error)
	CountByOrderNumber(orderNumber string, excludeID uint) (int64, error)
	Create(tx *models.RechargeTransaction) error
	Update(tx *models.RechargeTransaction) error
	Delete(id uint) error
}

// GormRechargeRepository GORM 实现
type GormRechargeRepository struct {
	db *gorm.DB
}

// NewRechargeRepository 创建充值仓库
func NewRechargeRepository(db *gorm.DB) *GormRechargeRepository {
	return &GormRechargeRepository{db: db}
}

// GetByID 根据 ID 获取流水
func (r *GormRechargeRepository) GetByID(id uint) (*models.RechargeTransaction, error) {
	var record models.RechargeTransaction
	return notFoundAsNil(&record, r.db.First(&record, id).Error)
}

// List 流水列表，按交易时间倒序
func (r *GormRechargeRepository) List(filter RechargeListFilter) ([]models.RechargeTransaction, int64, error) {
	query := r.db.Model(&models.RechargeTransaction{})
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var items []models.RechargeTransaction
	if err := applyPagination(query, filter.Page, filter.Limit).Order("transaction_time DESC, id DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// CountByOrderNumber 统计订单号，含软删除记录以匹配唯一索引
func (r *GormRechargeRepository) CountByOrderNumber(orderNumber string, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Unscoped().Model(&models.RechargeTransaction{}).Where("order_number = ?", orderNumber)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// Create 创建流水
func (r *GormRechargeRepository) Create(tx *models.RechargeTransaction) error {
	return r.db.Create(tx).Error
}

// Update 更新流水
func (r *GormRechargeRepository) Update(tx *models.RechargeTransaction) error {
	return r.db.Save(tx).Error
}

// Delete 软删除流水
func (r *GormRechargeRepository) Delete(id uint) error {
	return r.db.Delete(&models.RechargeTransaction{}, id).Error
}
