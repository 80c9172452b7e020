package repository

import (
	"time"

	"github.com/blog-console/internal/models"

	"gorm.io/gorm"
)

// RevenueRepository 员工收益数据访问接口
type RevenueRepository interface {
	GetByID(id uint) (*models.EmployeeRevenue, error)
	List(filter RevenueListFilter) ([]models.EmployeeRevenue, int64, error)
	Aggregate(filter RevenueListFilter) ([]RevenueAggregateRow, error)
	Monthly(startAt, endAt time.Time, userID uint) ([]RevenueMonthlyRow, error)
	Create(record *models.EmployeeRevenue) error
	Update(record *models.EmployeeRevenue) error
	Delete(id uint) error
}

// GormRevenueRepository GORM 实现
type GormRevenueRepository struct {
	db *gorm.DB
}

// NewRevenueRepository 创建收益仓库
func NewRevenueRepository(db *gorm.DB) *GormRevenueRepository {
	return &GormRevenueRepository{db: db}
}

// GetByID 根据 ID 获取记录
func (r *GormRevenueRepository) GetByID(id uint) (*models.EmployeeRevenue, error) {
	var record models.EmployeeRevenue
	return notFoundAsNil(&record, r.db.Preload("User").First(&record, id).Error)
}

func (r *GormRevenueRepository) filtered(query *gorm.DB, prefix string, filter RevenueListFilter) *gorm.DB {
	if filter.UserID != 0 {
		query = query.Where(prefix+"user_id = ?", filter.UserID)
	}
	if filter.From != nil {
		query = query.Where(prefix+"record_time >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where(prefix+"record_time <= ?", *filter.To)
	}
	return query
}

// List 收益记录分页列表，按记录时间倒序
func (r *GormRevenueRepository) List(filter RevenueListFilter) ([]models.EmployeeRevenue, int64, error) {
	query := r.filtered(r.db.Model(&models.EmployeeRevenue{}), "", filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var records []models.EmployeeRevenue
	err := applyPagination(query, filter.Page, filter.Limit).
		Preload("User").
		Order("record_time DESC, id DESC").
		Find(&records).Error
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// Aggregate 按员工聚合，按总销售额倒序
func (r *GormRevenueRepository) Aggregate(filter RevenueListFilter) ([]RevenueAggregateRow, error) {
	query := r.db.Table("employee_revenues AS r").
		Select(`r.user_id AS user_id,
			COALESCE(u.nickname, '') AS nickname,
			COALESCE(u.avatar, '') AS avatar,
			COALESCE(SUM(r.revenue), 0) AS total_revenue,
			COALESCE(SUM(r.expenditure), 0) AS total_expenditure,
			COALESCE(SUM(r.order_count), 0) AS total_order_count,
			COALESCE(SUM(r.ad_creation_count), 0) AS total_ad_creation_count,
			COALESCE(AVG(r.roi), 0) AS average_roi`).
		Joins("LEFT JOIN users u ON u.id = r.user_id").
		Where("r.deleted_at IS NULL")
	query = r.filtered(query, "r.", filter)

	var rows []RevenueAggregateRow
	err := query.Group("r.user_id, u.nickname, u.avatar").
		Order("total_revenue DESC, r.user_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].AverageROI = models.RoundRatio(rows[i].AverageROI)
	}
	return rows, nil
}

// Monthly 按月汇总 [startAt, endAt) 区间，userID 为 0 时不限员工
func (r *GormRevenueRepository) Monthly(startAt, endAt time.Time, userID uint) ([]RevenueMonthlyRow, error) {
	monthExpr := monthKeyExpr(r.db, "record_time")
	query := r.db.Model(&models.EmployeeRevenue{}).
		Select(monthExpr+` AS month,
			COALESCE(SUM(revenue), 0) AS total_revenue,
			COALESCE(SUM(expenditure), 0) AS total_expenditure,
			COALESCE(SUM(order_count), 0) AS total_order_count,
			COUNT(*) AS record_count`).
		Where("record_time >= ? AND record_time < ?", startAt, endAt)
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var rows []RevenueMonthlyRow
	if err := query.Group(monthExpr).Order("month ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create 创建记录
func (r *GormRevenueRepository) Create(record *models.EmployeeRevenue) error {
	return r.db.Omit("User").Create(record).Error
}

// Update 更新记录
func (r *GormRevenueRepository) Update(record *models.EmployeeRevenue) error {
	return r.db.Omit("User").Save(record).Error
}

// Delete 软删除记录
func (r *GormRevenueRepository) Delete(id uint) error {
	return r.db.Delete(&models.EmployeeRevenue{}, id).Error
}
