package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmployeeRevenue 员工投放收益记录
type EmployeeRevenue struct {
	ID                uint           `gorm:"primarykey" json:"id"`
	UserID            uint           `gorm:"not null;index" json:"user_id"`
	AdPlatform        string         `gorm:"type:varchar(64)" json:"ad_platform"`
	ProductCategories string         `gorm:"type:varchar(128)" json:"product_categories"`
	AdType            string         `gorm:"type:varchar(64)" json:"ad_type"`
	Region            string         `gorm:"type:varchar(64)" json:"region"`
	Expenditure       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"expenditure"`
	OrderCount        int            `gorm:"not null;default:0" json:"order_count"`
	AdCreationCount   int            `gorm:"not null;default:0" json:"ad_creation_count"`
	Revenue           Money          `gorm:"type:decimal(20,2);not null;default:0" json:"revenue"`
	ROI               float64        `gorm:"column:roi;not null;default:0" json:"roi"`
	RecordTime        time.Time      `gorm:"index" json:"record_time"`
	Remark            string         `gorm:"type:varchar(255)" json:"remark"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (EmployeeRevenue) TableName() string {
	return "employee_revenues"
}

// ComputeROI 计算投入产出比，支出为 0 时记为 0，保留 4 位小数
func ComputeROI(revenue, expenditure Money) float64 {
	if expenditure.Decimal.IsZero() {
		return 0
	}
	roi, _ := revenue.Decimal.DivRound(expenditure.Decimal, 4).Float64()
	return roi
}

// RefreshROI 按当前金额重算 ROI
func (r *EmployeeRevenue) RefreshROI() {
	r.ROI = ComputeROI(r.Revenue, r.Expenditure)
}

// RoundRatio 统一比率精度
func RoundRatio(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}
