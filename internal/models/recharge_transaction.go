package models

import (
	"time"

	"gorm.io/gorm"
)

// RechargeTransaction 充值流水
type RechargeTransaction struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	UserID          uint           `gorm:"not null;index" json:"user_id"`
	OrderNumber     string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_number"`
	Amount          Money          `gorm:"type:decimal(20,2);not null" json:"amount"`
	PaymentMethod   string         `gorm:"type:varchar(32);not null" json:"payment_method"`
	Status          string         `gorm:"type:varchar(16);not null;default:'pending';index" json:"status"`
	TransactionTime time.Time      `gorm:"index" json:"transaction_time"`
	Remark          string         `gorm:"type:varchar(255)" json:"remark"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (RechargeTransaction) TableName() string {
	return "recharge_transactions"
}
