package models

import (
	"time"

	"gorm.io/gorm"
)

// User 控制台用户，角色数值越小权限越高
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Username           string         `gorm:"type:varchar(64);uniqueIndex;not null" json:"username"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	Nickname           string         `gorm:"type:varchar(64);default:''" json:"nickname"`
	Email              string         `gorm:"type:varchar(128);index" json:"email"`
	Role               int            `gorm:"not null;index" json:"role"`
	Avatar             string         `gorm:"type:varchar(255);default:'default_avatar.png'" json:"avatar"`
	Bio                string         `gorm:"type:text" json:"bio"`
	Website            string         `gorm:"type:varchar(255)" json:"website"`
	Status             int            `gorm:"not null" json:"status"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"` // 用于全量失效
	TokenInvalidBefore *time.Time     `json:"-"`                           // 该时间点前签发的 Token 失效
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
