package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment 博客评论，ParentID 指向同一博客下的上级评论
type Comment struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	BlogID    uint           `gorm:"not null;index" json:"blog_id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	ParentID  *uint          `gorm:"index" json:"parent_id"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
