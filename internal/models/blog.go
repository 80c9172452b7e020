package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Blog 博客文章，content 为 markdown 原文
type Blog struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	Title     string         `gorm:"type:varchar(255);not null" json:"title"`
	Content   string         `gorm:"type:text" json:"content"`
	Category  string         `gorm:"type:varchar(64);index" json:"category"`
	Tags      string         `gorm:"type:varchar(255)" json:"tags"` // 逗号分隔
	Status    string         `gorm:"type:varchar(16);not null;default:'draft'" json:"status"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Author *User `gorm:"foreignKey:AuthorID" json:"-"`
}

// TableName 指定表名
func (Blog) TableName() string {
	return "blogs"
}

// TagList 拆分标签字符串，去掉空白与空项
func (b Blog) TagList() []string {
	parts := strings.Split(b.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
