package repository

import (
	"errors"

	"gorm.io/gorm"
)

// applyPagination 应用 page/limit，limit <= 0 时不分页
func applyPagination(query *gorm.DB, page, limit int) *gorm.DB {
	if query == nil || limit <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(limit).Offset((page - 1) * limit)
}

// notFoundAsNil 将记录不存在转换为 (nil, nil)
func notFoundAsNil[T any](record *T, err error) (*T, error) {
	if err == nil {
		return record, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}
