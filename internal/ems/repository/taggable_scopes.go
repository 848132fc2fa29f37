package repository

import (
	"github.com/jimyag/ems/pkg/weight"
	"gorm.io/gorm"
)

// Scope 可组合的只读查询条件
// 多个 Scope 链式应用时为 AND 关系
type Scope func(*gorm.DB) *gorm.DB

// ByTag tag_id == tagID
func ByTag(tagID uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tag_id = ?", tagID)
	}
}

// ByWeight weight >= minWeight
// 调用方未指定下限时使用 weight.DefaultMinimum
func ByWeight(minWeight weight.Weight) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("weight >= ?", minWeight)
	}
}

// Ordered 按 sort_order 升序，相同时按 weight 降序
func Ordered() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order ASC").Order("weight DESC").Order("id ASC")
	}
}

// ByTarget 某个实体上的所有关联
func ByTarget(taggableType, taggableID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("taggable_type = ? AND taggable_id = ?", taggableType, taggableID)
	}
}

// ByType 某一类实体上的所有关联
func ByType(taggableType string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("taggable_type = ?", taggableType)
	}
}

func applyScopes(db *gorm.DB, scopes []Scope) *gorm.DB {
	fns := make([]func(*gorm.DB) *gorm.DB, 0, len(scopes))
	for _, s := range scopes {
		if s != nil {
			fns = append(fns, s)
		}
	}
	return db.Scopes(fns...)
}
