package model

import (
	"time"

	"gorm.io/gorm"
)

// Tag 标签表
type Tag struct {
	ID          uint           `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Name        string         `gorm:"type:text;not null;column:name" json:"name"`
	Slug        string         `gorm:"type:text;not null;index:idx_tags_slug;column:slug" json:"slug"` // 由 name 生成
	Description string         `gorm:"type:text;column:description" json:"description"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index:idx_tags_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Tag) TableName() string {
	return "tags"
}
