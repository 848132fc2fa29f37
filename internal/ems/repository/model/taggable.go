package model

import (
	"time"

	"github.com/jimyag/ems/pkg/weight"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Taggable 标签与任意实体之间的带权关联（多态）
// (tag_id, taggable_type, taggable_id) 建议唯一，但不建唯一索引
type Taggable struct {
	ID           uint              `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	TagID        uint              `gorm:"not null;index:idx_taggables_tag_id;column:tag_id" json:"tagID"`
	TaggableType string            `gorm:"type:text;not null;index:idx_taggables_target,priority:1;column:taggable_type" json:"taggableType"` // user, organization, customer_profile, energy_contract, faq
	TaggableID   string            `gorm:"type:text;not null;index:idx_taggables_target,priority:2;column:taggable_id" json:"taggableID"`
	Weight       weight.Weight     `gorm:"type:decimal(4,2);not null;column:weight" json:"weight"` // [0, 10]，不设 default，否则 0 会被忽略
	SortOrder    int               `gorm:"type:integer;not null;column:sort_order" json:"sortOrder"`
	Metadata     datatypes.JSONMap `gorm:"column:metadata" json:"metadata,omitempty"` // 调用方自定义结构
	CreatedAt    time.Time         `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt    time.Time         `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt    `gorm:"index:idx_taggables_deleted_at;column:deleted_at" json:"deleted_at,omitempty"` // 软删除
}

// TableName 指定表名
func (Taggable) TableName() string {
	return "taggables"
}

// BeforeSave 所有经过 Create/Save 的写入都截断权重
func (t *Taggable) BeforeSave(*gorm.DB) error {
	t.Weight = t.Weight.Clamp()
	return nil
}
