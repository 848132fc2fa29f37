package model

import (
	"time"

	"gorm.io/gorm"
)

// Organization 组织（租户）表
type Organization struct {
	ID        string         `gorm:"primaryKey;type:text;column:id" json:"id"` // org-{id}
	Name      string         `gorm:"type:text;not null;column:name" json:"name"`
	Slug      string         `gorm:"type:text;not null;column:slug" json:"slug"`
	Industry  string         `gorm:"type:text;column:industry" json:"industry"`
	Country   string         `gorm:"type:text;column:country" json:"country"`
	CreatedAt time.Time      `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index:idx_organizations_deleted_at;column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (Organization) TableName() string {
	return "organizations"
}
