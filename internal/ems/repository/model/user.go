package model

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID             string         `gorm:"primaryKey;type:text;column:id" json:"id"`                                                        // usr-{id}
	OrganizationID string         `gorm:"type:text;not null;index:idx_users_organization_id;column:organization_id" json:"organizationID"` // 关联 organizations.id
	Email          string         `gorm:"type:text;not null;column:email" json:"email"`
	Name           string         `gorm:"type:text;column:name" json:"name"`
	Role           string         `gorm:"type:text;not null;column:role" json:"role"` // admin, member
	CreatedAt      time.Time      `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index:idx_users_deleted_at;column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
