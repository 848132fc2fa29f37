package model

import (
	"time"

	"gorm.io/gorm"
)

// CustomerProfile 客户资料表
type CustomerProfile struct {
	ID          string         `gorm:"primaryKey;type:text;column:id" json:"id"`                                            // cust-{id}
	UserID      string         `gorm:"type:text;not null;index:idx_customer_profiles_user_id;column:user_id" json:"userID"` // 关联 users.id
	CompanyName string         `gorm:"type:text;column:company_name" json:"companyName"`
	Phone       string         `gorm:"type:text;column:phone" json:"phone"`
	Address     string         `gorm:"type:text;column:address" json:"address"`
	CreatedAt   time.Time      `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index:idx_customer_profiles_deleted_at;column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (CustomerProfile) TableName() string {
	return "customer_profiles"
}
