package model

import (
	"math"
	"time"

	"gorm.io/gorm"
)

// Faq 常见问题表
type Faq struct {
	ID              string         `gorm:"primaryKey;type:text;column:id" json:"id"` // faq-{id}
	Question        string         `gorm:"type:text;not null;column:question" json:"question"`
	Answer          string         `gorm:"type:text;not null;column:answer" json:"answer"`
	Category        string         `gorm:"type:text;index:idx_faqs_category;column:category" json:"category"`
	HelpfulCount    int64          `gorm:"type:integer;not null;column:helpful_count" json:"helpfulCount"`
	NotHelpfulCount int64          `gorm:"type:integer;not null;column:not_helpful_count" json:"notHelpfulCount"`
	Published       bool           `gorm:"type:boolean;not null;column:published" json:"published"`
	CreatedAt       time.Time      `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt       time.Time      `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index:idx_faqs_deleted_at;column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (Faq) TableName() string {
	return "faqs"
}

// HelpfulRate 有用率百分比，保留一位小数；没有投票时为 0
func (f *Faq) HelpfulRate() float64 {
	total := f.HelpfulCount + f.NotHelpfulCount
	if total <= 0 {
		return 0
	}
	return math.Round(float64(f.HelpfulCount)/float64(total)*1000) / 10
}
