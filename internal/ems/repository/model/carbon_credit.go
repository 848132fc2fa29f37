package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// AmountTonnesPlaces 碳信用数量保留的小数位数
const AmountTonnesPlaces = 2

// CarbonCredit 碳信用表
// 捐赠方是多态引用：donor_type 为 user 或 organization
type CarbonCredit struct {
	ID           string          `gorm:"primaryKey;type:text;column:id" json:"id"` // cc-{id}
	DonorType    string          `gorm:"type:text;not null;index:idx_carbon_credits_donor,priority:1;column:donor_type" json:"donorType"`
	DonorID      string          `gorm:"type:text;not null;index:idx_carbon_credits_donor,priority:2;column:donor_id" json:"donorID"`
	AmountTonnes decimal.Decimal `gorm:"type:decimal(18,2);not null;column:amount_tonnes" json:"amountTonnes"`
	VintageYear  int             `gorm:"type:integer;column:vintage_year" json:"vintageYear"`
	Status       string          `gorm:"type:text;not null;index:idx_carbon_credits_status;column:status" json:"status"` // available, retired
	CreatedAt    time.Time       `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index:idx_carbon_credits_deleted_at;column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (CarbonCredit) TableName() string {
	return "carbon_credits"
}

// BeforeSave 写入前按列精度四舍五入，sqlite 的 decimal 列本身不做截断
func (c *CarbonCredit) BeforeSave(*gorm.DB) error {
	c.AmountTonnes = c.AmountTonnes.Round(AmountTonnesPlaces)
	return nil
}
