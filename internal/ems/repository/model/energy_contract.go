package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PricePerKWhPlaces 单价保留的小数位数
const PricePerKWhPlaces = 4

// EnergyContract 能源合同表
type EnergyContract struct {
	ID             string          `gorm:"primaryKey;type:text;column:id" json:"id"`                                                                   // ctr-{id}
	OrganizationID string          `gorm:"type:text;not null;index:idx_energy_contracts_organization_id;column:organization_id" json:"organizationID"` // 关联 organizations.id
	Supplier       string          `gorm:"type:text;not null;column:supplier" json:"supplier"`
	EnergyType     string          `gorm:"type:text;not null;column:energy_type" json:"energyType"` // electricity, gas, renewable
	PricePerKWh    decimal.Decimal `gorm:"type:decimal(10,4);not null;column:price_per_kwh" json:"pricePerKWh"`
	StartDate      time.Time       `gorm:"not null;index:idx_energy_contracts_period,priority:1;column:start_date" json:"startDate"`
	EndDate        *time.Time      `gorm:"index:idx_energy_contracts_period,priority:2;column:end_date" json:"endDate"` // 为空表示无固定结束日期
	CreatedAt      time.Time       `gorm:"not null;column:created_at" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"not null;column:updated_at" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index:idx_energy_contracts_deleted_at;column:deleted_at" json:"deleted_at,omitempty"`
}

// TableName 指定表名
func (EnergyContract) TableName() string {
	return "energy_contracts"
}

// BeforeSave 写入前按列精度四舍五入
func (c *EnergyContract) BeforeSave(*gorm.DB) error {
	c.PricePerKWh = c.PricePerKWh.Round(PricePerKWhPlaces)
	return nil
}

// IsActive 合同在 at 时刻是否生效（start <= at，且 end 为空或 at < end）
func (c *EnergyContract) IsActive(at time.Time) bool {
	if at.Before(c.StartDate) {
		return false
	}
	return c.EndDate == nil || at.Before(*c.EndDate)
}
