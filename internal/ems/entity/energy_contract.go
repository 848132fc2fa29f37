package entity

import "github.com/jimyag/ems/internal/ems/registry"

// 能源类型
const (
	EnergyTypeElectricity = "electricity"
	EnergyTypeGas         = "gas"
	EnergyTypeRenewable   = "renewable"
)

// EnergyContract 能源合同
type EnergyContract struct {
	ID             string  `json:"id"` // ctr-{id}
	OrganizationID string  `json:"organizationID"`
	Supplier       string  `json:"supplier"`
	EnergyType     string  `json:"energyType"`
	PricePerKWh    float64 `json:"pricePerKWh"`
	StartDate      string  `json:"startDate"`         // RFC3339
	EndDate        string  `json:"endDate,omitempty"` // 为空表示无固定结束日期
	Active         bool    `json:"active"`            // 查询时刻是否生效
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

func (c *EnergyContract) TaggableKind() registry.Kind { return registry.KindEnergyContract }
func (c *EnergyContract) TaggableID() string          { return c.ID }

// CreateEnergyContractRequest 创建能源合同请求
type CreateEnergyContractRequest struct {
	OrganizationID string  `json:"organizationID" binding:"required"`
	Supplier       string  `json:"supplier" binding:"required"`
	EnergyType     string  `json:"energyType" binding:"required,oneof=electricity gas renewable"`
	PricePerKWh    float64 `json:"pricePerKWh" binding:"gte=0"`
	StartDate      string  `json:"startDate" binding:"required"` // RFC3339 或 2006-01-02
	EndDate        string  `json:"endDate,omitempty"`
}

// CreateEnergyContractResponse 创建能源合同响应
type CreateEnergyContractResponse struct {
	EnergyContract *EnergyContract `json:"energyContract"`
}

// DescribeEnergyContractsRequest 描述能源合同请求
type DescribeEnergyContractsRequest struct {
	EnergyContractIDs []string `json:"energyContractIDs,omitempty"`
	OrganizationID    string   `json:"organizationID,omitempty"`
	ActiveAt          string   `json:"activeAt,omitempty"` // 只返回该时刻生效的合同
}

// DescribeEnergyContractsResponse 描述能源合同响应
type DescribeEnergyContractsResponse struct {
	EnergyContracts []EnergyContract `json:"energyContracts"`
}
