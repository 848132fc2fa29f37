package entity

import "github.com/jimyag/ems/internal/ems/registry"

// CustomerProfile 客户资料
type CustomerProfile struct {
	ID          string `json:"id"` // cust-{id}
	UserID      string `json:"userID"`
	CompanyName string `json:"companyName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func (c *CustomerProfile) TaggableKind() registry.Kind { return registry.KindCustomerProfile }
func (c *CustomerProfile) TaggableID() string          { return c.ID }

// CreateCustomerProfileRequest 创建客户资料请求
type CreateCustomerProfileRequest struct {
	UserID      string `json:"userID" binding:"required"`
	CompanyName string `json:"companyName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
}

// CreateCustomerProfileResponse 创建客户资料响应
type CreateCustomerProfileResponse struct {
	CustomerProfile *CustomerProfile `json:"customerProfile"`
}

// DescribeCustomerProfilesRequest 描述客户资料请求
type DescribeCustomerProfilesRequest struct {
	CustomerProfileIDs []string `json:"customerProfileIDs,omitempty"`
	UserID             string   `json:"userID,omitempty"`
}

// DescribeCustomerProfilesResponse 描述客户资料响应
type DescribeCustomerProfilesResponse struct {
	CustomerProfiles []CustomerProfile `json:"customerProfiles"`
}
