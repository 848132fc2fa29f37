package entity

import "github.com/jimyag/ems/internal/ems/registry"

// Organization 组织
type Organization struct {
	ID        string `json:"id"` // org-{id}
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Industry  string `json:"industry,omitempty"`
	Country   string `json:"country,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (o *Organization) TaggableKind() registry.Kind { return registry.KindOrganization }
func (o *Organization) TaggableID() string          { return o.ID }

// CreateOrganizationRequest 创建组织请求
type CreateOrganizationRequest struct {
	Name     string `json:"name" binding:"required"`
	Industry string `json:"industry,omitempty"`
	Country  string `json:"country,omitempty"`
}

// CreateOrganizationResponse 创建组织响应
type CreateOrganizationResponse struct {
	Organization *Organization `json:"organization"`
}

// DescribeOrganizationsRequest 描述组织请求
type DescribeOrganizationsRequest struct {
	OrganizationIDs []string `json:"organizationIDs,omitempty"`
	Filters         []Filter `json:"filters,omitempty"` // 支持 country、industry
}

// DescribeOrganizationsResponse 描述组织响应
type DescribeOrganizationsResponse struct {
	Organizations []Organization `json:"organizations"`
}
