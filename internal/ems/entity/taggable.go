package entity

import (
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/weight"
)

// Taggable 标签与实体之间的带权关联
type Taggable struct {
	ID           uint           `json:"id"`
	TagID        uint           `json:"tagID"`
	TaggableType string         `json:"taggableType"` // 实体类型，例如 organization
	TaggableID   string         `json:"taggableID"`   // 实体 ID
	Weight       weight.Weight  `json:"weight"`       // [0, 10]，两位小数
	SortOrder    int            `json:"sortOrder"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// CreateTaggableRequest 创建关联请求
type CreateTaggableRequest struct {
	TagID        uint           `json:"tagID" binding:"required"`
	TaggableType string         `json:"taggableType" binding:"required"`
	TaggableID   string         `json:"taggableID" binding:"required"`
	Weight       *weight.Weight `json:"weight,omitempty"` // 默认 1.00，超出 [0, 10] 时截断
	SortOrder    int            `json:"sortOrder,omitempty"`
	Metadata     map[string]any `json:"metadata,omitempty"`
}

// CreateTaggableResponse 创建关联响应
type CreateTaggableResponse struct {
	Taggable *Taggable `json:"taggable"`
}

// DescribeTaggableRequest 描述单个关联请求
type DescribeTaggableRequest struct {
	ID uint `json:"id" binding:"required"`
}

// DescribeTaggableResponse 描述单个关联响应
type DescribeTaggableResponse struct {
	Taggable *Taggable `json:"taggable"`
}

// DescribeTaggablesRequest 按条件查询关联
// 所有条件之间是 AND 关系
type DescribeTaggablesRequest struct {
	TagID        uint           `json:"tagID,omitempty"`
	MinWeight    *weight.Weight `json:"minWeight,omitempty"`
	ByWeight     bool           `json:"byWeight,omitempty"` // 未指定 minWeight 时使用默认阈值 1.00
	TaggableType string         `json:"taggableType,omitempty"`
	TaggableID   string         `json:"taggableID,omitempty"` // 需要同时指定 taggableType
	Ordered      bool           `json:"ordered,omitempty"`    // sort_order 升序，再按 weight 降序
}

// IsValid 校验过滤条件
func (r *DescribeTaggablesRequest) IsValid() error {
	if r.TaggableID != "" && r.TaggableType == "" {
		return apierror.Validation("taggableType is required when taggableID is set")
	}
	return nil
}

// DescribeTaggablesResponse 查询关联响应
type DescribeTaggablesResponse struct {
	Taggables []Taggable `json:"taggables"`
}

// UpdateTaggableRequest 修改关联字段，未提供的字段保持不变
type UpdateTaggableRequest struct {
	ID        uint           `json:"id" binding:"required"`
	Weight    *weight.Weight `json:"weight,omitempty"`
	SortOrder *int           `json:"sortOrder,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"` // 整体替换
}

// UpdateTaggableResponse 修改关联响应
type UpdateTaggableResponse struct {
	Taggable *Taggable `json:"taggable"`
}

// DeleteTaggableRequest 删除关联请求
type DeleteTaggableRequest struct {
	ID   uint `json:"id" binding:"required"`
	Hard bool `json:"hard,omitempty"`
}

// DeleteTaggableResponse 删除关联响应
type DeleteTaggableResponse struct {
	Return bool `json:"return"`
}

// UpdateTaggableWeightRequest 直接设置权重
type UpdateTaggableWeightRequest struct {
	ID     uint           `json:"id" binding:"required"`
	Weight *weight.Weight `json:"weight" binding:"required"`
}

// StepTaggableWeightRequest 增加或减少权重
type StepTaggableWeightRequest struct {
	ID     uint           `json:"id" binding:"required"`
	Amount *weight.Weight `json:"amount,omitempty"` // 默认 0.10，不能为负
}

// IsValid 步长不能为负
func (r *StepTaggableWeightRequest) IsValid() error {
	if r.Amount != nil && *r.Amount < 0 {
		return apierror.Validation("amount must not be negative, got %s", r.Amount)
	}
	return nil
}

// UpdateTaggableWeightResponse 权重操作后的关联
type UpdateTaggableWeightResponse struct {
	Taggable *Taggable `json:"taggable"`
}

// ResolveTaggableRequest 解析关联指向的实体
type ResolveTaggableRequest struct {
	ID uint `json:"id" binding:"required"`
}

// ResolveTaggableResponse 解析结果，Entity 为具体实体类型
type ResolveTaggableResponse struct {
	TaggableType string `json:"taggableType"`
	TaggableID   string `json:"taggableID"`
	Entity       any    `json:"entity"`
}

// DescribeEntityTagsRequest 查询某个实体上的标签
type DescribeEntityTagsRequest struct {
	TaggableType string         `json:"taggableType" binding:"required"`
	TaggableID   string         `json:"taggableID" binding:"required"`
	MinWeight    *weight.Weight `json:"minWeight,omitempty"`
}

// EntityTag 实体上的一个标签及其权重
type EntityTag struct {
	Tag           Tag           `json:"tag"`
	AssociationID uint          `json:"associationID"`
	Weight        weight.Weight `json:"weight"`
	SortOrder     int           `json:"sortOrder"`
}

// DescribeEntityTagsResponse 实体标签响应，按 Ordered 排序
type DescribeEntityTagsResponse struct {
	Tags []EntityTag `json:"tags"`
}
