// Package entity 定义业务实体和 API 请求、响应结构
package entity

// Tag 标签
type Tag struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"` // 由 name 生成
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// CreateTagRequest 创建标签请求
type CreateTagRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
}

// CreateTagResponse 创建标签响应
type CreateTagResponse struct {
	Tag *Tag `json:"tag"`
}

// DescribeTagsRequest 描述标签请求
// TagIDs 和 Slug 都为空时返回全部标签
type DescribeTagsRequest struct {
	TagIDs []uint `json:"tagIDs,omitempty"`
	Slug   string `json:"slug,omitempty"`
}

// DescribeTagsResponse 描述标签响应
type DescribeTagsResponse struct {
	Tags []Tag `json:"tags"`
}

// DeleteTagRequest 删除标签请求
// 标签上已有的关联不会级联删除
type DeleteTagRequest struct {
	TagID uint `json:"tagID" binding:"required"`
	Hard  bool `json:"hard,omitempty"` // 物理删除
}

// DeleteTagResponse 删除标签响应
type DeleteTagResponse struct {
	Return bool `json:"return"`
}
