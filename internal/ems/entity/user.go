package entity

import (
	"strings"

	"github.com/jimyag/ems/internal/ems/registry"
)

// 用户角色
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User 用户
type User struct {
	ID             string `json:"id"` // usr-{id}
	OrganizationID string `json:"organizationID"`
	Email          string `json:"email"`
	Name           string `json:"name,omitempty"`
	Role           string `json:"role"`
	DisplayName    string `json:"displayName"` // name 为空时取邮箱 @ 之前的部分
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

func (u *User) TaggableKind() registry.Kind { return registry.KindUser }
func (u *User) TaggableID() string          { return u.ID }

// DisplayNameOf 计算用户展示名
func DisplayNameOf(name, email string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

// CreateUserRequest 创建用户请求
type CreateUserRequest struct {
	OrganizationID string `json:"organizationID" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Name           string `json:"name,omitempty"`
	Role           string `json:"role,omitempty" binding:"omitempty,oneof=admin member"` // 默认 member
}

// CreateUserResponse 创建用户响应
type CreateUserResponse struct {
	User *User `json:"user"`
}

// DescribeUsersRequest 描述用户请求
type DescribeUsersRequest struct {
	UserIDs        []string `json:"userIDs,omitempty"`
	OrganizationID string   `json:"organizationID,omitempty"`
	Email          string   `json:"email,omitempty"`
}

// DescribeUsersResponse 描述用户响应
type DescribeUsersResponse struct {
	Users []User `json:"users"`
}
