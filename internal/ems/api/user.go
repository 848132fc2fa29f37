package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// UserServiceInterface 定义用户服务的接口
type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.CreateUserResponse, error)
	DescribeUsers(ctx context.Context, req *entity.DescribeUsersRequest) (*entity.DescribeUsersResponse, error)
}

type User struct {
	userService UserServiceInterface
}

func NewUser(userService *service.UserService) *User {
	return &User{
		userService: userService,
	}
}

func (u *User) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-user", ginx.Adapt5(u.CreateUser))
	router.POST("/describe-users", ginx.Adapt5(u.DescribeUsers))
}

func (u *User) CreateUser(ctx *gin.Context, req *entity.CreateUserRequest) (*entity.CreateUserResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("organization_id", req.OrganizationID).
		Str("email", req.Email).
		Msg("CreateUser called")

	response, err := u.userService.CreateUser(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create user")
		return nil, err
	}
	return response, nil
}

func (u *User) DescribeUsers(ctx *gin.Context, req *entity.DescribeUsersRequest) (*entity.DescribeUsersResponse, error) {
	response, err := u.userService.DescribeUsers(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to describe users")
		return nil, err
	}
	return response, nil
}
