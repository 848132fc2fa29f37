package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// CustomerProfileServiceInterface 定义客户资料服务的接口
type CustomerProfileServiceInterface interface {
	CreateCustomerProfile(ctx context.Context, req *entity.CreateCustomerProfileRequest) (*entity.CreateCustomerProfileResponse, error)
	DescribeCustomerProfiles(ctx context.Context, req *entity.DescribeCustomerProfilesRequest) (*entity.DescribeCustomerProfilesResponse, error)
}

type CustomerProfile struct {
	profileService CustomerProfileServiceInterface
}

func NewCustomerProfile(profileService *service.CustomerProfileService) *CustomerProfile {
	return &CustomerProfile{
		profileService: profileService,
	}
}

func (c *CustomerProfile) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-customer-profile", ginx.Adapt5(c.CreateCustomerProfile))
	router.POST("/describe-customer-profiles", ginx.Adapt5(c.DescribeCustomerProfiles))
}

func (c *CustomerProfile) CreateCustomerProfile(ctx *gin.Context, req *entity.CreateCustomerProfileRequest) (*entity.CreateCustomerProfileResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("user_id", req.UserID).Msg("CreateCustomerProfile called")

	response, err := c.profileService.CreateCustomerProfile(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create customer profile")
		return nil, err
	}
	return response, nil
}

func (c *CustomerProfile) DescribeCustomerProfiles(ctx *gin.Context, req *entity.DescribeCustomerProfilesRequest) (*entity.DescribeCustomerProfilesResponse, error) {
	response, err := c.profileService.DescribeCustomerProfiles(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to describe customer profiles")
		return nil, err
	}
	return response, nil
}
