package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// OrganizationServiceInterface 定义组织服务的接口
type OrganizationServiceInterface interface {
	CreateOrganization(ctx context.Context, req *entity.CreateOrganizationRequest) (*entity.CreateOrganizationResponse, error)
	DescribeOrganizations(ctx context.Context, req *entity.DescribeOrganizationsRequest) (*entity.DescribeOrganizationsResponse, error)
}

type Organization struct {
	organizationService OrganizationServiceInterface
}

func NewOrganization(organizationService *service.OrganizationService) *Organization {
	return &Organization{
		organizationService: organizationService,
	}
}

func (o *Organization) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-organization", ginx.Adapt5(o.CreateOrganization))
	router.POST("/describe-organizations", ginx.Adapt5(o.DescribeOrganizations))
}

func (o *Organization) CreateOrganization(ctx *gin.Context, req *entity.CreateOrganizationRequest) (*entity.CreateOrganizationResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("name", req.Name).Msg("CreateOrganization called")

	response, err := o.organizationService.CreateOrganization(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create organization")
		return nil, err
	}
	return response, nil
}

func (o *Organization) DescribeOrganizations(ctx *gin.Context, req *entity.DescribeOrganizationsRequest) (*entity.DescribeOrganizationsResponse, error) {
	response, err := o.organizationService.DescribeOrganizations(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to describe organizations")
		return nil, err
	}
	return response, nil
}
