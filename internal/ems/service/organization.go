package service

import (
	"context"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/idgen"
	"github.com/jimyag/ems/pkg/slug"
	"github.com/rs/zerolog"
)

// OrganizationService 组织服务
type OrganizationService struct {
	orgRepo repository.OrganizationRepository
	idGen   *idgen.Generator
}

// NewOrganizationService 创建组织服务
func NewOrganizationService(repo *repository.Repository) *OrganizationService {
	return &OrganizationService{
		orgRepo: repository.NewOrganizationRepository(repo.DB()),
		idGen:   idgen.DefaultGenerator(),
	}
}

// Kind 实现 Resolver
func (s *OrganizationService) Kind() registry.Kind { return registry.KindOrganization }

// Resolve 实现 Resolver
func (s *OrganizationService) Resolve(ctx context.Context, id string) (registry.Entity, error) {
	e, err := s.GetOrganization(ctx, id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetOrganization 获取组织
func (s *OrganizationService) GetOrganization(ctx context.Context, id string) (*entity.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "organization %s", id)
	}
	e, err := organizationModelToEntity(org)
	if err != nil {
		return nil, internalError(err, "Failed to convert organization")
	}
	return e, nil
}

// CreateOrganization 创建组织，slug 由名称加随机后缀生成
func (s *OrganizationService) CreateOrganization(ctx context.Context, req *entity.CreateOrganizationRequest) (*entity.CreateOrganizationResponse, error) {
	logger := zerolog.Ctx(ctx)

	orgID, err := s.idGen.GenerateOrganizationID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate organization ID")
		return nil, internalError(err, "Failed to generate organization ID")
	}

	org := &model.Organization{
		ID:       orgID,
		Name:     req.Name,
		Slug:     slug.Unique(req.Name, "org"),
		Industry: req.Industry,
		Country:  req.Country,
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create organization")
		return nil, storageError(err, "create organization %q", req.Name)
	}

	e, err := organizationModelToEntity(org)
	if err != nil {
		return nil, internalError(err, "Failed to convert organization")
	}

	logger.Info().Str("organization_id", org.ID).Str("slug", org.Slug).Msg("Organization created successfully")
	return &entity.CreateOrganizationResponse{Organization: e}, nil
}

// DescribeOrganizations 查询组织
// 指定 ID 时按 ID 获取，否则按 country、industry 过滤
func (s *OrganizationService) DescribeOrganizations(ctx context.Context, req *entity.DescribeOrganizationsRequest) (*entity.DescribeOrganizationsResponse, error) {
	resp := &entity.DescribeOrganizationsResponse{Organizations: []entity.Organization{}}

	if len(req.OrganizationIDs) > 0 {
		for _, id := range req.OrganizationIDs {
			e, err := s.GetOrganization(ctx, id)
			if err != nil {
				return nil, err
			}
			resp.Organizations = append(resp.Organizations, *e)
		}
		return resp, nil
	}

	filters := make(map[string]interface{})
	for _, f := range req.Filters {
		switch f.Name {
		case "country", "industry":
			filters[f.Name] = f.FirstValue()
		default:
			return nil, apierror.Validation("unsupported organization filter %q", f.Name)
		}
	}

	orgs, err := s.orgRepo.List(ctx, filters)
	if err != nil {
		return nil, storageError(err, "list organizations")
	}
	for _, org := range orgs {
		e, err := organizationModelToEntity(org)
		if err != nil {
			return nil, internalError(err, "Failed to convert organization")
		}
		resp.Organizations = append(resp.Organizations, *e)
	}
	return resp, nil
}
