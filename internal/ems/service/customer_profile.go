package service

import (
	"context"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/idgen"
	"github.com/rs/zerolog"
)

// CustomerProfileService 客户资料服务
type CustomerProfileService struct {
	profileRepo repository.CustomerProfileRepository
	userRepo    repository.UserRepository
	idGen       *idgen.Generator
}

// NewCustomerProfileService 创建客户资料服务
func NewCustomerProfileService(repo *repository.Repository) *CustomerProfileService {
	return &CustomerProfileService{
		profileRepo: repository.NewCustomerProfileRepository(repo.DB()),
		userRepo:    repository.NewUserRepository(repo.DB()),
		idGen:       idgen.DefaultGenerator(),
	}
}

// Kind 实现 Resolver
func (s *CustomerProfileService) Kind() registry.Kind { return registry.KindCustomerProfile }

// Resolve 实现 Resolver
func (s *CustomerProfileService) Resolve(ctx context.Context, id string) (registry.Entity, error) {
	e, err := s.GetCustomerProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetCustomerProfile 获取客户资料
func (s *CustomerProfileService) GetCustomerProfile(ctx context.Context, id string) (*entity.CustomerProfile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "customer profile %s", id)
	}
	e, err := customerProfileModelToEntity(profile)
	if err != nil {
		return nil, internalError(err, "Failed to convert customer profile")
	}
	return e, nil
}

// CreateCustomerProfile 创建客户资料，所属用户必须存在
func (s *CustomerProfileService) CreateCustomerProfile(ctx context.Context, req *entity.CreateCustomerProfileRequest) (*entity.CreateCustomerProfileResponse, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return nil, storageError(err, "user %s", req.UserID)
	}

	profileID, err := s.idGen.GenerateCustomerProfileID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate customer profile ID")
		return nil, internalError(err, "Failed to generate customer profile ID")
	}

	profile := &model.CustomerProfile{
		ID:          profileID,
		UserID:      req.UserID,
		CompanyName: req.CompanyName,
		Phone:       req.Phone,
		Address:     req.Address,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		logger.Error().Err(err).Str("user_id", req.UserID).Msg("Failed to create customer profile")
		return nil, storageError(err, "create customer profile for %s", req.UserID)
	}

	e, err := customerProfileModelToEntity(profile)
	if err != nil {
		return nil, internalError(err, "Failed to convert customer profile")
	}

	logger.Info().Str("customer_profile_id", profile.ID).Str("user_id", profile.UserID).Msg("Customer profile created successfully")
	return &entity.CreateCustomerProfileResponse{CustomerProfile: e}, nil
}

// DescribeCustomerProfiles 查询客户资料
func (s *CustomerProfileService) DescribeCustomerProfiles(ctx context.Context, req *entity.DescribeCustomerProfilesRequest) (*entity.DescribeCustomerProfilesResponse, error) {
	resp := &entity.DescribeCustomerProfilesResponse{CustomerProfiles: []entity.CustomerProfile{}}

	if len(req.CustomerProfileIDs) > 0 {
		for _, id := range req.CustomerProfileIDs {
			e, err := s.GetCustomerProfile(ctx, id)
			if err != nil {
				return nil, err
			}
			resp.CustomerProfiles = append(resp.CustomerProfiles, *e)
		}
		return resp, nil
	}

	profiles, err := s.profileRepo.ListByUser(ctx, req.UserID)
	if err != nil {
		return nil, storageError(err, "list customer profiles")
	}
	for _, p := range profiles {
		e, err := customerProfileModelToEntity(p)
		if err != nil {
			return nil, internalError(err, "Failed to convert customer profile")
		}
		resp.CustomerProfiles = append(resp.CustomerProfiles, *e)
	}
	return resp, nil
}
