package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/idgen"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
	idGen    *idgen.Generator
}

// NewUserService 创建用户服务
func NewUserService(repo *repository.Repository) *UserService {
	return &UserService{
		userRepo: repository.NewUserRepository(repo.DB()),
		orgRepo:  repository.NewOrganizationRepository(repo.DB()),
		idGen:    idgen.DefaultGenerator(),
	}
}

// Kind 实现 Resolver
func (s *UserService) Kind() registry.Kind { return registry.KindUser }

// Resolve 实现 Resolver
func (s *UserService) Resolve(ctx context.Context, id string) (registry.Entity, error) {
	e, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetUser 获取用户
func (s *UserService) GetUser(ctx context.Context, id string) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "user %s", id)
	}
	e, err := userModelToEntity(user)
	if err != nil {
		return nil, internalError(err, "Failed to convert user")
	}
	return e, nil
}

// CreateUser 创建用户，所属组织必须存在，邮箱不能被未删除的用户占用
func (s *UserService) CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.CreateUserResponse, error) {
	logger := zerolog.Ctx(ctx)

	if _, err := s.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, storageError(err, "organization %s", req.OrganizationID)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	switch _, err := s.userRepo.GetByEmail(ctx, email); {
	case err == nil:
		return nil, apierror.Validation("email %s is already registered", email)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, storageError(err, "user %s", email)
	}

	role := req.Role
	if role == "" {
		role = entity.RoleMember
	}

	userID, err := s.idGen.GenerateUserID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate user ID")
		return nil, internalError(err, "Failed to generate user ID")
	}

	user := &model.User{
		ID:             userID,
		OrganizationID: req.OrganizationID,
		Email:          email,
		Name:           req.Name,
		Role:           role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.Error().Err(err).Str("email", user.Email).Msg("Failed to create user")
		return nil, storageError(err, "create user %s", user.Email)
	}

	e, err := userModelToEntity(user)
	if err != nil {
		return nil, internalError(err, "Failed to convert user")
	}

	logger.Info().
		Str("user_id", user.ID).
		Str("organization_id", user.OrganizationID).
		Str("role", user.Role).
		Msg("User created successfully")
	return &entity.CreateUserResponse{User: e}, nil
}

// DescribeUsers 查询用户
func (s *UserService) DescribeUsers(ctx context.Context, req *entity.DescribeUsersRequest) (*entity.DescribeUsersResponse, error) {
	resp := &entity.DescribeUsersResponse{Users: []entity.User{}}

	var users []*model.User
	switch {
	case len(req.UserIDs) > 0:
		for _, id := range req.UserIDs {
			e, err := s.GetUser(ctx, id)
			if err != nil {
				return nil, err
			}
			resp.Users = append(resp.Users, *e)
		}
		return resp, nil
	case req.Email != "":
		user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			return nil, storageError(err, "user with email %s", req.Email)
		}
		users = []*model.User{user}
	default:
		var err error
		users, err = s.userRepo.ListByOrganization(ctx, req.OrganizationID)
		if err != nil {
			return nil, storageError(err, "list users")
		}
	}

	for _, user := range users {
		e, err := userModelToEntity(user)
		if err != nil {
			return nil, internalError(err, "Failed to convert user")
		}
		resp.Users = append(resp.Users, *e)
	}
	return resp, nil
}
