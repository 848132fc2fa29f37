package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/stretchr/testify/require"
)

// TestServices 包含测试所需的所有服务和依赖
type TestServices struct {
	Repo                   *repository.Repository
	Registry               *registry.Registry
	Metrics                *Metrics
	TagService             *TagService
	TaggableService        *TaggableService
	OrganizationService    *OrganizationService
	UserService            *UserService
	CustomerProfileService *CustomerProfileService
	EnergyContractService  *EnergyContractService
	FaqService             *FaqService
	CarbonCreditService    *CarbonCreditService
}

// setupTestServices 为每个测试用例创建独立的数据库和服务实例
func setupTestServices(t *testing.T) *TestServices {
	t.Helper()

	repo, err := repository.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = repo.Close()
	})

	reg := registry.New()
	metrics := NewMetrics()

	ts := &TestServices{
		Repo:                   repo,
		Registry:               reg,
		Metrics:                metrics,
		TagService:             NewTagService(repo),
		TaggableService:        NewTaggableService(repo, reg, metrics),
		OrganizationService:    NewOrganizationService(repo),
		UserService:            NewUserService(repo),
		CustomerProfileService: NewCustomerProfileService(repo),
		EnergyContractService:  NewEnergyContractService(repo),
		FaqService:             NewFaqService(repo),
		CarbonCreditService:    NewCarbonCreditService(repo, reg),
	}
	require.NoError(t, RegisterResolvers(reg,
		ts.OrganizationService,
		ts.UserService,
		ts.CustomerProfileService,
		ts.EnergyContractService,
		ts.FaqService,
	))
	return ts
}

// mustCreateOrganization 创建测试组织
func (ts *TestServices) mustCreateOrganization(t *testing.T, name string) *entity.Organization {
	t.Helper()
	resp, err := ts.OrganizationService.CreateOrganization(context.Background(), &entity.CreateOrganizationRequest{
		Name:    name,
		Country: "DE",
	})
	require.NoError(t, err)
	return resp.Organization
}

// mustCreateUser 创建测试用户
func (ts *TestServices) mustCreateUser(t *testing.T, orgID, email string) *entity.User {
	t.Helper()
	resp, err := ts.UserService.CreateUser(context.Background(), &entity.CreateUserRequest{
		OrganizationID: orgID,
		Email:          email,
	})
	require.NoError(t, err)
	return resp.User
}

// mustCreateTag 创建测试标签
func (ts *TestServices) mustCreateTag(t *testing.T, name string) *entity.Tag {
	t.Helper()
	resp, err := ts.TagService.CreateTag(context.Background(), &entity.CreateTagRequest{Name: name})
	require.NoError(t, err)
	return resp.Tag
}

// mustCreateFaq 创建测试 FAQ
func (ts *TestServices) mustCreateFaq(t *testing.T, question string, published bool) *entity.Faq {
	t.Helper()
	resp, err := ts.FaqService.CreateFaq(context.Background(), &entity.CreateFaqRequest{
		Question:  question,
		Answer:    "answer to " + question,
		Category:  "billing",
		Published: published,
	})
	require.NoError(t, err)
	return resp.Faq
}
