package service

import (
	"context"
	"time"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/idgen"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// EnergyContractService 能源合同服务
type EnergyContractService struct {
	contractRepo repository.EnergyContractRepository
	orgRepo      repository.OrganizationRepository
	idGen        *idgen.Generator
	now          func() time.Time
}

// NewEnergyContractService 创建能源合同服务
func NewEnergyContractService(repo *repository.Repository) *EnergyContractService {
	return &EnergyContractService{
		contractRepo: repository.NewEnergyContractRepository(repo.DB()),
		orgRepo:      repository.NewOrganizationRepository(repo.DB()),
		idGen:        idgen.DefaultGenerator(),
		now:          time.Now,
	}
}

// Kind 实现 Resolver
func (s *EnergyContractService) Kind() registry.Kind { return registry.KindEnergyContract }

// Resolve 实现 Resolver
func (s *EnergyContractService) Resolve(ctx context.Context, id string) (registry.Entity, error) {
	e, err := s.GetEnergyContract(ctx, id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetEnergyContract 获取合同，Active 按当前时间计算
func (s *EnergyContractService) GetEnergyContract(ctx context.Context, id string) (*entity.EnergyContract, error) {
	contract, err := s.contractRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "energy contract %s", id)
	}
	e, err := energyContractModelToEntity(contract, s.now())
	if err != nil {
		return nil, internalError(err, "Failed to convert energy contract")
	}
	return e, nil
}

// CreateEnergyContract 创建合同，所属组织必须存在，结束日期必须晚于开始日期
func (s *EnergyContractService) CreateEnergyContract(ctx context.Context, req *entity.CreateEnergyContractRequest) (*entity.CreateEnergyContractResponse, error) {
	logger := zerolog.Ctx(ctx)

	start, err := parseTime(req.StartDate)
	if err != nil {
		return nil, apierror.Validation("invalid startDate %q", req.StartDate)
	}
	var end *time.Time
	if req.EndDate != "" {
		t, err := parseTime(req.EndDate)
		if err != nil {
			return nil, apierror.Validation("invalid endDate %q", req.EndDate)
		}
		if !t.After(start) {
			return nil, apierror.Validation("endDate must be after startDate")
		}
		t = t.UTC()
		end = &t
	}

	if _, err := s.orgRepo.GetByID(ctx, req.OrganizationID); err != nil {
		return nil, storageError(err, "organization %s", req.OrganizationID)
	}

	contractID, err := s.idGen.GenerateEnergyContractID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate energy contract ID")
		return nil, internalError(err, "Failed to generate energy contract ID")
	}

	contract := &model.EnergyContract{
		ID:             contractID,
		OrganizationID: req.OrganizationID,
		Supplier:       req.Supplier,
		EnergyType:     req.EnergyType,
		PricePerKWh:    decimal.NewFromFloat(req.PricePerKWh).Round(model.PricePerKWhPlaces),
		StartDate:      start.UTC(),
		EndDate:        end,
	}
	if err := s.contractRepo.Create(ctx, contract); err != nil {
		logger.Error().Err(err).Str("organization_id", req.OrganizationID).Msg("Failed to create energy contract")
		return nil, storageError(err, "create energy contract for %s", req.OrganizationID)
	}

	e, err := energyContractModelToEntity(contract, s.now())
	if err != nil {
		return nil, internalError(err, "Failed to convert energy contract")
	}

	logger.Info().
		Str("energy_contract_id", contract.ID).
		Str("organization_id", contract.OrganizationID).
		Str("energy_type", contract.EnergyType).
		Msg("Energy contract created successfully")
	return &entity.CreateEnergyContractResponse{EnergyContract: e}, nil
}

// DescribeEnergyContracts 查询合同
// 指定 activeAt 时只返回该时刻生效的合同，Active 字段也按该时刻计算
func (s *EnergyContractService) DescribeEnergyContracts(ctx context.Context, req *entity.DescribeEnergyContractsRequest) (*entity.DescribeEnergyContractsResponse, error) {
	resp := &entity.DescribeEnergyContractsResponse{EnergyContracts: []entity.EnergyContract{}}

	if len(req.EnergyContractIDs) > 0 {
		for _, id := range req.EnergyContractIDs {
			e, err := s.GetEnergyContract(ctx, id)
			if err != nil {
				return nil, err
			}
			resp.EnergyContracts = append(resp.EnergyContracts, *e)
		}
		return resp, nil
	}

	at := s.now()
	var scopes []repository.Scope
	if req.OrganizationID != "" {
		scopes = append(scopes, repository.ByOrganization(req.OrganizationID))
	}
	if req.ActiveAt != "" {
		t, err := parseTime(req.ActiveAt)
		if err != nil {
			return nil, apierror.Validation("invalid activeAt %q", req.ActiveAt)
		}
		at = t
		scopes = append(scopes, repository.ActiveAt(t.UTC()))
	}

	contracts, err := s.contractRepo.List(ctx, scopes...)
	if err != nil {
		return nil, storageError(err, "list energy contracts")
	}
	for _, c := range contracts {
		e, err := energyContractModelToEntity(c, at)
		if err != nil {
			return nil, internalError(err, "Failed to convert energy contract")
		}
		resp.EnergyContracts = append(resp.EnergyContracts, *e)
	}
	return resp, nil
}
