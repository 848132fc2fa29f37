package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// EnergyContractServiceInterface 定义能源合同服务的接口
type EnergyContractServiceInterface interface {
	CreateEnergyContract(ctx context.Context, req *entity.CreateEnergyContractRequest) (*entity.CreateEnergyContractResponse, error)
	DescribeEnergyContracts(ctx context.Context, req *entity.DescribeEnergyContractsRequest) (*entity.DescribeEnergyContractsResponse, error)
}

type EnergyContract struct {
	contractService EnergyContractServiceInterface
}

func NewEnergyContract(contractService *service.EnergyContractService) *EnergyContract {
	return &EnergyContract{
		contractService: contractService,
	}
}

func (e *EnergyContract) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-energy-contract", ginx.Adapt5(e.CreateEnergyContract))
	router.POST("/describe-energy-contracts", ginx.Adapt5(e.DescribeEnergyContracts))
}

func (e *EnergyContract) CreateEnergyContract(ctx *gin.Context, req *entity.CreateEnergyContractRequest) (*entity.CreateEnergyContractResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("organization_id", req.OrganizationID).
		Str("supplier", req.Supplier).
		Str("energy_type", req.EnergyType).
		Msg("CreateEnergyContract called")

	response, err := e.contractService.CreateEnergyContract(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create energy contract")
		return nil, err
	}
	return response, nil
}

func (e *EnergyContract) DescribeEnergyContracts(ctx *gin.Context, req *entity.DescribeEnergyContractsRequest) (*entity.DescribeEnergyContractsResponse, error) {
	response, err := e.contractService.DescribeEnergyContracts(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to describe energy contracts")
		return nil, err
	}
	return response, nil
}
