package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// CarbonCreditServiceInterface 定义碳信用服务的接口
type CarbonCreditServiceInterface interface {
	CreateCarbonCredit(ctx context.Context, req *entity.CreateCarbonCreditRequest) (*entity.CreateCarbonCreditResponse, error)
	DescribeCarbonCredits(ctx context.Context, req *entity.DescribeCarbonCreditsRequest) (*entity.DescribeCarbonCreditsResponse, error)
	ResolveDonor(ctx context.Context, creditID string) (registry.Entity, error)
}

type CarbonCredit struct {
	creditService CarbonCreditServiceInterface
}

func NewCarbonCredit(creditService *service.CarbonCreditService) *CarbonCredit {
	return &CarbonCredit{
		creditService: creditService,
	}
}

func (c *CarbonCredit) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-carbon-credit", ginx.Adapt5(c.CreateCarbonCredit))
	router.POST("/describe-carbon-credits", ginx.Adapt5(c.DescribeCarbonCredits))
	router.POST("/resolve-carbon-credit-donor", ginx.Adapt5(c.ResolveCarbonCreditDonor))
}

func (c *CarbonCredit) CreateCarbonCredit(ctx *gin.Context, req *entity.CreateCarbonCreditRequest) (*entity.CreateCarbonCreditResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Str("donor_type", req.DonorType).
		Str("donor_id", req.DonorID).
		Float64("amount_tonnes", req.AmountTonnes).
		Msg("CreateCarbonCredit called")

	response, err := c.creditService.CreateCarbonCredit(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create carbon credit")
		return nil, err
	}
	return response, nil
}

func (c *CarbonCredit) DescribeCarbonCredits(ctx *gin.Context, req *entity.DescribeCarbonCreditsRequest) (*entity.DescribeCarbonCreditsResponse, error) {
	response, err := c.creditService.DescribeCarbonCredits(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to describe carbon credits")
		return nil, err
	}
	return response, nil
}

func (c *CarbonCredit) ResolveCarbonCreditDonor(ctx *gin.Context, req *entity.ResolveCarbonCreditDonorRequest) (*entity.ResolveCarbonCreditDonorResponse, error) {
	donor, err := c.creditService.ResolveDonor(ctx, req.CarbonCreditID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("carbon_credit_id", req.CarbonCreditID).Msg("Failed to resolve carbon credit donor")
		return nil, err
	}
	return &entity.ResolveCarbonCreditDonorResponse{
		DonorType: donor.TaggableKind().String(),
		Donor:     donor,
	}, nil
}
