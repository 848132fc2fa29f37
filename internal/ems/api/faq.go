package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// FaqServiceInterface 定义 FAQ 服务的接口
type FaqServiceInterface interface {
	CreateFaq(ctx context.Context, req *entity.CreateFaqRequest) (*entity.CreateFaqResponse, error)
	DescribeFaqs(ctx context.Context, req *entity.DescribeFaqsRequest) (*entity.DescribeFaqsResponse, error)
	VoteFaq(ctx context.Context, req *entity.VoteFaqRequest) (*entity.VoteFaqResponse, error)
}

type Faq struct {
	faqService FaqServiceInterface
}

func NewFaq(faqService *service.FaqService) *Faq {
	return &Faq{
		faqService: faqService,
	}
}

func (f *Faq) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-faq", ginx.Adapt5(f.CreateFaq))
	router.POST("/describe-faqs", ginx.Adapt5(f.DescribeFaqs))
	router.POST("/vote-faq", ginx.Adapt5(f.VoteFaq))
}

func (f *Faq) CreateFaq(ctx *gin.Context, req *entity.CreateFaqRequest) (*entity.CreateFaqResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("category", req.Category).Msg("CreateFaq called")

	response, err := f.faqService.CreateFaq(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create faq")
		return nil, err
	}
	return response, nil
}

func (f *Faq) DescribeFaqs(ctx *gin.Context, req *entity.DescribeFaqsRequest) (*entity.DescribeFaqsResponse, error) {
	response, err := f.faqService.DescribeFaqs(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to describe faqs")
		return nil, err
	}
	return response, nil
}

func (f *Faq) VoteFaq(ctx *gin.Context, req *entity.VoteFaqRequest) (*entity.VoteFaqResponse, error) {
	response, err := f.faqService.VoteFaq(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Str("faq_id", req.FaqID).Msg("Failed to vote faq")
		return nil, err
	}
	return response, nil
}
