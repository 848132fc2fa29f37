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

// FaqService FAQ 服务
type FaqService struct {
	faqRepo repository.FaqRepository
	idGen   *idgen.Generator
}

// NewFaqService 创建 FAQ 服务
func NewFaqService(repo *repository.Repository) *FaqService {
	return &FaqService{
		faqRepo: repository.NewFaqRepository(repo.DB()),
		idGen:   idgen.DefaultGenerator(),
	}
}

// Kind 实现 Resolver
func (s *FaqService) Kind() registry.Kind { return registry.KindFaq }

// Resolve 实现 Resolver
func (s *FaqService) Resolve(ctx context.Context, id string) (registry.Entity, error) {
	e, err := s.GetFaq(ctx, id)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetFaq 获取 FAQ
func (s *FaqService) GetFaq(ctx context.Context, id string) (*entity.Faq, error) {
	faq, err := s.faqRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "faq %s", id)
	}
	e, err := faqModelToEntity(faq)
	if err != nil {
		return nil, internalError(err, "Failed to convert faq")
	}
	return e, nil
}

// CreateFaq 创建 FAQ
func (s *FaqService) CreateFaq(ctx context.Context, req *entity.CreateFaqRequest) (*entity.CreateFaqResponse, error) {
	logger := zerolog.Ctx(ctx)

	faqID, err := s.idGen.GenerateFaqID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate faq ID")
		return nil, internalError(err, "Failed to generate faq ID")
	}

	faq := &model.Faq{
		ID:        faqID,
		Question:  req.Question,
		Answer:    req.Answer,
		Category:  req.Category,
		Published: req.Published,
	}
	if err := s.faqRepo.Create(ctx, faq); err != nil {
		logger.Error().Err(err).Msg("Failed to create faq")
		return nil, storageError(err, "create faq")
	}

	e, err := faqModelToEntity(faq)
	if err != nil {
		return nil, internalError(err, "Failed to convert faq")
	}

	logger.Info().Str("faq_id", faq.ID).Str("category", faq.Category).Msg("Faq created successfully")
	return &entity.CreateFaqResponse{Faq: e}, nil
}

// DescribeFaqs 查询 FAQ
func (s *FaqService) DescribeFaqs(ctx context.Context, req *entity.DescribeFaqsRequest) (*entity.DescribeFaqsResponse, error) {
	resp := &entity.DescribeFaqsResponse{Faqs: []entity.Faq{}}

	if len(req.FaqIDs) > 0 {
		for _, id := range req.FaqIDs {
			e, err := s.GetFaq(ctx, id)
			if err != nil {
				return nil, err
			}
			resp.Faqs = append(resp.Faqs, *e)
		}
		return resp, nil
	}

	var scopes []repository.Scope
	if req.PublishedOnly {
		scopes = append(scopes, repository.Published())
	}
	if req.Category != "" {
		scopes = append(scopes, repository.ByCategory(req.Category))
	}

	faqs, err := s.faqRepo.List(ctx, scopes...)
	if err != nil {
		return nil, storageError(err, "list faqs")
	}
	for _, f := range faqs {
		e, err := faqModelToEntity(f)
		if err != nil {
			return nil, internalError(err, "Failed to convert faq")
		}
		resp.Faqs = append(resp.Faqs, *e)
	}
	return resp, nil
}

// VoteFaq 记录一次有用或无用的投票
// 计数在数据库中原子累加，不经过读改写
func (s *FaqService) VoteFaq(ctx context.Context, req *entity.VoteFaqRequest) (*entity.VoteFaqResponse, error) {
	logger := zerolog.Ctx(ctx)

	if err := s.faqRepo.IncrementVote(ctx, req.FaqID, req.Helpful); err != nil {
		logger.Error().Err(err).Str("faq_id", req.FaqID).Msg("Failed to vote faq")
		return nil, storageError(err, "vote faq %s", req.FaqID)
	}

	e, err := s.GetFaq(ctx, req.FaqID)
	if err != nil {
		return nil, err
	}
	return &entity.VoteFaqResponse{Faq: e}, nil
}
