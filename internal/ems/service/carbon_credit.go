package service

import (
	"context"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/idgen"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// donorKinds 可以作为碳信用捐赠方的实体类型
var donorKinds = map[registry.Kind]bool{
	registry.KindUser:         true,
	registry.KindOrganization: true,
}

// CarbonCreditService 碳信用服务
// 捐赠方是多态引用，通过 Registry 解析
type CarbonCreditService struct {
	creditRepo repository.CarbonCreditRepository
	registry   *registry.Registry
	idGen      *idgen.Generator
}

// NewCarbonCreditService 创建碳信用服务
func NewCarbonCreditService(repo *repository.Repository, reg *registry.Registry) *CarbonCreditService {
	return &CarbonCreditService{
		creditRepo: repository.NewCarbonCreditRepository(repo.DB()),
		registry:   reg,
		idGen:      idgen.DefaultGenerator(),
	}
}

func (s *CarbonCreditService) donorRef(donorType, donorID string) (registry.Ref, error) {
	kind, err := s.registry.Lookup(donorType)
	if err != nil {
		return registry.Ref{}, err
	}
	if !donorKinds[kind] {
		return registry.Ref{}, apierror.Validation("%s cannot donate carbon credits", kind)
	}
	return registry.Ref{Kind: kind, ID: donorID}, nil
}

// CreateCarbonCredit 创建碳信用，捐赠方必须存在
func (s *CarbonCreditService) CreateCarbonCredit(ctx context.Context, req *entity.CreateCarbonCreditRequest) (*entity.CreateCarbonCreditResponse, error) {
	logger := zerolog.Ctx(ctx)

	ref, err := s.donorRef(req.DonorType, req.DonorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.registry.Resolve(ctx, ref); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = entity.CarbonCreditAvailable
	}

	creditID, err := s.idGen.GenerateCarbonCreditID()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate carbon credit ID")
		return nil, internalError(err, "Failed to generate carbon credit ID")
	}

	credit := &model.CarbonCredit{
		ID:           creditID,
		DonorType:    ref.Kind.String(),
		DonorID:      ref.ID,
		AmountTonnes: decimal.NewFromFloat(req.AmountTonnes).Round(model.AmountTonnesPlaces),
		VintageYear:  req.VintageYear,
		Status:       status,
	}
	if err := s.creditRepo.Create(ctx, credit); err != nil {
		logger.Error().Err(err).Str("donor", ref.String()).Msg("Failed to create carbon credit")
		return nil, storageError(err, "create carbon credit for %s", ref)
	}

	e, err := carbonCreditModelToEntity(credit)
	if err != nil {
		return nil, internalError(err, "Failed to convert carbon credit")
	}

	logger.Info().Str("carbon_credit_id", credit.ID).Str("donor", ref.String()).Msg("Carbon credit created successfully")
	return &entity.CreateCarbonCreditResponse{CarbonCredit: e}, nil
}

// DescribeCarbonCredits 查询碳信用
func (s *CarbonCreditService) DescribeCarbonCredits(ctx context.Context, req *entity.DescribeCarbonCreditsRequest) (*entity.DescribeCarbonCreditsResponse, error) {
	resp := &entity.DescribeCarbonCreditsResponse{CarbonCredits: []entity.CarbonCredit{}}

	var credits []*model.CarbonCredit
	if len(req.CarbonCreditIDs) > 0 {
		for _, id := range req.CarbonCreditIDs {
			credit, err := s.creditRepo.GetByID(ctx, id)
			if err != nil {
				return nil, storageError(err, "carbon credit %s", id)
			}
			credits = append(credits, credit)
		}
	} else {
		var scopes []repository.Scope
		if req.DonorType != "" || req.DonorID != "" {
			if req.DonorType == "" || req.DonorID == "" {
				return nil, apierror.Validation("donorType and donorID must be set together")
			}
			ref, err := s.donorRef(req.DonorType, req.DonorID)
			if err != nil {
				return nil, err
			}
			scopes = append(scopes, repository.ByDonor(ref.Kind.String(), ref.ID))
		}
		if req.Status != "" {
			scopes = append(scopes, repository.ByStatus(req.Status))
		}

		var err error
		credits, err = s.creditRepo.List(ctx, scopes...)
		if err != nil {
			return nil, storageError(err, "list carbon credits")
		}
	}

	for _, c := range credits {
		e, err := carbonCreditModelToEntity(c)
		if err != nil {
			return nil, internalError(err, "Failed to convert carbon credit")
		}
		resp.CarbonCredits = append(resp.CarbonCredits, *e)
	}
	return resp, nil
}

// ResolveDonor 解析碳信用的捐赠方，结果为 *entity.User 或 *entity.Organization
func (s *CarbonCreditService) ResolveDonor(ctx context.Context, creditID string) (registry.Entity, error) {
	credit, err := s.creditRepo.GetByID(ctx, creditID)
	if err != nil {
		return nil, storageError(err, "carbon credit %s", creditID)
	}
	ref, err := s.donorRef(credit.DonorType, credit.DonorID)
	if err != nil {
		return nil, err
	}
	return s.registry.Resolve(ctx, ref)
}
