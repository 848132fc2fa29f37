package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/jimyag/ems/pkg/weight"
	"github.com/rs/zerolog"
)

// TaggableServiceInterface 定义标签关联服务的接口
type TaggableServiceInterface interface {
	CreateTaggable(ctx context.Context, req *entity.CreateTaggableRequest) (*entity.CreateTaggableResponse, error)
	DescribeTaggable(ctx context.Context, id uint) (*entity.Taggable, error)
	DescribeTaggables(ctx context.Context, req *entity.DescribeTaggablesRequest) (*entity.DescribeTaggablesResponse, error)
	UpdateTaggable(ctx context.Context, req *entity.UpdateTaggableRequest) (*entity.Taggable, error)
	DeleteTaggable(ctx context.Context, req *entity.DeleteTaggableRequest) error
	UpdateWeight(ctx context.Context, id uint, w weight.Weight) error
	IncreaseWeight(ctx context.Context, id uint, amount weight.Weight) error
	DecreaseWeight(ctx context.Context, id uint, amount weight.Weight) error
	ResolveTaggable(ctx context.Context, id uint) (registry.Entity, error)
	DescribeEntityTags(ctx context.Context, req *entity.DescribeEntityTagsRequest) (*entity.DescribeEntityTagsResponse, error)
}

type Taggable struct {
	taggableService TaggableServiceInterface
}

func NewTaggable(taggableService *service.TaggableService) *Taggable {
	return &Taggable{
		taggableService: taggableService,
	}
}

func (t *Taggable) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-taggable", ginx.Adapt5(t.CreateTaggable))
	router.POST("/describe-taggable", ginx.Adapt5(t.DescribeTaggable))
	router.POST("/describe-taggables", ginx.Adapt5(t.DescribeTaggables))
	router.POST("/update-taggable", ginx.Adapt5(t.UpdateTaggable))
	router.POST("/delete-taggable", ginx.Adapt5(t.DeleteTaggable))
	router.POST("/update-taggable-weight", ginx.Adapt5(t.UpdateTaggableWeight))
	router.POST("/increase-taggable-weight", ginx.Adapt5(t.IncreaseTaggableWeight))
	router.POST("/decrease-taggable-weight", ginx.Adapt5(t.DecreaseTaggableWeight))
	router.POST("/resolve-taggable", ginx.Adapt5(t.ResolveTaggable))
	router.POST("/describe-entity-tags", ginx.Adapt5(t.DescribeEntityTags))
}

func (t *Taggable) CreateTaggable(ctx *gin.Context, req *entity.CreateTaggableRequest) (*entity.CreateTaggableResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().
		Uint("tag_id", req.TagID).
		Str("taggable_type", req.TaggableType).
		Str("taggable_id", req.TaggableID).
		Msg("CreateTaggable called")

	response, err := t.taggableService.CreateTaggable(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create taggable")
		return nil, err
	}
	return response, nil
}

func (t *Taggable) DescribeTaggable(ctx *gin.Context, req *entity.DescribeTaggableRequest) (*entity.DescribeTaggableResponse, error) {
	taggable, err := t.taggableService.DescribeTaggable(ctx, req.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("taggable_id", req.ID).Msg("Failed to describe taggable")
		return nil, err
	}
	return &entity.DescribeTaggableResponse{Taggable: taggable}, nil
}

func (t *Taggable) DescribeTaggables(ctx *gin.Context, req *entity.DescribeTaggablesRequest) (*entity.DescribeTaggablesResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Interface("request", req).Msg("DescribeTaggables called")

	response, err := t.taggableService.DescribeTaggables(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to describe taggables")
		return nil, err
	}

	logger.Info().Int("count", len(response.Taggables)).Msg("Taggables described successfully")
	return response, nil
}

func (t *Taggable) UpdateTaggable(ctx *gin.Context, req *entity.UpdateTaggableRequest) (*entity.UpdateTaggableResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Uint("taggable_id", req.ID).Msg("UpdateTaggable called")

	taggable, err := t.taggableService.UpdateTaggable(ctx, req)
	if err != nil {
		logger.Error().Err(err).Uint("taggable_id", req.ID).Msg("Failed to update taggable")
		return nil, err
	}
	return &entity.UpdateTaggableResponse{Taggable: taggable}, nil
}

func (t *Taggable) DeleteTaggable(ctx *gin.Context, req *entity.DeleteTaggableRequest) (*entity.DeleteTaggableResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Uint("taggable_id", req.ID).Bool("hard", req.Hard).Msg("DeleteTaggable called")

	if err := t.taggableService.DeleteTaggable(ctx, req); err != nil {
		logger.Error().Err(err).Uint("taggable_id", req.ID).Msg("Failed to delete taggable")
		return nil, err
	}
	return &entity.DeleteTaggableResponse{Return: true}, nil
}

// UpdateTaggableWeight 权重操作本身不返回结果，写入后重新读取关联
func (t *Taggable) UpdateTaggableWeight(ctx *gin.Context, req *entity.UpdateTaggableWeightRequest) (*entity.UpdateTaggableWeightResponse, error) {
	return t.mutateWeight(ctx, req.ID, func() error {
		return t.taggableService.UpdateWeight(ctx, req.ID, *req.Weight)
	})
}

func (t *Taggable) IncreaseTaggableWeight(ctx *gin.Context, req *entity.StepTaggableWeightRequest) (*entity.UpdateTaggableWeightResponse, error) {
	amount := stepAmount(req)
	return t.mutateWeight(ctx, req.ID, func() error {
		return t.taggableService.IncreaseWeight(ctx, req.ID, amount)
	})
}

func (t *Taggable) DecreaseTaggableWeight(ctx *gin.Context, req *entity.StepTaggableWeightRequest) (*entity.UpdateTaggableWeightResponse, error) {
	amount := stepAmount(req)
	return t.mutateWeight(ctx, req.ID, func() error {
		return t.taggableService.DecreaseWeight(ctx, req.ID, amount)
	})
}

func stepAmount(req *entity.StepTaggableWeightRequest) weight.Weight {
	if req.Amount == nil {
		return weight.DefaultStep
	}
	return *req.Amount
}

func (t *Taggable) mutateWeight(ctx *gin.Context, id uint, mutate func() error) (*entity.UpdateTaggableWeightResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Uint("taggable_id", id).Msg("Weight mutation called")

	if err := mutate(); err != nil {
		logger.Error().Err(err).Uint("taggable_id", id).Msg("Failed to mutate weight")
		return nil, err
	}
	taggable, err := t.taggableService.DescribeTaggable(ctx, id)
	if err != nil {
		return nil, err
	}
	return &entity.UpdateTaggableWeightResponse{Taggable: taggable}, nil
}

func (t *Taggable) ResolveTaggable(ctx *gin.Context, req *entity.ResolveTaggableRequest) (*entity.ResolveTaggableResponse, error) {
	e, err := t.taggableService.ResolveTaggable(ctx, req.ID)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Uint("taggable_id", req.ID).Msg("Failed to resolve taggable")
		return nil, err
	}
	return &entity.ResolveTaggableResponse{
		TaggableType: e.TaggableKind().String(),
		TaggableID:   e.TaggableID(),
		Entity:       e,
	}, nil
}

func (t *Taggable) DescribeEntityTags(ctx *gin.Context, req *entity.DescribeEntityTagsRequest) (*entity.DescribeEntityTagsResponse, error) {
	response, err := t.taggableService.DescribeEntityTags(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).
			Str("taggable_type", req.TaggableType).
			Str("taggable_id", req.TaggableID).
			Msg("Failed to describe entity tags")
		return nil, err
	}
	return response, nil
}
