package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/service"
	"github.com/jimyag/ems/pkg/ginx"
	"github.com/rs/zerolog"
)

// TagServiceInterface 定义标签服务的接口
type TagServiceInterface interface {
	CreateTag(ctx context.Context, req *entity.CreateTagRequest) (*entity.CreateTagResponse, error)
	DescribeTags(ctx context.Context, req *entity.DescribeTagsRequest) (*entity.DescribeTagsResponse, error)
	DeleteTag(ctx context.Context, req *entity.DeleteTagRequest) error
}

type Tag struct {
	tagService TagServiceInterface
}

func NewTag(tagService *service.TagService) *Tag {
	return &Tag{
		tagService: tagService,
	}
}

func (t *Tag) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/create-tag", ginx.Adapt5(t.CreateTag))
	router.POST("/describe-tags", ginx.Adapt5(t.DescribeTags))
	router.POST("/delete-tag", ginx.Adapt5(t.DeleteTag))
}

func (t *Tag) CreateTag(ctx *gin.Context, req *entity.CreateTagRequest) (*entity.CreateTagResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("name", req.Name).Msg("CreateTag called")

	response, err := t.tagService.CreateTag(ctx, req)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create tag")
		return nil, err
	}
	return response, nil
}

func (t *Tag) DescribeTags(ctx *gin.Context, req *entity.DescribeTagsRequest) (*entity.DescribeTagsResponse, error) {
	response, err := t.tagService.DescribeTags(ctx, req)
	if err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("Failed to describe tags")
		return nil, err
	}
	return response, nil
}

func (t *Tag) DeleteTag(ctx *gin.Context, req *entity.DeleteTagRequest) (*entity.DeleteTagResponse, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Uint("tag_id", req.TagID).Bool("hard", req.Hard).Msg("DeleteTag called")

	if err := t.tagService.DeleteTag(ctx, req); err != nil {
		logger.Error().Err(err).Uint("tag_id", req.TagID).Msg("Failed to delete tag")
		return nil, err
	}
	return &entity.DeleteTagResponse{Return: true}, nil
}
