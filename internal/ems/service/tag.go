package service

import (
	"context"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/slug"
	"github.com/rs/zerolog"
)

// TagService 标签服务
type TagService struct {
	tagRepo repository.TagRepository
}

// NewTagService 创建标签服务
func NewTagService(repo *repository.Repository) *TagService {
	return &TagService{
		tagRepo: repository.NewTagRepository(repo.DB()),
	}
}

// CreateTag 创建标签，slug 由名称生成
func (s *TagService) CreateTag(ctx context.Context, req *entity.CreateTagRequest) (*entity.CreateTagResponse, error) {
	logger := zerolog.Ctx(ctx)

	tagSlug := slug.Make(req.Name)
	if tagSlug == "" {
		return nil, apierror.Validation("tag name %q has no letters or digits", req.Name)
	}

	tag := &model.Tag{
		Name:        req.Name,
		Slug:        tagSlug,
		Description: req.Description,
	}
	if err := s.tagRepo.Create(ctx, tag); err != nil {
		logger.Error().Err(err).Str("name", req.Name).Msg("Failed to create tag")
		return nil, storageError(err, "create tag %q", req.Name)
	}

	e, err := tagModelToEntity(tag)
	if err != nil {
		return nil, internalError(err, "Failed to convert tag")
	}

	logger.Info().Uint("tag_id", tag.ID).Str("slug", tag.Slug).Msg("Tag created successfully")
	return &entity.CreateTagResponse{Tag: e}, nil
}

// GetTag 获取标签
func (s *TagService) GetTag(ctx context.Context, tagID uint) (*entity.Tag, error) {
	tag, err := s.tagRepo.GetByID(ctx, tagID)
	if err != nil {
		return nil, storageError(err, "tag %d", tagID)
	}
	return tagModelToEntity(tag)
}

// DescribeTags 查询标签
func (s *TagService) DescribeTags(ctx context.Context, req *entity.DescribeTagsRequest) (*entity.DescribeTagsResponse, error) {
	var tags []*model.Tag
	if req.Slug != "" {
		tag, err := s.tagRepo.GetBySlug(ctx, req.Slug)
		if err != nil {
			return nil, storageError(err, "tag with slug %q", req.Slug)
		}
		tags = []*model.Tag{tag}
	} else {
		var err error
		tags, err = s.tagRepo.List(ctx, req.TagIDs)
		if err != nil {
			return nil, storageError(err, "list tags")
		}
	}

	resp := &entity.DescribeTagsResponse{Tags: make([]entity.Tag, 0, len(tags))}
	for _, tag := range tags {
		e, err := tagModelToEntity(tag)
		if err != nil {
			return nil, internalError(err, "Failed to convert tag")
		}
		resp.Tags = append(resp.Tags, *e)
	}
	return resp, nil
}

// DeleteTag 删除标签，不级联删除关联
func (s *TagService) DeleteTag(ctx context.Context, req *entity.DeleteTagRequest) error {
	logger := zerolog.Ctx(ctx)

	if _, err := s.tagRepo.GetByID(ctx, req.TagID); err != nil {
		return storageError(err, "tag %d", req.TagID)
	}

	var err error
	if req.Hard {
		err = s.tagRepo.HardDelete(ctx, req.TagID)
	} else {
		err = s.tagRepo.Delete(ctx, req.TagID)
	}
	if err != nil {
		logger.Error().Err(err).Uint("tag_id", req.TagID).Msg("Failed to delete tag")
		return storageError(err, "delete tag %d", req.TagID)
	}

	logger.Info().Uint("tag_id", req.TagID).Bool("hard", req.Hard).Msg("Tag deleted")
	return nil
}
