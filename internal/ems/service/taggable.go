package service

import (
	"context"

	"github.com/jimyag/ems/internal/ems/entity"
	"github.com/jimyag/ems/internal/ems/registry"
	"github.com/jimyag/ems/internal/ems/repository"
	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/apierror"
	"github.com/jimyag/ems/pkg/weight"
	"github.com/rs/zerolog"
	"gorm.io/datatypes"
)

// TaggableService 标签关联服务
//
// 权重的所有写入路径都截断到 [0, 10]，不返回是否发生截断。
// 增减权重是一次读改写，没有加锁，并发时后写覆盖先写。
type TaggableService struct {
	taggableRepo repository.TaggableRepository
	tagRepo      repository.TagRepository
	registry     *registry.Registry
	metrics      *Metrics
}

// NewTaggableService 创建标签关联服务
func NewTaggableService(repo *repository.Repository, reg *registry.Registry, metrics *Metrics) *TaggableService {
	return &TaggableService{
		taggableRepo: repository.NewTaggableRepository(repo.DB()),
		tagRepo:      repository.NewTagRepository(repo.DB()),
		registry:     reg,
		metrics:      metrics,
	}
}

// CreateTaggable 将标签关联到实体
// 标签和目标实体都必须存在；未指定权重时使用 1.00
func (s *TaggableService) CreateTaggable(ctx context.Context, req *entity.CreateTaggableRequest) (*entity.CreateTaggableResponse, error) {
	logger := zerolog.Ctx(ctx)

	kind, err := s.registry.Lookup(req.TaggableType)
	if err != nil {
		return nil, err
	}
	if _, err := s.tagRepo.GetByID(ctx, req.TagID); err != nil {
		return nil, storageError(err, "tag %d", req.TagID)
	}
	ref := registry.Ref{Kind: kind, ID: req.TaggableID}
	if _, err := s.registry.Resolve(ctx, ref); err != nil {
		return nil, storageError(err, "%s", ref)
	}

	w := weight.Default
	if req.Weight != nil {
		w = *req.Weight
	}
	s.metrics.observe(opCreate, w != w.Clamp())

	taggable := &model.Taggable{
		TagID:        req.TagID,
		TaggableType: kind.String(),
		TaggableID:   req.TaggableID,
		Weight:       w.Clamp(),
		SortOrder:    req.SortOrder,
	}
	if req.Metadata != nil {
		taggable.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.taggableRepo.Create(ctx, taggable); err != nil {
		logger.Error().Err(err).Uint("tag_id", req.TagID).Str("target", ref.String()).Msg("Failed to create taggable")
		return nil, storageError(err, "create taggable for %s", ref)
	}

	e, err := taggableModelToEntity(taggable)
	if err != nil {
		return nil, internalError(err, "Failed to convert taggable")
	}

	logger.Info().
		Uint("taggable_id", taggable.ID).
		Uint("tag_id", taggable.TagID).
		Str("target", ref.String()).
		Str("weight", taggable.Weight.String()).
		Msg("Taggable created successfully")

	return &entity.CreateTaggableResponse{Taggable: e}, nil
}

// DescribeTaggable 获取单个关联
func (s *TaggableService) DescribeTaggable(ctx context.Context, id uint) (*entity.Taggable, error) {
	taggable, err := s.taggableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "taggable %d", id)
	}
	e, err := taggableModelToEntity(taggable)
	if err != nil {
		return nil, internalError(err, "Failed to convert taggable")
	}
	return e, nil
}

// DescribeTaggables 按组合条件查询关联，条件之间为 AND
func (s *TaggableService) DescribeTaggables(ctx context.Context, req *entity.DescribeTaggablesRequest) (*entity.DescribeTaggablesResponse, error) {
	scopes, err := s.scopesFor(req)
	if err != nil {
		return nil, err
	}

	taggables, err := s.taggableRepo.List(ctx, scopes...)
	if err != nil {
		return nil, storageError(err, "list taggables")
	}

	resp := &entity.DescribeTaggablesResponse{Taggables: make([]entity.Taggable, 0, len(taggables))}
	for _, t := range taggables {
		e, err := taggableModelToEntity(t)
		if err != nil {
			return nil, internalError(err, "Failed to convert taggable")
		}
		resp.Taggables = append(resp.Taggables, *e)
	}
	return resp, nil
}

func (s *TaggableService) scopesFor(req *entity.DescribeTaggablesRequest) ([]repository.Scope, error) {
	var scopes []repository.Scope
	if req.TagID != 0 {
		scopes = append(scopes, repository.ByTag(req.TagID))
	}
	switch {
	case req.MinWeight != nil:
		scopes = append(scopes, repository.ByWeight(*req.MinWeight))
	case req.ByWeight:
		scopes = append(scopes, repository.ByWeight(weight.DefaultMinimum))
	}
	if req.TaggableType != "" {
		kind, err := s.registry.Lookup(req.TaggableType)
		if err != nil {
			return nil, err
		}
		if req.TaggableID != "" {
			scopes = append(scopes, repository.ByTarget(kind.String(), req.TaggableID))
		} else {
			scopes = append(scopes, repository.ByType(kind.String()))
		}
	}
	if req.Ordered {
		scopes = append(scopes, repository.Ordered())
	}
	return scopes, nil
}

// UpdateTaggable 修改关联的权重、排序或 metadata
func (s *TaggableService) UpdateTaggable(ctx context.Context, req *entity.UpdateTaggableRequest) (*entity.Taggable, error) {
	logger := zerolog.Ctx(ctx)

	taggable, err := s.taggableRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, storageError(err, "taggable %d", req.ID)
	}

	if req.Weight != nil {
		s.metrics.observe(opUpdate, *req.Weight != req.Weight.Clamp())
		taggable.Weight = req.Weight.Clamp()
	}
	if req.SortOrder != nil {
		taggable.SortOrder = *req.SortOrder
	}
	if req.Metadata != nil {
		taggable.Metadata = datatypes.JSONMap(req.Metadata)
	}

	if err := s.taggableRepo.Update(ctx, taggable); err != nil {
		logger.Error().Err(err).Uint("taggable_id", req.ID).Msg("Failed to update taggable")
		return nil, storageError(err, "update taggable %d", req.ID)
	}

	e, err := taggableModelToEntity(taggable)
	if err != nil {
		return nil, internalError(err, "Failed to convert taggable")
	}
	return e, nil
}

// DeleteTaggable 删除关联，默认软删除
func (s *TaggableService) DeleteTaggable(ctx context.Context, req *entity.DeleteTaggableRequest) error {
	logger := zerolog.Ctx(ctx)

	if _, err := s.taggableRepo.GetByID(ctx, req.ID); err != nil {
		return storageError(err, "taggable %d", req.ID)
	}

	var err error
	if req.Hard {
		err = s.taggableRepo.HardDelete(ctx, req.ID)
	} else {
		err = s.taggableRepo.Delete(ctx, req.ID)
	}
	if err != nil {
		logger.Error().Err(err).Uint("taggable_id", req.ID).Msg("Failed to delete taggable")
		return storageError(err, "delete taggable %d", req.ID)
	}

	logger.Info().Uint("taggable_id", req.ID).Bool("hard", req.Hard).Msg("Taggable deleted")
	return nil
}

// UpdateWeight 将权重设置为 clamp(w, 0, 10) 并立即持久化
func (s *TaggableService) UpdateWeight(ctx context.Context, id uint, w weight.Weight) error {
	return s.writeWeight(ctx, opSet, id, w)
}

// IncreaseWeight 权重增加 amount，最高到 10
func (s *TaggableService) IncreaseWeight(ctx context.Context, id uint, amount weight.Weight) error {
	if amount < 0 {
		return apierror.Validation("increase amount must not be negative, got %s", amount)
	}
	current, err := s.taggableRepo.GetByID(ctx, id)
	if err != nil {
		return storageError(err, "taggable %d", id)
	}
	return s.writeWeight(ctx, opIncrease, id, current.Weight+amount)
}

// DecreaseWeight 权重减少 amount，最低到 0
func (s *TaggableService) DecreaseWeight(ctx context.Context, id uint, amount weight.Weight) error {
	if amount < 0 {
		return apierror.Validation("decrease amount must not be negative, got %s", amount)
	}
	current, err := s.taggableRepo.GetByID(ctx, id)
	if err != nil {
		return storageError(err, "taggable %d", id)
	}
	return s.writeWeight(ctx, opDecrease, id, current.Weight-amount)
}

// writeWeight 截断后写入，raw 为截断前的值
func (s *TaggableService) writeWeight(ctx context.Context, op string, id uint, raw weight.Weight) error {
	logger := zerolog.Ctx(ctx)

	w := raw.Clamp()
	if err := s.taggableRepo.UpdateWeight(ctx, id, w); err != nil {
		logger.Error().Err(err).Uint("taggable_id", id).Str("op", op).Msg("Failed to write weight")
		return storageError(err, "update weight of taggable %d", id)
	}
	s.metrics.observe(op, raw != w)

	logger.Debug().
		Uint("taggable_id", id).
		Str("op", op).
		Str("weight", w.String()).
		Msg("Weight updated")
	return nil
}

// ResolveTaggable 解析关联指向的实体
func (s *TaggableService) ResolveTaggable(ctx context.Context, id uint) (registry.Entity, error) {
	taggable, err := s.taggableRepo.GetByID(ctx, id)
	if err != nil {
		return nil, storageError(err, "taggable %d", id)
	}
	kind, err := s.registry.Lookup(taggable.TaggableType)
	if err != nil {
		return nil, err
	}
	return s.registry.Resolve(ctx, registry.Ref{Kind: kind, ID: taggable.TaggableID})
}

// DescribeEntityTags 查询实体上的标签，按 sort_order 升序、weight 降序
// 已删除的标签会被跳过
func (s *TaggableService) DescribeEntityTags(ctx context.Context, req *entity.DescribeEntityTagsRequest) (*entity.DescribeEntityTagsResponse, error) {
	kind, err := s.registry.Lookup(req.TaggableType)
	if err != nil {
		return nil, err
	}
	ref := registry.Ref{Kind: kind, ID: req.TaggableID}
	if _, err := s.registry.Resolve(ctx, ref); err != nil {
		return nil, storageError(err, "%s", ref)
	}

	scopes := []repository.Scope{repository.ByTarget(kind.String(), req.TaggableID)}
	if req.MinWeight != nil {
		scopes = append(scopes, repository.ByWeight(*req.MinWeight))
	}
	scopes = append(scopes, repository.Ordered())

	taggables, err := s.taggableRepo.List(ctx, scopes...)
	if err != nil {
		return nil, storageError(err, "list tags of %s", ref)
	}

	resp := &entity.DescribeEntityTagsResponse{Tags: make([]entity.EntityTag, 0, len(taggables))}
	if len(taggables) == 0 {
		return resp, nil
	}

	tagIDs := make([]uint, 0, len(taggables))
	for _, t := range taggables {
		tagIDs = append(tagIDs, t.TagID)
	}
	tags, err := s.tagRepo.List(ctx, tagIDs)
	if err != nil {
		return nil, storageError(err, "list tags")
	}
	byID := make(map[uint]*model.Tag, len(tags))
	for _, tag := range tags {
		byID[tag.ID] = tag
	}

	for _, t := range taggables {
		tag, ok := byID[t.TagID]
		if !ok {
			continue
		}
		e, err := tagModelToEntity(tag)
		if err != nil {
			return nil, internalError(err, "Failed to convert tag")
		}
		resp.Tags = append(resp.Tags, entity.EntityTag{
			Tag:           *e,
			AssociationID: t.ID,
			Weight:        t.Weight,
			SortOrder:     t.SortOrder,
		})
	}
	return resp, nil
}
