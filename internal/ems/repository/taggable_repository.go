package repository

import (
	"context"

	"github.com/jimyag/ems/internal/ems/repository/model"
	"github.com/jimyag/ems/pkg/weight"
	"gorm.io/gorm"
)

// TaggableRepository 标签关联仓库接口
type TaggableRepository interface {
	Create(ctx context.Context, taggable *model.Taggable) error
	GetByID(ctx context.Context, id uint) (*model.Taggable, error)
	Find(ctx context.Context, tagID uint, taggableType, taggableID string) (*model.Taggable, error)
	List(ctx context.Context, scopes ...Scope) ([]*model.Taggable, error)
	Update(ctx context.Context, taggable *model.Taggable) error
	UpdateWeight(ctx context.Context, id uint, w weight.Weight) error
	Delete(ctx context.Context, id uint) error
	HardDelete(ctx context.Context, id uint) error
}

type taggableRepository struct {
	db *gorm.DB
}

// NewTaggableRepository 创建标签关联仓库
func NewTaggableRepository(db *gorm.DB) TaggableRepository {
	return &taggableRepository{db: db}
}

// Create 创建关联
func (r *taggableRepository) Create(ctx context.Context, taggable *model.Taggable) error {
	return r.db.WithContext(ctx).Create(taggable).Error
}

// GetByID 根据 ID 获取关联
func (r *taggableRepository) GetByID(ctx context.Context, id uint) (*model.Taggable, error) {
	var taggable model.Taggable
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&taggable).Error; err != nil {
		return nil, err
	}
	return &taggable, nil
}

// Find 根据 (tag_id, taggable_type, taggable_id) 获取第一条关联
func (r *taggableRepository) Find(ctx context.Context, tagID uint, taggableType, taggableID string) (*model.Taggable, error) {
	var taggable model.Taggable
	if err := r.db.WithContext(ctx).
		Scopes(ByTag(tagID), ByTarget(taggableType, taggableID)).
		Order("id ASC").
		First(&taggable).Error; err != nil {
		return nil, err
	}
	return &taggable, nil
}

// List 按 scopes 列出关联
func (r *taggableRepository) List(ctx context.Context, scopes ...Scope) ([]*model.Taggable, error) {
	var taggables []*model.Taggable
	query := applyScopes(r.db.WithContext(ctx).Model(&model.Taggable{}), scopes)
	if err := query.Find(&taggables).Error; err != nil {
		return nil, err
	}
	return taggables, nil
}

// Update 更新关联的全部字段
func (r *taggableRepository) Update(ctx context.Context, taggable *model.Taggable) error {
	return r.db.WithContext(ctx).Save(taggable).Error
}

// UpdateWeight 只更新权重，写入前截断到 [0, 10]
// 不做乐观锁，后写覆盖先写
func (r *taggableRepository) UpdateWeight(ctx context.Context, id uint, w weight.Weight) error {
	result := r.db.WithContext(ctx).
		Model(&model.Taggable{}).
		Where("id = ?", id).
		Update("weight", w.Clamp())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 软删除关联
func (r *taggableRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Taggable{}, "id = ?", id).Error
}

// HardDelete 硬删除关联
func (r *taggableRepository) HardDelete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Unscoped().Delete(&model.Taggable{}, "id = ?", id).Error
}
