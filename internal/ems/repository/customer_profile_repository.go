package repository

import (
	"context"

	"github.com/jimyag/ems/internal/ems/repository/model"
	"gorm.io/gorm"
)

// CustomerProfileRepository 客户资料仓库接口
type CustomerProfileRepository interface {
	Create(ctx context.Context, profile *model.CustomerProfile) error
	GetByID(ctx context.Context, id string) (*model.CustomerProfile, error)
	ListByUser(ctx context.Context, userID string) ([]*model.CustomerProfile, error)
	Delete(ctx context.Context, id string) error
}

type customerProfileRepository struct {
	db *gorm.DB
}

// NewCustomerProfileRepository 创建客户资料仓库
func NewCustomerProfileRepository(db *gorm.DB) CustomerProfileRepository {
	return &customerProfileRepository{db: db}
}

// Create 创建客户资料
func (r *customerProfileRepository) Create(ctx context.Context, profile *model.CustomerProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// GetByID 根据 ID 获取客户资料
func (r *customerProfileRepository) GetByID(ctx context.Context, id string) (*model.CustomerProfile, error) {
	var profile model.CustomerProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ListByUser 列出用户的客户资料，userID 为空时返回全部
func (r *customerProfileRepository) ListByUser(ctx context.Context, userID string) ([]*model.CustomerProfile, error) {
	var profiles []*model.CustomerProfile
	query := r.db.WithContext(ctx).Model(&model.CustomerProfile{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Order("created_at ASC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Delete 软删除客户资料
func (r *customerProfileRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.CustomerProfile{}, "id = ?", id).Error
}
