package repository

import (
	"context"

	"github.com/jimyag/ems/internal/ems/repository/model"
	"gorm.io/gorm"
)

// OrganizationRepository 组织仓库接口
type OrganizationRepository interface {
	Create(ctx context.Context, org *model.Organization) error
	GetByID(ctx context.Context, id string) (*model.Organization, error)
	List(ctx context.Context, filters map[string]interface{}) ([]*model.Organization, error)
	Update(ctx context.Context, org *model.Organization) error
	Delete(ctx context.Context, id string) error
}

type organizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository 创建组织仓库
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &organizationRepository{db: db}
}

// Create 创建组织
func (r *organizationRepository) Create(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Create(org).Error
}

// GetByID 根据 ID 获取组织
func (r *organizationRepository) GetByID(ctx context.Context, id string) (*model.Organization, error) {
	var org model.Organization
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// List 列出组织
func (r *organizationRepository) List(ctx context.Context, filters map[string]interface{}) ([]*model.Organization, error) {
	var orgs []*model.Organization
	query := r.db.WithContext(ctx).Model(&model.Organization{})

	if country, ok := filters["country"]; ok {
		query = query.Where("country = ?", country)
	}
	if industry, ok := filters["industry"]; ok {
		query = query.Where("industry = ?", industry)
	}

	if err := query.Order("created_at ASC").Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// Update 更新组织
func (r *organizationRepository) Update(ctx context.Context, org *model.Organization) error {
	return r.db.WithContext(ctx).Save(org).Error
}

// Delete 软删除组织
func (r *organizationRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Organization{}, "id = ?", id).Error
}
