package repository

import (
	"context"

	"github.com/jimyag/ems/internal/ems/repository/model"
	"gorm.io/gorm"
)

// ByDonor 某个捐赠方的碳信用
func ByDonor(donorType, donorID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("donor_type = ? AND donor_id = ?", donorType, donorID)
	}
}

// ByStatus 按状态过滤
func ByStatus(status string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("status = ?", status)
	}
}

// CarbonCreditRepository 碳信用仓库接口
type CarbonCreditRepository interface {
	Create(ctx context.Context, credit *model.CarbonCredit) error
	GetByID(ctx context.Context, id string) (*model.CarbonCredit, error)
	List(ctx context.Context, scopes ...Scope) ([]*model.CarbonCredit, error)
	Delete(ctx context.Context, id string) error
}

type carbonCreditRepository struct {
	db *gorm.DB
}

// NewCarbonCreditRepository 创建碳信用仓库
func NewCarbonCreditRepository(db *gorm.DB) CarbonCreditRepository {
	return &carbonCreditRepository{db: db}
}

// Create 创建碳信用
func (r *carbonCreditRepository) Create(ctx context.Context, credit *model.CarbonCredit) error {
	return r.db.WithContext(ctx).Create(credit).Error
}

// GetByID 根据 ID 获取碳信用
func (r *carbonCreditRepository) GetByID(ctx context.Context, id string) (*model.CarbonCredit, error) {
	var credit model.CarbonCredit
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&credit).Error; err != nil {
		return nil, err
	}
	return &credit, nil
}

// List 按 scopes 列出碳信用
func (r *carbonCreditRepository) List(ctx context.Context, scopes ...Scope) ([]*model.CarbonCredit, error) {
	var credits []*model.CarbonCredit
	query := applyScopes(r.db.WithContext(ctx).Model(&model.CarbonCredit{}), scopes)
	if err := query.Order("created_at ASC").Find(&credits).Error; err != nil {
		return nil, err
	}
	return credits, nil
}

// Delete 软删除碳信用
func (r *carbonCreditRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.CarbonCredit{}, "id = ?", id).Error
}
