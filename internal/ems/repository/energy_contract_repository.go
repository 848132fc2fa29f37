package repository

import (
	"context"
	"time"

	"github.com/jimyag/ems/internal/ems/repository/model"
	"gorm.io/gorm"
)

// ActiveAt 在 at 时刻生效的合同
func ActiveAt(at time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("start_date <= ? AND (end_date IS NULL OR end_date > ?)", at, at)
	}
}

// ByOrganization 属于某个组织
func ByOrganization(organizationID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", organizationID)
	}
}

// EnergyContractRepository 能源合同仓库接口
type EnergyContractRepository interface {
	Create(ctx context.Context, contract *model.EnergyContract) error
	GetByID(ctx context.Context, id string) (*model.EnergyContract, error)
	List(ctx context.Context, scopes ...Scope) ([]*model.EnergyContract, error)
	Delete(ctx context.Context, id string) error
}

type energyContractRepository struct {
	db *gorm.DB
}

// NewEnergyContractRepository 创建能源合同仓库
func NewEnergyContractRepository(db *gorm.DB) EnergyContractRepository {
	return &energyContractRepository{db: db}
}

// Create 创建合同
func (r *energyContractRepository) Create(ctx context.Context, contract *model.EnergyContract) error {
	return r.db.WithContext(ctx).Create(contract).Error
}

// GetByID 根据 ID 获取合同
func (r *energyContractRepository) GetByID(ctx context.Context, id string) (*model.EnergyContract, error) {
	var contract model.EnergyContract
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&contract).Error; err != nil {
		return nil, err
	}
	return &contract, nil
}

// List 按 scopes 列出合同，按开始日期排序
func (r *energyContractRepository) List(ctx context.Context, scopes ...Scope) ([]*model.EnergyContract, error) {
	var contracts []*model.EnergyContract
	query := applyScopes(r.db.WithContext(ctx).Model(&model.EnergyContract{}), scopes)
	if err := query.Order("start_date ASC").Find(&contracts).Error; err != nil {
		return nil, err
	}
	return contracts, nil
}

// Delete 软删除合同
func (r *energyContractRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.EnergyContract{}, "id = ?", id).Error
}
