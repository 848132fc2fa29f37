package repository

import (
	"context"

	"github.com/jimyag/ems/internal/ems/repository/model"
	"gorm.io/gorm"
)

// Published 只包含已发布的 FAQ
func Published() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("published = ?", true)
	}
}

// ByCategory 按分类过滤
func ByCategory(category string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("category = ?", category)
	}
}

// FaqRepository FAQ 仓库接口
type FaqRepository interface {
	Create(ctx context.Context, faq *model.Faq) error
	GetByID(ctx context.Context, id string) (*model.Faq, error)
	List(ctx context.Context, scopes ...Scope) ([]*model.Faq, error)
	IncrementVote(ctx context.Context, id string, helpful bool) error
	Delete(ctx context.Context, id string) error
}

type faqRepository struct {
	db *gorm.DB
}

// NewFaqRepository 创建 FAQ 仓库
func NewFaqRepository(db *gorm.DB) FaqRepository {
	return &faqRepository{db: db}
}

// Create 创建 FAQ
func (r *faqRepository) Create(ctx context.Context, faq *model.Faq) error {
	return r.db.WithContext(ctx).Create(faq).Error
}

// GetByID 根据 ID 获取 FAQ
func (r *faqRepository) GetByID(ctx context.Context, id string) (*model.Faq, error) {
	var faq model.Faq
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&faq).Error; err != nil {
		return nil, err
	}
	return &faq, nil
}

// List 按 scopes 列出 FAQ
func (r *faqRepository) List(ctx context.Context, scopes ...Scope) ([]*model.Faq, error) {
	var faqs []*model.Faq
	query := applyScopes(r.db.WithContext(ctx).Model(&model.Faq{}), scopes)
	if err := query.Order("created_at ASC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// IncrementVote 在数据库中原子地累加投票数
func (r *faqRepository) IncrementVote(ctx context.Context, id string, helpful bool) error {
	column := "not_helpful_count"
	if helpful {
		column = "helpful_count"
	}
	result := r.db.WithContext(ctx).
		Model(&model.Faq{}).
		Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete 软删除 FAQ
func (r *faqRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&model.Faq{}, "id = ?", id).Error
}
