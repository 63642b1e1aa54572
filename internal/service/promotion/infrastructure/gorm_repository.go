// internal/service/promotion/infrastructure/gorm_repository.go
package infrastructure

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"storefront/internal/service/promotion/domain"
)

// GormPromotionRepository 是 PromotionRepository 的 GORM 实现。
type GormPromotionRepository struct {
	db *gorm.DB
}

// NewGormPromotionRepository 创建一个新的 GORM 仓储实例。
func NewGormPromotionRepository(db *gorm.DB) *GormPromotionRepository {
	return &GormPromotionRepository{db: db}
}

// FindByCode 根据促销码从数据库中查找活动。
func (r *GormPromotionRepository) FindByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	var model PromotionModel
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPromotionNotFound
		}
		return nil, errors.Wrap(err, "failed to load promotion")
	}
	return ToDomainPromotion(&model), nil
}
