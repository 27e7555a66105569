package repository

import (
	"context"
	"kingtech-store/internal/model"

	"gorm.io/gorm"
)

// SalesAggregate is the dashboard rollup over all orders.
type SalesAggregate struct {
	TotalCents int64
	Count      int64
}

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	CountByProduct(ctx context.Context, productID string) (int64, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Order, error)
	Aggregate(ctx context.Context) (*SalesAggregate, error)
}

type orderRepoImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepoImpl{
		db: db,
	}
}

func (r *orderRepoImpl) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// CountByProduct is the delete guard: a product with any orders must not be
// removed.
func (r *orderRepoImpl) CountByProduct(ctx context.Context, productID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("product_id = ?", productID).
		Count(&count).Error

	return count, err
}

func (r *orderRepoImpl) FindByUser(ctx context.Context, userID string) ([]*model.Order, error) {
	var orders []*model.Order
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error

	if err != nil {
		return nil, err
	}

	return orders, nil
}

func (r *orderRepoImpl) Aggregate(ctx context.Context) (*SalesAggregate, error) {
	var agg SalesAggregate
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(price_paid_in_cents), 0) AS total_cents, COUNT(*) AS count").
		Scan(&agg).Error

	if err != nil {
		return nil, err
	}

	return &agg, nil
}
