package repository

import (
	"context"
	"errors"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/model"

	"gorm.io/gorm"
)

// ProductQuery narrows FindMany. Zero value returns everything.
type ProductQuery struct {
	Available *bool
	Category  string
	// "name", "newest" or "popular"; defaults to name ascending
	OrderBy string
	Limit   int
}

type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) error
	FindByID(ctx context.Context, productID string) (*model.Product, error)
	FindMany(ctx context.Context, query ProductQuery) ([]*model.Product, error)
	Update(ctx context.Context, product *model.Product) error
	UpdateAvailability(ctx context.Context, productID string, available bool) error
	Delete(ctx context.Context, productID string) error
	CountByAvailability(ctx context.Context, available bool) (int64, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID string) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindMany(ctx context.Context, query ProductQuery) ([]*model.Product, error) {
	q := r.db.WithContext(ctx).Model(&model.Product{})

	if query.Available != nil {
		q = q.Where("is_available_for_purchase = ?", *query.Available)
	}
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}

	switch query.OrderBy {
	case "newest":
		q = q.Order("created_at DESC")
	case "popular":
		q = q.Order("(SELECT COUNT(*) FROM orders WHERE orders.product_id = products.id) DESC")
	default:
		q = q.Order("name ASC")
	}

	if query.Limit > 0 {
		q = q.Limit(query.Limit)
	}

	var products []*model.Product
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepoImpl) UpdateAvailability(ctx context.Context, productID string, available bool) error {
	result := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ?", productID).
		Update("is_available_for_purchase", available)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// distinguish "no such row" from "no-op write on the current value"
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.Product{}).
			Where("id = ?", productID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperr.ErrNotFound
		}
	}

	return nil
}

func (r *productRepoImpl) Delete(ctx context.Context, productID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", productID).
		Delete(&model.Product{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperr.ErrNotFound
	}

	return nil
}

func (r *productRepoImpl) CountByAvailability(ctx context.Context, available bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("is_available_for_purchase = ?", available).
		Count(&count).Error

	return count, err
}
