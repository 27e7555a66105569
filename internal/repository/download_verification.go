package repository

import (
	"context"
	"errors"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/model"

	"gorm.io/gorm"
)

type DownloadVerificationRepository interface {
	Create(ctx context.Context, verification *model.DownloadVerification) error
	FindByID(ctx context.Context, verificationID string) (*model.DownloadVerification, error)
	DeleteByProduct(ctx context.Context, productID string) error
}

type downloadVerificationRepoImpl struct {
	db *gorm.DB
}

func NewDownloadVerificationRepository(db *gorm.DB) DownloadVerificationRepository {
	return &downloadVerificationRepoImpl{
		db: db,
	}
}

func (r *downloadVerificationRepoImpl) Create(ctx context.Context, verification *model.DownloadVerification) error {
	return r.db.WithContext(ctx).Create(verification).Error
}

func (r *downloadVerificationRepoImpl) FindByID(ctx context.Context, verificationID string) (*model.DownloadVerification, error) {
	var verification model.DownloadVerification
	err := r.db.WithContext(ctx).
		Where("id = ?", verificationID).
		First(&verification).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &verification, nil
}

// DeleteByProduct removes dependent rows before a product delete. The backing
// store has no cascades, so this is done here.
func (r *downloadVerificationRepoImpl) DeleteByProduct(ctx context.Context, productID string) error {
	return r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Delete(&model.DownloadVerification{}).Error
}
