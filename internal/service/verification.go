package service

import (
	"context"
	"fmt"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/model"
	"kingtech-store/internal/repository"
	"net/url"
	"strings"
	"time"
)

const verificationTTL = 24 * time.Hour

type VerificationService interface {
	Issue(ctx context.Context, productID string) (*model.DownloadVerification, error)
	// Redeem resolves a valid verification to the provider URL the client is
	// redirected to. Expired tokens behave like missing ones.
	Redeem(ctx context.Context, verificationID string) (string, error)
}

type verificationServiceImpl struct {
	verificationRepo repository.DownloadVerificationRepository
	productRepo      repository.ProductRepository
	now              func() time.Time
	newID            func() string
}

func NewVerificationService(
	verificationRepo repository.DownloadVerificationRepository,
	productRepo repository.ProductRepository,
	now func() time.Time,
	newID func() string,
) VerificationService {
	return &verificationServiceImpl{
		verificationRepo: verificationRepo,
		productRepo:      productRepo,
		now:              now,
		newID:            newID,
	}
}

func (s *verificationServiceImpl) Issue(ctx context.Context, productID string) (*model.DownloadVerification, error) {
	verification := &model.DownloadVerification{
		ID:        s.newID(),
		ProductID: productID,
		ExpiresAt: s.now().Add(verificationTTL),
	}

	if err := s.verificationRepo.Create(ctx, verification); err != nil {
		return nil, fmt.Errorf("create download verification: %w", err)
	}

	return verification, nil
}

func (s *verificationServiceImpl) Redeem(ctx context.Context, verificationID string) (string, error) {
	verification, err := s.verificationRepo.FindByID(ctx, verificationID)
	if err != nil {
		return "", err
	}

	if s.now().After(verification.ExpiresAt) {
		return "", apperr.ErrNotFound
	}

	product, err := s.productRepo.FindByID(ctx, verification.ProductID)
	if err != nil {
		return "", err
	}

	return DownloadURL(product), nil
}

// DownloadURL builds the provider redirect URL with a friendly attachment
// name, e.g. ".../abc.pdf?attname=MacBook%20Guide.pdf".
func DownloadURL(product *model.Product) string {
	extension := ""
	if idx := strings.LastIndex(product.FilePath, "."); idx >= 0 {
		extension = product.FilePath[idx:]
	}

	filename := product.Name + extension
	return product.FilePath + "?attname=" + url.QueryEscape(filename)
}
