package service

import (
	"context"
	"errors"
	"fmt"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/client"
	"kingtech-store/internal/config"
	"kingtech-store/internal/dto"
	"kingtech-store/internal/model"
	"kingtech-store/internal/repository"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type ProductService interface {
	Create(ctx context.Context, input *dto.ProductInput) (*model.Product, error)
	Update(ctx context.Context, productID string, input *dto.ProductInput) (*model.Product, error)
	ToggleAvailability(ctx context.Context, productID string, available bool) error
	Delete(ctx context.Context, productID string) error
	Get(ctx context.Context, productID string) (*model.Product, error)
	List(ctx context.Context, query repository.ProductQuery) ([]*model.Product, error)
}

type productServiceImpl struct {
	productRepo      repository.ProductRepository
	orderRepo        repository.OrderRepository
	verificationRepo repository.DownloadVerificationRepository
	assetStore       client.AssetStore
	folders          *config.Cloudinary
	validate         *validator.Validate
	log              *logrus.Logger
}

func NewProductService(
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
	verificationRepo repository.DownloadVerificationRepository,
	assetStore client.AssetStore,
	folders *config.Cloudinary,
	log *logrus.Logger,
) ProductService {
	return &productServiceImpl{
		productRepo:      productRepo,
		orderRepo:        orderRepo,
		verificationRepo: verificationRepo,
		assetStore:       assetStore,
		folders:          folders,
		validate:         validator.New(),
		log:              log,
	}
}

// form field names as the admin UI posts them
var inputFieldNames = map[string]string{
	"Name":         "name",
	"Description":  "description",
	"Category":     "category",
	"PriceInCents": "priceInCents",
}

func (s *productServiceImpl) validateInput(input *dto.ProductInput, requireAssets bool) *apperr.ValidationError {
	fields := map[string]string{}

	if err := s.validate.Struct(input); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				name := inputFieldNames[fe.Field()]
				if name == "" {
					name = fe.Field()
				}
				switch fe.Tag() {
				case "min":
					fields[name] = "Must be at least 1"
				default:
					fields[name] = "Required"
				}
			}
		}
	}

	if requireAssets {
		if input.File == nil || len(input.File.Data) == 0 {
			fields["file"] = "Required"
		}
		if input.Image == nil || len(input.Image.Data) == 0 {
			fields["image"] = "Required"
		}
	}
	if input.Image != nil && len(input.Image.Data) > 0 &&
		!strings.HasPrefix(input.Image.ContentType, "image/") {
		fields["image"] = "Must be an image"
	}

	if len(fields) > 0 {
		return &apperr.ValidationError{Fields: fields}
	}
	return nil
}

func (s *productServiceImpl) Create(ctx context.Context, input *dto.ProductInput) (*model.Product, error) {
	// nothing is uploaded or written until the whole payload validates
	if verr := s.validateInput(input, true); verr != nil {
		return nil, verr
	}

	fileUpload, err := s.assetStore.Upload(ctx, client.AssetRaw, input.File.Data, s.folders.RawFolder, input.File.Name)
	if err != nil {
		return nil, &apperr.AssetUploadError{Op: "file", Err: err}
	}

	imageUpload, err := s.assetStore.Upload(ctx, client.AssetImage, input.Image.Data, s.folders.ImageFolder, "")
	if err != nil {
		return nil, &apperr.AssetUploadError{Op: "image", Err: err}
	}

	product := &model.Product{
		ID:                     uuid.NewString(),
		Name:                   input.Name,
		Description:            input.Description,
		Category:               input.Category,
		PriceInCents:           input.PriceInCents,
		FilePath:               fileUpload.URL,
		FilePublicID:           &fileUpload.PublicID,
		ImagePath:              imageUpload.URL,
		ImagePublicID:          &imageUpload.PublicID,
		IsAvailableForPurchase: false,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) Update(ctx context.Context, productID string, input *dto.ProductInput) (*model.Product, error) {
	if verr := s.validateInput(input, false); verr != nil {
		return nil, verr
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	// Replacement order is new-before-old: upload the new asset first so an
	// upload failure leaves the product untouched, then drop the old copy.
	if input.File != nil && len(input.File.Data) > 0 {
		upload, err := s.assetStore.Upload(ctx, client.AssetRaw, input.File.Data, s.folders.RawFolder, input.File.Name)
		if err != nil {
			return nil, &apperr.AssetUploadError{Op: "file", Err: err}
		}
		if product.FilePublicID != nil {
			s.bestEffortDestroy(ctx, client.AssetRaw, *product.FilePublicID)
		}
		product.FilePath = upload.URL
		product.FilePublicID = &upload.PublicID
	}

	if input.Image != nil && len(input.Image.Data) > 0 {
		upload, err := s.assetStore.Upload(ctx, client.AssetImage, input.Image.Data, s.folders.ImageFolder, "")
		if err != nil {
			return nil, &apperr.AssetUploadError{Op: "image", Err: err}
		}
		if product.ImagePublicID != nil {
			s.bestEffortDestroy(ctx, client.AssetImage, *product.ImagePublicID)
		}
		product.ImagePath = upload.URL
		product.ImagePublicID = &upload.PublicID
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Category = input.Category
	product.PriceInCents = input.PriceInCents
	// availability is only ever changed through ToggleAvailability

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

func (s *productServiceImpl) ToggleAvailability(ctx context.Context, productID string, available bool) error {
	return s.productRepo.UpdateAvailability(ctx, productID, available)
}

func (s *productServiceImpl) Delete(ctx context.Context, productID string) error {
	orderCount, err := s.orderRepo.CountByProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("count orders for product: %w", err)
	}
	if orderCount > 0 {
		return &apperr.ConflictError{Message: "cannot delete a product with existing orders"}
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return err
	}

	// no cascades in the backing store, dependent rows go first
	if err := s.verificationRepo.DeleteByProduct(ctx, productID); err != nil {
		return fmt.Errorf("delete download verifications: %w", err)
	}

	if err := s.productRepo.Delete(ctx, productID); err != nil {
		return err
	}

	// The row is gone and is the source of truth; remote cleanup failures are
	// logged but never surfaced.
	if product.FilePublicID != nil {
		s.bestEffortDestroy(ctx, client.AssetRaw, *product.FilePublicID)
	}
	if product.ImagePublicID != nil {
		s.bestEffortDestroy(ctx, client.AssetImage, *product.ImagePublicID)
	}

	return nil
}

func (s *productServiceImpl) Get(ctx context.Context, productID string) (*model.Product, error) {
	return s.productRepo.FindByID(ctx, productID)
}

func (s *productServiceImpl) List(ctx context.Context, query repository.ProductQuery) ([]*model.Product, error) {
	return s.productRepo.FindMany(ctx, query)
}

// bestEffortDestroy drops a remote asset without letting a provider failure
// block the operation that triggered it.
func (s *productServiceImpl) bestEffortDestroy(ctx context.Context, kind client.AssetKind, publicID string) {
	if err := s.assetStore.Destroy(ctx, kind, publicID); err != nil {
		s.log.WithError(err).
			WithField("public_id", publicID).
			WithField("kind", string(kind)).
			Warn("best-effort asset delete failed")
	}
}
