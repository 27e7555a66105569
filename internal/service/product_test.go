package service

import (
	"context"
	"errors"
	"kingtech-store/internal/apperr"
	"kingtech-store/internal/client"
	"kingtech-store/internal/config"
	"kingtech-store/internal/dto"
	"kingtech-store/internal/model"
	"kingtech-store/internal/repository"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products    map[string]*model.Product
	createCalls int
	deleteCalls int
	updateCalls int
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*model.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, product *model.Product) error {
	r.createCalls++
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) FindByID(_ context.Context, productID string) (*model.Product, error) {
	product, ok := r.products[productID]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	copied := *product
	return &copied, nil
}

func (r *fakeProductRepo) FindMany(_ context.Context, _ repository.ProductQuery) ([]*model.Product, error) {
	var products []*model.Product
	for _, p := range r.products {
		products = append(products, p)
	}
	return products, nil
}

func (r *fakeProductRepo) Update(_ context.Context, product *model.Product) error {
	r.updateCalls++
	if _, ok := r.products[product.ID]; !ok {
		return apperr.ErrNotFound
	}
	r.products[product.ID] = product
	return nil
}

func (r *fakeProductRepo) UpdateAvailability(_ context.Context, productID string, available bool) error {
	product, ok := r.products[productID]
	if !ok {
		return apperr.ErrNotFound
	}
	product.IsAvailableForPurchase = available
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, productID string) error {
	r.deleteCalls++
	if _, ok := r.products[productID]; !ok {
		return apperr.ErrNotFound
	}
	delete(r.products, productID)
	return nil
}

func (r *fakeProductRepo) CountByAvailability(_ context.Context, available bool) (int64, error) {
	var count int64
	for _, p := range r.products {
		if p.IsAvailableForPurchase == available {
			count++
		}
	}
	return count, nil
}

type fakeOrderRepo struct {
	countsByProduct map[string]int64
	ordersByUser    map[string][]*model.Order
	aggregate       repository.SalesAggregate
}

func (r *fakeOrderRepo) Create(_ context.Context, _ *model.Order) error { return nil }

func (r *fakeOrderRepo) CountByProduct(_ context.Context, productID string) (int64, error) {
	return r.countsByProduct[productID], nil
}

func (r *fakeOrderRepo) FindByUser(_ context.Context, userID string) ([]*model.Order, error) {
	return r.ordersByUser[userID], nil
}

func (r *fakeOrderRepo) Aggregate(_ context.Context) (*repository.SalesAggregate, error) {
	agg := r.aggregate
	return &agg, nil
}

type fakeVerificationRepo struct {
	verifications  map[string]*model.DownloadVerification
	deleteProducts []string
}

func newFakeVerificationRepo() *fakeVerificationRepo {
	return &fakeVerificationRepo{verifications: map[string]*model.DownloadVerification{}}
}

func (r *fakeVerificationRepo) Create(_ context.Context, v *model.DownloadVerification) error {
	r.verifications[v.ID] = v
	return nil
}

func (r *fakeVerificationRepo) FindByID(_ context.Context, id string) (*model.DownloadVerification, error) {
	v, ok := r.verifications[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return v, nil
}

func (r *fakeVerificationRepo) DeleteByProduct(_ context.Context, productID string) error {
	r.deleteProducts = append(r.deleteProducts, productID)
	for id, v := range r.verifications {
		if v.ProductID == productID {
			delete(r.verifications, id)
		}
	}
	return nil
}

type uploadCall struct {
	kind     client.AssetKind
	folder   string
	filename string
}

type destroyCall struct {
	kind     client.AssetKind
	publicID string
}

type fakeAssetStore struct {
	uploads    []uploadCall
	destroys   []destroyCall
	failKind   client.AssetKind
	destroyErr error
	nextID     int
}

func (s *fakeAssetStore) Upload(_ context.Context, kind client.AssetKind, data []byte, folder, filename string) (*client.UploadResult, error) {
	s.uploads = append(s.uploads, uploadCall{kind: kind, folder: folder, filename: filename})
	if s.failKind == kind {
		return nil, errors.New("provider unavailable")
	}
	s.nextID++
	return &client.UploadResult{
		URL:      "https://assets.example.com/" + folder + "/asset-" + string(rune('a'+s.nextID)) + ".bin",
		PublicID: folder + "/asset-" + string(rune('a'+s.nextID)),
	}, nil
}

func (s *fakeAssetStore) Destroy(_ context.Context, kind client.AssetKind, publicID string) error {
	s.destroys = append(s.destroys, destroyCall{kind: kind, publicID: publicID})
	return s.destroyErr
}

func testFolders() *config.Cloudinary {
	return &config.Cloudinary{ImageFolder: "kingtech/products", RawFolder: "kingtech/files"}
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func validInput() *dto.ProductInput {
	return &dto.ProductInput{
		Name:         "MacBook Guide",
		Description:  "Everything about the MacBook",
		Category:     "Laptops",
		PriceInCents: 129900,
		File:         &dto.FileUpload{Name: "guide.pdf", ContentType: "application/pdf", Data: []byte("pdf-bytes")},
		Image:        &dto.FileUpload{Name: "cover.png", ContentType: "image/png", Data: []byte("png-bytes")},
	}
}

func newProductService(productRepo *fakeProductRepo, orderRepo *fakeOrderRepo, verificationRepo *fakeVerificationRepo, store *fakeAssetStore) ProductService {
	return NewProductService(productRepo, orderRepo, verificationRepo, store, testFolders(), quietLogger())
}

func strPtr(s string) *string { return &s }

func TestCreateValidationRejectsBadPrice(t *testing.T) {
	tests := []struct {
		name  string
		price int64
	}{
		{"zero", 0},
		{"negative", -500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			productRepo := newFakeProductRepo()
			store := &fakeAssetStore{}
			svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), store)

			input := validInput()
			input.PriceInCents = tt.price

			_, err := svc.Create(context.Background(), input)

			verr, ok := apperr.IsValidation(err)
			require.True(t, ok, "expected a validation error, got %v", err)
			assert.Contains(t, verr.Fields, "priceInCents")
			assert.Zero(t, productRepo.createCalls, "no row may be written")
			assert.Empty(t, store.uploads, "no asset may be uploaded")
		})
	}
}

func TestCreateValidationRejectsMissingFields(t *testing.T) {
	store := &fakeAssetStore{}
	svc := newProductService(newFakeProductRepo(), &fakeOrderRepo{}, newFakeVerificationRepo(), store)

	input := validInput()
	input.Name = ""
	input.File = nil

	_, err := svc.Create(context.Background(), input)

	verr, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Required", verr.Fields["name"])
	assert.Equal(t, "Required", verr.Fields["file"])
	assert.Empty(t, store.uploads)
}

func TestCreateRejectsNonImagePayload(t *testing.T) {
	store := &fakeAssetStore{}
	svc := newProductService(newFakeProductRepo(), &fakeOrderRepo{}, newFakeVerificationRepo(), store)

	input := validInput()
	input.Image.ContentType = "application/zip"

	_, err := svc.Create(context.Background(), input)

	verr, ok := apperr.IsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Must be an image", verr.Fields["image"])
	assert.Empty(t, store.uploads)
}

func TestCreateFailedImageUploadWritesNothing(t *testing.T) {
	productRepo := newFakeProductRepo()
	store := &fakeAssetStore{failKind: client.AssetImage}
	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), store)

	_, err := svc.Create(context.Background(), validInput())

	var uploadErr *apperr.AssetUploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, "image", uploadErr.Op)
	assert.Zero(t, productRepo.createCalls, "repository create must not be invoked")
}

func TestCreatePersistsInactiveProduct(t *testing.T) {
	productRepo := newFakeProductRepo()
	store := &fakeAssetStore{}
	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), store)

	product, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.False(t, product.IsAvailableForPurchase, "products are always inactive at birth")
	assert.NotEmpty(t, product.ID)
	assert.NotEmpty(t, product.FilePath)
	assert.NotNil(t, product.FilePublicID)
	assert.NotEmpty(t, product.ImagePath)
	assert.NotNil(t, product.ImagePublicID)

	require.Len(t, store.uploads, 2)
	assert.Equal(t, client.AssetRaw, store.uploads[0].kind)
	assert.Equal(t, "guide.pdf", store.uploads[0].filename)
	assert.Equal(t, client.AssetImage, store.uploads[1].kind)
}

func TestUpdateReplacingOnlyImage(t *testing.T) {
	productRepo := newFakeProductRepo()
	existing := &model.Product{
		ID:            "p1",
		Name:          "Old name",
		Description:   "Old description",
		Category:      "Phones",
		PriceInCents:  1000,
		FilePath:      "https://assets.example.com/kingtech/files/old-file.pdf",
		FilePublicID:  strPtr("kingtech/files/old-file"),
		ImagePath:     "https://assets.example.com/kingtech/products/old-image.png",
		ImagePublicID: strPtr("kingtech/products/old-image"),
	}
	productRepo.products["p1"] = existing

	store := &fakeAssetStore{}
	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), store)

	input := validInput()
	input.File = nil

	updated, err := svc.Update(context.Background(), "p1", input)
	require.NoError(t, err)

	assert.Equal(t, existing.FilePath, updated.FilePath, "file path must be untouched")
	assert.Equal(t, *existing.FilePublicID, *updated.FilePublicID)
	assert.NotEqual(t, existing.ImagePath, updated.ImagePath)

	require.Len(t, store.destroys, 1, "old image destroyed exactly once")
	assert.Equal(t, destroyCall{kind: client.AssetImage, publicID: "kingtech/products/old-image"}, store.destroys[0])

	require.Len(t, store.uploads, 1)
	assert.Equal(t, client.AssetImage, store.uploads[0].kind)
}

func TestUpdateUploadsNewBeforeDestroyingOld(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.products["p1"] = &model.Product{
		ID:           "p1",
		FilePath:     "https://assets.example.com/kingtech/files/old-file.pdf",
		FilePublicID: strPtr("kingtech/files/old-file"),
		ImagePath:    "https://assets.example.com/kingtech/products/old-image.png",
	}

	store := &fakeAssetStore{failKind: client.AssetRaw}
	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), store)

	input := validInput()
	input.Image = nil

	_, err := svc.Update(context.Background(), "p1", input)

	var uploadErr *apperr.AssetUploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Empty(t, store.destroys, "old asset survives a failed replacement upload")
	assert.Zero(t, productRepo.updateCalls, "prior row stays untouched")
}

func TestUpdateDoesNotTouchAvailability(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.products["p1"] = &model.Product{
		ID:                     "p1",
		FilePath:               "f",
		ImagePath:              "i",
		IsAvailableForPurchase: true,
	}

	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), &fakeAssetStore{})

	input := validInput()
	input.File = nil
	input.Image = nil

	updated, err := svc.Update(context.Background(), "p1", input)
	require.NoError(t, err)
	assert.True(t, updated.IsAvailableForPurchase)
}

func TestUpdateMissingProduct(t *testing.T) {
	svc := newProductService(newFakeProductRepo(), &fakeOrderRepo{}, newFakeVerificationRepo(), &fakeAssetStore{})

	_, err := svc.Update(context.Background(), "ghost", validInput())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestToggleAvailabilityIsIdempotent(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.products["p1"] = &model.Product{ID: "p1", FilePath: "f", ImagePath: "i"}

	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), &fakeAssetStore{})

	require.NoError(t, svc.ToggleAvailability(context.Background(), "p1", true))
	require.NoError(t, svc.ToggleAvailability(context.Background(), "p1", true))

	assert.True(t, productRepo.products["p1"].IsAvailableForPurchase)
}

func TestToggleAvailabilityDoesNotValidateAssets(t *testing.T) {
	// The toggle is a single-field write and intentionally skips the
	// available-implies-assets check; only creation enforces it.
	productRepo := newFakeProductRepo()
	productRepo.products["p1"] = &model.Product{ID: "p1"}

	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), &fakeAssetStore{})

	require.NoError(t, svc.ToggleAvailability(context.Background(), "p1", true))

	product := productRepo.products["p1"]
	assert.True(t, product.IsAvailableForPurchase)
	assert.Empty(t, product.FilePath)
	assert.Empty(t, product.ImagePath)
}

func TestDeleteBlockedByExistingOrders(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.products["p1"] = &model.Product{ID: "p1"}
	verificationRepo := newFakeVerificationRepo()
	verificationRepo.verifications["v1"] = &model.DownloadVerification{ID: "v1", ProductID: "p1"}

	orderRepo := &fakeOrderRepo{countsByProduct: map[string]int64{"p1": 1}}
	svc := newProductService(productRepo, orderRepo, verificationRepo, &fakeAssetStore{})

	err := svc.Delete(context.Background(), "p1")

	var conflict *apperr.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Zero(t, productRepo.deleteCalls, "repository delete never invoked")
	assert.Empty(t, verificationRepo.deleteProducts, "no verification rows removed")
	assert.Contains(t, productRepo.products, "p1")
}

func TestDeleteRemovesRowThenAssets(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.products["p1"] = &model.Product{
		ID:            "p1",
		FilePublicID:  strPtr("kingtech/files/f1"),
		ImagePublicID: strPtr("kingtech/products/i1"),
	}
	verificationRepo := newFakeVerificationRepo()
	store := &fakeAssetStore{}

	svc := newProductService(productRepo, &fakeOrderRepo{countsByProduct: map[string]int64{}}, verificationRepo, store)

	require.NoError(t, svc.Delete(context.Background(), "p1"))

	assert.NotContains(t, productRepo.products, "p1")
	assert.Equal(t, []string{"p1"}, verificationRepo.deleteProducts)
	require.Len(t, store.destroys, 2)

	destroyed := map[string]client.AssetKind{}
	for _, d := range store.destroys {
		destroyed[d.publicID] = d.kind
	}
	assert.Equal(t, client.AssetRaw, destroyed["kingtech/files/f1"])
	assert.Equal(t, client.AssetImage, destroyed["kingtech/products/i1"])
}

func TestDeleteSucceedsWhenAssetDestroyFails(t *testing.T) {
	productRepo := newFakeProductRepo()
	productRepo.products["p1"] = &model.Product{
		ID:            "p1",
		FilePublicID:  strPtr("kingtech/files/f1"),
		ImagePublicID: strPtr("kingtech/products/i1"),
	}
	store := &fakeAssetStore{destroyErr: errors.New("provider flaking")}

	svc := newProductService(productRepo, &fakeOrderRepo{}, newFakeVerificationRepo(), store)

	err := svc.Delete(context.Background(), "p1")

	assert.NoError(t, err, "best-effort destroy must never fail the delete")
	assert.NotContains(t, productRepo.products, "p1")
	assert.Len(t, store.destroys, 2)
}

func TestDeleteMissingProduct(t *testing.T) {
	svc := newProductService(newFakeProductRepo(), &fakeOrderRepo{}, newFakeVerificationRepo(), &fakeAssetStore{})

	err := svc.Delete(context.Background(), "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
