package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/pkg/logger"
	"github.com/pixelshop/backend/pkg/types/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("fakeProductRepo - GetByID: %w", errs.ErrRecordNotFound)
	}
	return p, nil
}

type fakeFetcher struct {
	data      []byte
	transform dto.Transform
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string, t dto.Transform) ([]byte, error) {
	f.transform = t
	return f.data, nil
}

func (f *fakeFetcher) PreviewURL(assetKey string, t dto.Transform) string {
	return "https://cdn.test/" + assetKey
}

type fakeWatermarker struct{}

func (fakeWatermarker) Watermark(_ context.Context, _ string, data []byte, text string) ([]byte, error) {
	return append([]byte(text+"|"), data...), nil
}

func newTestCatalog(products ...*entity.Product) *CatalogUseCase {
	repo := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return New(repo, &fakeFetcher{data: []byte("raw")}, fakeWatermarker{}, "PixelShop", logger.New("error"))
}

func personalOnlyProduct() *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		Title:    "Sunset",
		AssetKey: "masters/sunset.jpg",
		Licenses: []entity.LicenseType{entity.LicensePersonal},
	}
}

func allLicensesProduct() *entity.Product {
	return &entity.Product{
		ID:       uuid.New(),
		Title:    "Mountains",
		AssetKey: "masters/mountains.jpg",
		Licenses: []entity.LicenseType{entity.LicensePersonal, entity.LicenseCommercial},
	}
}

func TestDescriptorTotality(t *testing.T) {
	for _, tier := range tiers() {
		for _, license := range []entity.LicenseType{entity.LicensePersonal, entity.LicenseCommercial} {
			desc, ok := Descriptor(entity.VariantKey{Tier: tier, License: license})
			require.True(t, ok, "no descriptor for %s/%s", tier, license)
			assert.Positive(t, desc.Width)
			assert.Positive(t, desc.Height)
			assert.Positive(t, desc.Price)
			assert.NotEmpty(t, desc.Terms)
		}
	}
}

func TestDescriptorUnknownKey(t *testing.T) {
	_, ok := Descriptor(entity.VariantKey{Tier: "huge", License: entity.LicensePersonal})
	assert.False(t, ok)

	_, ok = Descriptor(entity.VariantKey{Tier: entity.TierMedium, License: "editorial"})
	assert.False(t, ok)
}

func TestResolveDeterministic(t *testing.T) {
	product := allLicensesProduct()
	uc := newTestCatalog(product)
	key := entity.VariantKey{Tier: entity.TierMedium, License: entity.LicensePersonal}

	first, err := uc.Resolve(context.Background(), product.ID, key)
	require.NoError(t, err)

	second, err := uc.Resolve(context.Background(), product.ID, key)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int64(499), first.Price)
	assert.Equal(t, 1200, first.Width)
	assert.Equal(t, 800, first.Height)
}

func TestResolveUnknownProduct(t *testing.T) {
	uc := newTestCatalog()

	_, err := uc.Resolve(context.Background(), uuid.New(), entity.VariantKey{
		Tier:    entity.TierSmall,
		License: entity.LicensePersonal,
	})
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestResolveLicenseNotOffered(t *testing.T) {
	product := personalOnlyProduct()
	uc := newTestCatalog(product)

	_, err := uc.Resolve(context.Background(), product.ID, entity.VariantKey{
		Tier:    entity.TierLarge,
		License: entity.LicenseCommercial,
	})
	assert.ErrorIs(t, err, errs.ErrVariantUnavailable)
}

func TestResolveUnknownTier(t *testing.T) {
	product := allLicensesProduct()
	uc := newTestCatalog(product)

	_, err := uc.Resolve(context.Background(), product.ID, entity.VariantKey{
		Tier:    "gigantic",
		License: entity.LicensePersonal,
	})
	assert.ErrorIs(t, err, errs.ErrRecordNotFound)
}

func TestProductListsOnlyOfferedVariants(t *testing.T) {
	product := personalOnlyProduct()
	uc := newTestCatalog(product)

	got, offers, err := uc.Product(context.Background(), product.ID)
	require.NoError(t, err)

	assert.Equal(t, product.ID, got.ID)
	require.Len(t, offers, 4) // one per tier, personal only
	for _, offer := range offers {
		assert.Equal(t, entity.LicensePersonal, offer.License)
	}
}

func TestPreviewStampsMediumTier(t *testing.T) {
	product := allLicensesProduct()
	repo := &fakeProductRepo{products: map[uuid.UUID]*entity.Product{product.ID: product}}
	fetcher := &fakeFetcher{data: []byte("raw")}
	uc := New(repo, fetcher, fakeWatermarker{}, "PixelShop", logger.New("error"))

	data, contentType, err := uc.Preview(context.Background(), product.ID)
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", contentType)
	assert.Equal(t, []byte("PixelShop|raw"), data)
	assert.Equal(t, 60, fetcher.transform.Quality)
	assert.Equal(t, 1200, fetcher.transform.Width)
	assert.Equal(t, 800, fetcher.transform.Height)
}
