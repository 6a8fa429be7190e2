package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/internal/infrastructure"
	"github.com/pixelshop/backend/internal/infrastructure/delivery"
	"github.com/pixelshop/backend/internal/repo"
	"github.com/pixelshop/backend/pkg/logger"
	"github.com/pixelshop/backend/pkg/types/errs"
)

const _previewContentType = "image/jpeg"

type CatalogUseCase struct {
	productRepo repo.ProductRepo
	fetcher     infrastructure.AssetFetcher
	watermarker infrastructure.Watermarker
	stampText   string

	logger logger.Interface
}

func New(
	productRepo repo.ProductRepo,
	fetcher infrastructure.AssetFetcher,
	watermarker infrastructure.Watermarker,
	stampText string,
	l logger.Interface,
) *CatalogUseCase {
	return &CatalogUseCase{
		productRepo: productRepo,
		fetcher:     fetcher,
		watermarker: watermarker,
		stampText:   stampText,
		logger:      l,
	}
}

// Resolve maps (product, variant key) to the priced descriptor. The mapping
// itself is a pure table lookup; the product read only gates the license set.
func (uc *CatalogUseCase) Resolve(ctx context.Context, productID uuid.UUID, key entity.VariantKey) (entity.VariantDescriptor, error) {
	desc, ok := Descriptor(key)
	if !ok {
		return entity.VariantDescriptor{}, fmt.Errorf("CatalogUseCase - Resolve: %w", errs.ErrRecordNotFound)
	}

	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return entity.VariantDescriptor{}, fmt.Errorf("CatalogUseCase - Resolve - uc.productRepo.GetByID: %w", err)
	}

	if !product.Offers(key.License) {
		return entity.VariantDescriptor{}, fmt.Errorf("CatalogUseCase - Resolve: %w", errs.ErrVariantUnavailable)
	}

	return desc, nil
}

// Product returns the catalog entry plus the descriptors of every variant it
// offers, for the product detail surface.
func (uc *CatalogUseCase) Product(ctx context.Context, productID uuid.UUID) (*entity.Product, []entity.VariantDescriptor, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, nil, fmt.Errorf("CatalogUseCase - Product - uc.productRepo.GetByID: %w", err)
	}

	var offers []entity.VariantDescriptor
	for _, tier := range tiers() {
		for _, license := range product.Licenses {
			if desc, ok := Descriptor(entity.VariantKey{Tier: tier, License: license}); ok {
				offers = append(offers, desc)
			}
		}
	}

	return product, offers, nil
}

// Preview serves watermarked medium-tier preview bytes. Masters stay clean;
// the stamp is applied in-process on the way out.
func (uc *CatalogUseCase) Preview(ctx context.Context, productID uuid.UUID) ([]byte, string, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, "", fmt.Errorf("CatalogUseCase - Preview - uc.productRepo.GetByID: %w", err)
	}

	desc, _ := Descriptor(entity.VariantKey{Tier: entity.TierMedium, License: entity.LicensePersonal})
	transform := delivery.BuildTransform(desc, dto.FidelityPreview)

	data, err := uc.fetcher.Fetch(ctx, product.AssetKey, transform)
	if err != nil {
		return nil, "", fmt.Errorf("CatalogUseCase - Preview - uc.fetcher.Fetch: %w", err)
	}

	stamped, err := uc.watermarker.Watermark(ctx, _previewContentType, data, uc.stampText)
	if err != nil {
		return nil, "", fmt.Errorf("CatalogUseCase - Preview - uc.watermarker.Watermark: %w", err)
	}

	return stamped, _previewContentType, nil
}
