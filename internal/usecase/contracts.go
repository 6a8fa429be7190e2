package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/internal/entity"
)

type (
	CatalogUseCase interface {
		// Resolve maps a product and variant key to its priced descriptor.
		// Deterministic and side-effect-free.
		Resolve(ctx context.Context, productID uuid.UUID, key entity.VariantKey) (entity.VariantDescriptor, error)
		Product(ctx context.Context, productID uuid.UUID) (*entity.Product, []entity.VariantDescriptor, error)
		Preview(ctx context.Context, productID uuid.UUID) ([]byte, string, error)
	}

	OrderUseCase interface {
		Checkout(ctx context.Context, buyerID, productID uuid.UUID, key entity.VariantKey) (*entity.Order, dto.PaymentIntent, error)
		Confirm(ctx context.Context, event dto.CallbackEvent) (dto.CallbackResult, error)
		ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]dto.OrderSummary, error)
		DownloadAsset(ctx context.Context, buyerID, orderID uuid.UUID) ([]byte, string, error)
		GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error
		IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		CleanupOutbox(ctx context.Context) error
	}
)
