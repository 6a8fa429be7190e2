package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/dto"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/internal/infrastructure"
	"github.com/pixelshop/backend/internal/infrastructure/delivery"
	"github.com/pixelshop/backend/internal/repo"
	"github.com/pixelshop/backend/internal/usecase"
	"github.com/pixelshop/backend/pkg/logger"
	"github.com/pixelshop/backend/pkg/types/errs"
	"golang.org/x/sync/errgroup"
)

const (
	_transformedContentType = "image/jpeg"

	// concurrent product reads while assembling an order list
	_listProductFetchLimit = 4
)

type OrderUseCase struct {
	orderRepo   repo.OrderRepo
	productRepo repo.ProductRepo
	outboxRepo  repo.OrderOutboxRepo
	assetRepo   repo.AssetRepo
	transactor  repo.Transactor

	catalog usecase.CatalogUseCase
	gateway infrastructure.PaymentGateway
	fetcher infrastructure.AssetFetcher

	currency string

	logger logger.Interface
}

func New(
	orderRepo repo.OrderRepo,
	productRepo repo.ProductRepo,
	outboxRepo repo.OrderOutboxRepo,
	assetRepo repo.AssetRepo,
	transactor repo.Transactor,
	catalog usecase.CatalogUseCase,
	gateway infrastructure.PaymentGateway,
	fetcher infrastructure.AssetFetcher,
	currency string,
	l logger.Interface,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		outboxRepo:  outboxRepo,
		assetRepo:   assetRepo,
		transactor:  transactor,
		catalog:     catalog,
		gateway:     gateway,
		fetcher:     fetcher,
		currency:    currency,
		logger:      l,
	}
}

// Checkout resolves the variant, opens a payment intent and records the
// pending order. One order per payment attempt; the amount is frozen from the
// descriptor snapshot and never touched again.
func (uc *OrderUseCase) Checkout(ctx context.Context, buyerID, productID uuid.UUID, key entity.VariantKey) (*entity.Order, dto.PaymentIntent, error) {
	desc, err := uc.catalog.Resolve(ctx, productID, key)
	if err != nil {
		return nil, dto.PaymentIntent{}, fmt.Errorf("OrderUseCase - Checkout - uc.catalog.Resolve: %w", err)
	}

	orderID := uuid.New()

	// The gateway call comes first: if it fails, nothing is persisted.
	intent, err := uc.gateway.CreateIntent(ctx, desc.Price, uc.currency, orderID.String())
	if err != nil {
		return nil, dto.PaymentIntent{}, fmt.Errorf("OrderUseCase - Checkout - uc.gateway.CreateIntent: %w", err)
	}

	now := time.Now()
	order := &entity.Order{
		ID:               orderID,
		BuyerID:          buyerID,
		ProductID:        productID,
		Variant:          desc,
		PaymentReference: intent.Reference,
		Status:           entity.OrderPending,
		Amount:           desc.Price,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.orderRepo.Create(ctx, order); err != nil {
			return fmt.Errorf("OrderUseCase - Checkout - uc.orderRepo.Create: %w", err)
		}

		event, err := newOutboxEvent(order, entity.EventOrderCreated)
		if err != nil {
			return fmt.Errorf("OrderUseCase - Checkout - newOutboxEvent: %w", err)
		}
		if err := uc.outboxRepo.Create(ctx, event); err != nil {
			return fmt.Errorf("OrderUseCase - Checkout - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		// the unused gateway intent simply expires on the gateway side
		return nil, dto.PaymentIntent{}, fmt.Errorf("OrderUseCase - Checkout - uc.transactor.WithinTransaction: %w", err)
	}

	return order, intent, nil
}

// Confirm applies a gateway callback. Forged or malformed deliveries change
// nothing; a lost CAS race is reported as a harmless duplicate so the gateway
// stops redelivering.
func (uc *OrderUseCase) Confirm(ctx context.Context, event dto.CallbackEvent) (dto.CallbackResult, error) {
	if !uc.gateway.VerifySignature(event.Body, event.Signature) {
		return "", fmt.Errorf("OrderUseCase - Confirm: %w", errs.ErrInvalidSignature)
	}

	var payload dto.CallbackPayload
	if err := json.Unmarshal(event.Body, &payload); err != nil {
		return "", fmt.Errorf("OrderUseCase - Confirm - json.Unmarshal: %w", errs.ErrInvalidSignature)
	}

	var next entity.OrderStatus
	var kind string

	switch payload.Outcome {
	case dto.OutcomeSucceeded:
		next, kind = entity.OrderCompleted, entity.EventOrderCompleted
	case dto.OutcomeFailed:
		next, kind = entity.OrderFailed, entity.EventOrderFailed
	default:
		return "", fmt.Errorf("OrderUseCase - Confirm - outcome %q: %w", payload.Outcome, errs.ErrInvalidSignature)
	}

	order, err := uc.orderRepo.GetByPaymentReference(ctx, payload.PaymentReference)
	if err != nil {
		return "", fmt.Errorf("OrderUseCase - Confirm - uc.orderRepo.GetByPaymentReference: %w", err)
	}

	err = uc.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := uc.orderRepo.UpdateStatus(ctx, order.ID, entity.OrderPending, next, time.Now()); err != nil {
			return fmt.Errorf("OrderUseCase - Confirm - uc.orderRepo.UpdateStatus: %w", err)
		}

		order.Status = next
		outboxEvent, err := newOutboxEvent(order, kind)
		if err != nil {
			return fmt.Errorf("OrderUseCase - Confirm - newOutboxEvent: %w", err)
		}
		if err := uc.outboxRepo.Create(ctx, outboxEvent); err != nil {
			return fmt.Errorf("OrderUseCase - Confirm - uc.outboxRepo.Create: %w", err)
		}

		return nil
	})
	if err != nil {
		if errors.Is(err, errs.ErrConflict) {
			// redelivered callback lost the CAS race: already applied
			return dto.CallbackDuplicate, nil
		}
		return "", fmt.Errorf("OrderUseCase - Confirm - uc.transactor.WithinTransaction: %w", err)
	}

	return dto.CallbackAccepted, nil
}

// ListByBuyer returns the buyer's orders, newest first, each with its
// preview-fidelity URL attached. Previews are always allowed.
func (uc *OrderUseCase) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]dto.OrderSummary, error) {
	orders, err := uc.orderRepo.ListByBuyer(ctx, buyerID)
	if err != nil {
		return nil, fmt.Errorf("OrderUseCase - ListByBuyer - uc.orderRepo.ListByBuyer: %w", err)
	}

	summaries := make([]dto.OrderSummary, len(orders))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(_listProductFetchLimit)

	for i, order := range orders {
		i, order := i, order
		g.Go(func() error {
			product, err := uc.productRepo.GetByID(gCtx, order.ProductID)
			if err != nil {
				return fmt.Errorf("OrderUseCase - ListByBuyer - uc.productRepo.GetByID: %w", err)
			}

			transform := delivery.BuildTransform(order.Variant, dto.FidelityPreview)
			summaries[i] = dto.OrderSummary{
				Order:      order,
				PreviewURL: uc.fetcher.PreviewURL(product.AssetKey, transform),
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return summaries, nil
}

// DownloadAsset releases full-fidelity bytes only when the grant holds:
// completed order, owned by the requester. "Not mine" and "not paid" are
// indistinguishable to the caller.
func (uc *OrderUseCase) DownloadAsset(ctx context.Context, buyerID, orderID uuid.UUID) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("OrderUseCase - DownloadAsset - uc.orderRepo.GetByID: %w", err)
	}

	if !order.Downloadable(buyerID) {
		return nil, "", fmt.Errorf("OrderUseCase - DownloadAsset: %w", errs.ErrForbidden)
	}

	product, err := uc.productRepo.GetByID(ctx, order.ProductID)
	if err != nil {
		return nil, "", fmt.Errorf("OrderUseCase - DownloadAsset - uc.productRepo.GetByID: %w", err)
	}

	// the original tier is the untouched master; the transform service never
	// upscales, so it comes straight from storage
	if order.Variant.Tier == entity.TierOriginal {
		data, contentType, err := uc.assetRepo.DownloadBytes(ctx, product.AssetKey)
		if err != nil {
			return nil, "", fmt.Errorf("OrderUseCase - DownloadAsset - uc.assetRepo.DownloadBytes: %w", err)
		}
		return data, contentType, nil
	}

	transform := delivery.BuildTransform(order.Variant, dto.FidelityFull)
	data, err := uc.fetcher.Fetch(ctx, product.AssetKey, transform)
	if err != nil {
		return nil, "", fmt.Errorf("OrderUseCase - DownloadAsset - uc.fetcher.Fetch: %w", err)
	}

	return data, _transformedContentType, nil
}
