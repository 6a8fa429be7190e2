package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/entity"
)

func newOutboxEvent(order *entity.Order, kind string) (*entity.OutboxEvent, error) {
	payload := map[string]interface{}{
		"event":      kind,
		"order_id":   order.ID,
		"buyer_id":   order.BuyerID,
		"product_id": order.ProductID,
		"tier":       order.Variant.Tier,
		"license":    order.Variant.License,
		"amount":     order.Amount,
		"status":     order.Status,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("newOutboxEvent - json.Marshal: %w", err)
	}

	return &entity.OutboxEvent{
		ID:          uuid.New(),
		AggregateID: order.ID,
		Payload:     b,
		Status:      entity.Pending,
		CreatedAt:   time.Now(),
		RetryCount:  0,
	}, nil
}

// Outbox relay surface: thin delegation to the outbox repo, kept on the
// use-case so the worker never touches storage directly.

func (uc *OrderUseCase) GetPendingEvents(ctx context.Context, maxRetries, limit int) ([]*entity.OutboxEvent, error) {
	events, err := uc.outboxRepo.GetPendingEvents(ctx, limit, maxRetries)
	if err != nil {
		return nil, fmt.Errorf("OrderUseCase - GetPendingEvents - uc.outboxRepo.GetPendingEvents: %w", err)
	}

	return events, nil
}

func (uc *OrderUseCase) MarkAsProcessingBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessingBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("OrderUseCase - MarkAsProcessingBatch - uc.outboxRepo.MarkAsProcessingBatch: %w", err)
	}

	return nil
}

func (uc *OrderUseCase) MarkAsProcessedBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.MarkAsProcessedBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("OrderUseCase - MarkAsProcessedBatch - uc.outboxRepo.MarkAsProcessedBatch: %w", err)
	}

	return nil
}

func (uc *OrderUseCase) IncrementRetryCountBatch(ctx context.Context, events []*entity.OutboxEvent) error {
	err := uc.outboxRepo.IncrementRetryCountBatch(ctx, eventIDs(events))
	if err != nil {
		return fmt.Errorf("OrderUseCase - IncrementRetryCountBatch - uc.outboxRepo.IncrementRetryCountBatch: %w", err)
	}

	return nil
}

func (uc *OrderUseCase) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	err := uc.outboxRepo.MarkMaxRetriesAsFailed(ctx, maxRetries)
	if err != nil {
		return fmt.Errorf("OrderUseCase - MarkMaxRetriesAsFailed - uc.outboxRepo.MarkMaxRetriesAsFailed: %w", err)
	}

	return nil
}

func (uc *OrderUseCase) CleanupOutbox(ctx context.Context) error {
	deleted, err := uc.outboxRepo.DeleteOldProcessedAndFailed(ctx)
	if err != nil {
		return fmt.Errorf("OrderUseCase - CleanupOutbox - uc.outboxRepo.DeleteOldProcessedAndFailed: %w", err)
	}

	if deleted > 0 {
		uc.logger.Info("OrderUseCase - CleanupOutbox - deleted %d events", deleted)
	}

	return nil
}

func eventIDs(events []*entity.OutboxEvent) uuid.UUIDs {
	IDs := make(uuid.UUIDs, 0, len(events))
	for _, event := range events {
		IDs = append(IDs, event.ID)
	}

	return IDs
}
