package repo

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/entity"
)

type (
	ProductRepo interface {
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	}

	OrderRepo interface {
		Create(ctx context.Context, order *entity.Order) error
		GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
		GetByPaymentReference(ctx context.Context, ref string) (*entity.Order, error)
		ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error)
		// UpdateStatus is a compare-and-swap: it fails with errs.ErrConflict
		// when the stored status no longer equals expected.
		UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.OrderStatus, at time.Time) error
	}

	OrderOutboxRepo interface {
		Create(ctx context.Context, event *entity.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit, maxRetries int) ([]*entity.OutboxEvent, error)
		MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkAsFailedBatch(ctx context.Context, IDs uuid.UUIDs) error
		MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error
		IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error
		DeleteOldProcessedAndFailed(ctx context.Context) (int64, error)
	}

	// AssetRepo serves master objects from the originals bucket.
	AssetRepo interface {
		Download(ctx context.Context, key string) (io.ReadCloser, string, error)
		DownloadBytes(ctx context.Context, key string) ([]byte, string, error)
	}

	Transactor interface {
		WithinTransaction(ctx context.Context, f func(ctx context.Context) error) error
	}
)
