package persistent

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/pkg/postgres"
	"github.com/pixelshop/backend/pkg/types/errs"
)

const (
	// Table
	outboxTable = "orders_outbox"

	// Columns
	outboxIDColumn          = "id"
	outboxAggregateIDColumn = "aggregate_id"
	outboxPayloadColumn     = "payload"
	outboxStatusColumn      = "status"
	outboxCreatedAtColumn   = "created_at"
	outboxProcessedAtColumn = "processed_at"
	outboxRetryCountColumn  = "retry_count"
)

type OrderOutboxRepo struct {
	*postgres.Postgres
}

func NewOrderOutboxRepo(pg *postgres.Postgres) *OrderOutboxRepo {
	return &OrderOutboxRepo{pg}
}

func (r *OrderOutboxRepo) Create(ctx context.Context, event *entity.OutboxEvent) error {
	sql, args, err := r.Builder.
		Insert(outboxTable).
		Columns(
			outboxIDColumn,
			outboxAggregateIDColumn,
			outboxPayloadColumn,
			outboxStatusColumn,
			outboxCreatedAtColumn,
			outboxRetryCountColumn,
		).
		Values(
			event.ID,
			event.AggregateID,
			event.Payload,
			event.Status,
			event.CreatedAt,
			event.RetryCount,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - Create - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *OrderOutboxRepo) GetPendingEvents(ctx context.Context, limit int, maxRetries int) ([]*entity.OutboxEvent, error) {
	sql, args, err := r.Builder.
		Select(
			outboxIDColumn,
			outboxAggregateIDColumn,
			outboxPayloadColumn,
			outboxStatusColumn,
			outboxCreatedAtColumn,
			outboxProcessedAtColumn,
			outboxRetryCountColumn,
		).
		From(outboxTable).
		Where(squirrel.And{
			squirrel.Eq{outboxStatusColumn: entity.Pending},
			squirrel.Lt{outboxRetryCountColumn: maxRetries},
		}).
		OrderBy("created_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("OrderOutboxRepo - GetPendingEvents - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("OrderOutboxRepo - GetPendingEvents - executor.Query: %w", err)
	}
	defer rows.Close()

	events := make([]*entity.OutboxEvent, 0, limit)
	for rows.Next() {
		var event entity.OutboxEvent
		err = rows.Scan(
			&event.ID,
			&event.AggregateID,
			&event.Payload,
			&event.Status,
			&event.CreatedAt,
			&event.ProcessedAt,
			&event.RetryCount,
		)
		if err != nil {
			return nil, fmt.Errorf("OrderOutboxRepo - GetPendingEvents - rows.Scan: %w", err)
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OrderOutboxRepo - GetPendingEvents - rows.Err: %w", err)
	}

	return events, nil
}

func (r *OrderOutboxRepo) MarkAsProcessingBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return r.markBatch(ctx, "MarkAsProcessingBatch", IDs, entity.Processing, true)
}

func (r *OrderOutboxRepo) MarkAsProcessedBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return r.markBatch(ctx, "MarkAsProcessedBatch", IDs, entity.Processed, true)
}

func (r *OrderOutboxRepo) MarkAsFailedBatch(ctx context.Context, IDs uuid.UUIDs) error {
	return r.markBatch(ctx, "MarkAsFailedBatch", IDs, entity.Failed, false)
}

func (r *OrderOutboxRepo) markBatch(ctx context.Context, op string, IDs uuid.UUIDs, status entity.Status, stamp bool) error {
	builder := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, status).
		Where(squirrel.Eq{outboxIDColumn: IDs})

	if stamp {
		builder = builder.Set(outboxProcessedAtColumn, time.Now())
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - %s - r.Builder.ToSql: %w", op, err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - %s - executor.Exec: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("OrderOutboxRepo - %s: %w", op, errs.ErrRecordNotFound)
	}

	return nil
}

func (r *OrderOutboxRepo) MarkMaxRetriesAsFailed(ctx context.Context, maxRetries int) error {
	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxStatusColumn, entity.Failed).
		Where(squirrel.And{
			squirrel.Eq{outboxStatusColumn: string(entity.Pending)},
			squirrel.GtOrEq{outboxRetryCountColumn: maxRetries},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - MarkMaxRetriesAsFailed - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - MarkMaxRetriesAsFailed - executor.Exec: %w", err)
	}

	return nil
}

func (r *OrderOutboxRepo) IncrementRetryCountBatch(ctx context.Context, IDs uuid.UUIDs) error {
	sql, args, err := r.Builder.
		Update(outboxTable).
		Set(outboxRetryCountColumn, squirrel.Expr(outboxRetryCountColumn+" + 1")).
		Set(outboxStatusColumn, entity.Pending).
		Where(squirrel.Eq{outboxIDColumn: IDs}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - IncrementRetryCountBatch - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OrderOutboxRepo - IncrementRetryCountBatch - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("OrderOutboxRepo - IncrementRetryCountBatch: %w", errs.ErrRecordNotFound)
	}

	return nil
}

func (r *OrderOutboxRepo) DeleteOldProcessedAndFailed(ctx context.Context) (int64, error) {
	sql, args, err := r.Builder.
		Delete(outboxTable).
		Where(squirrel.Or{
			squirrel.Eq{outboxStatusColumn: string(entity.Processed)},
			squirrel.Eq{outboxStatusColumn: string(entity.Failed)},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("OrderOutboxRepo - DeleteOldProcessedAndFailed - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)
	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("OrderOutboxRepo - DeleteOldProcessedAndFailed - executor.Exec: %w", err)
	}

	return tag.RowsAffected(), nil
}
