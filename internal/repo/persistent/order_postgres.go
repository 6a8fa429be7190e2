package persistent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/pkg/postgres"
	"github.com/pixelshop/backend/pkg/types/errs"
)

const (
	// Table
	ordersTable = "orders"

	// Columns
	idColumn         = "id"
	buyerIDColumn    = "buyer_id"
	productIDColumn  = "product_id"
	tierColumn       = "tier"
	licenseColumn    = "license"
	widthColumn      = "width"
	heightColumn     = "height"
	priceColumn      = "price"
	termsColumn      = "terms"
	paymentRefColumn = "payment_reference"
	statusColumn     = "status"
	amountColumn     = "amount"
	createdAtColumn  = "created_at"
	updatedAtColumn  = "updated_at"
)

type OrderRepo struct {
	*postgres.Postgres
}

func NewOrderRepo(pg *postgres.Postgres) *OrderRepo {
	return &OrderRepo{pg}
}

func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	sql, args, err := r.Builder.
		Insert(ordersTable).
		Columns(
			idColumn,
			buyerIDColumn,
			productIDColumn,
			tierColumn,
			licenseColumn,
			widthColumn,
			heightColumn,
			priceColumn,
			termsColumn,
			paymentRefColumn,
			statusColumn,
			amountColumn,
			createdAtColumn,
			updatedAtColumn,
		).
		Values(
			order.ID,
			order.BuyerID,
			order.ProductID,
			order.Variant.Tier,
			order.Variant.License,
			order.Variant.Width,
			order.Variant.Height,
			order.Variant.Price,
			order.Variant.Terms,
			order.PaymentReference,
			order.Status,
			order.Amount,
			order.CreatedAt,
			order.UpdatedAt,
		).ToSql()
	if err != nil {
		return fmt.Errorf("OrderRepo - Create - r.Builder.ToSql: %w", err)
	}

	// Pool / Tx
	executor := r.GetExecutor(ctx)

	_, err = executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OrderRepo - Create - executor.Exec: %w", err)
	}

	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{idColumn: id})
}

func (r *OrderRepo) GetByPaymentReference(ctx context.Context, ref string) (*entity.Order, error) {
	return r.getOne(ctx, "GetByPaymentReference", squirrel.Eq{paymentRefColumn: ref})
}

func (r *OrderRepo) getOne(ctx context.Context, op string, where squirrel.Eq) (*entity.Order, error) {
	sql, args, err := r.selectOrders().Where(where).ToSql()
	if err != nil {
		return nil, fmt.Errorf("OrderRepo - %s - r.Builder.ToSql: %w", op, err)
	}

	executor := r.GetExecutor(ctx)

	var order entity.Order
	err = scanOrder(executor.QueryRow(ctx, sql, args...), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("OrderRepo - %s: %w", op, errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("OrderRepo - %s - executor.QueryRow.Scan: %w", op, err)
	}

	return &order, nil
}

// ListByBuyer returns the buyer's orders, most recent first.
func (r *OrderRepo) ListByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Order, error) {
	sql, args, err := r.selectOrders().
		Where(squirrel.Eq{buyerIDColumn: buyerID}).
		OrderBy(createdAtColumn + " DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("OrderRepo - ListByBuyer - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	rows, err := executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("OrderRepo - ListByBuyer - executor.Query: %w", err)
	}
	defer rows.Close()

	var orders []*entity.Order
	for rows.Next() {
		var order entity.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, fmt.Errorf("OrderRepo - ListByBuyer - rows.Scan: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("OrderRepo - ListByBuyer - rows.Err: %w", err)
	}

	return orders, nil
}

// UpdateStatus is a compare-and-swap: a single conditional UPDATE guarded by
// the expected current status. A late duplicate callback hits zero rows and
// gets errs.ErrConflict instead of overwriting a terminal state.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uuid.UUID, expected, next entity.OrderStatus, at time.Time) error {
	sql, args, err := r.Builder.
		Update(ordersTable).
		Set(statusColumn, next).
		Set(updatedAtColumn, at).
		Where(squirrel.And{
			squirrel.Eq{idColumn: id},
			squirrel.Eq{statusColumn: expected},
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("OrderRepo - UpdateStatus - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	tag, err := executor.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("OrderRepo - UpdateStatus - executor.Exec: %w", err)
	}

	if tag.RowsAffected() == 0 {
		// distinguish a missing order from a lost race
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return fmt.Errorf("OrderRepo - UpdateStatus: %w", errs.ErrRecordNotFound)
		}
		return fmt.Errorf("OrderRepo - UpdateStatus: %w", errs.ErrConflict)
	}

	return nil
}

func (r *OrderRepo) selectOrders() squirrel.SelectBuilder {
	return r.Builder.
		Select(
			idColumn,
			buyerIDColumn,
			productIDColumn,
			tierColumn,
			licenseColumn,
			widthColumn,
			heightColumn,
			priceColumn,
			termsColumn,
			paymentRefColumn,
			statusColumn,
			amountColumn,
			createdAtColumn,
			updatedAtColumn,
		).
		From(ordersTable)
}

func scanOrder(row pgx.Row, order *entity.Order) error {
	return row.Scan(
		&order.ID,
		&order.BuyerID,
		&order.ProductID,
		&order.Variant.Tier,
		&order.Variant.License,
		&order.Variant.Width,
		&order.Variant.Height,
		&order.Variant.Price,
		&order.Variant.Terms,
		&order.PaymentReference,
		&order.Status,
		&order.Amount,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}
