package persistent

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pixelshop/backend/internal/entity"
	"github.com/pixelshop/backend/pkg/postgres"
	"github.com/pixelshop/backend/pkg/types/errs"
)

const (
	// Table
	productsTable = "products"

	// Columns
	productTitleColumn       = "title"
	productDescriptionColumn = "description"
	productAssetKeyColumn    = "asset_key"
	productLicensesColumn    = "licenses"
)

type ProductRepo struct {
	*postgres.Postgres
}

func NewProductRepo(pg *postgres.Postgres) *ProductRepo {
	return &ProductRepo{pg}
}

func (r *ProductRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	sql, args, err := r.Builder.
		Select(
			idColumn,
			productTitleColumn,
			productDescriptionColumn,
			productAssetKeyColumn,
			productLicensesColumn,
			createdAtColumn,
			updatedAtColumn,
		).
		From(productsTable).
		Where(squirrel.Eq{idColumn: id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("ProductRepo - GetByID - r.Builder.ToSql: %w", err)
	}

	executor := r.GetExecutor(ctx)

	var product entity.Product
	var licenses []string

	err = executor.QueryRow(ctx, sql, args...).Scan(
		&product.ID,
		&product.Title,
		&product.Description,
		&product.AssetKey,
		&licenses,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("ProductRepo - GetByID: %w", errs.ErrRecordNotFound)
		}
		return nil, fmt.Errorf("ProductRepo - GetByID - executor.QueryRow.Scan: %w", err)
	}

	product.Licenses = make([]entity.LicenseType, 0, len(licenses))
	for _, l := range licenses {
		product.Licenses = append(product.Licenses, entity.LicenseType(l))
	}

	return &product, nil
}
