// Package taxrate_repo provides the PostgreSQL implementation of taxes.RateRepository.
package taxrate_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"salesinvoice/internal/core/apperror"
	"salesinvoice/internal/domain/catalogs/product"
	"salesinvoice/internal/domain/taxes"
	"salesinvoice/internal/infrastructure/storage/postgres"
)

const rateTable = "tax_rates"

// Schema creates the rate table. Used by cmd/seed.
const Schema = `
CREATE TABLE IF NOT EXISTS tax_rates (
    id             UUID PRIMARY KEY,
    classification TEXT NOT NULL,
    rate           NUMERIC(10,4) NOT NULL CHECK (rate >= 0),
    description    TEXT NOT NULL,
    effective_from DATE NOT NULL,
    effective_to   DATE NULL,
    UNIQUE (classification, effective_from)
)`

// RateRepo implements taxes.RateRepository.
type RateRepo struct {
	txm        *postgres.TxManager
	selectCols []string
}

// NewRateRepo creates a rate repository.
func NewRateRepo(txm *postgres.TxManager) *RateRepo {
	return &RateRepo{
		txm:        txm,
		selectCols: postgres.ExtractDBColumns[taxes.Rate](),
	}
}

// Builder returns a new squirrel builder with PostgreSQL placeholder format.
func (r *RateRepo) Builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// findEffectiveQuery selects the latest rate for t whose validity range covers at.
func (r *RateRepo) findEffectiveQuery(t product.Type, at time.Time) squirrel.SelectBuilder {
	return r.Builder().
		Select(r.selectCols...).
		From(rateTable).
		Where(squirrel.Eq{"classification": string(t)}).
		Where(squirrel.LtOrEq{"effective_from": at}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_to": nil},
			squirrel.Gt{"effective_to": at},
		}).
		OrderBy("effective_from DESC").
		Limit(1)
}

// FindEffective returns the most recent rate for t that is effective at the given date.
func (r *RateRepo) FindEffective(ctx context.Context, t product.Type, at time.Time) (*taxes.Rate, error) {
	sql, args, err := r.findEffectiveQuery(t, at).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rate taxes.Rate
	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		return pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rate, sql, args...)
	})
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("tax rate", string(t))
		}
		return nil, dbError("find effective rate", err)
	}

	return &rate, nil
}

// Upsert inserts a rate or replaces the one with the same classification and start date.
func (r *RateRepo) Upsert(ctx context.Context, rate *taxes.Rate) error {
	data := postgres.StructToMap(rate)

	q := r.Builder().
		Insert(rateTable).
		SetMap(data).
		Suffix("ON CONFLICT (classification, effective_from) DO UPDATE SET " +
			"rate = EXCLUDED.rate, description = EXCLUDED.description, effective_to = EXCLUDED.effective_to")

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build upsert: %w", err)
	}

	return r.txm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
			return dbError("upsert rate", err)
		}
		return nil
	})
}

// List returns all stored rates ordered by classification and start date.
func (r *RateRepo) List(ctx context.Context) ([]taxes.Rate, error) {
	sql, args, err := r.Builder().
		Select(r.selectCols...).
		From(rateTable).
		OrderBy("classification", "effective_from").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rates []taxes.Rate
	err = r.txm.ReadOnly(ctx, func(ctx context.Context) error {
		return pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rates, sql, args...)
	})
	if err != nil {
		return nil, dbError("list rates", err)
	}
	return rates, nil
}

var _ taxes.RateRepository = (*RateRepo)(nil)

// dbError maps a driver error to a DATABASE_ERROR, keeping the postgres SQLSTATE when present.
// Context errors stay reachable through errors.Is.
func dbError(operation string, err error) error {
	appErr := apperror.NewDatabase(operation, err)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		appErr = appErr.WithDetail("pg_code", pgErr.Code)
	}
	return appErr
}
