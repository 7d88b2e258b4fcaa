// Package sales_repo provides PostgreSQL implementations for the sale record
// and objective document repositories.
package sales_repo

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"dealerdesk/internal/core/apperror"
	"dealerdesk/internal/core/id"
	"dealerdesk/internal/domain"
	"dealerdesk/internal/domain/sales"
	"dealerdesk/internal/infrastructure/storage/postgres"
)

// baseDocumentRepo provides CRUD shared by both document tables.
type baseDocumentRepo[T any] struct {
	txManager  *postgres.TxManager
	tableName  string
	selectCols []string
	newFn      func() T

	// hasYear marks tables carrying the objective year column
	hasYear bool
}

func (r *baseDocumentRepo[T]) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

func (r *baseDocumentRepo[T]) create(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Insert(r.tableName).
		SetMap(filteredData).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", r.tableName, err)
	}
	return nil
}

func (r *baseDocumentRepo[T]) getByID(ctx context.Context, docID id.ID) (T, error) {
	doc := r.newFn()

	sql, args, err := r.builder().
		Select(r.selectCols...).
		From(r.tableName).
		Where(squirrel.Eq{"id": docID}).
		Limit(1).
		ToSql()
	if err != nil {
		return doc, fmt.Errorf("build query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := pgxscan.Get(ctx, querier, doc, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return doc, apperror.NewNotFound(r.tableName, docID.String())
		}
		return doc, fmt.Errorf("get %s: %w", r.tableName, err)
	}
	return doc, nil
}

func (r *baseDocumentRepo[T]) update(ctx context.Context, doc T) error {
	data := postgres.StructToMap(doc)
	docID := data["id"]
	version, ok := data["version"].(int)
	if !ok {
		return fmt.Errorf("document has no 'version' field or it is not an int")
	}

	filteredData := make(map[string]any, len(r.selectCols))
	for _, col := range r.selectCols {
		if col == "id" || col == "version" || col == "created_at" || col == "created_by" {
			continue
		}
		if val, ok := data[col]; ok {
			filteredData[col] = val
		}
	}

	sql, args, err := r.builder().
		Update(r.tableName).
		SetMap(filteredData).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID}).
		Where(squirrel.Eq{"version": version}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewConcurrentModification(r.tableName, docID)
	}
	return nil
}

func (r *baseDocumentRepo[T]) setDeletionMark(ctx context.Context, docID id.ID, marked bool) error {
	sql, args, err := r.builder().
		Update(r.tableName).
		Set("deletion_mark", marked).
		Set("version", squirrel.Expr("version + 1")).
		Where(squirrel.Eq{"id": docID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txManager.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set deletion mark on %s: %w", r.tableName, err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound(r.tableName, docID.String())
	}
	return nil
}

func (r *baseDocumentRepo[T]) listQuery(filter sales.DocumentFilter) squirrel.SelectBuilder {
	q := r.builder().
		Select(r.selectCols...).
		From(r.tableName)

	if !filter.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}
	if filter.BrandID != nil {
		q = q.Where(squirrel.Eq{"brand_id": *filter.BrandID})
	}
	if filter.Target != nil {
		q = q.Where(squirrel.Eq{"target": string(*filter.Target)})
	}
	if filter.Year != nil && r.hasYear {
		q = q.Where(squirrel.Eq{"year": *filter.Year})
	}
	return q
}

func (r *baseDocumentRepo[T]) list(ctx context.Context, filter sales.DocumentFilter) (domain.ListResult[T], error) {
	result := domain.ListResult[T]{
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}

	q := r.listQuery(filter)

	countSQL, countArgs, err := r.builder().
		Select("COUNT(*)").
		FromSelect(q, "sub").
		ToSql()
	if err != nil {
		return result, fmt.Errorf("build count query: %w", err)
	}

	querier := r.txManager.GetQuerier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(filter.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("list %s: %w", r.tableName, err)
	}
	return result, nil
}

func (r *baseDocumentRepo[T]) parseOrderBy(orderBy string) (string, error) {
	if orderBy == "" {
		orderBy = "-created_at"
	}

	direction := "ASC"
	col := orderBy
	if strings.HasPrefix(orderBy, "-") {
		direction = "DESC"
		col = orderBy[1:]
	}

	for _, valid := range r.selectCols {
		if col == valid {
			return col + " " + direction, nil
		}
	}
	return "", apperror.NewValidation("invalid sort field").
		WithDetail("field", "orderBy").
		WithDetail("value", orderBy)
}
