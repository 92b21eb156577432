package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esatlab/insight-backend/internal/analytics"
)

// TableRepository handles conversion and percentile table data access.
type TableRepository struct {
	pool *pgxpool.Pool
}

// NewTableRepository creates a new TableRepository.
func NewTableRepository(pool *pgxpool.Pool) *TableRepository {
	return &TableRepository{pool: pool}
}

// PercentileTableKey builds the lookup key for a distribution table,
// e.g. "ESAT:Physics" or "ESAT:overall".
func PercentileTableKey(exam, section string) string {
	return fmt.Sprintf("%s:%s", exam, section)
}

// GetConversionRows retrieves a paper's conversion table ordered by part
// and ascending raw score. An empty result is not an error: it means
// "no conversion available".
func (r *TableRepository) GetConversionRows(ctx context.Context, paperID uuid.UUID) ([]analytics.ConversionRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT part_name, raw_score, scaled_score
		 FROM conversion_rows
		 WHERE paper_id = $1
		 ORDER BY part_name ASC, raw_score ASC`, paperID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.ConversionRow
	for rows.Next() {
		var row analytics.ConversionRow
		if err := rows.Scan(&row.PartName, &row.RawScore, &row.ScaledScore); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetConversionRowsWithFallback tries the paper's own table first and
// falls back to the sibling paper's table when the primary lookup is
// empty.
func (r *TableRepository) GetConversionRowsWithFallback(ctx context.Context, paperID uuid.UUID, siblingID *uuid.UUID) ([]analytics.ConversionRow, error) {
	out, err := r.GetConversionRows(ctx, paperID)
	if err != nil || len(out) > 0 {
		return out, err
	}
	if siblingID == nil {
		return nil, nil
	}
	return r.GetConversionRows(ctx, *siblingID)
}

// ReplaceConversionRows swaps a paper's conversion table wholesale
// inside one transaction.
func (r *TableRepository) ReplaceConversionRows(ctx context.Context, paperID uuid.UUID, rows []analytics.ConversionRow) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM conversion_rows WHERE paper_id = $1`, paperID); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := tx.Exec(ctx,
				`INSERT INTO conversion_rows (paper_id, part_name, raw_score, scaled_score)
				 VALUES ($1, $2, $3, $4)`,
				paperID, row.PartName, row.RawScore, row.ScaledScore,
			); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetPercentileRows retrieves a distribution table ordered by ascending
// score. An empty result means "no table published for this key".
func (r *TableRepository) GetPercentileRows(ctx context.Context, tableKey string) ([]analytics.PercentileRow, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT score, cumulative_percent
		 FROM percentile_rows
		 WHERE table_key = $1
		 ORDER BY score ASC`, tableKey,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []analytics.PercentileRow
	for rows.Next() {
		var row analytics.PercentileRow
		if err := rows.Scan(&row.Score, &row.CumulativePercent); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetPercentileTables loads the distribution tables for a set of
// section keys plus the overall table, keyed the way the analytics core
// expects. Missing tables are simply absent from the map.
func (r *TableRepository) GetPercentileTables(ctx context.Context, exam string, sections []string) (map[string][]analytics.PercentileRow, error) {
	keys := append([]string{analytics.OverallKey}, sections...)
	tables := make(map[string][]analytics.PercentileRow, len(keys))

	for _, section := range keys {
		rows, err := r.GetPercentileRows(ctx, PercentileTableKey(exam, section))
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			tables[section] = rows
		}
	}
	return tables, nil
}

// ReplacePercentileRows swaps a distribution table wholesale inside one
// transaction.
func (r *TableRepository) ReplacePercentileRows(ctx context.Context, tableKey string, rows []analytics.PercentileRow) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM percentile_rows WHERE table_key = $1`, tableKey); err != nil {
			return err
		}
		for _, row := range rows {
			if _, err := tx.Exec(ctx,
				`INSERT INTO percentile_rows (table_key, score, cumulative_percent)
				 VALUES ($1, $2, $3)`,
				tableKey, row.Score, row.CumulativePercent,
			); err != nil {
				return err
			}
		}
		return nil
	})
}
