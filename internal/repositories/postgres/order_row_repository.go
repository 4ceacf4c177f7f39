package postgres

import (
	"context"
	"fmt"

	"github.com/chrisdamba/mealgen/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type OrderRowRepository struct {
	pool  *pgxpool.Pool
	table pgx.Identifier
}

func NewOrderRowRepository(pool *pgxpool.Pool, table string) *OrderRowRepository {
	return &OrderRowRepository{pool: pool, table: pgx.Identifier{table}}
}

func (r *OrderRowRepository) EnsureTable(ctx context.Context) error {
	query := fmt.Sprintf(`
        CREATE TABLE IF NOT EXISTS %s (
            timestamp          BIGINT NOT NULL,
            run_id             TEXT NOT NULL,
            order_number       INTEGER NOT NULL,
            row_index          INTEGER NOT NULL,
            quantity           INTEGER NOT NULL,
            restaurant_name    TEXT NOT NULL,
            meal_type          TEXT NOT NULL,
            meal_time          TEXT,
            note               TEXT,
            date               TEXT NOT NULL,
            date_label         TEXT NOT NULL,
            price_per_unit     TEXT,
            total_row_price    TEXT,
            total_order_price  TEXT,
            filter_type        TEXT NOT NULL,
            include_restaurant BOOLEAN NOT NULL,
            include_food_type  BOOLEAN NOT NULL,
            include_date_range BOOLEAN NOT NULL,
            days_to_include    INTEGER,
            start_offset       INTEGER,
            PRIMARY KEY (run_id, order_number, row_index)
        )
    `, r.table.Sanitize())

	_, err := r.pool.Exec(ctx, query)
	return err
}

func (r *OrderRowRepository) BulkCreate(ctx context.Context, records []*models.OrderRowRecord) error {
	_, err := r.pool.CopyFrom(
		ctx,
		r.table,
		models.RecordColumns,
		pgx.CopyFromSlice(len(records), func(i int) ([]interface{}, error) {
			return recordValues(records[i]), nil
		}),
	)
	return err
}

func (r *OrderRowRepository) GetByRun(ctx context.Context, runID string) ([]*models.OrderRowRecord, error) {
	query := fmt.Sprintf(`
        SELECT
            timestamp, run_id, order_number, row_index, quantity,
            restaurant_name, meal_type, meal_time, note, date, date_label,
            price_per_unit, total_row_price, total_order_price, filter_type,
            include_restaurant, include_food_type, include_date_range,
            days_to_include, start_offset
        FROM %s
        WHERE run_id = $1
        ORDER BY order_number, row_index
    `, r.table.Sanitize())

	rows, err := r.pool.Query(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*models.OrderRowRecord
	for rows.Next() {
		var rec models.OrderRowRecord
		err := rows.Scan(
			&rec.Timestamp,
			&rec.RunID,
			&rec.OrderNumber,
			&rec.RowIndex,
			&rec.Quantity,
			&rec.RestaurantName,
			&rec.MealType,
			&rec.MealTime,
			&rec.Note,
			&rec.Date,
			&rec.DateLabel,
			&rec.PricePerUnit,
			&rec.TotalRowPrice,
			&rec.TotalOrderPrice,
			&rec.FilterType,
			&rec.IncludeRestaurant,
			&rec.IncludeFoodType,
			&rec.IncludeDateRange,
			&rec.DaysToInclude,
			&rec.StartOffset,
		)
		if err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}
	return records, rows.Err()
}

func (r *OrderRowRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", r.table.Sanitize())).Scan(&count)
	return count, err
}

func (r *OrderRowRepository) DeleteRun(ctx context.Context, runID string) error {
	_, err := r.pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE run_id = $1", r.table.Sanitize()), runID)
	return err
}

func recordValues(rec *models.OrderRowRecord) []interface{} {
	return []interface{}{
		rec.Timestamp,
		rec.RunID,
		rec.OrderNumber,
		rec.RowIndex,
		rec.Quantity,
		rec.RestaurantName,
		rec.MealType,
		rec.MealTime,
		rec.Note,
		rec.Date,
		rec.DateLabel,
		rec.PricePerUnit,
		rec.TotalRowPrice,
		rec.TotalOrderPrice,
		rec.FilterType,
		rec.IncludeRestaurant,
		rec.IncludeFoodType,
		rec.IncludeDateRange,
		rec.DaysToInclude,
		rec.StartOffset,
	}
}
