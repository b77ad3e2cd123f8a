package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/salespulse/internal/domain/models"
	"github.com/guttosm/salespulse/internal/filter"
	pq "github.com/lib/pq"
)

// SalesRepository defines the data-access contract for sales and the
// aggregate queries behind the analytics endpoints.
type SalesRepository interface {
	Create(ctx context.Context, s models.Sale) (*models.Sale, error)
	FindByID(ctx context.Context, id int64) (*models.SaleWithClient, error)
	FindAll(ctx context.Context) ([]models.SaleWithClient, error)
	Update(ctx context.Context, id int64, u models.SaleUpdate) (*models.Sale, error)
	Delete(ctx context.Context, id int64) (bool, error)

	TopByTotal(ctx context.Context) (*models.ClientAggregate, error)
	TopByAverage(ctx context.Context) (*models.ClientAggregate, error)
	TopByUniqueDays(ctx context.Context) ([]models.ClientUniqueDays, error)
	CountPerDay(ctx context.Context, r *filter.DateRange) ([]models.DailySales, error)

	InsertBatch(ctx context.Context, sales []models.Sale) error
	HasImport(ctx context.Context, filename string) (bool, error)
	RecordImport(ctx context.Context, filename string, rowCount int) error
}

type salesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) SalesRepository {
	return &salesRepository{db: db}
}

const saleWithClientQuery = `SELECT s.id, s.value, s.sale_date, s.client_id, c.name, c.email
FROM sales s
JOIN clients c ON c.id = s.client_id`

func scanSaleWithClient(row interface{ Scan(...interface{}) error }) (models.SaleWithClient, error) {
	var s models.SaleWithClient
	err := row.Scan(&s.ID, &s.Value, &s.SaleDate, &s.ClientID, &s.Client.Name, &s.Client.Email)
	s.Client.ID = s.ClientID
	return s, err
}

// Create inserts the sale and returns it with the generated id.
func (r *salesRepository) Create(ctx context.Context, s models.Sale) (*models.Sale, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO sales (value, sale_date, client_id) VALUES ($1, $2, $3) RETURNING id`,
		s.Value, s.SaleDate, s.ClientID,
	).Scan(&s.ID)
	if err != nil {
		return nil, fmt.Errorf("insert sale: %w", err)
	}
	return &s, nil
}

func (r *salesRepository) FindByID(ctx context.Context, id int64) (*models.SaleWithClient, error) {
	s, err := scanSaleWithClient(r.db.QueryRowContext(ctx, saleWithClientQuery+` WHERE s.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find sale: %w", err)
	}
	return &s, nil
}

func (r *salesRepository) FindAll(ctx context.Context) ([]models.SaleWithClient, error) {
	rows, err := r.db.QueryContext(ctx, saleWithClientQuery+` ORDER BY s.id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.SaleWithClient{}
	for rows.Next() {
		s, err := scanSaleWithClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update applies a partial update. Returns (nil, nil) when the sale does not exist.
func (r *salesRepository) Update(ctx context.Context, id int64, u models.SaleUpdate) (*models.Sale, error) {
	var set setClause
	if u.Value != nil {
		set.add("value", *u.Value)
	}
	if u.SaleDate != nil {
		set.add("sale_date", *u.SaleDate)
	}
	if u.ClientID != nil {
		set.add("client_id", *u.ClientID)
	}

	var row *sql.Row
	if set.empty() {
		row = r.db.QueryRowContext(ctx, `SELECT id, value, sale_date, client_id FROM sales WHERE id = $1`, id)
	} else {
		args := append(set.args, id)
		query := fmt.Sprintf(`UPDATE sales SET %s WHERE id = $%d RETURNING id, value, sale_date, client_id`, set.String(), len(args))
		row = r.db.QueryRowContext(ctx, query, args...)
	}

	var s models.Sale
	err := row.Scan(&s.ID, &s.Value, &s.SaleDate, &s.ClientID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}
	return &s, nil
}

// Delete removes the sale. Returns false when no sale matched.
func (r *salesRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete sale: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete sale rows affected: %w", err)
	}
	return n > 0, nil
}

// TopByTotal returns the client group with the highest SUM(value), or nil when there are no sales.
func (r *salesRepository) TopByTotal(ctx context.Context) (*models.ClientAggregate, error) {
	return r.topBy(ctx, "SUM")
}

// TopByAverage returns the client group with the highest AVG(value), or nil when there are no sales.
func (r *salesRepository) TopByAverage(ctx context.Context) (*models.ClientAggregate, error) {
	return r.topBy(ctx, "AVG")
}

func (r *salesRepository) topBy(ctx context.Context, fn string) (*models.ClientAggregate, error) {
	query := fmt.Sprintf(`SELECT client_id, %s(value) AS agg
FROM sales
GROUP BY client_id
ORDER BY agg DESC
LIMIT 1`, fn)

	var agg models.ClientAggregate
	err := r.db.QueryRowContext(ctx, query).Scan(&agg.ClientID, &agg.Value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("top client by %s: %w", strings.ToLower(fn), err)
	}
	return &agg, nil
}

// TopByUniqueDays returns every client tied at the maximum number of distinct
// UTC calendar days with at least one sale.
func (r *salesRepository) TopByUniqueDays(ctx context.Context) ([]models.ClientUniqueDays, error) {
	rows, err := r.db.QueryContext(ctx, `
		WITH per_client AS (
			SELECT client_id, COUNT(DISTINCT (sale_date AT TIME ZONE 'UTC')::date) AS unique_days
			FROM sales
			GROUP BY client_id
		)
		SELECT client_id, unique_days
		FROM per_client
		WHERE unique_days = (SELECT MAX(unique_days) FROM per_client)
		ORDER BY client_id
	`)
	if err != nil {
		return nil, fmt.Errorf("top clients by unique days: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.ClientUniqueDays{}
	for rows.Next() {
		var d models.ClientUniqueDays
		if err := rows.Scan(&d.ClientID, &d.UniqueSaleDays); err != nil {
			return nil, fmt.Errorf("scan unique days: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// CountPerDay counts sales per UTC calendar day inside the optional range,
// ascending by day. Days without sales are absent.
func (r *salesRepository) CountPerDay(ctx context.Context, dr *filter.DateRange) ([]models.DailySales, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if dr != nil && dr.Gte != nil {
		args = append(args, *dr.Gte)
		conditions = append(conditions, fmt.Sprintf("sale_date >= $%d", len(args)))
	}
	if dr != nil && dr.Lt != nil {
		args = append(args, *dr.Lt)
		conditions = append(conditions, fmt.Sprintf("sale_date < $%d", len(args)))
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := fmt.Sprintf(`
		SELECT (sale_date AT TIME ZONE 'UTC')::date AS day, COUNT(*) AS total
		FROM sales
		%s
		GROUP BY day
		ORDER BY day ASC
	`, where)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count sales per day: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []models.DailySales{}
	for rows.Next() {
		var d models.DailySales
		if err := rows.Scan(&d.Day, &d.Total); err != nil {
			return nil, fmt.Errorf("scan daily sales: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// InsertBatch bulk-loads sales in a single transaction using COPY.
func (r *salesRepository) InsertBatch(ctx context.Context, sales []models.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	// Small optimization for bulk load
	if _, err := tx.ExecContext(ctx, `SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("sales", "value", "sale_date", "client_id"))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, s := range sales {
		if _, err := stmt.ExecContext(ctx, s.Value, s.SaleDate, s.ClientID); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// HasImport checks if a file with this name was already imported.
func (r *salesRepository) HasImport(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM import_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// RecordImport records (or refreshes) the import log entry for a file.
func (r *salesRepository) RecordImport(ctx context.Context, filename string, rowCount int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO import_log (filename, row_count)
		VALUES ($1, $2)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  imported_at = NOW()
	`, filename, rowCount)
	return err
}
