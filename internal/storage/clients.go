package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/guttosm/salespulse/internal/domain/models"
	pq "github.com/lib/pq"
)

// ClientsRepository defines the data-access contract for clients.
//
// Lookups return (nil, nil) when the row does not exist so callers can tell
// "not found" apart from store failures.
type ClientsRepository interface {
	Create(ctx context.Context, c models.Client) (*models.Client, error)
	FindByID(ctx context.Context, id string) (*models.Client, error)
	FindByIDWithSales(ctx context.Context, id string) (*models.ClientWithSales, error)
	FindByEmail(ctx context.Context, email string) (*models.Client, error)
	Exists(ctx context.Context, id string) (bool, error)
	FindSummariesByIDs(ctx context.Context, ids []string) ([]models.ClientSummary, error)
	FindIDsByEmails(ctx context.Context, emails []string) (map[string]string, error)
	List(ctx context.Context, f models.ClientFilter, skip, take int) ([]models.Client, int, error)
	ListWithSales(ctx context.Context, f models.ClientFilter, skip, take int) ([]models.ClientWithSales, int, error)
	Update(ctx context.Context, id string, u models.ClientUpdate) (*models.Client, error)
	Delete(ctx context.Context, id string, cascade bool) (bool, error)
	CountSales(ctx context.Context, id string) (int, error)
}

type clientsRepository struct {
	db *sql.DB
}

func NewClientsRepository(db *sql.DB) ClientsRepository {
	return &clientsRepository{db: db}
}

const clientColumns = "id, name, email, birth_date, created_at"

func scanClient(row interface{ Scan(...interface{}) error }) (models.Client, error) {
	var c models.Client
	err := row.Scan(&c.ID, &c.Name, &c.Email, &c.BirthDate, &c.CreatedAt)
	return c, err
}

// clientWhere builds the case-insensitive partial filter. Placeholders continue
// from len(args).
func clientWhere(f models.ClientFilter, args []interface{}) (string, []interface{}) {
	var conditions []string
	if name := strings.TrimSpace(f.Name); name != "" {
		args = append(args, containsPattern(name))
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if email := strings.TrimSpace(f.Email); email != "" {
		args = append(args, containsPattern(email))
		conditions = append(conditions, fmt.Sprintf("email ILIKE $%d", len(args)))
	}
	if len(conditions) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// Create inserts a client whose ID was generated by the caller.
func (r *clientsRepository) Create(ctx context.Context, c models.Client) (*models.Client, error) {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO clients (id, name, email, birth_date) VALUES ($1, $2, $3, $4) RETURNING created_at`,
		c.ID, c.Name, c.Email, c.BirthDate,
	).Scan(&c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return &c, nil
}

func (r *clientsRepository) FindByID(ctx context.Context, id string) (*models.Client, error) {
	return findClient(ctx, r.db, "id", id)
}

func (r *clientsRepository) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	return findClient(ctx, r.db, "email", email)
}

func findClient(ctx context.Context, q queryer, column string, value interface{}) (*models.Client, error) {
	row := q.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM clients WHERE %s = $1`, clientColumns, column), value)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find client by %s: %w", column, err)
	}
	return &c, nil
}

// FindByIDWithSales returns the client and its sales ordered by sale date.
func (r *clientsRepository) FindByIDWithSales(ctx context.Context, id string) (*models.ClientWithSales, error) {
	c, err := findClient(ctx, r.db, "id", id)
	if err != nil || c == nil {
		return nil, err
	}
	sales, err := salesByClientIDs(ctx, r.db, []string{c.ID})
	if err != nil {
		return nil, err
	}
	return &models.ClientWithSales{Client: *c, Sales: sales[c.ID]}, nil
}

// Exists checks if a client with the given id is registered.
func (r *clientsRepository) Exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check client exists: %w", err)
	}
	return exists, nil
}

func (r *clientsRepository) FindSummariesByIDs(ctx context.Context, ids []string) ([]models.ClientSummary, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email FROM clients WHERE id = ANY($1::uuid[])`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("find client summaries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]models.ClientSummary, 0, len(ids))
	for rows.Next() {
		var s models.ClientSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Email); err != nil {
			return nil, fmt.Errorf("scan client summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// FindIDsByEmails maps each registered email to its client id. Unknown emails are absent from the map.
func (r *clientsRepository) FindIDsByEmails(ctx context.Context, emails []string) (map[string]string, error) {
	out := make(map[string]string, len(emails))
	if len(emails) == 0 {
		return out, nil
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, email FROM clients WHERE email = ANY($1::text[])`, pq.Array(emails))
	if err != nil {
		return nil, fmt.Errorf("find clients by email: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var id, email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, fmt.Errorf("scan client email: %w", err)
		}
		out[email] = id
	}
	return out, rows.Err()
}

// List returns one page of clients (newest first) and the total matching count,
// both read from the same snapshot.
func (r *clientsRepository) List(ctx context.Context, f models.ClientFilter, skip, take int) ([]models.Client, int, error) {
	var (
		clients []models.Client
		total   int
	)
	err := readTx(ctx, r.db, func(tx *sql.Tx) error {
		var err error
		if clients, err = listClients(ctx, tx, f, skip, take); err != nil {
			return err
		}
		total, err = countClients(ctx, tx, f)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}

// ListWithSales is List plus each client's sales ordered by sale date ascending.
func (r *clientsRepository) ListWithSales(ctx context.Context, f models.ClientFilter, skip, take int) ([]models.ClientWithSales, int, error) {
	var (
		out   []models.ClientWithSales
		total int
	)
	err := readTx(ctx, r.db, func(tx *sql.Tx) error {
		clients, err := listClients(ctx, tx, f, skip, take)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(clients))
		for _, c := range clients {
			ids = append(ids, c.ID)
		}
		sales, err := salesByClientIDs(ctx, tx, ids)
		if err != nil {
			return err
		}
		out = make([]models.ClientWithSales, 0, len(clients))
		for _, c := range clients {
			out = append(out, models.ClientWithSales{Client: c, Sales: sales[c.ID]})
		}
		total, err = countClients(ctx, tx, f)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func listClients(ctx context.Context, q queryer, f models.ClientFilter, skip, take int) ([]models.Client, error) {
	where, args := clientWhere(f, nil)
	args = append(args, take, skip)
	query := fmt.Sprintf(`SELECT %s FROM clients%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		clientColumns, where, len(args)-1, len(args))

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	clients := make([]models.Client, 0, take)
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clients: %w", err)
	}
	return clients, nil
}

func countClients(ctx context.Context, q queryer, f models.ClientFilter) (int, error) {
	where, args := clientWhere(f, nil)
	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count clients: %w", err)
	}
	return total, nil
}

// salesByClientIDs groups the sales of the given clients by client id, each
// group ordered by sale date ascending.
func salesByClientIDs(ctx context.Context, q queryer, ids []string) (map[string][]models.Sale, error) {
	out := make(map[string][]models.Sale, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := q.QueryContext(ctx,
		`SELECT id, value, sale_date, client_id FROM sales WHERE client_id = ANY($1::uuid[]) ORDER BY sale_date ASC, id ASC`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list sales by client: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var s models.Sale
		if err := rows.Scan(&s.ID, &s.Value, &s.SaleDate, &s.ClientID); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out[s.ClientID] = append(out[s.ClientID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return out, nil
}

// Update applies a partial update. Returns (nil, nil) when the client does not exist.
func (r *clientsRepository) Update(ctx context.Context, id string, u models.ClientUpdate) (*models.Client, error) {
	var set setClause
	if u.Name != nil {
		set.add("name", *u.Name)
	}
	if u.Email != nil {
		set.add("email", *u.Email)
	}
	if u.BirthDate != nil {
		set.add("birth_date", *u.BirthDate)
	}
	if set.empty() {
		return r.FindByID(ctx, id)
	}

	args := append(set.args, id)
	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d RETURNING %s`, set.String(), len(args), clientColumns)
	c, err := scanClient(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return &c, nil
}

// Delete removes the client. With cascade, its sales are removed in the same
// transaction first. Returns false when no client matched.
func (r *clientsRepository) Delete(ctx context.Context, id string, cascade bool) (bool, error) {
	if !cascade {
		return deleteClient(ctx, r.db, id)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin delete tx: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE client_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("delete client sales: %w", err)
	}
	deleted, err := deleteClient(ctx, tx, id)
	if err != nil || !deleted {
		_ = tx.Rollback()
		return false, err
	}
	return true, tx.Commit()
}

func deleteClient(ctx context.Context, q queryer, id string) (bool, error) {
	res, err := q.ExecContext(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete client: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete client rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *clientsRepository) CountSales(ctx context.Context, id string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sales WHERE client_id = $1`, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count client sales: %w", err)
	}
	return n, nil
}

