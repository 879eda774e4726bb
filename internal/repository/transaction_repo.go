package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"fintrack/internal/models"
)

type TransactionSQLite struct {
	db *sql.DB
}

func NewTransactionSQLite(db *sql.DB) *TransactionSQLite { return &TransactionSQLite{db: db} }

var _ Transactions = (*TransactionSQLite)(nil)

const (
	transactionColumns = "id, user_id, amount, category, description, date, type"

	insertTransactionSQL = `INSERT INTO transactions (user_id, amount, category, description, date, type)
		VALUES (?, ?, ?, ?, ?, ?)`
	selectTransactionByIDSQL = `SELECT id, user_id, amount, category, description, date, type
		FROM transactions WHERE id = ?`
	selectTransactionsByUserSQL = `SELECT id, user_id, amount, category, description, date, type
		FROM transactions WHERE user_id = ? ORDER BY date DESC, id ASC`
	deleteTransactionSQL = `DELETE FROM transactions WHERE id = ?`
	sumExpensesSQL       = `SELECT COALESCE(SUM(amount), 0) FROM transactions
		WHERE user_id = ? AND category = ? AND type = 'expense' AND strftime('%Y-%m', date) = ?`
)

// sort whitelists; anything else is rejected at query-build time.
var sortColumns = map[string]bool{"date": true, "amount": true, "category": true}
var sortOrders = map[string]bool{"ASC": true, "DESC": true}

// buildListConds assembles WHERE conditions and args for a filtered listing.
func buildListConds(userID int, f TransactionFilter) ([]string, []any) {
	conds := []string{"user_id = ?"}
	args := []any{userID}

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Type != "" {
		conds = append(conds, "type = ?")
		args = append(args, f.Type)
	}
	if f.StartDate != "" {
		conds = append(conds, "date >= ?")
		args = append(args, f.StartDate)
	}
	if f.EndDate != "" {
		conds = append(conds, "date <= ?")
		args = append(args, f.EndDate)
	}
	return conds, args
}

// List returns one page of the user's transactions plus the total number
// of rows matching the filter.
func (r *TransactionSQLite) List(ctx context.Context, userID int, f TransactionFilter) ([]models.Transaction, int, error) {
	if !sortColumns[f.SortBy] || !sortOrders[f.SortOrder] {
		return nil, 0, fmt.Errorf("unsupported sort %q %q", f.SortBy, f.SortOrder)
	}

	conds, args := buildListConds(userID, f)
	where := " WHERE " + strings.Join(conds, " AND ")

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transactions"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	q := "SELECT " + transactionColumns + " FROM transactions" + where +
		" ORDER BY " + f.SortBy + " " + f.SortOrder + ", id ASC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, q, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("select transactions: %w", err)
	}
	defer rows.Close()

	items, err := scanTransactions(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// ListByUser returns all of the user's transactions, newest date first.
func (r *TransactionSQLite) ListByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, selectTransactionsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select transactions for user %d: %w", userID, err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// GetByID fetches one transaction. Returns (nil, nil) if not found.
func (r *TransactionSQLite) GetByID(ctx context.Context, id int) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.QueryRowContext(ctx, selectTransactionByIDSQL, id).
		Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Description, &t.Date, &t.Type)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select transaction id=%d: %w", id, err)
	}
	return &t, nil
}

// Create inserts a transaction and returns its ID.
func (r *TransactionSQLite) Create(ctx context.Context, t models.Transaction) (int, error) {
	res, err := r.db.ExecContext(ctx, insertTransactionSQL,
		t.UserID, t.Amount, t.Category, t.Description, t.Date, t.Type)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for transaction: %w", err)
	}
	return int(lastID), nil
}

// Delete hard-deletes a transaction by ID.
func (r *TransactionSQLite) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteTransactionSQL, id); err != nil {
		return fmt.Errorf("delete transaction id=%d: %w", id, err)
	}
	return nil
}

// SumExpenses totals expense amounts for a (category, month) pair.
func (r *TransactionSQLite) SumExpenses(ctx context.Context, userID int, category, month string) (float64, error) {
	var sum float64
	err := r.db.QueryRowContext(ctx, sumExpensesSQL, userID, category, month).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum expenses for %q %s: %w", category, month, err)
	}
	return sum, nil
}

func scanTransactions(rows *sql.Rows) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0, 32)
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Description, &t.Date, &t.Type); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
