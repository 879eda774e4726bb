package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fintrack/internal/models"
)

type BudgetSQLite struct {
	db *sql.DB
}

func NewBudgetSQLite(db *sql.DB) *BudgetSQLite { return &BudgetSQLite{db: db} }

var _ Budgets = (*BudgetSQLite)(nil)

const (
	selectBudgetsByUserSQL = `SELECT id, user_id, category, limit_amount, month
		FROM budgets WHERE user_id = ? ORDER BY id ASC`
	selectBudgetByIDSQL = `SELECT id, user_id, category, limit_amount, month
		FROM budgets WHERE id = ?`
	selectBudgetExistsSQL = `SELECT COUNT(*) FROM budgets WHERE user_id = ? AND category = ? AND month = ?`
	insertBudgetSQL       = `INSERT INTO budgets (user_id, category, limit_amount, month) VALUES (?, ?, ?, ?)`
	updateBudgetSQL       = `UPDATE budgets SET category = ?, limit_amount = ?, month = ? WHERE id = ?`
	deleteBudgetSQL       = `DELETE FROM budgets WHERE id = ?`
)

// ListByUser returns all budgets owned by the user.
func (r *BudgetSQLite) ListByUser(ctx context.Context, userID int) ([]models.Budget, error) {
	rows, err := r.db.QueryContext(ctx, selectBudgetsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select budgets for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Budget, 0, 8)
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.Category, &b.LimitAmount, &b.Month); err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one budget. Returns (nil, nil) if not found.
func (r *BudgetSQLite) GetByID(ctx context.Context, id int) (*models.Budget, error) {
	var b models.Budget
	err := r.db.QueryRowContext(ctx, selectBudgetByIDSQL, id).
		Scan(&b.ID, &b.UserID, &b.Category, &b.LimitAmount, &b.Month)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select budget id=%d: %w", id, err)
	}
	return &b, nil
}

// Exists reports whether the user already has a budget for (category, month).
func (r *BudgetSQLite) Exists(ctx context.Context, userID int, category, month string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, selectBudgetExistsSQL, userID, category, month).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check budget existence: %w", err)
	}
	return n > 0, nil
}

// Create inserts a budget and returns its ID.
func (r *BudgetSQLite) Create(ctx context.Context, b models.Budget) (int, error) {
	res, err := r.db.ExecContext(ctx, insertBudgetSQL, b.UserID, b.Category, b.LimitAmount, b.Month)
	if err != nil {
		return 0, fmt.Errorf("insert budget: %w", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for budget: %w", err)
	}
	return int(lastID), nil
}

// Update persists the mutable fields of a budget row.
func (r *BudgetSQLite) Update(ctx context.Context, b models.Budget) error {
	if _, err := r.db.ExecContext(ctx, updateBudgetSQL, b.Category, b.LimitAmount, b.Month, b.ID); err != nil {
		return fmt.Errorf("update budget id=%d: %w", b.ID, err)
	}
	return nil
}

// Delete hard-deletes a budget by ID.
func (r *BudgetSQLite) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteBudgetSQL, id); err != nil {
		return fmt.Errorf("delete budget id=%d: %w", id, err)
	}
	return nil
}
