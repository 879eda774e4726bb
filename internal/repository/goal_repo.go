package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/models"
)

type GoalSQLite struct {
	db *sql.DB
}

func NewGoalSQLite(db *sql.DB) *GoalSQLite { return &GoalSQLite{db: db} }

var _ Goals = (*GoalSQLite)(nil)

const (
	selectGoalsByUserSQL = `SELECT id, user_id, name, target_amount, current_amount, deadline, icon, created_at
		FROM goals WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	selectGoalByIDSQL = `SELECT id, user_id, name, target_amount, current_amount, deadline, icon, created_at
		FROM goals WHERE id = ?`
	insertGoalSQL = `INSERT INTO goals (user_id, name, target_amount, current_amount, deadline, icon, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	updateGoalSQL = `UPDATE goals SET name = ?, target_amount = ?, current_amount = ?, deadline = ?, icon = ?
		WHERE id = ?`
	deleteGoalSQL = `DELETE FROM goals WHERE id = ?`
)

// ListByUser returns the user's goals, newest first.
func (r *GoalSQLite) ListByUser(ctx context.Context, userID int) ([]models.Goal, error) {
	rows, err := r.db.QueryContext(ctx, selectGoalsByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select goals for user %d: %w", userID, err)
	}
	defer rows.Close()

	out := make([]models.Goal, 0, 8)
	for rows.Next() {
		g, err := scanGoal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches one goal. Returns (nil, nil) if not found.
func (r *GoalSQLite) GetByID(ctx context.Context, id int) (*models.Goal, error) {
	g, err := scanGoal(r.db.QueryRowContext(ctx, selectGoalByIDSQL, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select goal id=%d: %w", id, err)
	}
	return &g, nil
}

// Create inserts a goal and returns its ID.
func (r *GoalSQLite) Create(ctx context.Context, g models.Goal) (int, error) {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, insertGoalSQL,
		g.UserID, g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Icon, g.CreatedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("insert goal: %w", err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for goal: %w", err)
	}
	return int(lastID), nil
}

// Update persists the mutable fields of a goal row.
func (r *GoalSQLite) Update(ctx context.Context, g models.Goal) error {
	if _, err := r.db.ExecContext(ctx, updateGoalSQL,
		g.Name, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Icon, g.ID); err != nil {
		return fmt.Errorf("update goal id=%d: %w", g.ID, err)
	}
	return nil
}

// Delete hard-deletes a goal by ID.
func (r *GoalSQLite) Delete(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, deleteGoalSQL, id); err != nil {
		return fmt.Errorf("delete goal id=%d: %w", id, err)
	}
	return nil
}

func scanGoal(scan func(dest ...any) error) (models.Goal, error) {
	var g models.Goal
	var deadline sql.NullString
	if err := scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount, &deadline, &g.Icon, &g.CreatedAt); err != nil {
		return models.Goal{}, err
	}
	if deadline.Valid {
		g.Deadline = &deadline.String
	}
	g.CreatedAt = g.CreatedAt.UTC()
	return g, nil
}
