package repository

import (
	"context"
	"database/sql"

	"fintrack/internal/models"
)

// Users persists accounts.
type Users interface {
	Create(ctx context.Context, username, passwordHash string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByID(ctx context.Context, id int) (*models.User, error)
}

// TransactionFilter narrows, orders and pages a transaction listing.
// Zero-valued fields are ignored. SortBy/SortOrder must already be
// normalized to the whitelisted column/direction names.
type TransactionFilter struct {
	Category  string
	Type      string
	StartDate string // inclusive, YYYY-MM-DD
	EndDate   string // inclusive, YYYY-MM-DD
	SortBy    string // date | amount | category
	SortOrder string // ASC | DESC
	Limit     int
	Offset    int
}

// Transactions persists income/expense entries.
type Transactions interface {
	List(ctx context.Context, userID int, f TransactionFilter) ([]models.Transaction, int, error)
	ListByUser(ctx context.Context, userID int) ([]models.Transaction, error)
	GetByID(ctx context.Context, id int) (*models.Transaction, error)
	Create(ctx context.Context, t models.Transaction) (int, error)
	Delete(ctx context.Context, id int) error
	SumExpenses(ctx context.Context, userID int, category, month string) (float64, error)
}

// Budgets persists category spending ceilings.
type Budgets interface {
	ListByUser(ctx context.Context, userID int) ([]models.Budget, error)
	GetByID(ctx context.Context, id int) (*models.Budget, error)
	Exists(ctx context.Context, userID int, category, month string) (bool, error)
	Create(ctx context.Context, b models.Budget) (int, error)
	Update(ctx context.Context, b models.Budget) error
	Delete(ctx context.Context, id int) error
}

// Goals persists savings targets.
type Goals interface {
	ListByUser(ctx context.Context, userID int) ([]models.Goal, error)
	GetByID(ctx context.Context, id int) (*models.Goal, error)
	Create(ctx context.Context, g models.Goal) (int, error)
	Update(ctx context.Context, g models.Goal) error
	Delete(ctx context.Context, id int) error
}

type Repository struct {
	Users        Users
	Transactions Transactions
	Budgets      Budgets
	Goals        Goals
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Users:        NewUserSQLite(db),
		Transactions: NewTransactionSQLite(db),
		Budgets:      NewBudgetSQLite(db),
		Goals:        NewGoalSQLite(db),
	}
}
