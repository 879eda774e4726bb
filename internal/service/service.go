package service

import (
	"context"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"
)

// TokenClaims is the identity carried by a session token.
type TokenClaims struct {
	UserID   int
	Username string
}

// Authorization handles accounts and session tokens.
type Authorization interface {
	SignUp(ctx context.Context, username, password string) (string, models.User, error)
	Login(ctx context.Context, username, password string) (string, models.User, error)
	ParseToken(accessToken string) (TokenClaims, error)
	User(ctx context.Context, id int) (models.User, error)
}

// TransactionInput is the payload for creating a transaction.
type TransactionInput struct {
	Amount      float64
	Category    string
	Description string
	Date        string
	Type        string
}

// TransactionQuery narrows and pages a transaction listing. Unknown sort
// fields fall back to the defaults (date descending).
type TransactionQuery struct {
	Category  string
	Type      string
	StartDate string
	EndDate   string
	SortBy    string
	SortOrder string
	Page      int
	PerPage   int
}

// TransactionPage is one page of a listing plus pagination metadata.
type TransactionPage struct {
	Items   []models.Transaction
	Total   int
	Page    int
	PerPage int
	Pages   int
}

// Transactions exposes the transaction CRUD operations. There is no
// update: transactions are immutable once created.
type Transactions interface {
	List(ctx context.Context, userID int, q TransactionQuery) (TransactionPage, error)
	Create(ctx context.Context, userID int, in TransactionInput) (models.Transaction, error)
	Delete(ctx context.Context, userID, id int) error
}

// BudgetInput is the payload for creating a budget.
type BudgetInput struct {
	Category    string
	LimitAmount float64
	Month       string
}

// BudgetPatch is a partial budget update; nil fields are left untouched.
type BudgetPatch struct {
	Category    *string
	LimitAmount *float64
	Month       *string
}

// Budget statuses, derived from the spent percentage.
const (
	BudgetStatusOK       = "ok"
	BudgetStatusWarning  = "warning"
	BudgetStatusExceeded = "exceeded"
)

// BudgetReport is a budget enriched with its computed spending figures.
type BudgetReport struct {
	models.Budget
	Spent      float64 `json:"spent"`
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

// Budgets exposes budget CRUD plus the computed spent/status listing.
type Budgets interface {
	List(ctx context.Context, userID int) ([]BudgetReport, error)
	Create(ctx context.Context, userID int, in BudgetInput) (models.Budget, error)
	Update(ctx context.Context, userID, id int, patch BudgetPatch) (models.Budget, error)
	Delete(ctx context.Context, userID, id int) error
}

// GoalInput is the payload for creating a goal.
type GoalInput struct {
	Name          string
	TargetAmount  float64
	CurrentAmount float64
	Deadline      *string
	Icon          string
}

// GoalPatch is a partial goal update; nil fields are left untouched.
// Name and Icon are additionally ignored when empty.
type GoalPatch struct {
	Name          *string
	TargetAmount  *float64
	CurrentAmount *float64
	Deadline      *string
	Icon          *string
}

// Goals exposes plain goal CRUD.
type Goals interface {
	List(ctx context.Context, userID int) ([]models.Goal, error)
	Create(ctx context.Context, userID int, in GoalInput) (models.Goal, error)
	Update(ctx context.Context, userID, id int, patch GoalPatch) (models.Goal, error)
	Delete(ctx context.Context, userID, id int) error
}

// MonthlyFlow is one calendar bucket of the dashboard trend.
type MonthlyFlow struct {
	Month    string  `json:"month"` // YYYY-MM
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Forecast is a flat trailing-average projection over the monthly buckets.
type Forecast struct {
	AvgMonthlyIncome   float64 `json:"avg_monthly_income"`
	AvgMonthlyExpenses float64 `json:"avg_monthly_expenses"`
	ProjectedSavings   float64 `json:"projected_savings"`
}

// DashboardSummary aggregates a user's full transaction history.
type DashboardSummary struct {
	Balance            float64              `json:"balance"`
	Income             float64              `json:"income"`
	Expenses           float64              `json:"expenses"`
	CategorySpending   map[string]float64   `json:"category_spending"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	MonthlyData        []MonthlyFlow        `json:"monthly_data"`
	Forecast           Forecast             `json:"forecast"`
}

// Dashboard computes the aggregate summary.
type Dashboard interface {
	Summary(ctx context.Context, userID int) (DashboardSummary, error)
}

// Exporter serializes a user's transactions to CSV.
type Exporter interface {
	TransactionsCSV(ctx context.Context, userID int) (string, error)
}

// Config carries the auth knobs services need beyond their repositories.
type Config struct {
	TokenSecret string
	TokenTTL    time.Duration
}

// Service aggregates all sub-services behind their interfaces.
type Service struct {
	Authorization
	Transactions
	Budgets
	Goals
	Dashboard
	Exporter
}

// NewService wires the repository layer into concrete services.
func NewService(repos *repository.Repository, cfg Config) *Service {
	return &Service{
		Authorization: NewAuthService(repos.Users, cfg),
		Transactions:  NewTransactionService(repos.Transactions),
		Budgets:       NewBudgetService(repos.Budgets, repos.Transactions),
		Goals:         NewGoalService(repos.Goals),
		Dashboard:     NewDashboardService(repos.Transactions),
		Exporter:      NewExportService(repos.Transactions),
	}
}
