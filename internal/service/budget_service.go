package service

import (
	"context"

	"fintrack/internal/apperr"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/shopspring/decimal"
)

// Budget status thresholds, compared against the rounded percentage.
const (
	warningThreshold  = 80
	exceededThreshold = 100
)

// User-facing budget messages.
const (
	msgLimitNotPositive = "Limit amount must be positive"
	msgBudgetDuplicate  = "Budget already exists for this category and month"
	msgBudgetMissing    = "Budget not found"
)

type BudgetService struct {
	budgets repository.Budgets
	txns    repository.Transactions
}

func NewBudgetService(budgets repository.Budgets, txns repository.Transactions) *BudgetService {
	return &BudgetService{budgets: budgets, txns: txns}
}

// budgetReport computes spent/percentage/status for one budget. The
// percentage is rounded to one decimal before the status comparison, so a
// 79.96% budget already reads as "warning".
func budgetReport(b models.Budget, spent float64) BudgetReport {
	rep := BudgetReport{Budget: b, Spent: round2(spent), Status: BudgetStatusOK}
	if b.LimitAmount > 0 {
		rep.Percentage = decimal.NewFromFloat(spent).
			Div(decimal.NewFromFloat(b.LimitAmount)).
			Mul(decimal.NewFromInt(100)).
			Round(1).
			InexactFloat64()
	}
	switch {
	case rep.Percentage >= exceededThreshold:
		rep.Status = BudgetStatusExceeded
	case rep.Percentage >= warningThreshold:
		rep.Status = BudgetStatusWarning
	}
	return rep
}

// List returns the caller's budgets, each with the sum of expense
// transactions in its exact (category, month) pair.
func (s *BudgetService) List(ctx context.Context, userID int) ([]BudgetReport, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]BudgetReport, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.txns.SumExpenses(ctx, userID, b.Category, b.Month)
		if err != nil {
			return nil, err
		}
		out = append(out, budgetReport(b, spent))
	}
	return out, nil
}

// Create stores a new budget; a second budget for the same (category,
// month) pair is rejected as a conflict.
func (s *BudgetService) Create(ctx context.Context, userID int, in BudgetInput) (models.Budget, error) {
	if in.LimitAmount <= 0 {
		return models.Budget{}, apperr.Invalid(msgLimitNotPositive)
	}

	exists, err := s.budgets.Exists(ctx, userID, in.Category, in.Month)
	if err != nil {
		return models.Budget{}, err
	}
	if exists {
		return models.Budget{}, apperr.Conflict(msgBudgetDuplicate)
	}

	b := models.Budget{
		UserID:      userID,
		Category:    in.Category,
		LimitAmount: in.LimitAmount,
		Month:       in.Month,
	}
	id, err := s.budgets.Create(ctx, b)
	if err != nil {
		return models.Budget{}, err
	}
	b.ID = id
	return b, nil
}

// Update applies a partial patch to the caller's budget. A supplied limit
// is revalidated; nil fields are left untouched.
func (s *BudgetService) Update(ctx context.Context, userID, id int, patch BudgetPatch) (models.Budget, error) {
	b, err := s.ownedBudget(ctx, userID, id)
	if err != nil {
		return models.Budget{}, err
	}

	if patch.LimitAmount != nil {
		if *patch.LimitAmount <= 0 {
			return models.Budget{}, apperr.Invalid(msgLimitNotPositive)
		}
		b.LimitAmount = *patch.LimitAmount
	}
	if patch.Category != nil {
		b.Category = *patch.Category
	}
	if patch.Month != nil {
		b.Month = *patch.Month
	}

	if err := s.budgets.Update(ctx, *b); err != nil {
		return models.Budget{}, err
	}
	return *b, nil
}

// Delete removes the caller's budget.
func (s *BudgetService) Delete(ctx context.Context, userID, id int) error {
	if _, err := s.ownedBudget(ctx, userID, id); err != nil {
		return err
	}
	return s.budgets.Delete(ctx, id)
}

// ownedBudget loads a budget and enforces the ownership check.
func (s *BudgetService) ownedBudget(ctx context.Context, userID, id int) (*models.Budget, error) {
	b, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, apperr.NotFound(msgBudgetMissing)
	}
	if b.UserID != userID {
		return nil, apperr.Denied(msgNotOwner)
	}
	return b, nil
}
