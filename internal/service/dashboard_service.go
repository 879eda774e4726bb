package service

import (
	"context"
	"time"

	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/shopspring/decimal"
)

const trendMonths = 6

// DashboardService aggregates a user's full transaction history into the
// dashboard summary. Everything is computed in memory from the raw rows.
type DashboardService struct {
	txns repository.Transactions
	now  func() time.Time // injectable for tests
}

func NewDashboardService(txns repository.Transactions) *DashboardService {
	return &DashboardService{txns: txns, now: time.Now}
}

// Summary computes balance, totals, category breakdown, the five most
// recent transactions, the 6-month trend and its flat-average forecast.
func (s *DashboardService) Summary(ctx context.Context, userID int) (DashboardSummary, error) {
	// Repo returns date-descending, so the recent slice is just a prefix.
	txns, err := s.txns.ListByUser(ctx, userID)
	if err != nil {
		return DashboardSummary{}, err
	}

	income := decimal.Zero
	expenses := decimal.Zero
	byCategory := map[string]decimal.Decimal{}
	for _, t := range txns {
		amt := decimal.NewFromFloat(t.Amount)
		if t.Type == models.TypeIncome {
			income = income.Add(amt)
		} else {
			expenses = expenses.Add(amt)
			byCategory[t.Category] = byCategory[t.Category].Add(amt)
		}
	}

	categorySpending := make(map[string]float64, len(byCategory))
	for cat, sum := range byCategory {
		categorySpending[cat] = sum.Round(2).InexactFloat64()
	}

	recent := txns
	if len(recent) > 5 {
		recent = recent[:5]
	}

	monthly := s.monthlyData(txns)

	return DashboardSummary{
		Balance:            income.Sub(expenses).Round(2).InexactFloat64(),
		Income:             income.Round(2).InexactFloat64(),
		Expenses:           expenses.Round(2).InexactFloat64(),
		CategorySpending:   categorySpending,
		RecentTransactions: recent,
		MonthlyData:        monthly,
		Forecast:           forecast(monthly),
	}, nil
}

// monthlyData buckets the transactions into the trailing six months.
// Bucket months are derived by stepping back from the first of the current
// month in 30-day multiples, the same approximation the dashboard has
// always used; around 31-day months this can skip or repeat a calendar
// month.
func (s *DashboardService) monthlyData(txns []models.Transaction) []MonthlyFlow {
	now := s.now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	out := make([]MonthlyFlow, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		month := firstOfMonth.AddDate(0, 0, -i*30).Format("2006-01")

		income := decimal.Zero
		expenses := decimal.Zero
		for _, t := range txns {
			if t.Month() != month {
				continue
			}
			if t.Type == models.TypeIncome {
				income = income.Add(decimal.NewFromFloat(t.Amount))
			} else {
				expenses = expenses.Add(decimal.NewFromFloat(t.Amount))
			}
		}
		out = append(out, MonthlyFlow{
			Month:    month,
			Income:   income.Round(2).InexactFloat64(),
			Expenses: expenses.Round(2).InexactFloat64(),
		})
	}
	return out
}

// forecast averages the monthly income and expense figures. With no
// buckets all fields are zero; there is never a division by zero.
func forecast(monthly []MonthlyFlow) Forecast {
	if len(monthly) == 0 {
		return Forecast{}
	}

	income := decimal.Zero
	expenses := decimal.Zero
	for _, m := range monthly {
		income = income.Add(decimal.NewFromFloat(m.Income))
		expenses = expenses.Add(decimal.NewFromFloat(m.Expenses))
	}
	n := decimal.NewFromInt(int64(len(monthly)))
	avgIncome := income.Div(n)
	avgExpenses := expenses.Div(n)

	return Forecast{
		AvgMonthlyIncome:   avgIncome.Round(2).InexactFloat64(),
		AvgMonthlyExpenses: avgExpenses.Round(2).InexactFloat64(),
		ProjectedSavings:   avgIncome.Sub(avgExpenses).Round(2).InexactFloat64(),
	}
}
