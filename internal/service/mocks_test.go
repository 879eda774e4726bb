package service

import (
	"context"
	"sort"
	"strings"

	"fintrack/internal/models"
	"fintrack/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users  []models.User
	nextID int

	getErr    error
	createErr error
}

var _ repository.Users = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(_ context.Context, username, passwordHash string) (models.User, error) {
	if f.createErr != nil {
		return models.User{}, f.createErr
	}
	f.nextID++
	u := models.User{ID: f.nextID, Username: username, PasswordHash: passwordHash}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.users {
		if f.users[i].Username == username {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.users {
		if f.users[i].ID == id {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, nil
}

type fakeTxnRepo struct {
	items  []models.Transaction
	nextID int

	lastFilter repository.TransactionFilter
}

var _ repository.Transactions = (*fakeTxnRepo)(nil)

func (f *fakeTxnRepo) matches(t models.Transaction, userID int, fl repository.TransactionFilter) bool {
	if t.UserID != userID {
		return false
	}
	if fl.Category != "" && t.Category != fl.Category {
		return false
	}
	if fl.Type != "" && t.Type != fl.Type {
		return false
	}
	if fl.StartDate != "" && t.Date < fl.StartDate {
		return false
	}
	if fl.EndDate != "" && t.Date > fl.EndDate {
		return false
	}
	return true
}

func (f *fakeTxnRepo) List(_ context.Context, userID int, fl repository.TransactionFilter) ([]models.Transaction, int, error) {
	f.lastFilter = fl
	matched := make([]models.Transaction, 0)
	for _, t := range f.items {
		if f.matches(t, userID, fl) {
			matched = append(matched, t)
		}
	}
	desc := fl.SortOrder == "DESC"
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var cmp int
		switch fl.SortBy {
		case "amount":
			switch {
			case a.Amount < b.Amount:
				cmp = -1
			case a.Amount > b.Amount:
				cmp = 1
			}
		case "category":
			cmp = strings.Compare(a.Category, b.Category)
		default:
			cmp = strings.Compare(a.Date, b.Date)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})
	total := len(matched)
	if fl.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[fl.Offset:]
	if fl.Limit < len(matched) {
		matched = matched[:fl.Limit]
	}
	return matched, total, nil
}

func (f *fakeTxnRepo) ListByUser(_ context.Context, userID int) ([]models.Transaction, error) {
	out := make([]models.Transaction, 0)
	for _, t := range f.items {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeTxnRepo) GetByID(_ context.Context, id int) (*models.Transaction, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			t := f.items[i]
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeTxnRepo) Create(_ context.Context, t models.Transaction) (int, error) {
	f.nextID++
	t.ID = f.nextID
	f.items = append(f.items, t)
	return t.ID, nil
}

func (f *fakeTxnRepo) Delete(_ context.Context, id int) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeTxnRepo) SumExpenses(_ context.Context, userID int, category, month string) (float64, error) {
	var sum float64
	for _, t := range f.items {
		if t.UserID == userID && t.Category == category && t.Type == models.TypeExpense && t.Month() == month {
			sum += t.Amount
		}
	}
	return sum, nil
}

type fakeBudgetRepo struct {
	items  []models.Budget
	nextID int
}

var _ repository.Budgets = (*fakeBudgetRepo)(nil)

func (f *fakeBudgetRepo) ListByUser(_ context.Context, userID int) ([]models.Budget, error) {
	out := make([]models.Budget, 0)
	for _, b := range f.items {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBudgetRepo) GetByID(_ context.Context, id int) (*models.Budget, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			b := f.items[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeBudgetRepo) Exists(_ context.Context, userID int, category, month string) (bool, error) {
	for _, b := range f.items {
		if b.UserID == userID && b.Category == category && b.Month == month {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBudgetRepo) Create(_ context.Context, b models.Budget) (int, error) {
	f.nextID++
	b.ID = f.nextID
	f.items = append(f.items, b)
	return b.ID, nil
}

func (f *fakeBudgetRepo) Update(_ context.Context, b models.Budget) error {
	for i := range f.items {
		if f.items[i].ID == b.ID {
			f.items[i] = b
			return nil
		}
	}
	return nil
}

func (f *fakeBudgetRepo) Delete(_ context.Context, id int) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeGoalRepo struct {
	items  []models.Goal
	nextID int
}

var _ repository.Goals = (*fakeGoalRepo)(nil)

func (f *fakeGoalRepo) ListByUser(_ context.Context, userID int) ([]models.Goal, error) {
	out := make([]models.Goal, 0)
	for _, g := range f.items {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeGoalRepo) GetByID(_ context.Context, id int) (*models.Goal, error) {
	for i := range f.items {
		if f.items[i].ID == id {
			g := f.items[i]
			return &g, nil
		}
	}
	return nil, nil
}

func (f *fakeGoalRepo) Create(_ context.Context, g models.Goal) (int, error) {
	f.nextID++
	g.ID = f.nextID
	f.items = append(f.items, g)
	return g.ID, nil
}

func (f *fakeGoalRepo) Update(_ context.Context, g models.Goal) error {
	for i := range f.items {
		if f.items[i].ID == g.ID {
			f.items[i] = g
			return nil
		}
	}
	return nil
}

func (f *fakeGoalRepo) Delete(_ context.Context, id int) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return nil
}
