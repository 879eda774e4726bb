package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"fintrack/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func newMockBudgetRepo(t *testing.T) (*BudgetSQLite, sqlmock.Sqlmock, func()) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	repo := NewBudgetSQLite(db)
	cleanup := func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Fatalf("unmet sqlmock expectations: %v", err)
		}
		_ = db.Close()
	}
	return repo, mock, cleanup
}

func TestBudgetSQLite_ListByUser(t *testing.T) {
	repo, mock, cleanup := newMockBudgetRepo(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "user_id", "category", "limit_amount", "month"}).
		AddRow(1, 1, "Food", 300.0, "2025-06").
		AddRow(2, 1, "Transport", 120.0, "2025-06")
	mock.ExpectQuery(regexp.QuoteMeta("FROM budgets WHERE user_id = ? ORDER BY id ASC")).
		WithArgs(1).
		WillReturnRows(rows)

	budgets, err := repo.ListByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(budgets) != 2 {
		t.Fatalf("expected 2 budgets, got %d", len(budgets))
	}
	if budgets[0].Category != "Food" || budgets[0].LimitAmount != 300.0 {
		t.Fatalf("unexpected budget: %+v", budgets[0])
	}
}

func TestBudgetSQLite_Exists(t *testing.T) {
	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		want       bool
		wantErr    bool
	}{
		{
			name: "exists",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBudgetExistsSQL)).
					WithArgs(1, "Food", "2025-06").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
			},
			want: true,
		},
		{
			name: "absent",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBudgetExistsSQL)).
					WithArgs(1, "Food", "2025-06").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
			},
			want: false,
		},
		{
			name: "query error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectQuery(regexp.QuoteMeta(selectBudgetExistsSQL)).
					WithArgs(1, "Food", "2025-06").
					WillReturnError(errors.New("db query failed"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt // capture
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := newMockBudgetRepo(t)
			defer cleanup()

			tt.mockExpect(mock)

			got, err := repo.Exists(context.Background(), 1, "Food", "2025-06")

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("unexpected exists: want %v, got %v", tt.want, got)
			}
		})
	}
}

func TestBudgetSQLite_CreateUpdateDelete(t *testing.T) {
	repo, mock, cleanup := newMockBudgetRepo(t)
	defer cleanup()

	b := models.Budget{UserID: 1, Category: "Food", LimitAmount: 300, Month: "2025-06"}

	mock.ExpectExec(regexp.QuoteMeta(insertBudgetSQL)).
		WithArgs(1, "Food", 300.0, "2025-06").
		WillReturnResult(sqlmock.NewResult(5, 1))

	id, err := repo.Create(context.Background(), b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 5 {
		t.Fatalf("unexpected id: want 5, got %d", id)
	}

	b.ID = id
	b.LimitAmount = 350
	mock.ExpectExec(regexp.QuoteMeta(updateBudgetSQL)).
		WithArgs("Food", 350.0, "2025-06", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Update(context.Background(), b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mock.ExpectExec(regexp.QuoteMeta(deleteBudgetSQL)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBudgetSQLite_GetByID_NotFound(t *testing.T) {
	repo, mock, cleanup := newMockBudgetRepo(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("FROM budgets WHERE id = ?")).
		WithArgs(99).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "category", "limit_amount", "month"}))

	b, err := repo.GetByID(context.Background(), 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b != nil {
		t.Fatalf("expected nil budget, got %+v", b)
	}
}
