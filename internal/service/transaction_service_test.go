package service

import (
	"context"
	"testing"

	"fintrack/internal/apperr"
	"fintrack/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      TransactionInput
		wantMsg string
	}{
		{
			name:    "zero amount",
			in:      TransactionInput{Amount: 0, Category: "Food", Date: "2025-01-15", Type: "expense"},
			wantMsg: "Amount must be positive",
		},
		{
			name:    "negative amount",
			in:      TransactionInput{Amount: -5, Category: "Food", Date: "2025-01-15", Type: "expense"},
			wantMsg: "Amount must be positive",
		},
		{
			name:    "bad type",
			in:      TransactionInput{Amount: 10, Category: "Food", Date: "2025-01-15", Type: "transfer"},
			wantMsg: "Type must be income or expense",
		},
		{
			name:    "bad date",
			in:      TransactionInput{Amount: 10, Category: "Food", Date: "15/01/2025", Type: "expense"},
			wantMsg: "Invalid date format, use YYYY-MM-DD",
		},
		{
			name:    "impossible date",
			in:      TransactionInput{Amount: 10, Category: "Food", Date: "2025-02-30", Type: "expense"},
			wantMsg: "Invalid date format, use YYYY-MM-DD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTransactionService(&fakeTxnRepo{})
			_, err := svc.Create(context.Background(), 1, tt.in)
			ae, ok := apperr.From(err)
			require.True(t, ok, "expected typed error, got %v", err)
			assert.Equal(t, apperr.KindValidation, ae.Kind)
			assert.Equal(t, tt.wantMsg, ae.Message)
		})
	}
}

func TestTransactionService_Create_RoundTrip(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc := NewTransactionService(repo)

	created, err := svc.Create(context.Background(), 1, TransactionInput{
		Amount: 42.5, Category: "Food", Description: "groceries", Date: "2025-01-15", Type: "expense",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 1, created.UserID)

	page, err := svc.List(context.Background(), 1, TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	got := page.Items[0]
	assert.Equal(t, 42.5, got.Amount)
	assert.Equal(t, "Food", got.Category)
	assert.Equal(t, "groceries", got.Description)
	assert.Equal(t, "2025-01-15", got.Date)
	assert.Equal(t, "expense", got.Type)
}

func TestTransactionService_List_NormalizesQuery(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc := NewTransactionService(repo)

	_, err := svc.List(context.Background(), 1, TransactionQuery{
		SortBy: "password_hash", SortOrder: "sideways", Page: -3, PerPage: 10_000,
	})
	require.NoError(t, err)

	assert.Equal(t, "date", repo.lastFilter.SortBy)
	assert.Equal(t, "DESC", repo.lastFilter.SortOrder)
	assert.Equal(t, 0, repo.lastFilter.Offset)
	assert.Equal(t, maxPerPage, repo.lastFilter.Limit)
}

func TestTransactionService_List_FilterAndTotal(t *testing.T) {
	repo := &fakeTxnRepo{items: []models.Transaction{
		{ID: 1, UserID: 1, Amount: 10, Category: "Food", Date: "2025-01-01", Type: "expense"},
		{ID: 2, UserID: 1, Amount: 20, Category: "Food", Date: "2025-01-02", Type: "expense"},
		{ID: 3, UserID: 1, Amount: 30, Category: "Rent", Date: "2025-01-03", Type: "expense"},
		{ID: 4, UserID: 2, Amount: 40, Category: "Food", Date: "2025-01-04", Type: "expense"},
	}}
	svc := NewTransactionService(repo)

	page, err := svc.List(context.Background(), 1, TransactionQuery{Category: "Food", PerPage: 1})
	require.NoError(t, err)

	// total counts every matching row for the caller, not the page size
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.Pages)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Food", page.Items[0].Category)
	assert.Equal(t, "2025-01-02", page.Items[0].Date) // date desc default
}

func TestTransactionService_List_RejectsBadDates(t *testing.T) {
	svc := NewTransactionService(&fakeTxnRepo{})

	_, err := svc.List(context.Background(), 1, TransactionQuery{StartDate: "garbage"})
	ae, ok := apperr.From(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, ae.Kind)

	_, err = svc.List(context.Background(), 1, TransactionQuery{EndDate: "2025-13-01"})
	_, ok = apperr.From(err)
	require.True(t, ok)
}

func TestTransactionService_Delete(t *testing.T) {
	repo := &fakeTxnRepo{items: []models.Transaction{
		{ID: 1, UserID: 1, Amount: 10, Category: "Food", Date: "2025-01-01", Type: "expense"},
		{ID: 2, UserID: 2, Amount: 20, Category: "Food", Date: "2025-01-02", Type: "expense"},
	}}
	svc := NewTransactionService(repo)

	t.Run("not found", func(t *testing.T) {
		err := svc.Delete(context.Background(), 1, 99)
		ae, ok := apperr.From(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindNotFound, ae.Kind)
		assert.Equal(t, "Transaction not found", ae.Message)
	})

	t.Run("foreign transaction", func(t *testing.T) {
		err := svc.Delete(context.Background(), 1, 2)
		ae, ok := apperr.From(err)
		require.True(t, ok)
		assert.Equal(t, apperr.KindForbidden, ae.Kind)
	})

	t.Run("own transaction", func(t *testing.T) {
		require.NoError(t, svc.Delete(context.Background(), 1, 1))
		got, err := repo.GetByID(context.Background(), 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}
