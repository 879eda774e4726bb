package service

import (
	"context"
	"time"

	"fintrack/internal/apperr"
	"fintrack/internal/models"
	"fintrack/internal/repository"
)

const (
	defaultPerPage = 20
	maxPerPage     = 100

	dateLayout = "2006-01-02"
)

// User-facing transaction messages.
const (
	msgAmountNotPositive  = "Amount must be positive"
	msgInvalidType        = "Type must be income or expense"
	msgInvalidDate        = "Invalid date format, use YYYY-MM-DD"
	msgTransactionMissing = "Transaction not found"
	msgNotOwner           = "Unauthorized"
)

type TransactionService struct {
	txns repository.Transactions
}

func NewTransactionService(txns repository.Transactions) *TransactionService {
	return &TransactionService{txns: txns}
}

// normalizeQuery applies defaults and caps: unknown sort columns fall back
// to date, unknown orders to descending, per_page is capped at 100.
func normalizeQuery(q TransactionQuery) TransactionQuery {
	switch q.SortBy {
	case "amount", "category":
	default:
		q.SortBy = "date"
	}
	if q.SortOrder != "asc" {
		q.SortOrder = "desc"
	}
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PerPage < 1 {
		q.PerPage = defaultPerPage
	}
	if q.PerPage > maxPerPage {
		q.PerPage = maxPerPage
	}
	return q
}

// validDate reports whether s is a valid YYYY-MM-DD calendar date.
func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// List returns one page of the caller's transactions with total/pages
// metadata. The total counts every row matching the filter, not the page.
func (s *TransactionService) List(ctx context.Context, userID int, q TransactionQuery) (TransactionPage, error) {
	q = normalizeQuery(q)

	if q.StartDate != "" && !validDate(q.StartDate) {
		return TransactionPage{}, apperr.Invalid("Invalid start_date format, use YYYY-MM-DD")
	}
	if q.EndDate != "" && !validDate(q.EndDate) {
		return TransactionPage{}, apperr.Invalid("Invalid end_date format, use YYYY-MM-DD")
	}

	order := "DESC"
	if q.SortOrder == "asc" {
		order = "ASC"
	}
	items, total, err := s.txns.List(ctx, userID, repository.TransactionFilter{
		Category:  q.Category,
		Type:      q.Type,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
		SortBy:    q.SortBy,
		SortOrder: order,
		Limit:     q.PerPage,
		Offset:    (q.Page - 1) * q.PerPage,
	})
	if err != nil {
		return TransactionPage{}, err
	}

	return TransactionPage{
		Items:   items,
		Total:   total,
		Page:    q.Page,
		PerPage: q.PerPage,
		Pages:   (total + q.PerPage - 1) / q.PerPage,
	}, nil
}

// Create validates and stores a new transaction. Amount must be positive,
// type one of the two literals, date a valid calendar date.
func (s *TransactionService) Create(ctx context.Context, userID int, in TransactionInput) (models.Transaction, error) {
	if in.Type != models.TypeIncome && in.Type != models.TypeExpense {
		return models.Transaction{}, apperr.Invalid(msgInvalidType)
	}
	if in.Amount <= 0 {
		return models.Transaction{}, apperr.Invalid(msgAmountNotPositive)
	}
	if !validDate(in.Date) {
		return models.Transaction{}, apperr.Invalid(msgInvalidDate)
	}

	t := models.Transaction{
		UserID:      userID,
		Amount:      in.Amount,
		Category:    in.Category,
		Description: in.Description,
		Date:        in.Date,
		Type:        in.Type,
	}
	id, err := s.txns.Create(ctx, t)
	if err != nil {
		return models.Transaction{}, err
	}
	t.ID = id
	return t, nil
}

// Delete removes the caller's transaction. A foreign transaction yields a
// 403, a missing one a 404.
func (s *TransactionService) Delete(ctx context.Context, userID, id int) error {
	t, err := s.txns.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return apperr.NotFound(msgTransactionMissing)
	}
	if t.UserID != userID {
		return apperr.Denied(msgNotOwner)
	}
	return s.txns.Delete(ctx, id)
}
