package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"fintrack/internal/repository"
)

// csvHeader is the fixed export header row.
var csvHeader = []string{"ID", "Date", "Type", "Category", "Amount", "Description"}

// ExportService renders a user's transactions as CSV text.
type ExportService struct {
	txns repository.Transactions
}

func NewExportService(txns repository.Transactions) *ExportService {
	return &ExportService{txns: txns}
}

// TransactionsCSV returns the caller's transactions as CSV, newest date
// first. Amounts are written in their shortest decimal form (50, 12.5).
func (s *ExportService) TransactionsCSV(ctx context.Context, userID int) (string, error) {
	txns, err := s.txns.ListByUser(ctx, userID)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range txns {
		row := []string{
			strconv.Itoa(t.ID),
			t.Date,
			t.Type,
			t.Category,
			strconv.FormatFloat(t.Amount, 'f', -1, 64),
			t.Description,
		}
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return buf.String(), nil
}
