package handlers

import (
	"net/http"
	"strconv"

	"fintrack/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating a transaction. Pointer fields distinguish
// missing keys from zero values so the "is required" messages are exact.
type createTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Description string   `json:"description"`
	Date        *string  `json:"date"`
	Type        *string  `json:"type"`
}

// queryInt parses an integer query parameter, falling back on def.
func queryInt(c *gin.Context, name string, def int) int {
	if s := c.Query(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			return v
		}
	}
	return def
}

// @Summary      List transactions
// @Description  Filter by category/type/date range, sort by date|amount|category, paginate (per_page capped at 100).
// @Tags         transactions
// @Produce      json
// @Param        category    query  string  false  "Exact category match"
// @Param        type        query  string  false  "income or expense"
// @Param        start_date  query  string  false  "Inclusive lower bound (YYYY-MM-DD)"
// @Param        end_date    query  string  false  "Inclusive upper bound (YYYY-MM-DD)"
// @Param        sort_by     query  string  false  "date | amount | category"  default(date)
// @Param        sort_order  query  string  false  "asc | desc"  default(desc)
// @Param        page        query  int     false  "Page number"  default(1)
// @Param        per_page    query  int     false  "Page size, max 100"  default(20)
// @Success      200  {object}  map[string]interface{}  "transactions, total, page, per_page, pages"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/transactions [get]
// @Security     BearerAuth
func (h *Handler) listTransactions(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "txn_list_no_identity")
		return
	}

	page, err := h.services.Transactions.List(c.Request.Context(), userID, service.TransactionQuery{
		Category:  c.Query("category"),
		Type:      c.Query("type"),
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		SortBy:    c.DefaultQuery("sort_by", "date"),
		SortOrder: c.DefaultQuery("sort_order", "desc"),
		Page:      queryInt(c, "page", 1),
		PerPage:   queryInt(c, "per_page", 20),
	})
	if err != nil {
		h.respondError(c, err, "txn_list_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transactions": page.Items,
		"total":        page.Total,
		"page":         page.Page,
		"per_page":     page.PerPage,
		"pages":        page.Pages,
	})
}

// @Summary      Create transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        body  body  createTransactionRequest  true  "Transaction payload"
// @Success      201  {object}  map[string]interface{}  "transaction"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /api/transactions [post]
// @Security     BearerAuth
func (h *Handler) createTransaction(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "txn_create_no_identity")
		return
	}

	var req createTransactionRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	required := []struct {
		name    string
		present bool
	}{
		{"amount", req.Amount != nil},
		{"category", req.Category != nil},
		{"date", req.Date != nil},
		{"type", req.Type != nil},
	}
	for _, f := range required {
		if !f.present {
			c.JSON(http.StatusBadRequest, gin.H{"error": f.name + " is required"})
			return
		}
	}

	txn, err := h.services.Transactions.Create(c.Request.Context(), userID, service.TransactionInput{
		Amount:      *req.Amount,
		Category:    *req.Category,
		Description: req.Description,
		Date:        *req.Date,
		Type:        *req.Type,
	})
	if err != nil {
		h.respondError(c, err, "txn_create_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": txn})
}

// @Summary      Delete transaction
// @Tags         transactions
// @Produce      json
// @Param        id  path  int  true  "Transaction ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/transactions/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTransaction(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "txn_delete_no_identity")
		return
	}
	id, ok := h.pathID(c, "Transaction not found")
	if !ok {
		return
	}

	if err := h.services.Transactions.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err, "txn_delete_failed", "user_id", userID, "txn_id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// @Summary      Export transactions as CSV
// @Tags         transactions
// @Produce      text/csv
// @Success      200  {string}  string  "CSV file"
// @Failure      401  {object}  map[string]string
// @Router       /api/transactions/export [get]
// @Security     BearerAuth
func (h *Handler) exportTransactions(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "txn_export_no_identity")
		return
	}

	content, err := h.services.TransactionsCSV(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "txn_export_failed", "user_id", userID)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=transactions.csv")
	c.Data(http.StatusOK, "text/csv", []byte(content))
}
