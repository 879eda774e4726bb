package handlers

import (
	"net/http"

	"fintrack/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating a budget; pointer fields give exact
// "is required" messages.
type createBudgetRequest struct {
	Category    *string  `json:"category"`
	LimitAmount *float64 `json:"limit_amount"`
	Month       *string  `json:"month"`
}

// Request DTO for partially updating a budget; nil means "leave as is".
type updateBudgetRequest struct {
	Category    *string  `json:"category"`
	LimitAmount *float64 `json:"limit_amount"`
	Month       *string  `json:"month"`
}

// @Summary      List budgets with spending status
// @Description  Each budget carries spent (expense total for its category+month), percentage and status (ok|warning|exceeded).
// @Tags         budgets
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "budgets"
// @Failure      401  {object}  map[string]string
// @Router       /api/budgets [get]
// @Security     BearerAuth
func (h *Handler) listBudgets(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "budget_list_no_identity")
		return
	}

	budgets, err := h.services.Budgets.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "budget_list_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budgets": budgets})
}

// @Summary      Create budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        body  body  createBudgetRequest  true  "Budget payload"
// @Success      201  {object}  map[string]interface{}  "budget"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /api/budgets [post]
// @Security     BearerAuth
func (h *Handler) createBudget(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "budget_create_no_identity")
		return
	}

	var req createBudgetRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	required := []struct {
		name    string
		present bool
	}{
		{"category", req.Category != nil},
		{"limit_amount", req.LimitAmount != nil},
		{"month", req.Month != nil},
	}
	for _, f := range required {
		if !f.present {
			c.JSON(http.StatusBadRequest, gin.H{"error": f.name + " is required"})
			return
		}
	}

	budget, err := h.services.Budgets.Create(c.Request.Context(), userID, service.BudgetInput{
		Category:    *req.Category,
		LimitAmount: *req.LimitAmount,
		Month:       *req.Month,
	})
	if err != nil {
		h.respondError(c, err, "budget_create_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"budget": budget})
}

// @Summary      Update budget (partial)
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Param        id    path  int                  true  "Budget ID"
// @Param        body  body  updateBudgetRequest  true  "Fields to change"
// @Success      200  {object}  map[string]interface{}  "budget"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/budgets/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateBudget(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "budget_update_no_identity")
		return
	}
	id, ok := h.pathID(c, "Budget not found")
	if !ok {
		return
	}

	var req updateBudgetRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	budget, err := h.services.Budgets.Update(c.Request.Context(), userID, id, service.BudgetPatch{
		Category:    req.Category,
		LimitAmount: req.LimitAmount,
		Month:       req.Month,
	})
	if err != nil {
		h.respondError(c, err, "budget_update_failed", "user_id", userID, "budget_id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"budget": budget})
}

// @Summary      Delete budget
// @Tags         budgets
// @Produce      json
// @Param        id  path  int  true  "Budget ID"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/budgets/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteBudget(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "budget_delete_no_identity")
		return
	}
	id, ok := h.pathID(c, "Budget not found")
	if !ok {
		return
	}

	if err := h.services.Budgets.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err, "budget_delete_failed", "user_id", userID, "budget_id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Budget deleted"})
}
