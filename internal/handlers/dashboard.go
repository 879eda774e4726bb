package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Dashboard summary
// @Description  Balance, totals, category breakdown, recent transactions, 6-month trend and forecast.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  service.DashboardSummary
// @Failure      401  {object}  map[string]string
// @Router       /api/dashboard [get]
// @Security     BearerAuth
func (h *Handler) getDashboard(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "dashboard_no_identity")
		return
	}

	summary, err := h.services.Summary(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "dashboard_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, summary)
}
