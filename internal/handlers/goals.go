package handlers

import (
	"net/http"

	"fintrack/internal/service"

	"github.com/gin-gonic/gin"
)

type createGoalRequest struct {
	Name          string   `json:"name"`
	TargetAmount  float64  `json:"target_amount"`
	CurrentAmount float64  `json:"current_amount"`
	Deadline      *string  `json:"deadline"`
	Icon          string   `json:"icon"`
}

type updateGoalRequest struct {
	Name          *string  `json:"name"`
	TargetAmount  *float64 `json:"target_amount"`
	CurrentAmount *float64 `json:"current_amount"`
	Deadline      *string  `json:"deadline"`
	Icon          *string  `json:"icon"`
}

func (h *Handler) listGoals(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "goal_list_no_identity")
		return
	}

	goals, err := h.services.Goals.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err, "goal_list_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (h *Handler) createGoal(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "goal_create_no_identity")
		return
	}

	var req createGoalRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	if req.Name == "" || req.TargetAmount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name and target amount are required"})
		return
	}

	goal, err := h.services.Goals.Create(c.Request.Context(), userID, service.GoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		Icon:          req.Icon,
	})
	if err != nil {
		h.respondError(c, err, "goal_create_failed", "user_id", userID)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *Handler) updateGoal(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "goal_update_no_identity")
		return
	}
	id, ok := h.pathID(c, "Goal not found")
	if !ok {
		return
	}

	var req updateGoalRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	goal, err := h.services.Goals.Update(c.Request.Context(), userID, id, service.GoalPatch{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount,
		Deadline:      req.Deadline,
		Icon:          req.Icon,
	})
	if err != nil {
		h.respondError(c, err, "goal_update_failed", "user_id", userID, "goal_id", id)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *Handler) deleteGoal(c *gin.Context) {
	userID, err := callerID(c)
	if err != nil {
		h.respondError(c, err, "goal_delete_no_identity")
		return
	}
	id, ok := h.pathID(c, "Goal not found")
	if !ok {
		return
	}

	if err := h.services.Goals.Delete(c.Request.Context(), userID, id); err != nil {
		h.respondError(c, err, "goal_delete_failed", "user_id", userID, "goal_id", id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Goal deleted"})
}
