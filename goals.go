package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validGoalTypes is the set of allowed values for the goal_type enum.
var validGoalTypes = map[string]bool{
	"weight":         true,
	"daily_calories": true,
	"water":          true,
	"exercise":       true,
}

// validGoalStatuses is the set of allowed values for the goal status enum.
var validGoalStatuses = map[string]bool{
	"active":    true,
	"completed": true,
	"abandoned": true,
}

// listGoals returns the user's goals, optionally filtered by status.
// GET /api/goals?status=active.
func (h *Handler) listGoals(c *gin.Context) {
	userID := c.GetInt("user_id")
	status := c.Query("status")

	if status != "" && !validGoalStatuses[status] {
		apiError(c, http.StatusBadRequest, "status must be one of: active, completed, abandoned")
		return
	}

	// Empty @status matches all rows; otherwise filter to the requested one.
	goals, err := queryMany[goal](h.db, c,
		`SELECT * FROM goals
		 WHERE user_id = @userID AND (@status = '' OR status::text = @status)
		 ORDER BY created_at DESC`,
		pgx.NamedArgs{"userID": userID, "status": status})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch goals")
		return
	}
	if goals == nil {
		goals = []goal{}
	}

	c.JSON(http.StatusOK, goals)
}

// createGoal inserts a new goal with status "active".
// POST /api/goals.
func (h *Handler) createGoal(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createGoalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if !validGoalTypes[body.GoalType] {
		apiError(c, http.StatusBadRequest, "goal_type must be one of: weight, daily_calories, water, exercise")
		return
	}
	if body.TargetValue <= 0 {
		apiError(c, http.StatusBadRequest, "target_value must be positive")
		return
	}
	if body.TargetDate != nil {
		if _, err := time.Parse("2006-01-02", *body.TargetDate); err != nil {
			apiError(c, http.StatusBadRequest, "invalid target_date, expected YYYY-MM-DD")
			return
		}
	}

	g, err := queryOne[goal](h.db, c,
		`INSERT INTO goals (user_id, goal_type, target_value, target_date, status)
		 VALUES (@userID, @goalType, @targetValue, @targetDate, 'active')
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "goalType": body.GoalType,
			"targetValue": body.TargetValue, "targetDate": body.TargetDate,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create goal")
		return
	}

	c.JSON(http.StatusCreated, g)
}

// updateGoal updates an existing goal.
// PUT /api/goals/:id. Uses COALESCE so omitted fields keep their current value.
func (h *Handler) updateGoal(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body updateGoalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.GoalType != nil && !validGoalTypes[*body.GoalType] {
		apiError(c, http.StatusBadRequest, "goal_type must be one of: weight, daily_calories, water, exercise")
		return
	}
	if body.Status != nil && !validGoalStatuses[*body.Status] {
		apiError(c, http.StatusBadRequest, "status must be one of: active, completed, abandoned")
		return
	}
	if body.TargetValue != nil && *body.TargetValue <= 0 {
		apiError(c, http.StatusBadRequest, "target_value must be positive")
		return
	}
	if body.TargetDate != nil {
		if _, err := time.Parse("2006-01-02", *body.TargetDate); err != nil {
			apiError(c, http.StatusBadRequest, "invalid target_date, expected YYYY-MM-DD")
			return
		}
	}

	g, err := queryOne[goal](h.db, c,
		`UPDATE goals SET
			goal_type    = COALESCE(@goalType, goal_type),
			target_value = COALESCE(@targetValue, target_value),
			target_date  = COALESCE(@targetDate, target_date),
			status       = COALESCE(@status, status),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"goalType": body.GoalType, "targetValue": body.TargetValue,
			"targetDate": body.TargetDate, "status": body.Status,
		})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "goal not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update goal")
		}
		return
	}

	c.JSON(http.StatusOK, g)
}

// deleteGoal removes a goal. Returns 204 on success.
// DELETE /api/goals/:id.
func (h *Handler) deleteGoal(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM goals WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete goal")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "goal not found")
		return
	}

	c.Status(http.StatusNoContent)
}
