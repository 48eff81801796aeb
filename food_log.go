package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// validMealTypes is the set of allowed values for the meal_type enum.
// Reject unknown values with 400 rather than letting the DB return a cryptic 500.
var validMealTypes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
	"snack":     true,
	"other":     true,
}

// listFoodLogs returns food log entries for a given date.
// GET /api/food-logs?date=YYYY-MM-DD (defaults to today).
func (h *Handler) listFoodLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	entries, err := queryMany[foodLogEntry](h.db, c,
		`SELECT * FROM food_logs
		 WHERE user_id = @userID AND log_date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food logs")
		return
	}
	// Ensure empty array (not null) in JSON
	if entries == nil {
		entries = []foodLogEntry{}
	}

	c.JSON(http.StatusOK, entries)
}

// createFoodLog inserts a new food log entry.
// POST /api/food-logs. Defaults log_date to today if omitted.
func (h *Handler) createFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createFoodLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.FoodName == "" {
		apiError(c, http.StatusBadRequest, "food_name is required")
		return
	}
	if !validMealTypes[body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack, other")
		return
	}
	if body.CaloriesConsumed < 0 {
		apiError(c, http.StatusBadRequest, "calories_consumed must not be negative")
		return
	}
	if body.LogDate == "" {
		body.LogDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", body.LogDate); err != nil {
		apiError(c, http.StatusBadRequest, "invalid log_date, expected YYYY-MM-DD")
		return
	}

	entry, err := queryOne[foodLogEntry](h.db, c,
		`INSERT INTO food_logs (user_id, log_date, meal_type, food_name, serving_size,
		                        calories_consumed, protein_consumed, carbs_consumed, fat_consumed)
		 VALUES (@userID, @logDate, @mealType, @foodName, @servingSize,
		         @calories, @protein, @carbs, @fat)
		 RETURNING *`,
		pgx.NamedArgs{
			"userID": userID, "logDate": body.LogDate, "mealType": body.MealType,
			"foodName": body.FoodName, "servingSize": body.ServingSize,
			"calories": body.CaloriesConsumed, "protein": body.ProteinConsumed,
			"carbs": body.CarbsConsumed, "fat": body.FatConsumed,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create food log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// updateFoodLog updates an existing food log entry.
// PUT /api/food-logs/:id. Uses COALESCE so omitted fields keep their current value.
func (h *Handler) updateFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body struct {
		LogDate          *string  `json:"log_date"`
		MealType         *string  `json:"meal_type"`
		FoodName         *string  `json:"food_name"`
		ServingSize      *string  `json:"serving_size"`
		CaloriesConsumed *float64 `json:"calories_consumed"`
		ProteinConsumed  *float64 `json:"protein_consumed"`
		CarbsConsumed    *float64 `json:"carbs_consumed"`
		FatConsumed      *float64 `json:"fat_consumed"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.MealType != nil && !validMealTypes[*body.MealType] {
		apiError(c, http.StatusBadRequest, "meal_type must be one of: breakfast, lunch, dinner, snack, other")
		return
	}
	if body.LogDate != nil {
		if _, err := time.Parse("2006-01-02", *body.LogDate); err != nil {
			apiError(c, http.StatusBadRequest, "invalid log_date, expected YYYY-MM-DD")
			return
		}
	}

	entry, err := queryOne[foodLogEntry](h.db, c,
		`UPDATE food_logs SET
			log_date          = COALESCE(@logDate, log_date),
			meal_type         = COALESCE(@mealType, meal_type),
			food_name         = COALESCE(@foodName, food_name),
			serving_size      = COALESCE(@servingSize, serving_size),
			calories_consumed = COALESCE(@calories, calories_consumed),
			protein_consumed  = COALESCE(@protein, protein_consumed),
			carbs_consumed    = COALESCE(@carbs, carbs_consumed),
			fat_consumed      = COALESCE(@fat, fat_consumed),
			updated_at = now()
		 WHERE id = @id AND user_id = @userID
		 RETURNING *`,
		pgx.NamedArgs{
			"id": id, "userID": userID,
			"logDate": body.LogDate, "mealType": body.MealType, "foodName": body.FoodName,
			"servingSize": body.ServingSize, "calories": body.CaloriesConsumed,
			"protein": body.ProteinConsumed, "carbs": body.CarbsConsumed, "fat": body.FatConsumed,
		})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			apiError(c, http.StatusNotFound, "food log not found")
		} else {
			apiError(c, http.StatusInternalServerError, "failed to update food log")
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// deleteFoodLog removes a food log entry. Returns 204 on success.
// DELETE /api/food-logs/:id.
func (h *Handler) deleteFoodLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM food_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete food log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "food log not found")
		return
	}

	c.Status(http.StatusNoContent)
}
