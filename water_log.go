package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// listWaterLogs returns water log entries and their total for a given date.
// GET /api/water-logs?date=YYYY-MM-DD (defaults to today).
// Response: { "entries": [...], "total_ml": 1500 }.
func (h *Handler) listWaterLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	entries, err := queryMany[waterLogEntry](h.db, c,
		`SELECT * FROM water_logs
		 WHERE user_id = @userID AND log_date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch water logs")
		return
	}
	if entries == nil {
		entries = []waterLogEntry{}
	}

	var totalML float64
	for _, e := range entries {
		totalML += e.AmountML
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total_ml": totalML})
}

// createWaterLog inserts a water intake entry.
// POST /api/water-logs. Defaults log_date to today if omitted.
func (h *Handler) createWaterLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createWaterLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.AmountML <= 0 || body.AmountML > 10000 {
		apiError(c, http.StatusBadRequest, "amount_ml must be greater than 0 and at most 10000")
		return
	}
	if body.LogDate == "" {
		body.LogDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", body.LogDate); err != nil {
		apiError(c, http.StatusBadRequest, "invalid log_date, expected YYYY-MM-DD")
		return
	}

	entry, err := queryOne[waterLogEntry](h.db, c,
		`INSERT INTO water_logs (user_id, log_date, amount_ml)
		 VALUES (@userID, @logDate, @amountML)
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "logDate": body.LogDate, "amountML": body.AmountML})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create water log")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// deleteWaterLog removes a water log entry. Returns 204 on success.
// DELETE /api/water-logs/:id.
func (h *Handler) deleteWaterLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM water_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete water log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "water log not found")
		return
	}

	c.Status(http.StatusNoContent)
}
