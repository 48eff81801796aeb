package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

// listWorkoutLogs returns workout sessions for a given date.
// GET /api/workout-logs?date=YYYY-MM-DD (defaults to today).
func (h *Handler) listWorkoutLogs(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	logs, err := queryMany[workoutLog](h.db, c,
		`SELECT * FROM workout_logs
		 WHERE user_id = @userID AND log_date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workout logs")
		return
	}
	if logs == nil {
		logs = []workoutLog{}
	}

	c.JSON(http.StatusOK, logs)
}

// createWorkoutLog inserts a new workout session.
// POST /api/workout-logs. Defaults log_date to today if omitted.
func (h *Handler) createWorkoutLog(c *gin.Context) {
	userID := c.GetInt("user_id")

	var body createWorkoutLogRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.Name == "" {
		apiError(c, http.StatusBadRequest, "name is required")
		return
	}
	if body.LogDate == "" {
		body.LogDate = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", body.LogDate); err != nil {
		apiError(c, http.StatusBadRequest, "invalid log_date, expected YYYY-MM-DD")
		return
	}

	w, err := queryOne[workoutLog](h.db, c,
		`INSERT INTO workout_logs (user_id, log_date, name, notes)
		 VALUES (@userID, @logDate, @name, @notes)
		 RETURNING *`,
		pgx.NamedArgs{"userID": userID, "logDate": body.LogDate, "name": body.Name, "notes": body.Notes})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create workout log")
		return
	}

	c.JSON(http.StatusCreated, w)
}

// deleteWorkoutLog removes a workout session and its exercise details
// (ON DELETE CASCADE). Returns 204 on success.
// DELETE /api/workout-logs/:id.
func (h *Handler) deleteWorkoutLog(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	result, err := h.db.Exec(c,
		"DELETE FROM workout_logs WHERE id = @id AND user_id = @userID",
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete workout log")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "workout log not found")
		return
	}

	c.Status(http.StatusNoContent)
}

// listExerciseDetails returns the logged sets/intervals for a workout session.
// Ownership is enforced through the join — a session id belonging to another
// user reads as not found.
// GET /api/workout-logs/:id/exercises.
func (h *Handler) listExerciseDetails(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	details, err := queryMany[exerciseLogDetail](h.db, c,
		`SELECT d.* FROM exercise_log_details d
		 JOIN workout_logs w ON w.id = d.workout_log_id
		 WHERE d.workout_log_id = @id AND w.user_id = @userID
		 ORDER BY d.created_at`,
		pgx.NamedArgs{"id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch exercise details")
		return
	}
	if details == nil {
		details = []exerciseLogDetail{}
	}

	c.JSON(http.StatusOK, details)
}

// createExerciseDetail logs one set or interval under a workout session.
// POST /api/workout-logs/:id/exercises.
func (h *Handler) createExerciseDetail(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")

	var body createExerciseDetailRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if body.ExerciseName == "" {
		apiError(c, http.StatusBadRequest, "exercise_name is required")
		return
	}
	if body.DurationAchievedSeconds != nil && *body.DurationAchievedSeconds < 0 {
		apiError(c, http.StatusBadRequest, "duration_achieved_seconds must not be negative")
		return
	}

	// Verify the session exists and belongs to the caller before inserting.
	var ownerID int
	if err := h.db.QueryRow(c,
		"SELECT user_id FROM workout_logs WHERE id = @id",
		pgx.NamedArgs{"id": id}).Scan(&ownerID); err != nil || ownerID != userID {
		apiError(c, http.StatusNotFound, "workout log not found")
		return
	}

	d, err := queryOne[exerciseLogDetail](h.db, c,
		`INSERT INTO exercise_log_details
		   (workout_log_id, exercise_name, set_number, reps_achieved, weight_kg_used, duration_achieved_seconds)
		 VALUES (@workoutLogID, @exerciseName, @setNumber, @reps, @weightKG, @durationSeconds)
		 RETURNING *`,
		pgx.NamedArgs{
			"workoutLogID": id, "exerciseName": body.ExerciseName,
			"setNumber": body.SetNumber, "reps": body.RepsAchieved,
			"weightKG": body.WeightKGUsed, "durationSeconds": body.DurationAchievedSeconds,
		})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create exercise detail")
		return
	}

	c.JSON(http.StatusCreated, d)
}

// deleteExerciseDetail removes one logged set/interval. Returns 204 on success.
// DELETE /api/workout-logs/:id/exercises/:detailId.
func (h *Handler) deleteExerciseDetail(c *gin.Context) {
	userID := c.GetInt("user_id")
	id := c.Param("id")
	detailID := c.Param("detailId")

	result, err := h.db.Exec(c,
		`DELETE FROM exercise_log_details d
		 USING workout_logs w
		 WHERE d.id = @detailID AND d.workout_log_id = @id
		   AND w.id = d.workout_log_id AND w.user_id = @userID`,
		pgx.NamedArgs{"detailID": detailID, "id": id, "userID": userID})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to delete exercise detail")
		return
	}
	if result.RowsAffected() == 0 {
		apiError(c, http.StatusNotFound, "exercise detail not found")
		return
	}

	c.Status(http.StatusNoContent)
}
