package main

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateOnly wraps time.Time to serialize as "YYYY-MM-DD" in JSON.
type DateOnly struct{ time.Time }

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Time.Format("2006-01-02") + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	t, err := time.Parse(`"2006-01-02"`, string(b))
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// ScanDate implements pgtype.DateScanner so pgx can scan PostgreSQL date
// columns (OID 1082) into DateOnly. NULL values zero the time and return nil
// so that *DateOnly pointer fields can be set to nil by pgx's NULL handling.
func (d *DateOnly) ScanDate(v pgtype.Date) error {
	if !v.Valid {
		d.Time = time.Time{}
		return nil
	}
	d.Time = v.Time
	return nil
}

/* ─── Domain structs ─────────────────────────────────────────────────── */

// user maps to the users table. PasswordHash is hidden from JSON responses.
type user struct {
	ID           int        `json:"id" db:"id"`
	Username     string     `json:"username" db:"username"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	CreatedAt    *time.Time `json:"created_at" db:"created_at"`
}

// userProfile maps to user_profiles. One row per user; all body-stat fields
// are nullable so freshly-registered users work before any profile data is
// saved. Gender and activity level are stored as free text and only
// interpreted at calculation time.
type userProfile struct {
	UserID        int       `json:"user_id" db:"user_id"`
	DateOfBirth   *DateOnly `json:"date_of_birth" db:"date_of_birth"`
	WeightKG      *float64  `json:"weight_kg" db:"weight_kg"`
	HeightCM      *float64  `json:"height_cm" db:"height_cm"`
	Gender        *string   `json:"gender" db:"gender"`
	ActivityLevel *string   `json:"activity_level" db:"activity_level"`

	// Computed fields — derived from the profile on every fetch; never stored.
	// db:"-" tells RowToStructByName to skip these during scanning.
	Metabolic *metabolicResult `json:"metabolic,omitempty" db:"-"`
}

// metabolicResult holds the derived energy numbers for a profile. Fields are
// pointers: a nil field means the profile was missing the inputs needed to
// compute it, which is not an error.
type metabolicResult struct {
	Age  *int `json:"age"`
	BMR  *int `json:"bmr"`
	TDEE *int `json:"tdee"`
}

// foodLogEntry maps to food_logs. Nullable numeric fields use pointers so pgx
// can scan NULLs and JSON omits them naturally.
type foodLogEntry struct {
	ID               int        `json:"id" db:"id"`
	UserID           int        `json:"user_id" db:"user_id"`
	LogDate          DateOnly   `json:"log_date" db:"log_date"`
	MealType         string     `json:"meal_type" db:"meal_type"`
	FoodName         string     `json:"food_name" db:"food_name"`
	ServingSize      *string    `json:"serving_size" db:"serving_size"`
	CaloriesConsumed float64    `json:"calories_consumed" db:"calories_consumed"`
	ProteinConsumed  *float64   `json:"protein_consumed" db:"protein_consumed"`
	CarbsConsumed    *float64   `json:"carbs_consumed" db:"carbs_consumed"`
	FatConsumed      *float64   `json:"fat_consumed" db:"fat_consumed"`
	CreatedAt        *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at" db:"updated_at"`
}

// workoutLog maps to workout_logs: one row per workout session on a date.
type workoutLog struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	LogDate   DateOnly   `json:"log_date" db:"log_date"`
	Name      string     `json:"name" db:"name"`
	Notes     *string    `json:"notes" db:"notes"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// exerciseLogDetail maps to exercise_log_details: one row per logged set or
// interval inside a workout session. Duration, reps, and weight are all
// optional — cardio entries carry a duration, strength entries usually only
// reps and weight.
type exerciseLogDetail struct {
	ID                      int        `json:"id" db:"id"`
	WorkoutLogID            int        `json:"workout_log_id" db:"workout_log_id"`
	ExerciseName            string     `json:"exercise_name" db:"exercise_name"`
	SetNumber               *int       `json:"set_number" db:"set_number"`
	RepsAchieved            *int       `json:"reps_achieved" db:"reps_achieved"`
	WeightKGUsed            *float64   `json:"weight_kg_used" db:"weight_kg_used"`
	DurationAchievedSeconds *int       `json:"duration_achieved_seconds" db:"duration_achieved_seconds"`
	CreatedAt               *time.Time `json:"created_at" db:"created_at"`
}

// waterLogEntry maps to water_logs.
type waterLogEntry struct {
	ID        int        `json:"id" db:"id"`
	UserID    int        `json:"user_id" db:"user_id"`
	LogDate   DateOnly   `json:"log_date" db:"log_date"`
	AmountML  float64    `json:"amount_ml" db:"amount_ml"`
	CreatedAt *time.Time `json:"created_at" db:"created_at"`
}

// goal maps to goals.
type goal struct {
	ID          int        `json:"id" db:"id"`
	UserID      int        `json:"user_id" db:"user_id"`
	GoalType    string     `json:"goal_type" db:"goal_type"`
	TargetValue float64    `json:"target_value" db:"target_value"`
	TargetDate  *DateOnly  `json:"target_date" db:"target_date"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   *time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at" db:"updated_at"`
}

/* ─── Daily summary types ────────────────────────────────────────────── */

// foodDayRow is the shape of each food row fed to the daily aggregator.
// The numeric columns are selected as text on purpose: upstream rows have
// historically arrived as numeric-looking strings, and the aggregator parses
// them defensively (parse-or-zero) instead of trusting the driver.
type foodDayRow struct {
	MealType         string `db:"meal_type"`
	CaloriesConsumed string `db:"calories_consumed"`
	ProteinConsumed  string `db:"protein_consumed"`
	CarbsConsumed    string `db:"carbs_consumed"`
	FatConsumed      string `db:"fat_consumed"`
}

// exerciseDayRow is the shape of each exercise row fed to the daily aggregator.
type exerciseDayRow struct {
	ExerciseName            string   `db:"exercise_name"`
	DurationAchievedSeconds *int     `db:"duration_achieved_seconds"`
	RepsAchieved            *int     `db:"reps_achieved"`
	WeightKGUsed            *float64 `db:"weight_kg_used"`
}

// macroTotals is the macros block of the daily summary.
type macroTotals struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// dailyCalorieSummary is the response shape for GET /api/progress/daily.
// Built fresh per request and never persisted; the breakdown maps always
// contain every bucket, zero-valued when nothing landed in it.
type dailyCalorieSummary struct {
	Date              string             `json:"date"`
	CaloriesConsumed  float64            `json:"calories_consumed"`
	CaloriesBurned    float64            `json:"calories_burned"`
	NetCalories       float64            `json:"net_calories"`
	FoodBreakdown     map[string]float64 `json:"food_breakdown"`
	ExerciseBreakdown map[string]float64 `json:"exercise_breakdown"`
	Macros            macroTotals        `json:"macros"`
}

/* ─── Request types ──────────────────────────────────────────────────── */

// registerRequest is the request body for POST /api/auth/register.
type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the request body for POST /api/auth/login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// updateProfileRequest is the request body for PUT /api/profile.
// All fields are pointers — only non-nil fields get written to the database.
type updateProfileRequest struct {
	DateOfBirth   *string  `json:"date_of_birth"` // YYYY-MM-DD string, stored as date
	WeightKG      *float64 `json:"weight_kg"`
	HeightCM      *float64 `json:"height_cm"`
	Gender        *string  `json:"gender"`
	ActivityLevel *string  `json:"activity_level"`
}

// createFoodLogRequest is the request body for POST /api/food-logs.
type createFoodLogRequest struct {
	LogDate          string   `json:"log_date"`
	MealType         string   `json:"meal_type"`
	FoodName         string   `json:"food_name"`
	ServingSize      *string  `json:"serving_size"`
	CaloriesConsumed float64  `json:"calories_consumed"`
	ProteinConsumed  *float64 `json:"protein_consumed"`
	CarbsConsumed    *float64 `json:"carbs_consumed"`
	FatConsumed      *float64 `json:"fat_consumed"`
}

// createWorkoutLogRequest is the request body for POST /api/workout-logs.
type createWorkoutLogRequest struct {
	LogDate string  `json:"log_date"`
	Name    string  `json:"name"`
	Notes   *string `json:"notes"`
}

// createExerciseDetailRequest is the request body for
// POST /api/workout-logs/:id/exercises.
type createExerciseDetailRequest struct {
	ExerciseName            string   `json:"exercise_name"`
	SetNumber               *int     `json:"set_number"`
	RepsAchieved            *int     `json:"reps_achieved"`
	WeightKGUsed            *float64 `json:"weight_kg_used"`
	DurationAchievedSeconds *int     `json:"duration_achieved_seconds"`
}

// createWaterLogRequest is the request body for POST /api/water-logs.
type createWaterLogRequest struct {
	LogDate  string  `json:"log_date"`
	AmountML float64 `json:"amount_ml"`
}

// createGoalRequest is the request body for POST /api/goals.
type createGoalRequest struct {
	GoalType    string  `json:"goal_type"`
	TargetValue float64 `json:"target_value"`
	TargetDate  *string `json:"target_date"`
}

// updateGoalRequest is the request body for PUT /api/goals/:id.
type updateGoalRequest struct {
	GoalType    *string  `json:"goal_type"`
	TargetValue *float64 `json:"target_value"`
	TargetDate  *string  `json:"target_date"`
	Status      *string  `json:"status"`
}
