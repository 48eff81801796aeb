package main

import (
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
)

/* ─── Exercise classification ────────────────────────────────────────── */

// metValues maps each exercise category to its MET (metabolic equivalent)
// constant. Calories burned = MET * weight_kg * duration_hours.
var metValues = map[string]float64{
	"running":    8.0,
	"cycling":    7.5,
	"swimming":   6.0,
	"walking":    3.5,
	"rowing":     7.0,
	"hiit":       8.5,
	"elliptical": 6.5,
	"cardio":     7.0,
	"stretching": 2.5,
	"strength":   3.5,
}

// exercisePattern pairs name substrings with the category they select.
type exercisePattern struct {
	substrings []string
	category   string
}

// exercisePatterns is checked in order; the first match wins. The order
// matters: "run" must beat "cardio" so that e.g. "treadmill run" classifies
// as running, not generic cardio.
var exercisePatterns = []exercisePattern{
	{[]string{"run", "jog"}, "running"},
	{[]string{"cycle", "bike"}, "cycling"},
	{[]string{"swim"}, "swimming"},
	{[]string{"walk"}, "walking"},
	{[]string{"row"}, "rowing"},
	{[]string{"hiit", "interval"}, "hiit"},
	{[]string{"elliptical"}, "elliptical"},
	{[]string{"cardio", "treadmill"}, "cardio"},
	{[]string{"stretch", "yoga", "flexibility"}, "stretching"},
}

// classifyExercise maps a free-text exercise name to a MET category by
// case-insensitive substring matching. Anything that matches no pattern is
// treated as strength work (the catch-all for named lifts like "Bench Press").
func classifyExercise(name string) string {
	lower := strings.ToLower(name)
	for _, p := range exercisePatterns {
		for _, sub := range p.substrings {
			if strings.Contains(lower, sub) {
				return p.category
			}
		}
	}
	return "strength"
}

// summaryBucket collapses the MET categories into the three buckets of the
// daily summary's exercise breakdown.
func summaryBucket(category string) string {
	switch category {
	case "stretching":
		return "stretching"
	case "strength":
		return "strength"
	default:
		return "cardio"
	}
}

/* ─── Duration estimation ────────────────────────────────────────────── */

// Strength-set duration tiers: sets with heavier loads get longer estimated
// durations. These are rough heuristics, kept as named constants so the
// thresholds can be tuned in one place.
const (
	heavySetWeightKG  = 50.0
	mediumSetWeightKG = 20.0

	heavySetMinutes   = 3.0
	mediumSetMinutes  = 2.0
	defaultSetMinutes = 1.0
)

// estimateDurationMinutes resolves a logged exercise to a duration estimate.
// Priority: an explicit duration (floored at one minute), then a weight-tiered
// guess for rep work, then one minute.
func estimateDurationMinutes(d exerciseDayRow) float64 {
	if d.DurationAchievedSeconds != nil {
		minutes := math.Round(float64(*d.DurationAchievedSeconds) / 60)
		if minutes < 1 {
			minutes = 1
		}
		return minutes
	}
	if d.RepsAchieved != nil && *d.RepsAchieved > 0 {
		if d.WeightKGUsed != nil {
			if *d.WeightKGUsed > heavySetWeightKG {
				return heavySetMinutes
			}
			if *d.WeightKGUsed > mediumSetWeightKG {
				return mediumSetMinutes
			}
		}
		return defaultSetMinutes
	}
	return defaultSetMinutes
}

// caloriesForExercise estimates calories burned for one logged exercise and
// returns the summary bucket the estimate belongs in.
func caloriesForExercise(d exerciseDayRow, weightKG float64) (calories float64, bucket string) {
	category := classifyExercise(d.ExerciseName)
	met := metValues[category]
	hours := estimateDurationMinutes(d) / 60
	return math.Round(met * weightKG * hours), summaryBucket(category)
}

/* ─── Aggregation ────────────────────────────────────────────────────── */

// defaultWeightKG is used for calorie-burn estimates when the user has no
// weight saved. A missing profile never fails the whole summary.
const defaultWeightKG = 70.0

// resolveSummaryWeight picks the weight for MET math from a profile lookup
// result. A missing profile row or weight falls back to the default; any other
// lookup error propagates — a failed read must not silently produce a summary
// computed with the wrong weight.
func resolveSummaryWeight(p userProfile, err error) (float64, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return defaultWeightKG, nil
		}
		return 0, err
	}
	if p.WeightKG != nil && *p.WeightKG > 0 {
		return *p.WeightKG, nil
	}
	return defaultWeightKG, nil
}

// parseOrZero parses a numeric-looking string, treating anything unparseable
// (including empty strings) as 0. Malformed log values degrade the totals,
// they don't fail them.
func parseOrZero(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// foodBreakdownBuckets are the meal types that get their own slot in the
// summary's food breakdown. Entries with any other meal type still count
// toward the consumed/macro totals but land in no bucket.
var foodBreakdownBuckets = []string{"breakfast", "lunch", "dinner", "snack"}

// buildDailySummary combines a day's food rows and exercise rows into one
// summary. Pure: same inputs always produce the same summary, no I/O.
func buildDailySummary(date string, foods []foodDayRow, exercises []exerciseDayRow, weightKG float64) dailyCalorieSummary {
	summary := dailyCalorieSummary{
		Date:              date,
		FoodBreakdown:     map[string]float64{},
		ExerciseBreakdown: map[string]float64{"cardio": 0, "strength": 0, "stretching": 0},
	}
	for _, b := range foodBreakdownBuckets {
		summary.FoodBreakdown[b] = 0
	}

	for _, f := range foods {
		calories := parseOrZero(f.CaloriesConsumed)
		summary.CaloriesConsumed += calories
		summary.Macros.Protein += parseOrZero(f.ProteinConsumed)
		summary.Macros.Carbs += parseOrZero(f.CarbsConsumed)
		summary.Macros.Fat += parseOrZero(f.FatConsumed)

		mealType := strings.ToLower(f.MealType)
		if _, ok := summary.FoodBreakdown[mealType]; ok {
			summary.FoodBreakdown[mealType] += calories
		} else {
			// Counted in the totals above but dropped from the breakdown —
			// surfaced here so the mismatch is visible in logs.
			log.Printf("[dailySummary] unbucketed meal type %q: %v calories counted in totals only", f.MealType, calories)
		}
	}

	for _, e := range exercises {
		calories, bucket := caloriesForExercise(e, weightKG)
		summary.CaloriesBurned += calories
		summary.ExerciseBreakdown[bucket] += calories
	}

	// May be negative on heavy training days; no clamping.
	summary.NetCalories = summary.CaloriesConsumed - summary.CaloriesBurned
	return summary
}

/* ─── Handler ────────────────────────────────────────────────────────── */

// getDailySummary returns the daily energy summary for a given date: calories
// consumed and burned, net calories, per-meal and per-exercise-bucket
// breakdowns, and macro totals. Read-only — it never writes logs.
// GET /api/progress/daily?date=YYYY-MM-DD (defaults to today).
func (h *Handler) getDailySummary(c *gin.Context) {
	userID := c.GetInt("user_id")
	date := c.DefaultQuery("date", time.Now().Format("2006-01-02"))

	// Validate date format before querying — an invalid value silently returns no rows.
	if _, err := time.Parse("2006-01-02", date); err != nil {
		apiError(c, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}

	// Weight for MET math comes from the profile; a missing profile or weight
	// falls back to the default, but a failed lookup is a hard error.
	profile, err := queryOne[userProfile](h.db, c,
		"SELECT * FROM user_profiles WHERE user_id = @userID",
		pgx.NamedArgs{"userID": userID})
	weightKG, err := resolveSummaryWeight(profile, err)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch profile")
		return
	}

	// Numeric columns selected as text so the aggregator's parse-or-zero
	// policy applies uniformly, whatever shape the stored values are in.
	foods, err := queryMany[foodDayRow](h.db, c,
		`SELECT meal_type,
		        calories_consumed::text AS calories_consumed,
		        COALESCE(protein_consumed::text, '') AS protein_consumed,
		        COALESCE(carbs_consumed::text, '')   AS carbs_consumed,
		        COALESCE(fat_consumed::text, '')     AS fat_consumed
		 FROM food_logs
		 WHERE user_id = @userID AND log_date = @date
		 ORDER BY created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch food logs")
		return
	}

	// One join instead of a per-workout query loop; same rows, fewer round trips.
	exercises, err := queryMany[exerciseDayRow](h.db, c,
		`SELECT d.exercise_name, d.duration_achieved_seconds, d.reps_achieved, d.weight_kg_used
		 FROM exercise_log_details d
		 JOIN workout_logs w ON w.id = d.workout_log_id
		 WHERE w.user_id = @userID AND w.log_date = @date
		 ORDER BY d.created_at`,
		pgx.NamedArgs{"userID": userID, "date": date})
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to fetch workout logs")
		return
	}

	c.JSON(http.StatusOK, buildDailySummary(date, foods, exercises, weightKG))
}
