package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds shared dependencies (db pool, auth config, external API
// clients) for all route handlers.
type Handler struct {
	db        *pgxpool.Pool
	jwtSecret []byte

	fatSecret     *fatSecretClient
	usdaBaseURL   string // Base URL for USDA FoodData Central (overridable for tests)
	usdaAPIKey    string
	mealDBBaseURL string // Base URL for TheMealDB (overridable for tests)
}

/* ─── Database helpers ────────────────────────────────────────────────── */

// queryOne runs a query and scans the first row into T using RowToStructByName.
// Logs query and scan errors for debugging (e.g. struct/column mismatches).
func queryOne[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) (T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryOne] Query error: %v", err)
		var zero T
		return zero, err
	}
	result, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryOne] Scan error: %v", err)
	}
	return result, err
}

// queryMany runs a query and scans all rows into []T using RowToStructByName.
func queryMany[T any](pool *pgxpool.Pool, c *gin.Context, sql string, args pgx.NamedArgs) ([]T, error) {
	rows, err := pool.Query(c, sql, args)
	if err != nil {
		log.Printf("[queryMany] Query error: %v", err)
		return nil, err
	}
	results, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		log.Printf("[queryMany] Scan error: %v", err)
	}
	return results, err
}

// apiError returns a consistent JSON error response: {"error": "message"}.
func apiError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

/* ─── Server setup ────────────────────────────────────────────────────── */

// getDBPool creates a connection pool. We use a pool (not a single conn)
// because hosted Postgres providers close idle connections after a few minutes.
func getDBPool() *pgxpool.Pool {
	config, err := pgxpool.ParseConfig(os.Getenv("DB_URL"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to parse DB URL: %v\n", err)
		os.Exit(1)
	}
	// Use simple query protocol to avoid "cached plan must not change result type"
	// errors from server-side prepared statement caches after schema changes.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol
	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("DB pool ready!")
	return pool
}

// registerRoutes registers all API routes on the router.
func (h *Handler) registerRoutes(router *gin.Engine) {
	// Public routes
	router.POST("/api/auth/register", h.register)
	router.POST("/api/auth/login", h.login)

	// Authenticated routes
	api := router.Group("/api", h.authMiddleware())

	api.GET("/profile", h.getProfile)
	api.PUT("/profile", h.updateProfile)

	api.GET("/food-logs", h.listFoodLogs)
	api.POST("/food-logs", h.createFoodLog)
	api.PUT("/food-logs/:id", h.updateFoodLog)
	api.DELETE("/food-logs/:id", h.deleteFoodLog)

	api.GET("/workout-logs", h.listWorkoutLogs)
	api.POST("/workout-logs", h.createWorkoutLog)
	api.DELETE("/workout-logs/:id", h.deleteWorkoutLog)
	api.GET("/workout-logs/:id/exercises", h.listExerciseDetails)
	api.POST("/workout-logs/:id/exercises", h.createExerciseDetail)
	api.DELETE("/workout-logs/:id/exercises/:detailId", h.deleteExerciseDetail)

	api.GET("/water-logs", h.listWaterLogs)
	api.POST("/water-logs", h.createWaterLog)
	api.DELETE("/water-logs/:id", h.deleteWaterLog)

	api.GET("/goals", h.listGoals)
	api.POST("/goals", h.createGoal)
	api.PUT("/goals/:id", h.updateGoal)
	api.DELETE("/goals/:id", h.deleteGoal)

	api.GET("/progress/daily", h.getDailySummary)

	api.GET("/foods/search", h.searchFoods)
	api.GET("/foods/:id", h.getFood)
	api.GET("/usda/search", h.searchUSDAFoods)
	api.GET("/recipes/search", h.searchRecipes)
	api.GET("/recipes/random", h.randomRecipe)
	api.GET("/recipes/:id", h.getRecipe)
}
