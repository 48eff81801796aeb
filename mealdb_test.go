package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

// setupMealDBTest runs a mock TheMealDB server and returns a router whose
// handler proxies it. The mock records the last path+query it served.
func setupMealDBTest(t *testing.T, body string) (*gin.Engine, *string) {
	t.Helper()
	var lastRequest string

	mock := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		lastRequest = r.URL.String()
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(mock.Close)

	gin.SetMode(gin.TestMode)
	h := Handler{mealDBBaseURL: mock.URL}
	router := gin.New()
	router.GET("/api/recipes/search", h.searchRecipes)
	router.GET("/api/recipes/random", h.randomRecipe)
	router.GET("/api/recipes/:id", h.getRecipe)
	return router, &lastRequest
}

func TestSearchRecipes_Success(t *testing.T) {
	body := `{"meals":[{"idMeal":"52940","strMeal":"Brown Stew Chicken"}]}`
	router, lastRequest := setupMealDBTest(t, body)

	req := httptest.NewRequest("GET", "/api/recipes/search?query=chicken", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != body {
		t.Errorf("body = %s, want passthrough of upstream response", w.Body.String())
	}
	if *lastRequest != "/search.php?s=chicken" {
		t.Errorf("upstream request = %q, want /search.php?s=chicken", *lastRequest)
	}
}

func TestSearchRecipes_MissingQuery(t *testing.T) {
	router, _ := setupMealDBTest(t, `{}`)

	req := httptest.NewRequest("GET", "/api/recipes/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetRecipe_Success(t *testing.T) {
	router, lastRequest := setupMealDBTest(t, `{"meals":[{"idMeal":"52940"}]}`)

	req := httptest.NewRequest("GET", "/api/recipes/52940", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if *lastRequest != "/lookup.php?i=52940" {
		t.Errorf("upstream request = %q, want /lookup.php?i=52940", *lastRequest)
	}
}

func TestRandomRecipe_Success(t *testing.T) {
	router, lastRequest := setupMealDBTest(t, `{"meals":[{"idMeal":"53000"}]}`)

	req := httptest.NewRequest("GET", "/api/recipes/random", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if *lastRequest != "/random.php" {
		t.Errorf("upstream request = %q, want /random.php", *lastRequest)
	}
}
