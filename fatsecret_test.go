package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

// newTestFatSecretClient builds a client pointed at mock token and API servers.
// tokenCalls counts how many token requests the mock has served, so tests can
// assert on cache behavior.
func newTestFatSecretClient(t *testing.T, expiresIn int, apiBody string) (*fatSecretClient, *int32) {
	t.Helper()
	var tokenCalls int32

	tokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-token",
			"expires_in":   expiresIn,
		})
	}))
	t.Cleanup(tokenServer.Close)

	apiServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(apiBody))
	}))
	t.Cleanup(apiServer.Close)

	client := newFatSecretClient("test-id", "test-secret")
	client.tokenURL = tokenServer.URL
	client.apiURL = apiServer.URL
	return client, &tokenCalls
}

// TestFatSecretClient_TokenCached verifies that repeated API calls reuse the
// cached token instead of hitting the token endpoint each time.
func TestFatSecretClient_TokenCached(t *testing.T) {
	client, tokenCalls := newTestFatSecretClient(t, 3600, `{"foods":{}}`)

	for i := 0; i < 3; i++ {
		if _, err := client.call(context.Background(), url.Values{"method": {"foods.search"}}); err != nil {
			t.Fatalf("call %d failed: %v", i, err)
		}
	}

	if got := atomic.LoadInt32(tokenCalls); got != 1 {
		t.Errorf("token endpoint hit %d times, want 1", got)
	}
}

// TestFatSecretClient_TokenRefreshedNearExpiry verifies that a token inside
// the one-minute refresh window is replaced on the next call.
func TestFatSecretClient_TokenRefreshedNearExpiry(t *testing.T) {
	client, tokenCalls := newTestFatSecretClient(t, 3600, `{"foods":{}}`)

	if _, err := client.call(context.Background(), url.Values{"method": {"foods.search"}}); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	// Force the cached token to the edge of expiry.
	client.mu.Lock()
	client.tokenExpiry = time.Now().Add(30 * time.Second)
	client.mu.Unlock()

	if _, err := client.call(context.Background(), url.Values{"method": {"foods.search"}}); err != nil {
		t.Fatalf("second call failed: %v", err)
	}

	if got := atomic.LoadInt32(tokenCalls); got != 2 {
		t.Errorf("token endpoint hit %d times, want 2 (refresh near expiry)", got)
	}
}

// TestFatSecretClient_MissingCredentials verifies the error surfaces before
// any network traffic when credentials aren't configured.
func TestFatSecretClient_MissingCredentials(t *testing.T) {
	client := newFatSecretClient("", "")
	if _, err := client.token(context.Background()); err == nil {
		t.Error("expected error for missing credentials, got nil")
	}
}

/* ─── Handler tests ──────────────────────────────────────────────────── */

// setupFoodSearchTest wires a gin router around a handler whose FatSecret
// client points at mock servers. No DB needed.
func setupFoodSearchTest(t *testing.T, apiBody string) *gin.Engine {
	t.Helper()
	client, _ := newTestFatSecretClient(t, 3600, apiBody)

	gin.SetMode(gin.TestMode)
	h := Handler{fatSecret: client}
	router := gin.New()
	router.GET("/api/foods/search", func(c *gin.Context) {
		c.Set("user_id", 1)
		c.Next()
	}, h.searchFoods)
	return router
}

func TestSearchFoods_Success(t *testing.T) {
	body := `{"foods":{"food":[{"food_id":"35718","food_name":"Banana"}]}}`
	router := setupFoodSearchTest(t, body)

	req := httptest.NewRequest("GET", "/api/foods/search?query=banana", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != body {
		t.Errorf("body = %s, want passthrough of upstream response", w.Body.String())
	}
}

func TestSearchFoods_MissingQuery(t *testing.T) {
	router := setupFoodSearchTest(t, `{}`)

	req := httptest.NewRequest("GET", "/api/foods/search", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
