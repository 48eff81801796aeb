package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

/* ─── FatSecret client ───────────────────────────────────────────────── */

// fatSecretClient proxies the FatSecret platform API. The OAuth2
// client-credentials token is cached on the client itself with its expiry
// timestamp — the cache is owned and injected via the Handler, never a
// package-level global.
type fatSecretClient struct {
	clientID     string
	clientSecret string
	tokenURL     string // overridable for tests
	apiURL       string // overridable for tests
	httpClient   *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// newFatSecretClient creates a client pointed at the production FatSecret
// endpoints.
func newFatSecretClient(clientID, clientSecret string) *fatSecretClient {
	return &fatSecretClient{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     "https://oauth.fatsecret.com/connect/token",
		apiURL:       "https://platform.fatsecret.com/rest/server.api",
		httpClient:   &http.Client{Timeout: 15 * time.Second},
	}
}

// token returns a valid access token, fetching a new one only when the cached
// token is missing or within a minute of expiring.
func (f *fatSecretClient) token(ctx context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.accessToken != "" && time.Now().Add(time.Minute).Before(f.tokenExpiry) {
		return f.accessToken, nil
	}

	if f.clientID == "" || f.clientSecret == "" {
		return "", fmt.Errorf("FATSECRET_CLIENT_ID / FATSECRET_CLIENT_SECRET not set")
	}

	form := url.Values{
		"grant_type": {"client_credentials"},
		"scope":      {"basic"},
	}
	req, err := http.NewRequestWithContext(ctx, "POST", f.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(f.clientID, f.clientSecret)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fatsecret token endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tok); err != nil {
		return "", fmt.Errorf("unmarshal token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("fatsecret token response missing access_token")
	}

	f.accessToken = tok.AccessToken
	f.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	return f.accessToken, nil
}

// call performs one authenticated method call against the platform API and
// returns the raw JSON body. FatSecret's REST interface is method-based:
// every operation is a form POST with a "method" parameter.
func (f *fatSecretClient) call(ctx context.Context, params url.Values) ([]byte, error) {
	accessToken, err := f.token(ctx)
	if err != nil {
		return nil, err
	}

	params.Set("format", "json")
	req, err := http.NewRequestWithContext(ctx, "POST", f.apiURL, strings.NewReader(params.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fatsecret returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

/* ─── Handlers ───────────────────────────────────────────────────────── */

// searchFoods proxies FatSecret foods.search.
// GET /api/foods/search?query=banana&page=0.
func (h *Handler) searchFoods(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		apiError(c, http.StatusBadRequest, "query is required")
		return
	}
	page := c.DefaultQuery("page", "0")

	body, err := h.fatSecret.call(c.Request.Context(), url.Values{
		"method":            {"foods.search"},
		"search_expression": {query},
		"page_number":       {page},
		"max_results":       {"20"},
	})
	if err != nil {
		log.Printf("[searchFoods] FatSecret error: %v", err)
		apiError(c, http.StatusBadGateway, "food search failed")
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// getFood proxies FatSecret food.get.v4 for a single food id.
// GET /api/foods/:id.
func (h *Handler) getFood(c *gin.Context) {
	id := c.Param("id")

	body, err := h.fatSecret.call(c.Request.Context(), url.Values{
		"method":  {"food.get.v4"},
		"food_id": {id},
	})
	if err != nil {
		log.Printf("[getFood] FatSecret error: %v", err)
		apiError(c, http.StatusBadGateway, "food lookup failed")
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
