package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var mealDBHTTPClient = &http.Client{Timeout: 15 * time.Second}

// mealDBGet fetches one TheMealDB endpoint and returns the raw JSON body.
// The free v1 API needs no credentials, so this is a plain GET passthrough.
func (h *Handler) mealDBGet(c *gin.Context, path string, params url.Values) ([]byte, error) {
	reqURL := h.mealDBBaseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := mealDBHTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("themealdb returned status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// searchRecipes proxies TheMealDB search-by-name.
// GET /api/recipes/search?query=chicken.
func (h *Handler) searchRecipes(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		apiError(c, http.StatusBadRequest, "query is required")
		return
	}

	body, err := h.mealDBGet(c, "/search.php", url.Values{"s": {query}})
	if err != nil {
		log.Printf("[searchRecipes] TheMealDB error: %v", err)
		apiError(c, http.StatusBadGateway, "recipe search failed")
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// getRecipe proxies TheMealDB lookup-by-id.
// GET /api/recipes/:id.
func (h *Handler) getRecipe(c *gin.Context) {
	id := c.Param("id")

	body, err := h.mealDBGet(c, "/lookup.php", url.Values{"i": {id}})
	if err != nil {
		log.Printf("[getRecipe] TheMealDB error: %v", err)
		apiError(c, http.StatusBadGateway, "recipe lookup failed")
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}

// randomRecipe proxies TheMealDB random meal endpoint.
// GET /api/recipes/random.
func (h *Handler) randomRecipe(c *gin.Context) {
	body, err := h.mealDBGet(c, "/random.php", nil)
	if err != nil {
		log.Printf("[randomRecipe] TheMealDB error: %v", err)
		apiError(c, http.StatusBadGateway, "random recipe failed")
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
