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

// usdaHTTPClient is shared across USDA requests; FoodData Central can be slow
// on cold queries, so the timeout matches the other provider clients.
var usdaHTTPClient = &http.Client{Timeout: 15 * time.Second}

// searchUSDAFoods proxies the USDA FoodData Central search endpoint. The API
// key stays server-side; clients only see the query interface.
// GET /api/usda/search?query=banana&page=1.
func (h *Handler) searchUSDAFoods(c *gin.Context) {
	query := strings.TrimSpace(c.Query("query"))
	if query == "" {
		apiError(c, http.StatusBadRequest, "query is required")
		return
	}
	if h.usdaAPIKey == "" {
		apiError(c, http.StatusServiceUnavailable, "usda search is not configured")
		return
	}
	page := c.DefaultQuery("page", "1")

	params := url.Values{
		"api_key":    {h.usdaAPIKey},
		"query":      {query},
		"pageNumber": {page},
		"pageSize":   {"20"},
	}
	reqURL := fmt.Sprintf("%s/v1/foods/search?%s", h.usdaBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(c.Request.Context(), "GET", reqURL, nil)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "usda search failed")
		return
	}

	resp, err := usdaHTTPClient.Do(req)
	if err != nil {
		log.Printf("[searchUSDAFoods] request error: %v", err)
		apiError(c, http.StatusBadGateway, "usda search failed")
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("[searchUSDAFoods] read error: %v", err)
		apiError(c, http.StatusBadGateway, "usda search failed")
		return
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[searchUSDAFoods] upstream status %d: %s", resp.StatusCode, string(body))
		apiError(c, http.StatusBadGateway, "usda search failed")
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
