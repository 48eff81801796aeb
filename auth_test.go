package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

var testSecret = []byte("test-secret")

// TestIssueAndParseToken verifies a round trip: an issued token parses back
// to the same user id.
func TestIssueAndParseToken(t *testing.T) {
	token, err := issueToken(42, testSecret)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	claims, err := parseToken(token, testSecret)
	if err != nil {
		t.Fatalf("parseToken failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.ID == "" {
		t.Error("jti claim is empty, want a UUID")
	}
}

// TestParseToken_WrongSecret verifies tokens signed with another key are rejected.
func TestParseToken_WrongSecret(t *testing.T) {
	token, err := issueToken(42, []byte("other-secret"))
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}
	if _, err := parseToken(token, testSecret); err == nil {
		t.Error("expected error for wrong secret, got nil")
	}
}

// TestParseToken_Garbage verifies malformed input is rejected.
func TestParseToken_Garbage(t *testing.T) {
	if _, err := parseToken("not.a.token", testSecret); err == nil {
		t.Error("expected error for garbage token, got nil")
	}
}

/* ─── Middleware tests ───────────────────────────────────────────────── */

// setupAuthTest returns a router with one protected route that echoes the
// user_id the middleware resolved.
func setupAuthTest() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := Handler{jwtSecret: testSecret}
	router := gin.New()
	router.GET("/api/whoami", h.authMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetInt("user_id")})
	})
	return router
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	router := setupAuthTest()
	token, err := issueToken(7, testSecret)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	req := httptest.NewRequest("GET", "/api/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if body := w.Body.String(); body != `{"user_id":7}` {
		t.Errorf("body = %s, want {\"user_id\":7}", body)
	}
}

func TestAuthMiddleware_Rejections(t *testing.T) {
	router := setupAuthTest()

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"invalid token", "Bearer not.a.token"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", w.Code)
			}
		})
	}
}
