package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long issued access tokens stay valid.
const tokenTTL = 72 * time.Hour

// authClaims are the JWT claims carried by issued tokens.
type authClaims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// dummyHash is a pre-computed bcrypt hash used when a login email isn't found.
// Running bcrypt against it (instead of returning early) keeps response time
// constant, preventing timing-based account enumeration.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dummy"), bcrypt.DefaultCost)

// issueToken signs an HS256 JWT for the given user. The jti claim gets a fresh
// UUID so tokens are individually identifiable in logs.
func issueToken(userID int, secret []byte) (string, error) {
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// parseToken validates a signed token string and returns its claims.
func parseToken(tokenString string, secret []byte) (*authClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &authClaims{},
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*authClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenMalformed
	}
	return claims, nil
}

// register creates a user with a bcrypt-hashed password and an empty profile
// row, then returns a token so the client can log straight in.
// POST /api/auth/register (public — no auth required).
func (h *Handler) register(c *gin.Context) {
	var body registerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.TrimSpace(strings.ToLower(body.Email))
	if body.Username == "" || body.Email == "" {
		apiError(c, http.StatusBadRequest, "username and email are required")
		return
	}
	if len(body.Password) < 8 {
		apiError(c, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to hash password")
		return
	}

	u, err := queryOne[user](h.db, c,
		`INSERT INTO users (username, email, password_hash)
		 VALUES (@username, @email, @passwordHash)
		 RETURNING *`,
		pgx.NamedArgs{"username": body.Username, "email": body.Email, "passwordHash": string(hash)})
	if err != nil {
		// Most likely a unique violation on username/email.
		apiError(c, http.StatusConflict, "username or email already in use")
		return
	}

	// Profile row is created up front so profile reads never 404 for a valid user.
	if _, err := h.db.Exec(c,
		"INSERT INTO user_profiles (user_id) VALUES (@userID)",
		pgx.NamedArgs{"userID": u.ID}); err != nil {
		apiError(c, http.StatusInternalServerError, "failed to create profile")
		return
	}

	token, err := issueToken(u.ID, h.jwtSecret)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token, "user": u})
}

// login verifies email/password and returns a signed JWT.
// POST /api/auth/login (public — no auth required).
func (h *Handler) login(c *gin.Context) {
	var body loginRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		apiError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	u, lookupErr := queryOne[user](h.db, c,
		"SELECT * FROM users WHERE email = @email",
		pgx.NamedArgs{"email": strings.TrimSpace(strings.ToLower(body.Email))})

	// Always run bcrypt to keep response time constant regardless of whether
	// the email was found — prevents timing-based account enumeration.
	hashToCheck := string(dummyHash)
	if lookupErr == nil {
		hashToCheck = u.PasswordHash
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(hashToCheck), []byte(body.Password))

	if lookupErr != nil || compareErr != nil {
		apiError(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := issueToken(u.ID, h.jwtSecret)
	if err != nil {
		apiError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u})
}

// authMiddleware validates the Bearer token and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			c.Abort()
			return
		}

		claims, err := parseToken(strings.TrimPrefix(header, "Bearer "), h.jwtSecret)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "invalid token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Next()
	}
}
