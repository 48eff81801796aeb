package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	log.SetPrefix("vitality-vista-api: ")
	log.SetFlags(0)

	// .env is optional in production — env vars may come from the platform.
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is required")
		os.Exit(1)
	}

	h := &Handler{
		db:        getDBPool(),
		jwtSecret: []byte(jwtSecret),
		fatSecret: newFatSecretClient(
			os.Getenv("FATSECRET_CLIENT_ID"),
			os.Getenv("FATSECRET_CLIENT_SECRET"),
		),
		usdaBaseURL:   "https://api.nal.usda.gov/fdc",
		usdaAPIKey:    os.Getenv("USDA_API_KEY"),
		mealDBBaseURL: "https://www.themealdb.com/api/json/v1/1",
	}

	router := gin.Default()
	router.SetTrustedProxies(nil)
	h.registerRoutes(router)

	// rs/cors wraps the whole gin engine so preflight requests are answered
	// before they hit the router.
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	addr := ":" + port

	fmt.Printf("Listening on %s\n", addr)
	if err := http.ListenAndServe(addr, corsHandler.Handler(router)); err != nil {
		log.Fatal(err)
	}
}

// allowedOrigins reads CORS_ORIGINS (comma-separated) or falls back to the
// local dev frontend.
func allowedOrigins() []string {
	if v := os.Getenv("CORS_ORIGINS"); v != "" {
		parts := strings.Split(v, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return []string{"http://localhost:5173"}
}
