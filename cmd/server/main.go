package main

import (
	"context"
	"log"
	"net/http"
	"os"

	webAdapter "lmnp-ledger/internal/adapters/web"
	"lmnp-ledger/internal/ai"
	"lmnp-ledger/internal/app"
	"lmnp-ledger/internal/constants"
	"lmnp-ledger/internal/db"
	"lmnp-ledger/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer pool.Close()

	constantsDir := os.Getenv("FISCAL_CONSTANTS_DIR")
	if constantsDir == "" {
		constantsDir = "fiscal_constants"
	}
	library := constants.NewLibrary(constantsDir)

	var assistant ai.AssistantService
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		assistant = ai.NewAssistant(apiKey)
	} else {
		log.Println("Warning: OPENAI_API_KEY is not set, assistant disabled")
	}

	svc := app.NewAppService(store.New(pool), library, assistant)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET must be set")
	}
	appPassword := os.Getenv("APP_PASSWORD")
	if appPassword == "" {
		log.Fatal("APP_PASSWORD must be set")
	}

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins, jwtSecret, appPassword)

	log.Printf("server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server: %v", err)
	}
}
