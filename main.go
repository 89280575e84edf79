package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"tee-factory/app"
)

func main() {
	// Load .env in development. In CI the secrets are set directly, so a
	// missing file is fine. Overload makes .env win over stale shell vars.
	if os.Getenv("ENV") != "production" {
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		} else {
			log.Printf("Loaded environment variables from .env")
		}
	}

	if err := app.NewRootCommand().Execute(); err != nil {
		log.Fatalf("❌ %v", err)
	}
}
