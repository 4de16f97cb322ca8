// Package config reads the back-office settings from the environment:
// DATABASE_URL, JWT_SECRET, the CLOUDINARY_URL and BREVO_API_KEY
// credentials, and the ADMIN_* seed account. A .env file is loaded once for
// local development; deployed instances rely on real environment variables.
package config

import (
	"log"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

var loadEnv sync.Once

func Config(key string) string {
	loadEnv.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("Warning: .env file not found, reading from system environment variables")
		}
	})

	return os.Getenv(key)
}
