package main

import (
	"fmt"
	"log"
	"os"

	"github.com/akademia-dev/akademia-backend/app/models"
	"github.com/akademia-dev/akademia-backend/internal/pkg/database"
	"github.com/akademia-dev/akademia-backend/internal/pkg/env"
)

// Applies the schema and optionally seeds the first admin account from
// ADMIN_EMAIL / ADMIN_PASSWORD.
func main() {
	env.SetupEnvFile()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	// SetupDatabase runs AutoMigrate for the full model set.
	database.SetupDatabase()
	db := database.GetDB()

	switch os.Args[1] {
	case "up":
		log.Println("schema migrated")

	case "seed-admin":
		email := env.GetEnv("ADMIN_EMAIL", "")
		password := env.GetEnv("ADMIN_PASSWORD", "")
		if email == "" || password == "" {
			log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
		}

		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			log.Printf("admin %s already exists", email)
			return
		}

		admin, err := models.CreateUser("Administrator", email, "", password)
		if err != nil {
			log.Fatalf("invalid admin account: %v", err)
		}
		admin.Role = models.ROLE_ADMIN
		if err := db.Create(admin).Error; err != nil {
			log.Fatalf("failed to create admin: %v", err)
		}
		log.Printf("admin %s created", email)

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: go run cmd/migrate/main.go [command]")
	fmt.Println("Commands:")
	fmt.Println("  up         - apply the schema to the configured database")
	fmt.Println("  seed-admin - create the initial admin account from env")
}
