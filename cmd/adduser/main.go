// Command adduser seeds one of the two accounts that can sign in.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"strings"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/salidas/configs"
	"github.com/maheshrc27/salidas/internal/models"
	"github.com/maheshrc27/salidas/internal/repository"
	"github.com/maheshrc27/salidas/pkg/utils"
)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	name := flag.String("name", "", "display name")
	flag.Parse()

	if strings.TrimSpace(*email) == "" || *password == "" {
		flag.Usage()
		log.Fatal("email and password are required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}
	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	hash, err := utils.HashPassword(*password)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	userID, err := repository.NewUserRepository(db).Create(ctx, tx, &models.User{Email: *email, PasswordHash: hash})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	if n := strings.TrimSpace(*name); n != "" {
		if err := repository.NewProfileRepository(db).UpsertDisplayName(ctx, userID, &n); err != nil {
			log.Fatalf("Failed to save profile: %v", err)
		}
	}

	log.Printf("Created user %s (%s)", userID, strings.ToLower(strings.TrimSpace(*email)))
}
