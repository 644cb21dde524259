// Command superuser seeds an administrator account. It is idempotent: an
// existing account with the same email is left untouched.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/joho/godotenv"

	"audiovault/internal/config"
	"audiovault/internal/logger"
	"audiovault/internal/repository/postgres"
	"audiovault/internal/service"
)

func main() {
	username := flag.String("username", "admin", "superuser name")
	email := flag.String("email", "", "superuser email (required)")
	password := flag.String("password", "", "superuser password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	ctx := context.Background()

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	userService := service.NewUser(postgres.NewUserRepository(db), logger)

	created, err := userService.EnsureSuperuser(ctx, *username, *email, *password)
	if err != nil {
		logger.Fatal("failed to ensure superuser", "error", err)
	}

	if created {
		logger.Info("superuser created", "email", *email)
	} else {
		logger.Info("superuser already exists", "email", *email)
	}
}
