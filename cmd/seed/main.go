// Command seed loads the tournament catalog into MySQL and optionally
// creates a back office account.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/iliyamo/tournament-tickets/internal/config"
	"github.com/iliyamo/tournament-tickets/internal/database"
	"github.com/iliyamo/tournament-tickets/internal/repository"
	"github.com/iliyamo/tournament-tickets/internal/seed"
)

func main() {
	migrate := flag.Bool("migrate", true, "apply schema migrations first")
	adminEmail := flag.String("admin-email", os.Getenv("SEED_ADMIN_EMAIL"), "create an ADMIN account with this email")
	adminPass := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password for -admin-email")
	flag.Parse()

	config.LoadDotEnv()
	config.SetupLogging(config.LoadLogConfig())
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if *migrate {
		if err := database.Migrate(ctx, db); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	log.Printf("populating database with CHAN tournament data...")
	sum, err := seed.Run(ctx, seed.NewSQLWriter(db))
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seed: %s", sum)

	if *adminEmail != "" {
		if err := seed.EnsureAdmin(ctx, repository.NewUserRepo(db), *adminEmail, *adminPass, cfg.BcryptCost); err != nil {
			log.Fatalf("seed: %v", err)
		}
	}
}
