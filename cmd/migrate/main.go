package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/iliyamo/print-shop-booking/internal/config"
	"github.com/iliyamo/print-shop-booking/internal/database"
	"github.com/iliyamo/print-shop-booking/internal/repository"
)

// Applies the embedded migrations. When ADMIN_BOOTSTRAP_USER and
// ADMIN_BOOTSTRAP_PASSWORD are set it also creates that staff account,
// leaving an existing one untouched.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	db, err := database.Open(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db, cfg.DBName); err != nil {
		fmt.Fprintf(os.Stderr, "migrate failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("migrations applied")

	user, pass := os.Getenv("ADMIN_BOOTSTRAP_USER"), os.Getenv("ADMIN_BOOTSTRAP_PASSWORD")
	if user == "" || pass == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	id, err := repository.NewAdminRepo(db).Create(ctx, user, pass, cfg.BcryptCost)
	switch {
	case errors.Is(err, repository.ErrAdminExists):
		fmt.Printf("admin %q already exists\n", user)
	case err != nil:
		fmt.Fprintf(os.Stderr, "bootstrap admin: %v\n", err)
		os.Exit(1)
	default:
		fmt.Printf("admin %q created (id=%d)\n", user, id)
	}
}
