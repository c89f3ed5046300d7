package main

import (
	"context"
	"fmt"
	"os"

	dbfs "github.com/wattshed/timesheet/db"
	"github.com/wattshed/timesheet/internal/config"
	"github.com/wattshed/timesheet/internal/db"
)

func main() {
	ctx := context.Background()
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	database, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, dbfs.Migrations); err != nil {
		fmt.Fprintf(os.Stderr, "Migration runner error: %v\n", err)
		os.Exit(1)
	}

	seeds := []db.SeedUser{
		{Username: cfg.AdminUsername, Password: cfg.AdminPassword},
		{Username: "tim", Password: "tim"},
		{Username: "zach", Password: "zach"},
	}
	if err := db.SeedUsers(ctx, database, seeds); err != nil {
		fmt.Fprintf(os.Stderr, "Seed error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Database initialized successfully.")
}
