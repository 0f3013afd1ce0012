package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/pressly/goose/v3"

	"stockledger/config"
	"stockledger/internal/pkg/database"
)

// Usage: migrate [up|down|status|version|redo|reset] [args...]
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: .env not found, using the process environment only: %v", err)
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	flag.Parse()

	store, err := database.Open(context.Background(), database.Options{Driver: cfg.DBDriver, DSN: cfg.DSN()})
	if err != nil {
		log.Fatalf("migrate: failed to open store: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Fatalf("migrate: failed to close store: %v", err)
		}
	}()

	fsys, dialect, err := database.MigrationsFS(cfg.DBDriver)
	if err != nil {
		log.Fatalf("migrate: load migrations: %v", err)
	}
	goose.SetBaseFS(fsys)
	if err := goose.SetDialect(string(dialect)); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	arguments := flag.Args()
	if len(arguments) == 0 {
		arguments = []string{"up"}
	}
	command := arguments[0]

	if err := goose.RunContext(context.Background(), command, store.DB.DB, ".", arguments[1:]...); err != nil {
		log.Fatalf("goose %v: %v", command, err)
	}
	fmt.Printf("goose %s success\n", command)
}
