package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alexanderramin/crux/internal/cli"
	"github.com/alexanderramin/crux/internal/db"
	"github.com/alexanderramin/crux/internal/repository"
	"github.com/alexanderramin/crux/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.crux/crux.db
	dbPath := os.Getenv("CRUX_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".crux", "crux.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return err
	}
	defer database.Close()

	repo := repository.NewKVCircuitRepo(repository.NewSQLiteKV(database))
	circuits, err := service.NewCircuitService(context.Background(), repo)
	if err != nil {
		return err
	}

	app := &cli.App{Circuits: circuits}
	return cli.NewRootCmd(app).Execute()
}
