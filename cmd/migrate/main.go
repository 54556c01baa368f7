// Command migrate applies the entities schema used by the postgres store
// backend. The schema is a single JSONB document table, so the command set
// stays small: up, down, and version are all operating it ever needs.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/masstest/masstest-backend/internal/config"
)

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Open migrations: %v", err)
	}

	args := flag.Args()
	if len(args) != 1 {
		printUsage()
		os.Exit(2)
	}

	if err := run(m, args[0]); err != nil {
		log.Fatal(err)
	}
}

func run(m *migrate.Migrate, command string) error {
	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("up: %w", err)
		}
		fmt.Println("entities schema is up to date")
	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("down: %w", err)
		}
		fmt.Println("entities schema rolled back")
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			return fmt.Errorf("version: %w", err)
		}
		fmt.Printf("version %d (dirty: %t)\n", version, dirty)
	default:
		printUsage()
		return fmt.Errorf("unknown command %q", command)
	}
	return nil
}

func printUsage() {
	fmt.Println("Usage: migrate [-path dir] <up|down|version>")
	flag.PrintDefaults()
}
