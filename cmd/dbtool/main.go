package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"digitalium/internal/config"
)

// dbtool manages the postgres schema for the configured environment:
//
//	go run ./cmd/dbtool create
//	go run ./cmd/dbtool drop
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if len(os.Args) < 2 {
		log.Fatal("usage: dbtool <create|drop>")
	}
	command := os.Args[1]

	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }() // Error ignored: tool exiting

	switch command {
	case "create":
		if _, err := db.Exec(createSQL(cfg.TablePrefix)); err != nil {
			log.Fatalf("Failed to create tables: %v", err)
		}
		fmt.Printf("Tables created (prefix: %s)\n", cfg.TablePrefix)
	case "drop":
		if _, err := db.Exec(dropSQL(cfg.TablePrefix)); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		fmt.Printf("Tables dropped (prefix: %s)\n", cfg.TablePrefix)
	default:
		log.Fatalf("unknown command %q (want create or drop)", command)
	}
}

func createSQL(prefix string) string {
	return fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %[1]sunits (
			id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			name TEXT NOT NULL,
			code TEXT NOT NULL,
			parent_unit_id TEXT REFERENCES %[1]sunits(id),
			config JSONB,
			workflows JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS %[1]sunits_one_root
			ON %[1]sunits (org_id) WHERE parent_unit_id IS NULL;
		CREATE INDEX IF NOT EXISTS %[1]sunits_parent_idx
			ON %[1]sunits (org_id, parent_unit_id);

		CREATE TABLE IF NOT EXISTS %[1]sfolders (
			id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			unit_id TEXT REFERENCES %[1]sunits(id),
			kind TEXT NOT NULL,
			name TEXT NOT NULL,
			color TEXT NOT NULL,
			parent_id TEXT REFERENCES %[1]sfolders(id),
			category TEXT,
			retention_years INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL,
			modified_at TIMESTAMPTZ NOT NULL
		);
		CREATE INDEX IF NOT EXISTS %[1]sfolders_parent_idx
			ON %[1]sfolders (org_id, kind, parent_id);
		CREATE INDEX IF NOT EXISTS %[1]sfolders_category_idx
			ON %[1]sfolders (org_id, category) WHERE category IS NOT NULL;

		CREATE TABLE IF NOT EXISTS %[1]sitems (
			id TEXT PRIMARY KEY,
			org_id TEXT NOT NULL,
			folder_id TEXT NOT NULL REFERENCES %[1]sfolders(id),
			name TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS %[1]sitems_folder_idx
			ON %[1]sitems (org_id, folder_id);
	`, prefix)
}

func dropSQL(prefix string) string {
	return fmt.Sprintf(`
		DROP TABLE IF EXISTS %[1]sitems CASCADE;
		DROP TABLE IF EXISTS %[1]sfolders CASCADE;
		DROP TABLE IF EXISTS %[1]sunits CASCADE;
	`, prefix)
}
