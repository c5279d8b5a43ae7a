// cmd/apptrack/main.go
//
// Apptrack – process entry point.
//
// Startup life-cycle
// ------------------
//
//  1. Load env vars (conf/.env fallback via the config loader).
//
//  2. Start the rotating logger (tees to the console when running in a
//     TTY).
//
//  3. Load and validate the layered configuration.
//
//  4. Open the SQLite store and create the Applications table if absent.
//
//  5. Enter the interactive shell on stdin/stdout until the user quits.
//
// Everything after step 5 is per-action: a failed command prints a message
// and the shell keeps running.  Only bootstrap failures are fatal.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/yanizio/apptrack/internal/config"
	"github.com/yanizio/apptrack/internal/database"
	"github.com/yanizio/apptrack/internal/logger"
	"github.com/yanizio/apptrack/internal/record"
	"github.com/yanizio/apptrack/internal/shell"
)

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { _ = godotenv.Load() }

func main() {
	rootDir, _ := os.Getwd()
	logOut, err := logger.New(rootDir, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}
	defer func() { _ = logOut.Sync() }()

	//
	// ── 1.  Configuration ───────────────────────────────────────────────
	//
	cfg, err := config.Load()
	if err != nil {
		logOut.Fatalf("load config: %v", err)
	}

	//
	// ── 2.  Store open + migrate ────────────────────────────────────────
	//
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		logOut.Fatalf("open database: %v", err)
	}
	defer db.Close()

	store := record.New(db)
	if err := store.Migrate(context.Background()); err != nil {
		logOut.Fatalf("migrate: %v", err)
	}
	logOut.Infow("store online", "path", cfg.Database.Path)

	//
	// ── 3.  Interactive shell ───────────────────────────────────────────
	//
	sh := shell.New(store, logOut, os.Stdin, os.Stdout)
	if err := sh.Run(context.Background()); err != nil {
		logOut.Fatalf("shell: %v", err)
	}
	logOut.Infow("shutdown clean")
}
