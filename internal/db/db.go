// db.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sukalov/lyricle/internal/utils"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

var (
	Database *sql.DB
	once     sync.Once
	initErr  error
)

const schema = `CREATE TABLE IF NOT EXISTS puzzles (
	spotify_id  TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	artist      TEXT NOT NULL,
	preview_url TEXT,
	chorus      TEXT NOT NULL,
	run_id      TEXT NOT NULL,
	updated_at  INTEGER NOT NULL
)`

// Init opens the Turso database from TURSO_DATABASE_URL and TURSO_AUTH_TOKEN,
// creates the schema and loads the puzzle book
func Init(ctx context.Context) error {
	once.Do(func() {
		env, err := utils.LoadEnv([]string{"TURSO_DATABASE_URL", "TURSO_AUTH_TOKEN"})
		if err != nil {
			initErr = fmt.Errorf("failed to load db env: %w", err)
			return
		}
		url := fmt.Sprintf("%s?authToken=%s", env["TURSO_DATABASE_URL"], env["TURSO_AUTH_TOKEN"])

		Database, initErr = sql.Open("libsql", url)
		if initErr != nil {
			initErr = fmt.Errorf("failed to open db %s: %w", env["TURSO_DATABASE_URL"], initErr)
			return
		}

		Database.SetMaxOpenConns(25)
		Database.SetMaxIdleConns(25)
		Database.SetConnMaxLifetime(5 * time.Minute)

		if err := Database.PingContext(ctx); err != nil {
			initErr = fmt.Errorf("failed to ping database: %w", err)
			return
		}

		if _, err := Database.ExecContext(ctx, schema); err != nil {
			initErr = fmt.Errorf("failed to create schema: %w", err)
			return
		}

		initErr = Puzzlebook.init(ctx)
	})

	return initErr
}

// Close closes the database connection safely
func Close() {
	if Database != nil {
		if err := Database.Close(); err != nil {
			log.Printf("error closing database: %v", err)
		}
	}
}
