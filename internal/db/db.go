package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // The database driver
	"github.com/rs/zerolog/log"
)

// DB is the global database connection.
var DB *sqlx.DB

// InitDB opens and verifies the connection to the postgres database at dbURL.
func InitDB(dbURL string) error {
	if dbURL == "" {
		return errors.New("database url is empty")
	}

	conn, err := sqlx.Connect("postgres", dbURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	DB = conn
	log.Info().Msg("Database connection established")
	return nil
}

// Ping checks that the database is still reachable.
func Ping(ctx context.Context) error {
	return DB.PingContext(ctx)
}

// Close releases the global connection pool.
func Close() error {
	if DB == nil {
		return nil
	}
	return DB.Close()
}
