// Package database owns the Postgres connection and schema migrations.
package database

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib" // Register the pgx stdlib driver.

	"github.com/yujinlab/authgate/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// connectTimeout bounds the initial connectivity check.
const connectTimeout = 5 * time.Second

// Connect opens a Postgres connection pool and verifies connectivity.
func Connect(conf config.Config) (*sql.DB, error) {
	dsn := (&url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(conf.Database.Username, conf.Database.Password),
		Host:   conf.Database.Addr,
		Path:   conf.Database.Database,
	}).String()

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("error in sql.Open call: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("error in db.PingContext call: %w", err)
	}

	return db, nil
}

// Migrate brings the database schema up to date using the embedded migrations.
func Migrate(db *sql.DB) error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("error in iofs.New call: %w", err)
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		return fmt.Errorf("error in pgxmigrate.WithInstance call: %w", err)
	}

	migrator, err := migrate.NewWithInstance("iofs", source, "pgx", driver)
	if err != nil {
		return fmt.Errorf("error in migrate.NewWithInstance call: %w", err)
	}

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error in migrator.Up call: %w", err)
	}

	slog.Info("database schema is up to date")
	return nil
}
