package db

import (
	"database/sql"
	"embed"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate applies the embedded goose migrations. goose drives a
// database/sql handle, so a short-lived one is opened alongside the pool.
func Migrate(databaseURL string) error {
	handle, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer handle.Close()

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(handle, "migrations")
}
