package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/lukirizki/articlehub/internal/db/migrations"
	"github.com/pressly/goose/v3"
)

// Migrate applies the embedded schema. goose works on database/sql, so this
// opens a short-lived connection through the pgx stdlib driver.
func Migrate(ctx context.Context, dbURL string) error {
	sqlDB, err := sql.Open("pgx", dbURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations.FS)

	err = goose.SetDialect("pgx")
	if err != nil {
		return err
	}

	err = goose.UpContext(ctx, sqlDB, ".")
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
