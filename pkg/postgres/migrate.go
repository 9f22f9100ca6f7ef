package postgres

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // register postgres driver
	_ "github.com/golang-migrate/migrate/v4/source/file"       // register file source driver
)

// defaultMigrationsSource points at the schema files shipped with the service.
const defaultMigrationsSource = "file://./migrations"

// RunMigrations applies all pending schema migrations. An empty source falls
// back to the migrations directory shipped with the service; a run with
// nothing to apply returns nil.
func RunMigrations(dsn string, source string) error {
	if source == "" {
		source = defaultMigrationsSource
	}
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations up: %w", err)
	}
	return nil
}

// RunMigrationsDown rolls the schema all the way back. Intended for
// development databases; a run with nothing to roll back returns nil.
func RunMigrationsDown(dsn string, source string) error {
	if source == "" {
		source = defaultMigrationsSource
	}
	m, err := migrate.New(source, dsn)
	if err != nil {
		return fmt.Errorf("postgres: create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("postgres: run migrations down: %w", err)
	}
	return nil
}
