package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mongodb"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.mongodb.org/mongo-driver/mongo"
)

//go:embed migrations/*.json
var migrations embed.FS

// MigrationsCollection records the applied schema version.
const MigrationsCollection = "schema_migrations"

// Migrate brings the indexes of db up to the latest version. It is safe to
// call on every start.
func Migrate(db *mongo.Database) error {
	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("reading migrations: %w", err)
	}

	// The driver is not closed: closing it disconnects the shared client.
	drv, err := mongodb.WithInstance(db.Client(), &mongodb.Config{
		DatabaseName:         db.Name(),
		MigrationsCollection: MigrationsCollection,
	})
	if err != nil {
		return fmt.Errorf("creating migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "mongodb", drv)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("applying migrations: %w", err)
	}
	return nil
}
