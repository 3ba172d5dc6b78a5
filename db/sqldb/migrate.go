package sqldb

import (
	"database/sql"
	"embed"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migrateMysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migrateSqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/navbryce/yatube/config"
	"github.com/pkg/errors"
)

//go:embed migrations
var migrations embed.FS

// MigrateUp applies every pending migration for the configured driver.
// It uses its own connection so closing the migrator leaves the app pool alone
func MigrateUp(cfg *config.DBConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Debug("database schema up to date", "driver", cfg.Driver)
			return nil
		}
		return errors.Wrap(err, "running migrations")
	}
	version, _, _ := m.Version()
	slog.Info("migrated database schema", "driver", cfg.Driver, "version", version)
	return nil
}

// MigrateDown rolls back every migration
func MigrateDown(cfg *config.DBConfig) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return errors.Wrap(err, "rolling back migrations")
	}
	return nil
}

func newMigrator(cfg *config.DBConfig) (*migrate.Migrate, error) {
	src, err := iofs.New(migrations, "migrations/"+cfg.Driver)
	if err != nil {
		return nil, errors.Wrap(err, "loading migrations")
	}

	sqlDB, err := sql.Open(cfg.DriverName(), cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "opening migration connection")
	}

	var driver database.Driver
	switch cfg.Driver {
	case config.DriverMySQL:
		driver, err = migrateMysql.WithInstance(sqlDB, &migrateMysql.Config{})
	case config.DriverSQLite:
		driver, err = migrateSqlite.WithInstance(sqlDB, &migrateSqlite.Config{})
	default:
		err = errors.Errorf("unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "creating migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", src, cfg.DriverName(), driver)
	if err != nil {
		sqlDB.Close()
		return nil, errors.Wrap(err, "creating migrator")
	}
	return m, nil
}
