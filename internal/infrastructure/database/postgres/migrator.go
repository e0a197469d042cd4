package postgres

import (
	"database/sql"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/planwise-nz/planwise/internal/infrastructure/monitoring/logging"
	apperrors "github.com/planwise-nz/planwise/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrate applies every pending schema migration.  Already-current schemas
// are a no-op.
func Migrate(dsn string, logger logging.Logger) error {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("migrate")

	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "loading embedded migrations")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "opening migration connection")
	}

	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{})
	if err != nil {
		_ = db.Close()
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "creating migration driver")
	}

	m, err := migrate.NewWithInstance("iofs", source, "pgx5", driver)
	if err != nil {
		_ = db.Close()
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "creating migrator")
	}
	defer func() {
		sourceErr, dbErr := m.Close()
		if sourceErr != nil || dbErr != nil {
			logger.Warn("closing migrator", logging.Err(errors.Join(sourceErr, dbErr)))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "applying migrations")
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return apperrors.Wrap(err, apperrors.ErrCodeDatabaseError, "reading schema version")
	}
	logger.Info("schema migrations applied",
		logging.Int("version", int(version)),
		logging.Bool("dirty", dirty),
	)
	return nil
}
