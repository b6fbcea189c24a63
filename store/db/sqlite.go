package db // import "github.com/bookverse/bookverse/store/db"

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"sort"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/bookverse/bookverse/config"
	"github.com/bookverse/bookverse/version"
)

type DB struct {
	*sql.DB
}

func NewDB(path string) (*DB, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	d, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Foreign keys are off by default in sqlite; book_tags relies on the
	// ON DELETE CASCADE trigger.
	if _, err := d.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}

	return &DB{d}, nil
}

func (d *DB) Close() error {
	return d.DB.Close()
}

//go:embed migration
var migrationFS embed.FS

const latestSchemaFileName = "LATEST_SCHEMA.sql"

// Migrate applies the latest schema to the database
func (d *DB) Migrate(ctx context.Context) error {
	currentVersion := version.GetCurrentVersion()

	// Opening the database already creates the file, so freshness is
	// decided by the presence of the migration_history table.
	fresh, err := d.isFreshDatabase(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to check database state")
	}
	if fresh {
		if err := d.applyLatestSchema(ctx); err != nil {
			return errors.Wrap(err, "failed to apply latest schema")
		}
		// Upsert the newest version to migration_history.
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	migrationHistoryList, err := d.FindMigrationHistoryList(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to find migration history list")
	}

	// Schema is in place but the version row is missing, record it.
	if len(migrationHistoryList) == 0 {
		if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
			return errors.Wrap(err, "failed to upsert migration history")
		}
		return nil
	}

	migrationHistoryVersionList := []string{}
	for _, migrationHistory := range migrationHistoryList {
		migrationHistoryVersionList = append(migrationHistoryVersionList, migrationHistory.Version)
	}
	sort.Strings(migrationHistoryVersionList)
	latestMigrationHistoryVersion := migrationHistoryVersionList[len(migrationHistoryVersionList)-1]

	if version.IsVersionGreaterOrEqualThan(latestMigrationHistoryVersion, currentVersion) {
		return nil
	}

	minorVersionList, err := getMinorVersionList()
	if err != nil {
		return errors.Wrap(err, "failed to list migration versions")
	}

	// Backup the raw database file before migration
	rawBytes, err := os.ReadFile(config.Opts.DSN)
	if err != nil {
		return errors.Wrap(err, "failed to read raw database file")
	}
	backupDBFilePath := fmt.Sprintf("%s/bookverse_%s_%d_backup.db", config.Opts.Data, currentVersion, time.Now().Unix())
	if err := os.WriteFile(backupDBFilePath, rawBytes, 0644); err != nil {
		return errors.Wrap(err, "failed to write backup database file")
	}
	fmt.Println("Backup database file: ", backupDBFilePath)
	fmt.Printf("Start migration from %s to %s\n", latestMigrationHistoryVersion, currentVersion)

	for _, minorVersion := range minorVersionList {
		// Patch releases don't carry schema changes
		normalizedVersion := minorVersion + ".0"
		if !version.IsVersionGreaterOrEqualThan(latestMigrationHistoryVersion, normalizedVersion) &&
			version.IsVersionGreaterOrEqualThan(currentVersion, normalizedVersion) {
			fmt.Println("Applying migration for", normalizedVersion)
			if err := d.applyMigrationForMinorVersion(ctx, minorVersion); err != nil {
				return errors.Wrap(err, "failed to apply minor version migration")
			}
		}
	}
	fmt.Println("End migrate")

	if _, err := d.UpsertMigrationHistory(ctx, currentVersion); err != nil {
		return errors.Wrap(err, "failed to upsert migration history")
	}

	// Remove the created backup db file after migrate succeed.
	if err := os.Remove(backupDBFilePath); err != nil {
		fmt.Printf("Failed to remove temp database file, err: %v\n", err)
	}
	return nil
}

// ApplyLatestSchema creates all tables on an empty database. Exported for
// tests which run against a throwaway file.
func (d *DB) ApplyLatestSchema(ctx context.Context) error {
	return d.applyLatestSchema(ctx)
}

func (d *DB) applyLatestSchema(ctx context.Context) error {
	latestSchemaPath := fmt.Sprintf("migration/%s", latestSchemaFileName)
	buf, err := migrationFS.ReadFile(latestSchemaPath)
	if err != nil {
		return errors.Wrapf(err, "failed to read latest schema file: %q", latestSchemaPath)
	}

	stmt := string(buf)
	if err := d.execute(ctx, stmt); err != nil {
		return errors.Wrapf(err, "failed to apply latest schema: %s", stmt)
	}
	return nil
}

func (d *DB) applyMigrationForMinorVersion(ctx context.Context, minorVersion string) error {
	filenames, err := fs.Glob(migrationFS, fmt.Sprintf("migration/%s/*.sql", minorVersion))
	if err != nil {
		return errors.Wrap(err, "failed to read migration files")
	}
	sort.Strings(filenames)

	for _, filename := range filenames {
		buf, err := migrationFS.ReadFile(filename)
		if err != nil {
			return errors.Wrapf(err, "failed to read migration file: %q", filename)
		}
		if err := d.execute(ctx, string(buf)); err != nil {
			return errors.Wrapf(err, "failed to apply migration file: %q", filename)
		}
	}
	return nil
}

// getMinorVersionList lists the versioned migration directories, sorted.
func getMinorVersionList() ([]string, error) {
	entries, err := migrationFS.ReadDir("migration")
	if err != nil {
		return nil, err
	}

	list := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			list = append(list, entry.Name())
		}
	}
	slices.Sort(list)
	return list, nil
}

func (d *DB) isFreshDatabase(ctx context.Context) (bool, error) {
	var count int
	err := d.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'migration_history'`,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

func (d *DB) execute(ctx context.Context, stmt string) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(stmt); err != nil {
		return errors.Wrap(err, "failed to execute statement")
	}
	return tx.Commit()
}
