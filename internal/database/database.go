// Package database opens the storage backend selected by configuration and
// prepares its schema.
package database

import (
	"fmt"
	"strings"

	"emptycup/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Backend identifies one of the supported storage engines.
type Backend string

const (
	// BackendSQLite is the embedded, file-backed engine.
	BackendSQLite Backend = "sqlite"
	// BackendPostgres is the networked relational server.
	BackendPostgres Backend = "postgres"
)

// ConnectionError reports that the configured backend could not be reached.
type ConnectionError struct {
	Backend Backend
	Err     error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s database: %v", e.Backend, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// DB is an open connection pool bound to a single backend.
type DB struct {
	*gorm.DB
	Backend Backend
}

// ParseURL maps a database URL to its backend and driver DSN.
func ParseURL(url string) (Backend, string, error) {
	url = strings.TrimSpace(url)
	switch {
	case strings.HasPrefix(url, "sqlite:///"):
		return BackendSQLite, strings.TrimPrefix(url, "sqlite:///"), nil
	case strings.HasPrefix(url, "sqlite://"):
		return BackendSQLite, strings.TrimPrefix(url, "sqlite://"), nil
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return BackendPostgres, url, nil
	}
	return "", "", fmt.Errorf("unsupported database url %q", url)
}

// Open connects to the backend named by cfg.URL and verifies the connection.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	backend, dsn, err := ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	if dsn == "" {
		return nil, fmt.Errorf("database url %q has no location", cfg.URL)
	}

	var dialector gorm.Dialector
	switch backend {
	case BackendSQLite:
		dialector = sqlite.Open(sqliteDSN(dsn))
	case BackendPostgres:
		dialector = postgres.Open(dsn)
	}

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, &ConnectionError{Backend: backend, Err: err}
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, &ConnectionError{Backend: backend, Err: err}
	}
	if backend == BackendSQLite {
		// One writer at a time; avoids SQLITE_BUSY between pooled connections.
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, &ConnectionError{Backend: backend, Err: err}
	}

	return &DB{DB: gormDB, Backend: backend}, nil
}

// Close releases the underlying connection pool.
func (db *DB) Close() error {
	if db == nil || db.DB == nil {
		return nil
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func sqliteDSN(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on&_busy_timeout=5000"
}
