package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

const (
	// DriverModernc is the pure Go driver. FTS5 is compiled in.
	DriverModernc = "sqlite"
	// DriverCGO is the cgo driver. The full-text index needs the binary to be
	// built with -tags sqlite_fts5, otherwise search degrades to unavailable.
	DriverCGO = "sqlite3"

	// busyTimeoutMillis bounds how long a connection waits on another writer
	// before the statement fails with SQLITE_BUSY.
	busyTimeoutMillis = 5000
)

// New opens a SQLite database connection at the given path using driver.
// Foreign keys, WAL journaling and a busy timeout are set per connection
// through the DSN, and transactions take the write lock at BEGIN.
func New(driver, path string) (*sql.DB, error) {
	dsn, err := buildDSN(driver, path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}

	// Set connection pool settings
	db.SetMaxOpenConns(8)
	db.SetMaxIdleConns(4)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func buildDSN(driver, path string) (string, error) {
	switch driver {
	case DriverModernc:
		return fmt.Sprintf(
			"file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_txlock=immediate",
			path, busyTimeoutMillis,
		), nil
	case DriverCGO:
		return fmt.Sprintf(
			"file:%s?_foreign_keys=on&_busy_timeout=%d&_journal_mode=WAL&_txlock=immediate",
			path, busyTimeoutMillis,
		), nil
	default:
		return "", fmt.Errorf("unsupported sqlite driver %q", driver)
	}
}

// Migrate runs database migrations to create the entity tables and the sync
// state table. It is idempotent and can be run multiple times safely.
// The full-text index is owned by the searchindex package.
func Migrate(db *sql.DB) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS novels (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			cover_url TEXT NOT NULL DEFAULT '',
			word_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS novels_by_updated_at ON novels(updated_at);`,
		`CREATE TABLE IF NOT EXISTS volumes (
			id TEXT PRIMARY KEY,
			novel_id TEXT NOT NULL,
			title TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			FOREIGN KEY (novel_id) REFERENCES novels(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS volumes_by_novel ON volumes(novel_id, sort_order);`,
		`CREATE INDEX IF NOT EXISTS volumes_by_updated_at ON volumes(updated_at);`,
		`CREATE TABLE IF NOT EXISTS chapters (
			id TEXT PRIMARY KEY,
			volume_id TEXT NOT NULL,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			sort_order INTEGER NOT NULL DEFAULT 0,
			word_count INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			FOREIGN KEY (volume_id) REFERENCES volumes(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS chapters_by_volume ON chapters(volume_id, sort_order);`,
		`CREATE INDEX IF NOT EXISTS chapters_by_updated_at ON chapters(updated_at);`,
		`CREATE TABLE IF NOT EXISTS ideas (
			id TEXT PRIMARY KEY,
			novel_id TEXT NOT NULL,
			chapter_id TEXT,
			content TEXT NOT NULL DEFAULT '',
			quote TEXT NOT NULL DEFAULT '',
			is_starred INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL,
			FOREIGN KEY (novel_id) REFERENCES novels(id) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS ideas_by_novel ON ideas(novel_id);`,
		`CREATE TABLE IF NOT EXISTS sync_state (
			id TEXT PRIMARY KEY,
			cursor INTEGER NOT NULL DEFAULT 0,
			updated_at INTEGER NOT NULL
		);`,
	}

	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	return nil
}
