package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (creating if necessary) the SQLite database at dbPath,
// enables foreign keys and WAL mode, and creates the schema.
func Open(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %v", err)
	}

	// DSN options apply to every pooled connection; a plain PRAGMA
	// would only configure the connection that ran it.
	dsn := dbPath + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %v", err)
	}

	if err := createTables(db); err != nil {
		return nil, fmt.Errorf("failed to create tables: %v", err)
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	createFoldersTable := `
	CREATE TABLE IF NOT EXISTS folders (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		owner_id TEXT NOT NULL,
		parent_folder_id TEXT REFERENCES folders(id) ON DELETE SET NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_folders_owner ON folders(owner_id);
	CREATE INDEX IF NOT EXISTS idx_folders_parent ON folders(parent_folder_id);
	`

	createFilesTable := `
	CREATE TABLE IF NOT EXISTS files (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		file_type TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		owner_id TEXT NOT NULL,
		folder_id TEXT REFERENCES folders(id) ON DELETE SET NULL,
		blob_path TEXT NOT NULL,
		current_version INTEGER NOT NULL DEFAULT 0,
		created_at TEXT NOT NULL,
		updated_at TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_files_owner ON files(owner_id);
	CREATE INDEX IF NOT EXISTS idx_files_folder ON files(folder_id);
	`

	// UNIQUE(file_id, version_number) keeps the ledger write-once: a
	// duplicate snapshot surfaces as an error instead of a silent
	// second entry for the same version.
	createVersionsTable := `
	CREATE TABLE IF NOT EXISTS file_versions (
		id TEXT PRIMARY KEY,
		file_id TEXT NOT NULL REFERENCES files(id) ON DELETE CASCADE,
		version_number INTEGER NOT NULL,
		blob_path TEXT NOT NULL,
		superseded_at TEXT NOT NULL,
		UNIQUE(file_id, version_number)
	);

	CREATE INDEX IF NOT EXISTS idx_versions_file ON file_versions(file_id);
	`

	createSharesTable := `
	CREATE TABLE IF NOT EXISTS file_shares (
		id TEXT PRIMARY KEY,
		file_id TEXT REFERENCES files(id) ON DELETE SET NULL,
		folder_id TEXT REFERENCES folders(id) ON DELETE SET NULL,
		owner_id TEXT NOT NULL,
		shared_to_user_id TEXT,
		shared_to_email TEXT,
		access_level INTEGER NOT NULL DEFAULT 0,
		expiration_date TEXT,
		token TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_shares_owner ON file_shares(owner_id);
	`

	createAuditTable := `
	CREATE TABLE IF NOT EXISTS audit_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		level TEXT NOT NULL,
		event_code TEXT NOT NULL,
		message TEXT NOT NULL,
		details TEXT,
		hostname TEXT NOT NULL,
		request_id TEXT,
		actor TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_logs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_audit_event_code ON audit_logs(event_code);
	`

	tables := []string{createFoldersTable, createFilesTable, createVersionsTable, createSharesTable, createAuditTable}
	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to create table: %v", err)
		}
	}

	return nil
}
