package database

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"media-parser/internal/logging"
	"media-parser/internal/metrics"
)

// Default timeout for database operations
const defaultTimeout = 5 * time.Second

// Database manages document record persistence.
type Database struct {
	db     *sql.DB
	dbPath string

	hooksMu sync.RWMutex
	hooks   []PreSaveHook
}

// New creates a new Database instance. dbPath is the full path to the
// database file; the parent directory must already exist and be writable
// (startup.LoadConfig validates this).
func New(ctx context.Context, dbPath string) (*Database, error) {
	logging.Info("Database path: %s", dbPath)

	// WAL mode with a busy timeout keeps concurrent handler reads from
	// tripping over consumer writes.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_cache_size=10000&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	d := &Database{
		db:     db,
		dbPath: dbPath,
	}

	if err := d.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close database after initialization failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	logging.Info("Database initialized successfully at %s", dbPath)
	return d, nil
}

func (d *Database) initialize(ctx context.Context) error {
	start := time.Now()
	schema := `
	CREATE TABLE IF NOT EXISTS documents (
		id TEXT PRIMARY KEY,
		original_filename TEXT NOT NULL,
		title TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		mod_time INTEGER NOT NULL,
		checksum TEXT,
		content TEXT,
		thumbnail_path TEXT,
		created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now')),
		updated_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
	);

	CREATE INDEX IF NOT EXISTS idx_documents_filename ON documents(original_filename COLLATE NOCASE);
	CREATE INDEX IF NOT EXISTS idx_documents_mime_type ON documents(mime_type);
	CREATE INDEX IF NOT EXISTS idx_documents_checksum ON documents(checksum);

	-- Full-text search over titles, filenames, and extracted excerpts
	CREATE VIRTUAL TABLE IF NOT EXISTS documents_fts USING fts5(
		title,
		original_filename,
		content,
		content='documents',
		content_rowid='rowid',
		tokenize='trigram'
	);

	CREATE TRIGGER IF NOT EXISTS documents_ai AFTER INSERT ON documents BEGIN
		INSERT INTO documents_fts(rowid, title, original_filename, content)
		VALUES (new.rowid, new.title, new.original_filename, new.content);
	END;

	CREATE TRIGGER IF NOT EXISTS documents_ad AFTER DELETE ON documents BEGIN
		INSERT INTO documents_fts(documents_fts, rowid, title, original_filename, content)
		VALUES('delete', old.rowid, old.title, old.original_filename, old.content);
	END;

	CREATE TRIGGER IF NOT EXISTS documents_au AFTER UPDATE ON documents BEGIN
		INSERT INTO documents_fts(documents_fts, rowid, title, original_filename, content)
		VALUES('delete', old.rowid, old.title, old.original_filename, old.content);
		INSERT INTO documents_fts(rowid, title, original_filename, content)
		VALUES (new.rowid, new.title, new.original_filename, new.content);
	END;
	`

	_, err := d.db.ExecContext(ctx, schema)
	recordQuery("initialize_schema", start, err)
	return err
}

// Close closes the database connection.
func (d *Database) Close() error {
	return d.db.Close()
}

// RegisterPreSave appends a hook to the pre-save chain. Hooks run in
// registration order on every save.
func (d *Database) RegisterPreSave(hook PreSaveHook) {
	d.hooksMu.Lock()
	defer d.hooksMu.Unlock()
	d.hooks = append(d.hooks, hook)
}

// runPreSaveHooks invokes the hook chain. A panicking hook is logged and
// skipped so an enrichment hook can never take down a save.
func (d *Database) runPreSaveHooks(doc *Document) {
	d.hooksMu.RLock()
	hooks := d.hooks
	d.hooksMu.RUnlock()

	for i, hook := range hooks {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logging.Error("pre-save hook %d panicked for %s: %v", i, doc.OriginalFilename, r)
				}
			}()
			hook(doc)
		}()
	}
}

// recordQuery records database query metrics
func recordQuery(operation string, start time.Time, err error) {
	duration := time.Since(start).Seconds()
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.DBQueryTotal.WithLabelValues(operation, status).Inc()
	metrics.DBQueryDuration.WithLabelValues(operation).Observe(duration)
}

// UpdateDBMetrics updates database connection metrics
func (d *Database) UpdateDBMetrics() {
	stats := d.db.Stats()
	metrics.DBConnectionsOpen.Set(float64(stats.OpenConnections))
}
