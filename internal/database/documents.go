package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"media-parser/internal/metrics"
)

// ErrNotFound is returned when no document matches the query.
var ErrNotFound = errors.New("document not found")

// SaveDocument runs the pre-save hook chain and upserts the record. New
// documents get a uuid identifier.
func (d *Database) SaveDocument(ctx context.Context, doc *Document) error {
	d.runPreSaveHooks(doc)

	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	start := time.Now()
	var err error
	defer func() { recordQuery("save_document", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `
	INSERT INTO documents (id, original_filename, title, mime_type, size, mod_time, checksum, content, thumbnail_path, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, strftime('%s', 'now'))
	ON CONFLICT(id) DO UPDATE SET
		original_filename = excluded.original_filename,
		title = excluded.title,
		mime_type = excluded.mime_type,
		size = excluded.size,
		mod_time = excluded.mod_time,
		checksum = excluded.checksum,
		content = excluded.content,
		thumbnail_path = excluded.thumbnail_path,
		updated_at = strftime('%s', 'now')
	`

	_, err = d.db.ExecContext(ctx, query,
		doc.ID,
		doc.OriginalFilename,
		doc.Title,
		doc.MimeType,
		doc.Size,
		doc.ModTime.Unix(),
		doc.Checksum,
		doc.Content,
		doc.ThumbnailPath,
	)
	if err != nil {
		err = fmt.Errorf("failed to save document %s: %w", doc.OriginalFilename, err)
	}
	return err
}

const documentColumns = `id, original_filename, title, mime_type, size, mod_time, checksum,
	COALESCE(content, ''), COALESCE(thumbnail_path, ''), created_at, updated_at`

func scanDocument(row interface{ Scan(...interface{}) error }) (*Document, error) {
	var doc Document
	var modTime, createdAt, updatedAt int64
	var checksum sql.NullString

	err := row.Scan(
		&doc.ID, &doc.OriginalFilename, &doc.Title, &doc.MimeType,
		&doc.Size, &modTime, &checksum, &doc.Content, &doc.ThumbnailPath,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Checksum = checksum.String
	doc.ModTime = time.Unix(modTime, 0)
	doc.CreatedAt = time.Unix(createdAt, 0)
	doc.UpdatedAt = time.Unix(updatedAt, 0)
	return &doc, nil
}

// GetDocument retrieves a single document by id.
func (d *Database) GetDocument(ctx context.Context, id string) (*Document, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_document", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := d.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE id = ?", id)

	doc, scanErr := scanDocument(row)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		err = scanErr
		return nil, fmt.Errorf("failed to get document %s: %w", id, scanErr)
	}
	return doc, nil
}

// GetDocumentByChecksum retrieves a document by content checksum, used for
// duplicate detection during consumption.
func (d *Database) GetDocumentByChecksum(ctx context.Context, checksum string) (*Document, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("get_document", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := d.db.QueryRowContext(ctx,
		"SELECT "+documentColumns+" FROM documents WHERE checksum = ?", checksum)

	doc, scanErr := scanDocument(row)
	if scanErr != nil {
		if errors.Is(scanErr, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		err = scanErr
		return nil, fmt.Errorf("failed to get document by checksum: %w", scanErr)
	}
	return doc, nil
}

// ListDocuments returns documents ordered by creation time, newest first.
func (d *Database) ListDocuments(ctx context.Context, limit, offset int) ([]*Document, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("list_documents", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx,
		"SELECT "+documentColumns+" FROM documents ORDER BY created_at DESC, id LIMIT ? OFFSET ?",
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// SearchDocuments runs a full-text query over titles, filenames, and
// extracted excerpts.
func (d *Database) SearchDocuments(ctx context.Context, query string, limit int) ([]*Document, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("search_documents", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := d.db.QueryContext(ctx, `
		SELECT `+documentColumns+`
		FROM documents
		WHERE rowid IN (SELECT rowid FROM documents_fts WHERE documents_fts MATCH ? ORDER BY rank LIMIT ?)
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	defer rows.Close()

	return collectDocuments(rows)
}

// DeleteDocument removes a document record.
func (d *Database) DeleteDocument(ctx context.Context, id string) error {
	start := time.Now()
	var err error
	defer func() { recordQuery("delete_document", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	result, err := d.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", id, err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// CountDocuments returns the number of stored documents and refreshes the
// documents gauge.
func (d *Database) CountDocuments(ctx context.Context) (int, error) {
	start := time.Now()
	var err error
	defer func() { recordQuery("count_documents", start, err) }()

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var count int
	err = d.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count documents: %w", err)
	}
	metrics.DocumentsTotal.Set(float64(count))
	return count, nil
}

func collectDocuments(rows *sql.Rows) ([]*Document, error) {
	var docs []*Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration failed: %w", err)
	}
	return docs, nil
}
