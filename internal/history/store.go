package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS uploads (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    asset_id TEXT NOT NULL,
    catalog_id TEXT NOT NULL,
    album_id TEXT,
    file_name TEXT NOT NULL,
    fingerprint TEXT NOT NULL,
    bytes INTEGER NOT NULL,
    uploaded_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_uploads_fingerprint ON uploads(fingerprint);
`

// Record is one completed upload.
type Record struct {
	ID          int64
	AssetID     string
	CatalogID   string
	AlbumID     string
	FileName    string
	Fingerprint string
	Bytes       int64
	UploadedAt  time.Time
}

// Store manages the upload ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the ledger database. The sidecar lock
// file must be acquirable; a second lrcloud process gets an error
// instead of contending for the database.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire history lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("history database %s is in use by another lrcloud process", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: path}, nil
}

// Close releases the database connection and the lock file.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var dbErr error
	if s.db != nil {
		dbErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && dbErr == nil {
			dbErr = err
		}
	}
	return dbErr
}

// RecordUpload inserts a completed upload and returns the stored record.
func (s *Store) RecordUpload(ctx context.Context, rec Record) (*Record, error) {
	if strings.TrimSpace(rec.AssetID) == "" {
		return nil, errors.New("asset id required")
	}
	if strings.TrimSpace(rec.Fingerprint) == "" {
		return nil, errors.New("fingerprint required")
	}
	if rec.UploadedAt.IsZero() {
		rec.UploadedAt = time.Now()
	}
	rec.UploadedAt = rec.UploadedAt.UTC()

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO uploads (asset_id, catalog_id, album_id, file_name, fingerprint, bytes, uploaded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.AssetID,
		rec.CatalogID,
		nullableString(rec.AlbumID),
		rec.FileName,
		rec.Fingerprint,
		rec.Bytes,
		rec.UploadedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("insert upload: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	rec.ID = id
	return &rec, nil
}

// Recent returns the most recent uploads, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, asset_id, catalog_id, album_id, file_name, fingerprint, bytes, uploaded_at
         FROM uploads ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query uploads: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate uploads: %w", err)
	}
	return records, nil
}

// FindByFingerprint returns the most recent upload of the given content
// fingerprint, or nil when none is recorded.
func (s *Store) FindByFingerprint(ctx context.Context, fingerprint string) (*Record, error) {
	fingerprint = strings.TrimSpace(fingerprint)
	if fingerprint == "" {
		return nil, errors.New("fingerprint required")
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, asset_id, catalog_id, album_id, file_name, fingerprint, bytes, uploaded_at
         FROM uploads WHERE fingerprint = ? ORDER BY id DESC LIMIT 1`,
		fingerprint,
	)
	if err != nil {
		return nil, fmt.Errorf("query fingerprint: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate fingerprint: %w", err)
		}
		return nil, nil
	}
	rec, err := scanRecord(rows)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var albumID sql.NullString
	var uploadedAt string
	if err := rows.Scan(&rec.ID, &rec.AssetID, &rec.CatalogID, &albumID, &rec.FileName, &rec.Fingerprint, &rec.Bytes, &uploadedAt); err != nil {
		return Record{}, fmt.Errorf("scan upload: %w", err)
	}
	if albumID.Valid {
		rec.AlbumID = albumID.String
	}
	parsed, err := time.Parse(time.RFC3339Nano, uploadedAt)
	if err != nil {
		return Record{}, fmt.Errorf("parse uploaded_at %q: %w", uploadedAt, err)
	}
	rec.UploadedAt = parsed
	return rec, nil
}

func nullableString(value string) any {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return value
}
