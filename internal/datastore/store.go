package datastore

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"gordiva/internal/asset"
	"gordiva/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// ErrLocked indicates another process holds the datastore lock.
var ErrLocked = errors.New("datastore is locked by another process")

const assetColumns = `guid, name, filesize, datatapeid, objectnm, contentlength,
    sourcecreatedt, createdt, lastmdydt, timecodein, timecodeout, onairid, ruri,
    titletype, framerate, codec, v_width, v_height, traffic_code, duration_ms,
    xml_created, proxy_copied, content_type, filename, metaxml, oc_component_name`

// Store manages asset persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open connects to the assets database, guarding it with a file lock so
// concurrent pipeline runs cannot interleave writes.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	lock := flock.New(cfg.LockPath())
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire datastore lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.ExecContext(context.Background(), schemaSQL); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: dbPath}, nil
}

// Close closes the database connection and releases the lock.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	var closeErr error
	if s.db != nil {
		closeErr = s.db.Close()
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil && closeErr == nil {
			closeErr = err
		}
	}
	return closeErr
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// ReplaceBatch replaces the assets table contents with the given cleaned
// batch. Check-in flags carried on the records are preserved, so reloading
// a batch that was partially checked in does not lose progress.
func (s *Store) ReplaceBatch(ctx context.Context, records []asset.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM assets`); err != nil {
		return fmt.Errorf("clear assets: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO assets (`+assetColumns+`)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := range records {
		rec := &records[i]
		if _, err := stmt.ExecContext(ctx,
			rec.GUID, rec.Name, rec.FileSize, rec.DataTapeID, rec.ObjectName,
			rec.ContentLength, rec.SourceCreated, rec.Created, rec.LastModified,
			rec.TimecodeIn, rec.TimecodeOut, rec.OnAirID, rec.RURI,
			string(rec.TitleType), rec.FrameRate, rec.Codec, rec.Width, rec.Height,
			rec.TrafficCode, rec.DurationMS, rec.XMLCreated, rec.ProxyCopied,
			rec.ContentType, rec.Filename, rec.MetaXML, rec.OCComponentName,
		); err != nil {
			return fmt.Errorf("insert asset %s: %w", rec.GUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch tx: %w", err)
	}
	return nil
}

// GetByGUID fetches a single asset, or nil when absent.
func (s *Store) GetByGUID(ctx context.Context, guid string) (*asset.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+assetColumns+` FROM assets WHERE guid = ?`, guid)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get asset: %w", err)
	}
	return rec, nil
}

// PendingCheckin returns assets awaiting a descriptor. Only assets with an
// allocated data tape and a known object component qualify for check-in.
func (s *Store) PendingCheckin(ctx context.Context, limit int) ([]asset.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets
         WHERE xml_created = 0 AND datatapeid <> ? AND oc_component_name <> ?
         ORDER BY guid LIMIT ?`,
		asset.Null, asset.Null, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending checkin: %w", err)
	}
	return collectRecords(rows)
}

// PendingProxy returns checked-in assets whose proxy has not been handled.
func (s *Store) PendingProxy(ctx context.Context, limit int) ([]asset.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+assetColumns+` FROM assets
         WHERE xml_created = 1 AND proxy_copied = ?
         ORDER BY guid LIMIT ?`,
		asset.ProxyNotCopied, limit)
	if err != nil {
		return nil, fmt.Errorf("query pending proxy: %w", err)
	}
	return collectRecords(rows)
}

// MarkXMLCreated flags descriptors as written and reports how many rows changed.
func (s *Store) MarkXMLCreated(ctx context.Context, guids []string) (int64, error) {
	if len(guids) == 0 {
		return 0, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(guids)), ", ")
	args := make([]any, len(guids))
	for i, guid := range guids {
		args[i] = guid
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE assets SET xml_created = 1 WHERE guid IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("mark xml created: %w", err)
	}
	return res.RowsAffected()
}

// MarkProxyCopied records the proxy state for one asset.
func (s *Store) MarkProxyCopied(ctx context.Context, guid string, state int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE assets SET proxy_copied = ? WHERE guid = ?`, state, guid)
	if err != nil {
		return fmt.Errorf("mark proxy copied: %w", err)
	}
	return nil
}

// Stats summarizes batch progress.
type Stats struct {
	Total              int
	XMLCreated         int
	ProxyCopied        int
	ProxyNotApplicable int
}

// Stats reports aggregate check-in progress for the loaded batch.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
            COALESCE(SUM(CASE WHEN xml_created = 1 THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN proxy_copied = ? THEN 1 ELSE 0 END), 0),
            COALESCE(SUM(CASE WHEN proxy_copied = ? THEN 1 ELSE 0 END), 0)
         FROM assets`,
		asset.ProxyCopied, asset.ProxyNotApplicable)
	if err := row.Scan(&stats.Total, &stats.XMLCreated, &stats.ProxyCopied, &stats.ProxyNotApplicable); err != nil {
		return stats, fmt.Errorf("query stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*asset.Record, error) {
	rec := asset.NewRecord()
	var titleType string
	if err := row.Scan(
		&rec.GUID, &rec.Name, &rec.FileSize, &rec.DataTapeID, &rec.ObjectName,
		&rec.ContentLength, &rec.SourceCreated, &rec.Created, &rec.LastModified,
		&rec.TimecodeIn, &rec.TimecodeOut, &rec.OnAirID, &rec.RURI,
		&titleType, &rec.FrameRate, &rec.Codec, &rec.Width, &rec.Height,
		&rec.TrafficCode, &rec.DurationMS, &rec.XMLCreated, &rec.ProxyCopied,
		&rec.ContentType, &rec.Filename, &rec.MetaXML, &rec.OCComponentName,
	); err != nil {
		return nil, err
	}
	rec.TitleType = asset.TitleType(titleType)
	return &rec, nil
}

func collectRecords(rows *sql.Rows) ([]asset.Record, error) {
	defer rows.Close()
	var records []asset.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan asset: %w", err)
		}
		records = append(records, *rec)
	}
	return records, rows.Err()
}
