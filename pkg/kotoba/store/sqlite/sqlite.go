package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/cognicore/kotoba/pkg/kotoba/internalerr"
	"github.com/cognicore/kotoba/pkg/kotoba/store"
)

// sqliteStore implements the Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}
	// Pragmas are per connection and writers must not contend for the lock.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id TEXT PRIMARY KEY,
	url TEXT UNIQUE NOT NULL,
	title TEXT,
	outlet TEXT,
	published_at TEXT,
	ingested_at TEXT
);

CREATE TABLE IF NOT EXISTS doc_entries (
	doc_id TEXT NOT NULL,
	base TEXT NOT NULL,
	pos TEXT NOT NULL,
	reading TEXT,
	kind TEXT,
	count INTEGER NOT NULL,
	UNIQUE(doc_id, base, pos),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_doc_entries_base ON doc_entries(base);

CREATE TABLE IF NOT EXISTS stoplist (
	base TEXT PRIMARY KEY
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// UpsertDoc inserts or updates a document, keyed by URL
func (s *sqliteStore) UpsertDoc(ctx context.Context, d store.Doc) error {
	if d.URL == "" {
		return fmt.Errorf("doc URL is required: %w", internalerr.ErrInvalidInput)
	}
	if d.ID == "" {
		return fmt.Errorf("doc ID is required: %w", internalerr.ErrInvalidInput)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (id, url, title, outlet, published_at, ingested_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(url) DO UPDATE SET
	title=excluded.title,
	outlet=excluded.outlet,
	published_at=excluded.published_at,
	ingested_at=excluded.ingested_at
RETURNING id;
`

	var docID string
	err = tx.QueryRowContext(
		ctx,
		stmt,
		d.ID,
		d.URL,
		d.Title,
		d.Outlet,
		formatTime(d.PublishedAt),
		formatTime(d.IngestedAt),
	).Scan(&docID)
	if err != nil {
		return err
	}

	if err := replaceDocEntries(ctx, tx, docID, d.Entries); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceDocEntries(ctx context.Context, tx *sql.Tx, docID string, entries []store.Entry) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_entries WHERE doc_id=?`, docID); err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO doc_entries (doc_id, base, pos, reading, kind, count) VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(doc_id, base, pos) DO UPDATE SET count=count+excluded.count;
`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, e := range entries {
		if e.Base == "" || e.Count <= 0 {
			continue
		}
		if _, err := stmt.ExecContext(ctx, docID, e.Base, e.POS, e.Reading, e.Kind, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// GetDoc retrieves a document by ID
func (s *sqliteStore) GetDoc(ctx context.Context, id string) (store.Doc, error) {
	doc, err := s.loadDoc(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Doc{}, fmt.Errorf("doc %s: %w", id, internalerr.ErrNotFound)
	}
	return doc, err
}

// GetDocByURL retrieves a document by URL
func (s *sqliteStore) GetDocByURL(ctx context.Context, url string) (store.Doc, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `SELECT id FROM docs WHERE url = ?`, url).Scan(&id)
	if err == sql.ErrNoRows {
		return store.Doc{}, false, nil
	}
	if err != nil {
		return store.Doc{}, false, err
	}

	doc, err := s.loadDoc(ctx, id)
	if err != nil {
		return store.Doc{}, false, err
	}
	return doc, true, nil
}

// DocsForBase retrieves documents containing base, most occurrences first
func (s *sqliteStore) DocsForBase(ctx context.Context, base string, limit int) ([]store.Doc, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT d.id
FROM docs d
JOIN doc_entries e ON d.id = e.doc_id
WHERE e.base = ?
GROUP BY d.id
ORDER BY SUM(e.count) DESC, d.ingested_at DESC, d.id ASC
LIMIT ?;
`, base, limit)
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	results := make([]store.Doc, 0, len(ids))
	for _, id := range ids {
		doc, err := s.loadDoc(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, doc)
	}
	return results, nil
}

// DocCount returns the number of stored documents
func (s *sqliteStore) DocCount(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`).Scan(&total)
	return total, err
}

// TopEntries aggregates entries over all documents. A limit <= 0 returns
// every entry.
func (s *sqliteStore) TopEntries(ctx context.Context, filter store.Filter, limit int) ([]store.Vocab, error) {
	var (
		where string
		args  []any
	)
	if len(filter.POS) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(filter.POS)), ",")
		where = fmt.Sprintf("WHERE pos IN (%s)", placeholders)
		for _, p := range filter.POS {
			args = append(args, p)
		}
	}
	query := fmt.Sprintf(`
SELECT base, pos, MAX(reading), SUM(count), COUNT(DISTINCT doc_id)
FROM doc_entries
%s
GROUP BY base, pos
ORDER BY SUM(count) DESC, COUNT(DISTINCT doc_id) DESC, base ASC, pos ASC
`, where)
	if limit > 0 {
		query += "LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []store.Vocab
	for rows.Next() {
		var (
			v       store.Vocab
			reading sql.NullString
		)
		if err := rows.Scan(&v.Base, &v.POS, &reading, &v.Count, &v.DF); err != nil {
			return nil, err
		}
		v.Reading = reading.String
		out = append(out, v)
	}
	return out, rows.Err()
}

// UpsertStoplist replaces the stoplist in a single transaction.
func (s *sqliteStore) UpsertStoplist(ctx context.Context, bases []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM stoplist`); err != nil {
		return err
	}

	if len(bases) > 0 {
		stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO stoplist (base) VALUES (?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, b := range bases {
			if b == "" {
				continue
			}
			if _, err := stmt.ExecContext(ctx, b); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

// Stoplist returns the persisted stoplist, sorted.
func (s *sqliteStore) Stoplist(ctx context.Context) ([]string, error) {
	return s.loadStringColumn(ctx, `SELECT base FROM stoplist ORDER BY base`)
}

func (s *sqliteStore) loadDoc(ctx context.Context, id string) (store.Doc, error) {
	var (
		doc                 store.Doc
		title, outlet       sql.NullString
		published, ingested sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
SELECT id, url, title, outlet, published_at, ingested_at
FROM docs
WHERE id = ?;
`, id).Scan(&doc.ID, &doc.URL, &title, &outlet, &published, &ingested)
	if err != nil {
		return store.Doc{}, err
	}
	doc.Title = title.String
	doc.Outlet = outlet.String
	doc.PublishedAt = parseTime(published.String)
	doc.IngestedAt = parseTime(ingested.String)

	rows, err := s.db.QueryContext(ctx, `
SELECT base, pos, reading, kind, count
FROM doc_entries
WHERE doc_id=?
ORDER BY count DESC, base ASC, pos ASC
`, id)
	if err != nil {
		return store.Doc{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			e             store.Entry
			reading, kind sql.NullString
		)
		if err := rows.Scan(&e.Base, &e.POS, &reading, &kind, &e.Count); err != nil {
			return store.Doc{}, err
		}
		e.Reading = reading.String
		e.Kind = kind.String
		doc.Entries = append(doc.Entries, e)
	}
	if err := rows.Err(); err != nil {
		return store.Doc{}, err
	}

	return doc, nil
}

func (s *sqliteStore) loadStringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var val string
		if err := rows.Scan(&val); err != nil {
			return nil, err
		}
		result = append(result, val)
	}
	return result, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
