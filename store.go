package gallery

import (
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// Store wraps a SQLite database holding the crawled image records.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	// Pragmas ride on the DSN so every pooled connection gets them, not
	// just the first. WAL for concurrent readers, busy_timeout so writers
	// wait instead of failing with SQLITE_BUSY. case_sensitive_like makes
	// LIKE an exact-case substring match, which the blocklist predicate
	// and the artist name filter both rely on.
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=case_sensitive_like(1)" +
		"&_pragma=cache_size(-8000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS images (
    id TEXT PRIMARY KEY,
    file_name TEXT NOT NULL,
    origin_id TEXT NOT NULL DEFAULT '',
    caption TEXT NOT NULL DEFAULT '',
    artist TEXT NOT NULL DEFAULT '',
    tags TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    width INTEGER NOT NULL DEFAULT 0,
    height INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_images_created_at ON images(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_images_artist ON images(artist);
CREATE TABLE IF NOT EXISTS history (
    id TEXT PRIMARY KEY
);
`)
	return err
}

func scanImage(rows interface{ Scan(...any) error }) (Image, error) {
	var img Image
	err := rows.Scan(&img.ID, &img.FileName, &img.OriginID, &img.Caption,
		&img.Artist, &img.Tags, &img.CreatedAt, &img.Width, &img.Height)
	return img, err
}

// QueryImages runs a built query and scans all rows. The result is
// never nil so handlers can serialize it as a JSON array directly.
func (s *Store) QueryImages(q Query) ([]Image, error) {
	rows, err := s.db.Query(q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// QueryImage runs a built query expected to yield at most one record.
// ErrNotFound is returned for an empty result.
func (s *Store) QueryImage(q Query) (Image, error) {
	return scanImage(s.db.QueryRow(q.SQL, q.Args...))
}

// GetImage returns a single record by id.
func (s *Store) GetImage(id string) (Image, error) {
	return scanImage(s.db.QueryRow(
		"SELECT "+imageColumns+" FROM images WHERE id = ?", id))
}

// RecentImages returns the newest records, most recent first.
func (s *Store) RecentImages(limit int) ([]Image, error) {
	return s.QueryImages(Query{
		SQL:  "SELECT " + imageColumns + " FROM images ORDER BY created_at DESC LIMIT ?",
		Args: []any{limit},
	})
}

// ArtistSummaries runs an artist grouping query.
func (s *Store) ArtistSummaries(q Query) ([]ArtistSummary, error) {
	rows, err := s.db.Query(q.SQL, q.Args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []ArtistSummary{}
	for rows.Next() {
		var a ArtistSummary
		if err := rows.Scan(&a.Artist, &a.Count, &a.Cover, &a.Width, &a.Height); err != nil {
			return nil, err
		}
		summaries = append(summaries, a)
	}
	return summaries, rows.Err()
}

// ArtistStats returns the record count and most recent created_at for
// one artist. A zero count means the artist is unknown.
func (s *Store) ArtistStats(artist string) (count int, latest int64, err error) {
	err = s.db.QueryRow(
		"SELECT COUNT(*), COALESCE(MAX(created_at), 0) FROM images WHERE artist = ?",
		artist).Scan(&count, &latest)
	return count, latest, err
}

// SaveImage inserts a record, silently keeping the existing row when the
// id is already present. Mirrors the crawler's INSERT OR IGNORE writes.
func (s *Store) SaveImage(img Image) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO images
		(id, file_name, origin_id, caption, artist, tags, created_at, width, height)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		img.ID, img.FileName, img.OriginID, img.Caption, img.Artist, img.Tags,
		img.CreatedAt, img.Width, img.Height)
	return err
}

// DeleteImage removes a record by id.
func (s *Store) DeleteImage(id string) error {
	_, err := s.db.Exec("DELETE FROM images WHERE id = ?", id)
	return err
}

// HistoryIDs returns every id the crawler should treat as seen: all
// stored records plus ids pushed through AddHistory. Sorted for stable
// output.
func (s *Store) HistoryIDs() ([]string, error) {
	rows, err := s.db.Query(`
		SELECT id FROM images UNION SELECT id FROM history ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// AddHistory upserts seen-ids pushed by the crawler. Blank entries are
// dropped.
func (s *Store) AddHistory(ids []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	stmt, err := tx.Prepare("INSERT OR IGNORE INTO history (id) VALUES (?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, err := stmt.Exec(id); err != nil {
			return err
		}
	}
	return tx.Commit()
}
