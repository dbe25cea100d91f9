package importer

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// ErrUnknownSource is returned when an adapter ID has no row in corpus_sources.
var ErrUnknownSource = errors.New("unknown import source")

// Source is one row of the corpus_sources table.
type Source struct {
	AdapterID   string
	CorpusID    string
	Description string
	SourceURL   string
	License     string
	LastCheck   *int64
	LastStatus  *int
	LastError   *string
	LastImport  *int64
	Words       *int
	UpdatedAt   int64
}

// Reachable reports whether the last availability check returned a 2xx or 3xx.
func (s Source) Reachable() bool {
	return s.LastStatus != nil && *s.LastStatus >= 200 && *s.LastStatus < 400
}

// SourceDB tracks where each corpus is downloaded from and when it was last
// checked and imported.
type SourceDB struct {
	db *sql.DB
}

const sourcesDDL = `CREATE TABLE IF NOT EXISTS corpus_sources (
	adapter_id   TEXT PRIMARY KEY,
	corpus_id    TEXT NOT NULL,
	description  TEXT NOT NULL,
	source_url   TEXT NOT NULL,
	license      TEXT NOT NULL DEFAULT '',
	last_check   INTEGER,
	last_status  INTEGER,
	last_error   TEXT,
	last_import  INTEGER,
	words        INTEGER,
	updated_at   INTEGER NOT NULL
)`

const sourceColumns = `adapter_id, corpus_id, description, source_url, license,
	last_check, last_status, last_error, last_import, words, updated_at`

// OpenSourceDB opens (or creates) the SQLite database at path.
func OpenSourceDB(path string) (*SourceDB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open source db: %w", err)
	}
	if _, err := db.Exec(sourcesDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("create corpus_sources table: %w", err)
	}
	return &SourceDB{db: db}, nil
}

func (s *SourceDB) Close() error {
	return s.db.Close()
}

// Seed inserts a default row per adapter. Existing rows are kept so that
// URL overrides survive restarts.
func (s *SourceDB) Seed(adapters []Adapter) error {
	const q = `INSERT OR IGNORE INTO corpus_sources
		(adapter_id, corpus_id, description, source_url, license, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	now := time.Now().Unix()
	for _, a := range adapters {
		if _, err := s.db.Exec(q, a.ID(), a.CorpusID(), a.Description(), a.DefaultURL(), a.License(), now); err != nil {
			return fmt.Errorf("seed %s: %w", a.ID(), err)
		}
	}
	return nil
}

// GetURL returns the current source URL for adapterID.
func (s *SourceDB) GetURL(adapterID string) (string, error) {
	var url string
	err := s.db.QueryRow(`SELECT source_url FROM corpus_sources WHERE adapter_id = ?`, adapterID).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: %s", ErrUnknownSource, adapterID)
	}
	if err != nil {
		return "", fmt.Errorf("get url for %s: %w", adapterID, err)
	}
	return url, nil
}

// SetURL overrides the source URL for adapterID.
func (s *SourceDB) SetURL(adapterID, url string) error {
	return s.update(adapterID, "set url",
		`UPDATE corpus_sources SET source_url = ?, updated_at = ? WHERE adapter_id = ?`,
		url, time.Now().Unix(), adapterID)
}

// UpdateCheck persists the result of an availability check.
func (s *SourceDB) UpdateCheck(adapterID string, status int, checkErr string) error {
	var errPtr *string
	if checkErr != "" {
		errPtr = &checkErr
	}
	return s.update(adapterID, "update check",
		`UPDATE corpus_sources SET last_check = ?, last_status = ?, last_error = ? WHERE adapter_id = ?`,
		time.Now().Unix(), status, errPtr, adapterID)
}

// RecordImport stores the time and size of a successful import.
func (s *SourceDB) RecordImport(adapterID string, words int) error {
	return s.update(adapterID, "record import",
		`UPDATE corpus_sources SET last_import = ?, words = ? WHERE adapter_id = ?`,
		time.Now().Unix(), words, adapterID)
}

func (s *SourceDB) update(adapterID, op, q string, args ...any) error {
	res, err := s.db.Exec(q, args...)
	if err != nil {
		return fmt.Errorf("%s for %s: %w", op, adapterID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w: %s", op, ErrUnknownSource, adapterID)
	}
	return nil
}

// Get returns the row for adapterID.
func (s *SourceDB) Get(adapterID string) (Source, error) {
	row := s.db.QueryRow(`SELECT `+sourceColumns+` FROM corpus_sources WHERE adapter_id = ?`, adapterID)
	src, err := scanSource(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Source{}, fmt.Errorf("%w: %s", ErrUnknownSource, adapterID)
	}
	return src, err
}

// ListSources returns all rows ordered by adapter_id.
func (s *SourceDB) ListSources() ([]Source, error) {
	rows, err := s.db.Query(`SELECT ` + sourceColumns + ` FROM corpus_sources ORDER BY adapter_id`)
	if err != nil {
		return nil, fmt.Errorf("list sources: %w", err)
	}
	defer rows.Close()

	var sources []Source
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSource(sc scanner) (Source, error) {
	var src Source
	err := sc.Scan(&src.AdapterID, &src.CorpusID, &src.Description, &src.SourceURL, &src.License,
		&src.LastCheck, &src.LastStatus, &src.LastError, &src.LastImport, &src.Words, &src.UpdatedAt)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return src, fmt.Errorf("scan source: %w", err)
	}
	return src, err
}
