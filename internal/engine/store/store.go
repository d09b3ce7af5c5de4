// Package store keeps a history of extracted profile snapshots in SQLite.
package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/anatolykoptev/go_profile/internal/engine/profile"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a profile has no stored snapshot.
var ErrNotFound = errors.New("store: no snapshot for profile")

// Record is one stored snapshot with its summary columns.
type Record struct {
	ID         int64           `json:"id"`
	URL        string          `json:"url"`
	Name       string          `json:"name,omitempty"`
	Headline   string          `json:"headline,omitempty"`
	Company    string          `json:"company,omitempty"`
	JobTitle   string          `json:"job_title,omitempty"`
	FaultCount int             `json:"fault_count"`
	CapturedAt string          `json:"captured_at"`
	Profile    json.RawMessage `json:"profile,omitempty"`
}

// Snapshot decodes the stored wire mapping.
func (r *Record) Snapshot() (*profile.Snapshot, error) {
	var s profile.Snapshot
	if err := json.Unmarshal(r.Profile, &s); err != nil {
		return nil, fmt.Errorf("store: decode snapshot %d: %w", r.ID, err)
	}
	s.URL = r.URL
	return &s, nil
}

// Store is a SQLite-backed snapshot history. Safe for concurrent use.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite: single writer
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init schema: %w", err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close releases the database.
func (s *Store) Close() error { return s.db.Close() }

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS snapshots (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		profile_url TEXT NOT NULL,
		name        TEXT,
		headline    TEXT,
		company     TEXT,
		job_title   TEXT,
		fault_count INTEGER NOT NULL DEFAULT 0,
		digest      TEXT NOT NULL,
		body        TEXT NOT NULL,
		captured_at TEXT NOT NULL
	)`)
	if err != nil {
		return err
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_snapshots_url ON snapshots (profile_url, id)`)
	return err
}

// Save appends snap to the history of url. A snapshot identical to the latest stored
// one is not duplicated; the existing record is returned with created=false.
func (s *Store) Save(ctx context.Context, url string, snap *profile.Snapshot) (rec *Record, created bool, err error) {
	if url == "" || snap == nil {
		return nil, false, errors.New("store: url and snapshot are required")
	}
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, false, fmt.Errorf("store: encode snapshot: %w", err)
	}
	sum := sha256.Sum256(body)
	digest := hex.EncodeToString(sum[:])

	// The digest check and the insert share one transaction so concurrent saves of
	// the same snapshot store it once.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("store: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	latest, lastDigest, err := latestRecord(ctx, tx, url)
	switch {
	case err == nil:
		if lastDigest == digest {
			return latest, false, nil
		}
	case !errors.Is(err, ErrNotFound):
		return nil, false, err
	}

	rec = &Record{
		URL:        url,
		Name:       snap.BasicInfo.Name,
		Headline:   snap.BasicInfo.Headline,
		Company:    snap.PrimaryEmployer,
		JobTitle:   snap.PrimaryTitle,
		FaultCount: snap.FaultCount(),
		CapturedAt: s.now().UTC().Format(time.RFC3339),
		Profile:    body,
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO snapshots (profile_url, name, headline, company, job_title, fault_count, digest, body, captured_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.URL, rec.Name, rec.Headline, rec.Company, rec.JobTitle, rec.FaultCount, digest, string(body), rec.CapturedAt,
	)
	if err != nil {
		return nil, false, fmt.Errorf("store: insert: %w", err)
	}
	rec.ID, _ = res.LastInsertId()
	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("store: commit: %w", err)
	}
	return rec, true, nil
}

// List returns up to limit snapshots of url, newest first. withBody controls whether
// the full profile mapping is loaded.
func (s *Store) List(ctx context.Context, url string, limit int, withBody bool) ([]Record, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile_url, name, headline, company, job_title, fault_count, captured_at, body
		 FROM snapshots WHERE profile_url = ? ORDER BY id DESC LIMIT ?`,
		url, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	out := []Record{}
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		if !withBody {
			r.Profile = nil
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Latest returns the newest snapshot of url, or ErrNotFound.
func (s *Store) Latest(ctx context.Context, url string) (*Record, error) {
	r, _, err := latestRecord(ctx, s.db, url)
	return r, err
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// latestRecord returns the newest snapshot of url with its body digest.
func latestRecord(ctx context.Context, q querier, url string) (*Record, string, error) {
	var (
		r                                 Record
		name, headline, company, jobTitle sql.NullString
		body, digest                      string
	)
	err := q.QueryRowContext(ctx,
		`SELECT id, profile_url, name, headline, company, job_title, fault_count, captured_at, body, digest
		 FROM snapshots WHERE profile_url = ? ORDER BY id DESC LIMIT 1`,
		url,
	).Scan(&r.ID, &r.URL, &name, &headline, &company, &jobTitle, &r.FaultCount, &r.CapturedAt, &body, &digest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("store: scan: %w", err)
	}
	r.Name, r.Headline, r.Company, r.JobTitle = name.String, headline.String, company.String, jobTitle.String
	r.Profile = json.RawMessage(body)
	return &r, digest, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(sc scanner) (Record, error) {
	var (
		r                                 Record
		name, headline, company, jobTitle sql.NullString
		body                              string
	)
	err := sc.Scan(&r.ID, &r.URL, &name, &headline, &company, &jobTitle, &r.FaultCount, &r.CapturedAt, &body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, err
		}
		return Record{}, fmt.Errorf("store: scan: %w", err)
	}
	r.Name, r.Headline, r.Company, r.JobTitle = name.String, headline.String, company.String, jobTitle.String
	r.Profile = json.RawMessage(body)
	return r, nil
}
