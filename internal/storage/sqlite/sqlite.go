// Package sqlite provides a SQLite-backed implementation of the
// storage.Storage interface using Go's standard database/sql package.
//
// SQLite keeps everything in a single file on disk: no network, no
// separate server process. Two append-only tables are used, registrations
// and submissions.
//
// The blank import below registers the sqlite3 driver with database/sql.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/aanand-mishra/hackathon-api/internal/config"
	"github.com/aanand-mishra/hackathon-api/internal/types"

	// Blank import: side-effect only (registers the "sqlite3" driver).
	_ "github.com/mattn/go-sqlite3"
)

// timeLayout is fixed-width and always UTC, so ORDER BY on the text
// column sorts chronologically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLite is the concrete implementation of storage.Storage.
// A single *sql.DB is safe for concurrent use by multiple goroutines.
type SQLite struct {
	Db *sql.DB
}

// New opens the SQLite database at cfg.StoragePath, creates the tables if
// they do not already exist, and returns a ready-to-use *SQLite.
func New(cfg *config.Config) (*SQLite, error) {
	db, err := sql.Open("sqlite3", cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}

	// SQLite allows one writer at a time; a single connection turns
	// "database is locked" into plain queueing.
	db.SetMaxOpenConns(1)

	// CREATE TABLE IF NOT EXISTS is idempotent, safe on every startup.
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS registrations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			full_name     TEXT NOT NULL,
			email         TEXT NOT NULL,
			project_idea  TEXT NOT NULL,
			tech_stack    TEXT NOT NULL,
			team_size     TEXT NOT NULL,
			experience    TEXT NOT NULL,
			registered_at TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS submissions (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			project_name   TEXT NOT NULL,
			description    TEXT NOT NULL,
			builder_name   TEXT NOT NULL,
			twitter_handle TEXT,
			project_url    TEXT NOT NULL,
			image_url      TEXT,
			submitted_at   TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at
			ON submissions (submitted_at DESC);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite.New: create tables: %w", err)
	}

	return &SQLite{Db: db}, nil
}

// Close releases the underlying connection pool.
func (s *SQLite) Close() error {
	return s.Db.Close()
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateRegistration inserts one row into registrations. Placeholders (?)
// keep visitor input out of the SQL text.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateRegistration(ctx context.Context, r types.Registration) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO registrations
			(full_name, email, project_idea, tech_stack, team_size, experience, registered_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		r.FullName, r.Email, r.ProjectIdea, r.TechStack, r.TeamSize, r.Experience,
		formatTime(r.RegisteredAt),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateRegistration: last insert id: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// CreateSubmission inserts one row into submissions. Optional fields that
// are empty are stored as NULL.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) CreateSubmission(ctx context.Context, sub types.Submission) (int64, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		INSERT INTO submissions
			(project_name, description, builder_name, twitter_handle, project_url, image_url, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateSubmission: prepare: %w", err)
	}
	defer stmt.Close()

	result, err := stmt.ExecContext(ctx,
		sub.ProjectName, sub.Description, sub.BuilderName,
		nullable(sub.TwitterHandle), sub.ProjectURL, nullable(sub.ImageURL),
		formatTime(sub.SubmittedAt),
	)
	if err != nil {
		return 0, fmt.Errorf("CreateSubmission: exec: %w", err)
	}

	lastID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("CreateSubmission: last insert id: %w", err)
	}

	return lastID, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// ListSubmissions returns all submission rows, newest first. Rows sharing
// a timestamp fall back to insertion order, newest first as well.
// ─────────────────────────────────────────────────────────────────────────────
func (s *SQLite) ListSubmissions(ctx context.Context) ([]types.Submission, error) {
	stmt, err := s.Db.PrepareContext(ctx, `
		SELECT id, project_name, description, builder_name, twitter_handle,
		       project_url, image_url, submitted_at
		FROM submissions
		ORDER BY submitted_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListSubmissions: prepare: %w", err)
	}
	defer stmt.Close()

	rows, err := stmt.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListSubmissions: query: %w", err)
	}
	defer rows.Close()

	submissions := make([]types.Submission, 0)

	for rows.Next() {
		var (
			sub           types.Submission
			twitter, img  sql.NullString
			submittedText string
		)

		if err := rows.Scan(
			&sub.ID,
			&sub.ProjectName,
			&sub.Description,
			&sub.BuilderName,
			&twitter,
			&sub.ProjectURL,
			&img,
			&submittedText,
		); err != nil {
			return nil, fmt.Errorf("ListSubmissions: scan row: %w", err)
		}

		sub.TwitterHandle = twitter.String
		sub.ImageURL = img.String
		if sub.SubmittedAt, err = time.Parse(timeLayout, submittedText); err != nil {
			return nil, fmt.Errorf("ListSubmissions: parse submitted_at %q: %w", submittedText, err)
		}

		submissions = append(submissions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListSubmissions: rows iteration: %w", err)
	}

	return submissions, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
