package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS survey_responses (
	id           TEXT PRIMARY KEY,
	industry     TEXT NOT NULL,
	response     TEXT NOT NULL,
	result       TEXT NOT NULL,
	score        REAL NOT NULL,
	band         TEXT NOT NULL,
	email        TEXT NOT NULL DEFAULT '',
	phone        TEXT NOT NULL DEFAULT '',
	company_name TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL
);
`

// OpenSQLite opens an embedded database file shared by the store and the
// tool catalog.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

type SQLiteStore struct {
	db *sqlx.DB
}

func NewSQLiteStore(ctx context.Context, db *sqlx.DB) (*SQLiteStore, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type assessmentRow struct {
	ID        string `db:"id"`
	Response  string `db:"response"`
	Result    string `db:"result"`
	CreatedAt string `db:"created_at"`
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *Assessment) error {
	prepare(a)
	responseJSON, err := json.Marshal(a.Response)
	if err != nil {
		return fmt.Errorf("%w: encode response: %w", ErrPersistence, err)
	}
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("%w: encode result: %w", ErrPersistence, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO survey_responses (id, industry, response, result, score, band,
			email, phone, company_name, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), string(a.Response.Industry), string(responseJSON), string(resultJSON),
		a.Result.Score, string(a.Result.Band),
		a.Response.Email, a.Response.Phone, a.Response.CompanyName,
		a.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	var row assessmentRow
	err := s.db.GetContext(ctx, &row, `
		SELECT id, response, result, created_at
		FROM survey_responses WHERE id = ?`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	a := &Assessment{}
	if a.ID, err = uuid.Parse(row.ID); err != nil {
		return nil, fmt.Errorf("parse id: %w", err)
	}
	if a.CreatedAt, err = time.Parse(time.RFC3339Nano, row.CreatedAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if err := decodeAssessment(a, []byte(row.Response), []byte(row.Result)); err != nil {
		return nil, err
	}
	return a, nil
}

// Count returns the number of stored assessments.
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM survey_responses`)
	return n, err
}
