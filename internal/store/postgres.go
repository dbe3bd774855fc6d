package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Pool exposes the connection pool so the catalog can share it.
func (s *PostgresStore) Pool() *pgxpool.Pool { return s.pool }

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a *Assessment) error {
	prepare(a)
	responseJSON, err := json.Marshal(a.Response)
	if err != nil {
		return fmt.Errorf("%w: encode response: %w", ErrPersistence, err)
	}
	resultJSON, err := json.Marshal(a.Result)
	if err != nil {
		return fmt.Errorf("%w: encode result: %w", ErrPersistence, err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO survey_responses (id, industry, response, result, score, band,
			email, phone, company_name, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		a.ID, string(a.Response.Industry), responseJSON, resultJSON,
		a.Result.Score, string(a.Result.Band),
		a.Response.Email, a.Response.Phone, a.Response.CompanyName, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	a := &Assessment{}
	var responseJSON, resultJSON []byte
	err := s.pool.QueryRow(ctx, `
		SELECT id, response, result, created_at
		FROM survey_responses WHERE id = $1`, id,
	).Scan(&a.ID, &responseJSON, &resultJSON, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := decodeAssessment(a, responseJSON, resultJSON); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeAssessment(a *Assessment, responseJSON, resultJSON []byte) error {
	if err := json.Unmarshal(responseJSON, &a.Response); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if err := json.Unmarshal(resultJSON, &a.Result); err != nil {
		return fmt.Errorf("decode result: %w", err)
	}
	return nil
}
