package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Readiness/internal/scoring"
	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

// ErrPersistence marks a scored assessment that could not be stored.
var ErrPersistence = errors.New("persist assessment")

// Assessment is one scored submission, stored verbatim with its result.
type Assessment struct {
	ID        uuid.UUID       `json:"id"`
	Response  survey.Response `json:"response"`
	Result    scoring.Result  `json:"result"`
	CreatedAt time.Time       `json:"created_at"`
}

func (a *Assessment) Score() float64     { return a.Result.Score }
func (a *Assessment) Band() scoring.Band { return a.Result.Band }

type Store interface {
	// SaveAssessment assigns an ID when none is set and records CreatedAt.
	// Failures wrap ErrPersistence.
	SaveAssessment(ctx context.Context, a *Assessment) error
	// GetAssessment returns nil, nil when no assessment has the id.
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
	Ping(ctx context.Context) error
	Close() error
}

func prepare(a *Assessment) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
}
