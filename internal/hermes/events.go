package hermes

import (
	"time"

	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

// AssessmentScoredEvent is published after a scored assessment is stored.
type AssessmentScoredEvent struct {
	AssessmentID string          `json:"assessment_id"`
	Response     survey.Response `json:"response"`
	Score        float64         `json:"score"`
	Band         string          `json:"band"`
	ScoredAt     time.Time       `json:"scored_at"`
}

// AssessmentFailedEvent reports a dependency failure while handling a
// submission. Validation rejections are not published.
type AssessmentFailedEvent struct {
	Category string    `json:"category"`
	Kind     string    `json:"kind"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}
