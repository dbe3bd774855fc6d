package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Readiness/internal/hermes"
	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

type mockHermes struct {
	handlers map[string]func(string, []byte)
}

func (m *mockHermes) Publish(string, interface{}) error { return nil }

func (m *mockHermes) Subscribe(subject string, handler func(string, []byte)) error {
	if m.handlers == nil {
		m.handlers = map[string]func(string, []byte){}
	}
	m.handlers[subject] = handler
	return nil
}

func (m *mockHermes) Close() {}

type mockSheets struct {
	mock.Mock
}

func (m *mockSheets) AppendRow(ctx context.Context, row []string) error {
	args := m.Called(ctx, row)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

func scoredEvent(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(hermes.AssessmentScoredEvent{
		AssessmentID: "a-1",
		Response: survey.Response{
			Industry: "1",
			Years:    intPtr(2),
			Debt:     intPtr(4),
		},
		Score:    4.11,
		Band:     "moderate",
		ScoredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	})
	require.NoError(t, err)
	return data
}

func TestSetupSubscriptionsAppendsRow(t *testing.T) {
	h := &mockHermes{}
	s := &mockSheets{}
	s.On("AppendRow", mock.Anything, mock.MatchedBy(func(row []string) bool {
		return len(row) == 19 && row[0] == "2026-01-02T03:04:05Z" && row[1] == "Retail" &&
			row[2] == "2" && row[12] == "4" && row[18] == "4.11"
	})).Return(nil).Once()

	w := New(h, s, time.Second, discardLogger())
	require.NoError(t, w.SetupSubscriptions())

	handler, ok := h.handlers[hermes.SubjectAssessmentScoredAll]
	require.True(t, ok)
	handler(hermes.SubjectAssessmentScored("a-1"), scoredEvent(t))

	s.AssertExpectations(t)
}

func TestHandleScoredAppendFailureIsNotRetried(t *testing.T) {
	s := &mockSheets{}
	s.On("AppendRow", mock.Anything, mock.Anything).Return(errors.New("sheets down")).Once()

	w := New(&mockHermes{}, s, time.Second, discardLogger())
	w.handleScored("readiness.assessment.a-1.scored", scoredEvent(t))

	s.AssertNumberOfCalls(t, "AppendRow", 1)
}

func TestHandleScoredInvalidPayload(t *testing.T) {
	s := &mockSheets{}
	w := New(&mockHermes{}, s, time.Second, discardLogger())
	w.handleScored("readiness.assessment.x.scored", []byte("not json"))
	s.AssertNotCalled(t, "AppendRow", mock.Anything, mock.Anything)
}

func TestSetupSubscriptionsWithoutSheetsIsNoop(t *testing.T) {
	h := &mockHermes{}
	w := New(h, nil, 0, discardLogger())
	assert.NoError(t, w.SetupSubscriptions())
	assert.Empty(t, h.handlers)
}
