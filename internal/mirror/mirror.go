package mirror

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/Readiness/internal/hermes"
	"github.com/MikeSquared-Agency/Readiness/internal/metrics"
	"github.com/MikeSquared-Agency/Readiness/internal/sheets"
)

// Worker copies scored assessments into the external spreadsheet. Failed
// appends are logged and counted, never retried.
type Worker struct {
	hermes  hermes.Client
	sheets  sheets.Client
	timeout time.Duration
	logger  *slog.Logger
}

func New(h hermes.Client, s sheets.Client, timeout time.Duration, logger *slog.Logger) *Worker {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Worker{hermes: h, sheets: s, timeout: timeout, logger: logger}
}

// SetupSubscriptions registers the scored-assessment subscription. It is a
// no-op without both an event bus and a sheet client.
func (w *Worker) SetupSubscriptions() error {
	if w.hermes == nil || w.sheets == nil {
		return nil
	}
	return w.hermes.Subscribe(hermes.SubjectAssessmentScoredAll, func(subject string, data []byte) {
		w.handleScored(subject, data)
	})
}

func (w *Worker) handleScored(subject string, data []byte) {
	var evt hermes.AssessmentScoredEvent
	if err := json.Unmarshal(data, &evt); err != nil {
		metrics.SheetSync.WithLabelValues("invalid").Inc()
		w.logger.Warn("invalid assessment event", "subject", subject, "error", err)
		return
	}

	at := evt.ScoredAt
	if at.IsZero() {
		at = time.Now()
	}
	row := sheets.BuildRow(&evt.Response, evt.Score, at)

	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()
	if err := w.sheets.AppendRow(ctx, row); err != nil {
		metrics.SheetSync.WithLabelValues("error").Inc()
		w.logger.Error("sheet append failed", "assessment_id", evt.AssessmentID, "error", err)
		return
	}
	metrics.SheetSync.WithLabelValues("ok").Inc()
	w.logger.Info("assessment mirrored to sheet", "assessment_id", evt.AssessmentID)
}
