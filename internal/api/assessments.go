package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Readiness/internal/hermes"
	"github.com/MikeSquared-Agency/Readiness/internal/metrics"
	"github.com/MikeSquared-Agency/Readiness/internal/scoring"
	"github.com/MikeSquared-Agency/Readiness/internal/store"
	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

// Scorer turns a submitted response into a readiness result.
type Scorer interface {
	Score(ctx context.Context, r *survey.Response) (scoring.Result, error)
}

type AssessmentsHandler struct {
	engine  Scorer
	store   store.Store
	hermes  hermes.Client
	maxBody int64
	logger  *slog.Logger
}

func NewAssessmentsHandler(engine Scorer, s store.Store, h hermes.Client, maxBody int64, logger *slog.Logger) *AssessmentsHandler {
	if maxBody <= 0 {
		maxBody = 64 << 10
	}
	return &AssessmentsHandler{engine: engine, store: s, hermes: h, maxBody: maxBody, logger: logger}
}

type assessmentResponse struct {
	ID                  uuid.UUID          `json:"id"`
	Score               float64            `json:"score"`
	Band                scoring.Band       `json:"band"`
	Recommendations     []string           `json:"recommendations"`
	CoreRecommendations []string           `json:"core_recommendations"`
	ToolRecommendations []scoring.ToolRank `json:"tool_recommendations"`
	Response            *survey.Response   `json:"response,omitempty"`
	CreatedAt           *time.Time         `json:"created_at,omitempty"`
	Status              string             `json:"status"`
}

func newAssessmentResponse(a *store.Assessment) assessmentResponse {
	tools := a.Result.ToolRecommendations
	if tools == nil {
		tools = []scoring.ToolRank{}
	}
	return assessmentResponse{
		ID:                  a.ID,
		Score:               a.Result.Score,
		Band:                a.Result.Band,
		Recommendations:     a.Result.Lines(),
		CoreRecommendations: a.Result.CoreRecommendations,
		ToolRecommendations: tools,
		Status:              statusSuccess,
	}
}

func (h *AssessmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	resp, err := h.decode(w, r)
	if err != nil {
		h.fail(w, r, nil, err)
		return
	}

	result, err := h.engine.Score(r.Context(), resp)
	if err != nil {
		h.fail(w, r, resp, err)
		return
	}

	a := &store.Assessment{Response: *resp, Result: result}
	if err := h.store.SaveAssessment(r.Context(), a); err != nil {
		if !errors.Is(err, store.ErrPersistence) {
			err = errors.Join(store.ErrPersistence, err)
		}
		h.fail(w, r, resp, err)
		return
	}

	metrics.AssessmentsScored.WithLabelValues(string(result.Band)).Inc()
	h.publishScored(a)

	writeJSON(w, http.StatusOK, newAssessmentResponse(a))
}

func (h *AssessmentsHandler) decode(w http.ResponseWriter, r *http.Request) (*survey.Response, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, &survey.MalformedRequestError{Reason: "content type must be application/json"}
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBody))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, &survey.MalformedRequestError{Reason: "request body too large"}
		}
		return nil, &survey.MalformedRequestError{Reason: "unreadable request body"}
	}
	return survey.Decode(body)
}

func (h *AssessmentsHandler) fail(w http.ResponseWriter, r *http.Request, resp *survey.Response, err error) {
	kind, status, body := classify(err)
	metrics.AssessmentErrors.WithLabelValues(string(kind)).Inc()

	if status >= http.StatusInternalServerError {
		h.logger.Error("assessment failed",
			"kind", kind, "error", err,
			"request_id", requestID(r))
		h.publishFailed(resp, kind, err)
	} else {
		h.logger.Info("assessment rejected", "kind", kind, "details", body.Details)
	}
	writeJSON(w, status, body)
}

func (h *AssessmentsHandler) publishScored(a *store.Assessment) {
	if h.hermes == nil {
		return
	}
	id := a.ID.String()
	err := h.hermes.Publish(hermes.SubjectAssessmentScored(id), hermes.AssessmentScoredEvent{
		AssessmentID: id,
		Response:     a.Response,
		Score:        a.Result.Score,
		Band:         string(a.Result.Band),
		ScoredAt:     a.CreatedAt,
	})
	if err != nil {
		h.logger.Warn("failed to publish assessment event", "assessment_id", id, "error", err)
	}
}

func (h *AssessmentsHandler) publishFailed(resp *survey.Response, kind errorKind, cause error) {
	if h.hermes == nil {
		return
	}
	evt := hermes.AssessmentFailedEvent{Kind: string(kind), Error: cause.Error(), FailedAt: time.Now().UTC()}
	if resp != nil {
		evt.Category = string(resp.Industry)
	}
	if err := h.hermes.Publish(hermes.SubjectAssessmentFailed, evt); err != nil {
		h.logger.Warn("failed to publish failure event", "error", err)
	}
}

func (h *AssessmentsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "malformed request", "invalid assessment id")
		return
	}

	a, err := h.store.GetAssessment(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to load assessment", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load assessment", err.Error())
		return
	}
	if a == nil {
		writeError(w, http.StatusNotFound, "not found", "assessment not found")
		return
	}

	out := newAssessmentResponse(a)
	out.Response = &a.Response
	out.CreatedAt = &a.CreatedAt
	writeJSON(w, http.StatusOK, out)
}
