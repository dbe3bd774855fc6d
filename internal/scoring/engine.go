package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/MikeSquared-Agency/Readiness/internal/catalog"
	"github.com/MikeSquared-Agency/Readiness/internal/metrics"
	"github.com/MikeSquared-Agency/Readiness/internal/survey"
	"github.com/MikeSquared-Agency/Readiness/internal/telemetry"
)

// ErrCatalogLookup marks a scoring call that failed because the tool catalog
// could not be read. No partial result accompanies it.
var ErrCatalogLookup = errors.New("tool catalog lookup failed")

// ToolLookup is the catalog read the engine performs once per call.
type ToolLookup interface {
	LookupTools(ctx context.Context, category int) ([]catalog.Tool, error)
}

type ToolRank struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
}

// Result is the immutable outcome of scoring one response.
type Result struct {
	Score               float64    `json:"score"`
	Band                Band       `json:"band"`
	CoreRecommendations []string   `json:"core_recommendations"`
	ToolRecommendations []ToolRank `json:"tool_recommendations"`
	Breakdown           Breakdown  `json:"breakdown"`
}

const (
	coreHeader  = "Core Recommendations:"
	toolsHeader = "\nRecommended Digital Tools:"
)

// Lines renders the result as the flat marker-prefixed list older clients
// parse: the core header and entries, then the tool header and
// "name\tpriority" pairs when any tools were found.
func (r Result) Lines() []string {
	lines := make([]string, 0, 2+len(r.CoreRecommendations)+len(r.ToolRecommendations))
	lines = append(lines, coreHeader)
	lines = append(lines, r.CoreRecommendations...)
	if len(r.ToolRecommendations) > 0 {
		lines = append(lines, toolsHeader)
		for _, t := range r.ToolRecommendations {
			lines = append(lines, t.Name+"\t"+strconv.Itoa(t.Priority))
		}
	}
	return lines
}

// Engine scores validated responses. It holds no mutable state and is safe
// for concurrent use.
type Engine struct {
	cfg    Config
	tools  ToolLookup
	logger *slog.Logger
}

func NewEngine(cfg Config, tools ToolLookup, logger *slog.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return &Engine{cfg: cfg, tools: tools, logger: logger}, nil
}

func (e *Engine) Config() Config { return e.cfg }

// Score validates r, computes its readiness score and band, and ranks the
// catalog tools for its category.
func (e *Engine) Score(ctx context.Context, r *survey.Response) (Result, error) {
	timer := prometheus.NewTimer(metrics.ScoringDuration)
	defer timer.ObserveDuration()

	ctx, span := telemetry.StartSpan(ctx, "scoring.Score")
	defer span.End()

	if err := survey.Validate(r); err != nil {
		span.SetStatus(codes.Error, "invalid response")
		return Result{}, err
	}

	b := Composite(e.cfg, r)
	score := Round2(clamp(b.Adjusted, 0, 10))
	band := BandFor(score, e.cfg.Bands)

	category := int(r.Category())
	span.SetAttributes(
		attribute.Int("readiness.category", category),
		attribute.Float64("readiness.score", score),
		attribute.String("readiness.band", string(band)),
	)

	tools, err := e.tools.LookupTools(ctx, category)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "catalog lookup failed")
		return Result{}, fmt.Errorf("%w: %w", ErrCatalogLookup, err)
	}
	catalog.SortByPriority(tools)

	ranks := make([]ToolRank, 0, len(tools))
	for _, t := range tools {
		ranks = append(ranks, ToolRank{Name: t.ToolCategory, Priority: t.Priority})
	}

	e.logger.Debug("response scored",
		"category", category,
		"unadjusted", b.Unadjusted,
		"multiplier", b.Multiplier,
		"score", score,
		"band", band,
		"tools", len(ranks),
	)

	return Result{
		Score:               score,
		Band:                band,
		CoreRecommendations: band.Recommendations(),
		ToolRecommendations: ranks,
		Breakdown:           b,
	}, nil
}
