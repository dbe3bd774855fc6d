package scoring

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Readiness/internal/catalog"
	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeLookup struct {
	mu    sync.Mutex
	tools map[int][]catalog.Tool
	err   error
	calls int
}

func (f *fakeLookup) LookupTools(_ context.Context, category int) ([]catalog.Tool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return append([]catalog.Tool(nil), f.tools[category]...), nil
}

func newTestEngine(t *testing.T, lookup ToolLookup) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), lookup, discardLogger())
	require.NoError(t, err)
	return e
}

var setters = map[string]func(*survey.Response, int){
	"years":                func(r *survey.Response, v int) { r.Years = &v },
	"employees":            func(r *survey.Response, v int) { r.Employees = &v },
	"revenue_trend":        func(r *survey.Response, v int) { r.RevenueTrend = &v },
	"likability":           func(r *survey.Response, v int) { r.Likability = &v },
	"market_share":         func(r *survey.Response, v int) { r.MarketShare = &v },
	"usp":                  func(r *survey.Response, v int) { r.USP = &v },
	"digital_skills":       func(r *survey.Response, v int) { r.DigitalSkills = &v },
	"data_management":      func(r *survey.Response, v int) { r.DataManagement = &v },
	"profit_margins":       func(r *survey.Response, v int) { r.ProfitMargins = &v },
	"debt":                 func(r *survey.Response, v int) { r.Debt = &v },
	"cash_flow":            func(r *survey.Response, v int) { r.CashFlow = &v },
	"supply_chain":         func(r *survey.Response, v int) { r.SupplyChain = &v },
	"inventory_management": func(r *survey.Response, v int) { r.InventoryManagement = &v },
}

// fixture is the regression response: category 2 unless overridden.
func fixture(category int, overrides map[string]int) *survey.Response {
	values := map[string]int{
		"years": 3, "employees": 2, "revenue_trend": 3, "likability": 2,
		"market_share": 1, "usp": 2, "digital_skills": 1, "data_management": 1,
		"profit_margins": 3, "debt": 2, "cash_flow": 2,
	}
	if category == int(survey.CategoryRetail) {
		values["supply_chain"] = 2
		values["inventory_management"] = 2
	}
	for k, v := range overrides {
		values[k] = v
	}

	base := "B2C"
	r := &survey.Response{
		Industry:     survey.CategoryCode(strconv.Itoa(category)),
		CustomerBase: &base,
	}
	for field, v := range values {
		setters[field](r, v)
	}
	return r
}

func TestScoreEndToEndFixture(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})

	res, err := e.Score(context.Background(), fixture(2, nil))
	require.NoError(t, err)
	assert.InDelta(t, 3.883333, res.Breakdown.Unadjusted, 1e-6)
	assert.Equal(t, 1.0, res.Breakdown.Multiplier)
	assert.Equal(t, 3.88, res.Score)
	assert.Equal(t, BandLow, res.Band)
	assert.Equal(t, BandLow.Recommendations(), res.CoreRecommendations)
	assert.Empty(t, res.ToolRecommendations)
}

func TestScoreRetailFixture(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})

	res, err := e.Score(context.Background(), fixture(1, nil))
	require.NoError(t, err)
	assert.InDelta(t, 4.106667, res.Breakdown.Unadjusted, 1e-6)
	assert.Equal(t, 4.11, res.Score)
	assert.Equal(t, BandModerate, res.Band)
	assert.Len(t, res.Breakdown.Factors, 11)
}

func TestScoreRetailDiffersFromNonRetail(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})
	ctx := context.Background()

	retail, err := e.Score(ctx, fixture(1, nil))
	require.NoError(t, err)

	nonRetail := fixture(2, map[string]int{"supply_chain": 2, "inventory_management": 2})
	other, err := e.Score(ctx, nonRetail)
	require.NoError(t, err)

	assert.NotEqual(t, retail.Score, other.Score)
	assert.Len(t, other.Breakdown.Factors, 9)
}

func TestScoreRejectsInvalidResponse(t *testing.T) {
	lookup := &fakeLookup{}
	e := newTestEngine(t, lookup)

	r := fixture(1, nil)
	r.SupplyChain = nil
	_, err := e.Score(context.Background(), r)

	var ve *survey.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.True(t, ve.Has("supply_chain"))
	assert.Zero(t, lookup.calls)
}

func TestScoreSmallTeamAdjustment(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})

	r := fixture(2, map[string]int{
		"employees": 1, "revenue_trend": 4, "likability": 3, "market_share": 3,
		"digital_skills": 3, "data_management": 3, "profit_margins": 5,
		"debt": 1, "cash_flow": 3,
	})
	res, err := e.Score(context.Background(), r)
	require.NoError(t, err)

	b := res.Breakdown
	assert.Greater(t, b.DigitalMaturity, 7.0)
	assert.Less(t, b.EmployeeScore, 5.0)
	assert.InDelta(t, 8.5, b.Unadjusted, 1e-9)
	assert.Equal(t, 0.95, b.Multiplier)
	assert.InDelta(t, b.Unadjusted*0.95, b.Adjusted, 1e-9)
	assert.InDelta(t, b.Unadjusted*0.95, res.Score, 0.01)
	assert.Equal(t, BandAdvanced, res.Band)
}

func TestScoreLargeTeamLaggardAdjustment(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})

	r := fixture(2, map[string]int{"employees": 5, "digital_skills": 1, "data_management": 1})
	res, err := e.Score(context.Background(), r)
	require.NoError(t, err)

	assert.Equal(t, 0.90, res.Breakdown.Multiplier)
	assert.InDelta(t, res.Breakdown.Unadjusted*0.90, res.Breakdown.Adjusted, 1e-9)
}

func TestScoreBounds(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})
	ctx := context.Background()

	worst := fixture(2, map[string]int{
		"employees": 1, "revenue_trend": 1, "likability": 1, "market_share": 1,
		"digital_skills": 1, "data_management": 1, "profit_margins": 1,
		"debt": 5, "cash_flow": 1,
	})
	res, err := e.Score(ctx, worst)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Score)

	best := fixture(1, map[string]int{
		"employees": 5, "revenue_trend": 4, "likability": 3, "market_share": 3,
		"digital_skills": 3, "data_management": 3, "profit_margins": 5,
		"debt": 1, "cash_flow": 3, "supply_chain": 3, "inventory_management": 3,
	})
	res, err = e.Score(ctx, best)
	require.NoError(t, err)
	assert.Equal(t, 10.0, res.Score)
}

var increasing = []string{
	"revenue_trend", "profit_margins", "digital_skills", "data_management",
	"cash_flow", "market_share", "likability", "employees",
}

func maxOf(field string) int {
	for _, o := range append(survey.Ordinals(), survey.RetailOrdinals()...) {
		if o.Field == field {
			return o.Max
		}
	}
	return 0
}

// The maturity/size multiplier can step at its thresholds, so monotonicity
// is checked on the unadjusted composite for every field and on the final
// score where employees stay at 3, which never triggers an adjustment.
func TestCompositeMonotonic(t *testing.T) {
	cfg := DefaultConfig()
	for _, category := range []int{1, 2} {
		fields := append([]string(nil), increasing...)
		if category == 1 {
			fields = append(fields, "supply_chain", "inventory_management")
		}
		for _, field := range fields {
			prev := -1.0
			for v := 1; v <= maxOf(field); v++ {
				got := Composite(cfg, fixture(category, map[string]int{field: v})).Unadjusted
				assert.GreaterOrEqual(t, got, prev, "category %d %s=%d", category, field, v)
				prev = got
			}
		}

		prev := 11.0
		for v := 1; v <= 5; v++ {
			got := Composite(cfg, fixture(category, map[string]int{"debt": v})).Unadjusted
			assert.LessOrEqual(t, got, prev, "category %d debt=%d", category, v)
			prev = got
		}
	}
}

func TestScoreMonotonicWithoutAdjustment(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})
	ctx := context.Background()

	for _, field := range increasing {
		if field == "employees" {
			continue
		}
		prev := -1.0
		for v := 1; v <= maxOf(field); v++ {
			res, err := e.Score(ctx, fixture(2, map[string]int{"employees": 3, field: v}))
			require.NoError(t, err)
			assert.Equal(t, 1.0, res.Breakdown.Multiplier)
			assert.GreaterOrEqual(t, res.Score, prev, "%s=%d", field, v)
			prev = res.Score
		}
	}

	prev := 11.0
	for v := 1; v <= 5; v++ {
		res, err := e.Score(ctx, fixture(2, map[string]int{"employees": 3, "debt": v}))
		require.NoError(t, err)
		assert.LessOrEqual(t, res.Score, prev, "debt=%d", v)
		prev = res.Score
	}
}

func TestScoreRanksTools(t *testing.T) {
	lookup := &fakeLookup{tools: map[int][]catalog.Tool{
		2: {
			{ToolCategory: "CRM", Priority: 7},
			{ToolCategory: "QR Code Menus", Priority: 9},
			{ToolCategory: "E-commerce Platforms", Priority: 9},
			{ToolCategory: "Project Management Tools", Priority: 4},
		},
	}}
	e := newTestEngine(t, lookup)

	res, err := e.Score(context.Background(), fixture(2, nil))
	require.NoError(t, err)
	assert.Equal(t, 1, lookup.calls)
	assert.Equal(t, []ToolRank{
		{Name: "QR Code Menus", Priority: 9},
		{Name: "E-commerce Platforms", Priority: 9},
		{Name: "CRM", Priority: 7},
		{Name: "Project Management Tools", Priority: 4},
	}, res.ToolRecommendations)

	lines := res.Lines()
	require.Len(t, lines, 1+4+1+4)
	assert.Equal(t, "Core Recommendations:", lines[0])
	assert.Equal(t, BandLow.Recommendations(), lines[1:5])
	assert.Equal(t, "\nRecommended Digital Tools:", lines[5])
	assert.Equal(t, "QR Code Menus\t9", lines[6])
	assert.Equal(t, "Project Management Tools\t4", lines[9])
}

func TestScoreEmptyCatalogOmitsToolSection(t *testing.T) {
	e := newTestEngine(t, &fakeLookup{})

	res, err := e.Score(context.Background(), fixture(2, nil))
	require.NoError(t, err)
	lines := res.Lines()
	assert.Len(t, lines, 5)
	assert.NotContains(t, lines, "\nRecommended Digital Tools:")
}

func TestScoreFailsWhenCatalogFails(t *testing.T) {
	cause := errors.New("connection refused")
	e := newTestEngine(t, &fakeLookup{err: cause})

	res, err := e.Score(context.Background(), fixture(2, nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCatalogLookup)
	assert.ErrorIs(t, err, cause)
	assert.Zero(t, res.Score)
	assert.Empty(t, res.CoreRecommendations)
}

func TestScoreIsDeterministic(t *testing.T) {
	lookup := &fakeLookup{tools: map[int][]catalog.Tool{
		1: {{ToolCategory: "CRM", Priority: 8}, {ToolCategory: "E-commerce Platforms", Priority: 10}},
	}}
	e := newTestEngine(t, lookup)
	r := fixture(1, nil)

	first, err := e.Score(context.Background(), r)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]Result, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := e.Score(context.Background(), r)
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	for _, res := range results {
		assert.Equal(t, first, res)
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights.Debt = 0.5
	_, err := NewEngine(cfg, &fakeLookup{}, discardLogger())
	assert.Error(t, err)
}
