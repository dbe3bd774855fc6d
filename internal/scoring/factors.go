package scoring

import (
	"math"

	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

// FactorResult captures one answer's contribution to the composite.
type FactorResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Weight   float64 `json:"weight"`
	Weighted float64 `json:"weighted"`
}

// Normalize maps an ordinal answer in 1..max onto 0..10.
func Normalize(v, max int) float64 {
	return float64(v-1) / float64(max-1) * 10
}

// Reverse is Normalize for answers where a higher value is worse.
func Reverse(v, max int) float64 {
	return 10 - Normalize(v, max)
}

// Round2 rounds to two decimals, halves away from zero.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func factor(name string, score, weight float64) FactorResult {
	return FactorResult{Name: name, Score: score, Weight: weight, Weighted: score * weight}
}

// Breakdown is the intermediate scoring state for one response.
type Breakdown struct {
	Factors         []FactorResult `json:"factors"`
	DigitalMaturity float64        `json:"digital_maturity"`
	EmployeeScore   float64        `json:"employee_score"`
	Unadjusted      float64        `json:"unadjusted"`
	Multiplier      float64        `json:"multiplier"`
	Adjusted        float64        `json:"adjusted"`
}

// Composite computes the weighted score of a validated response before
// clamping and rounding.
func Composite(cfg Config, r *survey.Response) Breakdown {
	w := cfg.Weights
	retail := r.IsRetail()
	if retail {
		w = w.Scaled(cfg.Retail.BaseScale)
	}

	skills := Normalize(*r.DigitalSkills, 3)
	data := Normalize(*r.DataManagement, 3)
	maturity := (skills + data) / 2
	employees := Normalize(*r.Employees, 5)

	factors := []FactorResult{
		factor("revenue_trend", Normalize(*r.RevenueTrend, 4), w.RevenueTrend),
		factor("profit_margins", Normalize(*r.ProfitMargins, 5), w.ProfitMargins),
		factor("employees", employees, w.Employees),
		factor("digital_maturity", maturity, w.DigitalMaturity),
		factor("cash_flow", Normalize(*r.CashFlow, 3), w.CashFlow),
		factor("market_share", Normalize(*r.MarketShare, 3), w.MarketShare),
		// Reverse-scored: a higher debt answer lowers the score.
		factor("debt", Reverse(*r.Debt, 5), w.Debt),
		factor("data_management", data, w.DataManagement),
		factor("likability", Normalize(*r.Likability, 3), w.Likability),
	}
	if retail {
		factors = append(factors,
			factor("supply_chain", Normalize(*r.SupplyChain, 3), cfg.Retail.SupplyChain),
			factor("inventory_management", Normalize(*r.InventoryManagement, 3), cfg.Retail.Inventory),
		)
	}

	var total float64
	for _, f := range factors {
		total += f.Weighted
	}

	mult := cfg.Size.Multiplier(maturity, employees)
	return Breakdown{
		Factors:         factors,
		DigitalMaturity: maturity,
		EmployeeScore:   employees,
		Unadjusted:      total,
		Multiplier:      mult,
		Adjusted:        total * mult,
	}
}
