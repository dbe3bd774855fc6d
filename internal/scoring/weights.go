package scoring

import (
	"fmt"
	"math"
)

// WeightSet defines the relative importance of each scored answer.
// All weights must sum to 1.0 (±0.001 tolerance).
type WeightSet struct {
	RevenueTrend    float64
	ProfitMargins   float64
	Employees       float64
	DigitalMaturity float64
	CashFlow        float64
	MarketShare     float64
	Debt            float64
	DataManagement  float64
	Likability      float64
}

// DefaultWeights returns the base weight table used for non-retail categories.
func DefaultWeights() WeightSet {
	return WeightSet{
		RevenueTrend:    0.20,
		ProfitMargins:   0.20,
		Employees:       0.15,
		DigitalMaturity: 0.10,
		CashFlow:        0.10,
		MarketShare:     0.08,
		Debt:            0.05,
		DataManagement:  0.06,
		Likability:      0.06,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() float64 {
	var total float64
	for _, v := range w.asList() {
		total += v
	}
	return total
}

// Validate checks that weights sum to 1.0 and none are negative.
func (w WeightSet) Validate() error {
	if math.Abs(w.Sum()-1.0) > 0.001 {
		return fmt.Errorf("weights sum to %.4f, must sum to 1.0", w.Sum())
	}
	for _, v := range w.asList() {
		if v < 0 {
			return fmt.Errorf("negative weight: %f", v)
		}
	}
	return nil
}

// Scaled returns a copy with every weight multiplied by f.
func (w WeightSet) Scaled(f float64) WeightSet {
	return WeightSet{
		RevenueTrend:    w.RevenueTrend * f,
		ProfitMargins:   w.ProfitMargins * f,
		Employees:       w.Employees * f,
		DigitalMaturity: w.DigitalMaturity * f,
		CashFlow:        w.CashFlow * f,
		MarketShare:     w.MarketShare * f,
		Debt:            w.Debt * f,
		DataManagement:  w.DataManagement * f,
		Likability:      w.Likability * f,
	}
}

func (w WeightSet) asList() []float64 {
	return []float64{
		w.RevenueTrend, w.ProfitMargins, w.Employees, w.DigitalMaturity,
		w.CashFlow, w.MarketShare, w.Debt, w.DataManagement, w.Likability,
	}
}

// RetailWeights shrinks the base table and adds the two retail-only terms.
type RetailWeights struct {
	BaseScale   float64
	SupplyChain float64
	Inventory   float64
}

func DefaultRetailWeights() RetailWeights {
	return RetailWeights{BaseScale: 0.8, SupplyChain: 0.10, Inventory: 0.10}
}

// Validate checks that the retail table still sums to 1.0 over base.
func (r RetailWeights) Validate(base WeightSet) error {
	if r.BaseScale < 0 || r.SupplyChain < 0 || r.Inventory < 0 {
		return fmt.Errorf("negative retail weight")
	}
	total := base.Sum()*r.BaseScale + r.SupplyChain + r.Inventory
	if math.Abs(total-1.0) > 0.001 {
		return fmt.Errorf("retail weights sum to %.4f, must sum to 1.0", total)
	}
	return nil
}

// SizeAdjustment penalizes a mismatch between digital maturity and team size.
// Both conditions compare normalized 0..10 values.
type SizeAdjustment struct {
	HighMaturity    float64 // maturity above this...
	SmallTeam       float64 // ...with employees below this
	SmallTeamFactor float64
	LowMaturity     float64 // maturity below this...
	LargeTeam       float64 // ...with employees above this
	LargeTeamFactor float64
}

func DefaultSizeAdjustment() SizeAdjustment {
	return SizeAdjustment{
		HighMaturity:    7,
		SmallTeam:       5,
		SmallTeamFactor: 0.95,
		LowMaturity:     3,
		LargeTeam:       7,
		LargeTeamFactor: 0.90,
	}
}

// Multiplier returns the factor applied to the composite, 1 when neither
// condition holds.
func (s SizeAdjustment) Multiplier(maturity, employees float64) float64 {
	switch {
	case maturity > s.HighMaturity && employees < s.SmallTeam:
		return s.SmallTeamFactor
	case maturity < s.LowMaturity && employees > s.LargeTeam:
		return s.LargeTeamFactor
	}
	return 1
}

// BandThresholds are the lowest scores of the moderate and advanced bands.
type BandThresholds struct {
	Moderate float64
	Advanced float64
}

func DefaultBandThresholds() BandThresholds {
	return BandThresholds{Moderate: 4, Advanced: 7}
}

// Config is the complete, immutable scoring table.
type Config struct {
	Weights WeightSet
	Retail  RetailWeights
	Size    SizeAdjustment
	Bands   BandThresholds
}

func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		Retail:  DefaultRetailWeights(),
		Size:    DefaultSizeAdjustment(),
		Bands:   DefaultBandThresholds(),
	}
}

func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Retail.Validate(c.Weights); err != nil {
		return err
	}
	if c.Bands.Moderate >= c.Bands.Advanced {
		return fmt.Errorf("band thresholds out of order: %.2f >= %.2f", c.Bands.Moderate, c.Bands.Advanced)
	}
	return nil
}
