package sheets

import (
	"strconv"
	"time"

	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

// NotApplicable fills the retail-only columns for other categories.
const NotApplicable = "N/A"

// Columns is the header of the mirrored sheet, in row order.
var Columns = []string{
	"Timestamp", "Industry", "Years in Business", "Employees", "Revenue Trend",
	"Customer Likability", "Market Share", "Customer Base", "USP",
	"Digital Skills", "Data Management", "Profit Margins", "Debt", "Cash Flow",
	"Supply Chain", "Inventory Management", "Email", "Phone", "Score",
}

// BuildRow lays out one assessment in the sheet's column order.
func BuildRow(r *survey.Response, score float64, at time.Time) []string {
	customerBase := ""
	if r.CustomerBase != nil {
		customerBase = *r.CustomerBase
	}

	supply, inventory := NotApplicable, NotApplicable
	if r.IsRetail() {
		supply = ordinal(r.SupplyChain)
		inventory = ordinal(r.InventoryManagement)
	}

	return []string{
		at.UTC().Format(time.RFC3339),
		industryName(r.Industry),
		ordinal(r.Years),
		ordinal(r.Employees),
		ordinal(r.RevenueTrend),
		ordinal(r.Likability),
		ordinal(r.MarketShare),
		customerBase,
		ordinal(r.USP),
		ordinal(r.DigitalSkills),
		ordinal(r.DataManagement),
		ordinal(r.ProfitMargins),
		ordinal(r.Debt),
		ordinal(r.CashFlow),
		supply,
		inventory,
		r.Email,
		r.Phone,
		strconv.FormatFloat(score, 'f', -1, 64),
	}
}

func industryName(code survey.CategoryCode) string {
	if c, ok := code.Parse(); ok {
		return c.Name()
	}
	return string(code)
}

func ordinal(v *int) string {
	if v == nil {
		return NotApplicable
	}
	return strconv.Itoa(*v)
}
