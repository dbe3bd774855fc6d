package survey

import (
	"math"
	"strconv"
	"strings"
)

// Category is one of the ten fixed business-category codes.
type Category int

const (
	CategoryRetail Category = iota + 1
	CategoryFoodBeverage
	CategoryServices
	CategoryTourism
	CategoryEducationArts
	CategoryTechnology
	CategoryConstruction
	CategoryTransportation
	CategoryHealthWellness
	CategoryManufacturing
)

var categoryNames = map[Category]string{
	CategoryRetail:         "Retail",
	CategoryFoodBeverage:   "Food and Beverages",
	CategoryServices:       "Services",
	CategoryTourism:        "Tourism and Leisure",
	CategoryEducationArts:  "Education and Arts",
	CategoryTechnology:     "Technology",
	CategoryConstruction:   "Construction and Maintenance",
	CategoryTransportation: "Transportation",
	CategoryHealthWellness: "Health and Wellness",
	CategoryManufacturing:  "Manufacturing & Craftsmanship",
}

// Categories returns every category in code order.
func Categories() []Category {
	out := make([]Category, 0, len(categoryNames))
	for c := CategoryRetail; c <= CategoryManufacturing; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) Valid() bool {
	return c >= CategoryRetail && c <= CategoryManufacturing
}

// Name returns the display name, or the numeric code for unknown categories.
func (c Category) Name() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return strconv.Itoa(int(c))
}

// CategoryCode is the industry value exactly as submitted. The wire format
// allows both "3" and 3.
type CategoryCode string

func (c *CategoryCode) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	switch {
	case s == "null":
		*c = ""
	case strings.HasPrefix(s, `"`):
		unq, err := strconv.Unquote(s)
		if err != nil {
			return err
		}
		*c = CategoryCode(strings.TrimSpace(unq))
	default:
		if n, ok := wholeNumber(s); ok {
			s = strconv.Itoa(n)
		}
		*c = CategoryCode(s)
	}
	return nil
}

// Parse returns the category and whether the code names one of the fixed set.
// Whole-number forms such as "1.0" count as their integer.
func (c CategoryCode) Parse() (Category, bool) {
	n, ok := wholeNumber(string(c))
	if !ok {
		return 0, false
	}
	cat := Category(n)
	return cat, cat.Valid()
}

func wholeNumber(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// Response is one submitted questionnaire. Ordinals are pointers so a
// missing answer is distinguishable from any value.
type Response struct {
	Industry            CategoryCode `json:"industry"`
	Years               *int         `json:"years"`
	Employees           *int         `json:"employees"`
	RevenueTrend        *int         `json:"revenue_trend"`
	Likability          *int         `json:"likability"`
	MarketShare         *int         `json:"market_share"`
	CustomerBase        *string      `json:"customer_base"`
	USP                 *int         `json:"usp"`
	DigitalSkills       *int         `json:"digital_skills"`
	DataManagement      *int         `json:"data_management"`
	ProfitMargins       *int         `json:"profit_margins"`
	Debt                *int         `json:"debt"`
	CashFlow            *int         `json:"cash_flow"`
	SupplyChain         *int         `json:"supply_chain,omitempty"`
	InventoryManagement *int         `json:"inventory_management,omitempty"`

	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
}

// Category returns the parsed category, or 0 when the code is invalid.
func (r *Response) Category() Category {
	c, ok := r.Industry.Parse()
	if !ok {
		return 0
	}
	return c
}

func (r *Response) IsRetail() bool {
	return r.Category() == CategoryRetail
}

// Ordinal describes a bounded 1..Max answer.
type Ordinal struct {
	Field string
	Label string
	Max   int
	get   func(*Response) *int
}

// Value returns the answer for this ordinal on r, or nil when absent.
func (o Ordinal) Value(r *Response) *int { return o.get(r) }

var ordinals = []Ordinal{
	{"years", "Years in business", 5, func(r *Response) *int { return r.Years }},
	{"employees", "Number of employees", 5, func(r *Response) *int { return r.Employees }},
	{"revenue_trend", "Revenue trend", 4, func(r *Response) *int { return r.RevenueTrend }},
	{"likability", "Customer likability", 3, func(r *Response) *int { return r.Likability }},
	{"market_share", "Market share", 3, func(r *Response) *int { return r.MarketShare }},
	{"usp", "USP strength", 3, func(r *Response) *int { return r.USP }},
	{"digital_skills", "Digital skills", 3, func(r *Response) *int { return r.DigitalSkills }},
	{"data_management", "Data management", 3, func(r *Response) *int { return r.DataManagement }},
	{"profit_margins", "Profit margins", 5, func(r *Response) *int { return r.ProfitMargins }},
	{"debt", "Debt level", 5, func(r *Response) *int { return r.Debt }},
	{"cash_flow", "Cash flow", 3, func(r *Response) *int { return r.CashFlow }},
}

var retailOrdinals = []Ordinal{
	{"supply_chain", "Supply chain efficiency", 3, func(r *Response) *int { return r.SupplyChain }},
	{"inventory_management", "Inventory management", 3, func(r *Response) *int { return r.InventoryManagement }},
}

// Ordinals returns the ordinal answers required for every category.
func Ordinals() []Ordinal {
	return append([]Ordinal(nil), ordinals...)
}

// RetailOrdinals returns the answers required only for retail.
func RetailOrdinals() []Ordinal {
	return append([]Ordinal(nil), retailOrdinals...)
}
