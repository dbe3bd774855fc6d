package catalog

import (
	"context"
	"sort"
)

// Tool is one recommended digital tool for a business category.
type Tool struct {
	ID           int64  `json:"id" db:"id"`
	Category     int    `json:"category" db:"industry_id"`
	ToolCategory string `json:"tool_category" db:"tool_name"`
	DisplayName  string `json:"display_name" db:"tool_option_name"`
	PriceText    string `json:"price_text" db:"price_amount"`
	Description  string `json:"description" db:"description"`
	HomepageURL  string `json:"homepage_url" db:"homepage_url"`
	Priority     int    `json:"priority" db:"priority"`
}

// Filter narrows ListTools. A zero Category means every category.
type Filter struct {
	Category int
	Limit    int
}

// Catalog is the read-only tool reference data.
type Catalog interface {
	// LookupTools returns every tool for category, highest priority first,
	// ties in insertion order.
	LookupTools(ctx context.Context, category int) ([]Tool, error)
	ListTools(ctx context.Context, filter Filter) ([]Tool, error)
}

// SortByPriority orders tools by priority descending, keeping the existing
// order for equal priorities.
func SortByPriority(tools []Tool) {
	sort.SliceStable(tools, func(i, j int) bool {
		return tools[i].Priority > tools[j].Priority
	})
}

const defaultListLimit = 500
