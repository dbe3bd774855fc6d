package api

import (
	"net/http"
	"strconv"

	"github.com/MikeSquared-Agency/Readiness/internal/catalog"
	"github.com/MikeSquared-Agency/Readiness/internal/survey"
)

const invalidCategoryMessage = "Invalid industry value: must be a number between 1 and 10"

type ToolsHandler struct {
	catalog catalog.Catalog
}

func NewToolsHandler(c catalog.Catalog) *ToolsHandler {
	return &ToolsHandler{catalog: c}
}

type toolView struct {
	catalog.Tool
	CategoryName string `json:"category_name"`
}

// List serves the catalog for browsing, optionally narrowed by ?category=N.
func (h *ToolsHandler) List(w http.ResponseWriter, r *http.Request) {
	var filter catalog.Filter

	if v := r.URL.Query().Get("category"); v != "" {
		c, ok := survey.CategoryCode(v).Parse()
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error:   "validation failed",
				Details: invalidCategoryMessage,
				Violations: []survey.Violation{{
					Field: "category", Code: survey.CodeInvalidCategory,
					Message: invalidCategoryMessage, Min: 1, Max: 10,
				}},
				Status: statusError,
			})
			return
		}
		filter.Category = int(c)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "malformed request", "limit must be a positive integer")
			return
		}
		filter.Limit = n
	}

	tools, err := h.catalog.ListTools(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusBadGateway, "catalog unavailable", err.Error())
		return
	}

	views := make([]toolView, 0, len(tools))
	for _, t := range tools {
		views = append(views, toolView{Tool: t, CategoryName: survey.Category(t.Category).Name()})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tools":  views,
		"status": statusSuccess,
	})
}

type categoryView struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Retail bool   `json:"retail"`
}

func (h *ToolsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	cats := survey.Categories()
	out := make([]categoryView, 0, len(cats))
	for _, c := range cats {
		out = append(out, categoryView{ID: int(c), Name: c.Name(), Retail: c == survey.CategoryRetail})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": out,
		"status":     statusSuccess,
	})
}
