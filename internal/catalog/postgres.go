package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresCatalog struct {
	pool *pgxpool.Pool
}

func NewPostgresCatalog(pool *pgxpool.Pool) *PostgresCatalog {
	return &PostgresCatalog{pool: pool}
}

const toolColumns = `id, industry_id, tool_name,
	COALESCE(tool_option_name, ''), COALESCE(price_amount, ''),
	COALESCE(description, ''), COALESCE(homepage_url, ''),
	priority`

func (c *PostgresCatalog) LookupTools(ctx context.Context, category int) ([]Tool, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT `+toolColumns+`
		FROM digital_tools_recommendations
		WHERE industry_id = $1
		ORDER BY priority DESC, id ASC`, category)
	if err != nil {
		return nil, fmt.Errorf("lookup tools: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}

func (c *PostgresCatalog) ListTools(ctx context.Context, filter Filter) ([]Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM digital_tools_recommendations WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Category > 0 {
		n++
		query += fmt.Sprintf(" AND industry_id = $%d", n)
		args = append(args, filter.Category)
	}

	query += " ORDER BY industry_id ASC, priority DESC, id ASC"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	defer rows.Close()
	return scanTools(rows)
}

func scanTools(rows pgx.Rows) ([]Tool, error) {
	tools := []Tool{}
	for rows.Next() {
		var t Tool
		if err := rows.Scan(
			&t.ID, &t.Category, &t.ToolCategory,
			&t.DisplayName, &t.PriceText,
			&t.Description, &t.HomepageURL,
			&t.Priority,
		); err != nil {
			return nil, err
		}
		tools = append(tools, t)
	}
	return tools, rows.Err()
}

// Seed inserts tools in order inside one transaction.
func (c *PostgresCatalog) Seed(ctx context.Context, tools []Tool) error {
	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, t := range tools {
		if _, err := tx.Exec(ctx, `
			INSERT INTO digital_tools_recommendations
				(industry_id, tool_name, tool_option_name, price_amount, description, homepage_url, priority)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			t.Category, t.ToolCategory, t.DisplayName, t.PriceText,
			t.Description, t.HomepageURL, t.Priority,
		); err != nil {
			return fmt.Errorf("seed tool %q: %w", t.ToolCategory, err)
		}
	}
	return tx.Commit(ctx)
}
