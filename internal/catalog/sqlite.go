package catalog

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS digital_tools_recommendations (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	industry_id      INTEGER NOT NULL,
	tool_name        TEXT    NOT NULL,
	tool_option_name TEXT    NOT NULL DEFAULT '',
	price_amount     TEXT    NOT NULL DEFAULT '',
	description      TEXT    NOT NULL DEFAULT '',
	homepage_url     TEXT    NOT NULL DEFAULT '',
	priority         INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tools_industry ON digital_tools_recommendations (industry_id, priority DESC);
`

// SQLiteCatalog serves the tool catalog from an embedded database. It is used
// for local runs and tests where Postgres is not available.
type SQLiteCatalog struct {
	db *sqlx.DB
}

func NewSQLiteCatalog(ctx context.Context, db *sqlx.DB) (*SQLiteCatalog, error) {
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return nil, fmt.Errorf("create catalog schema: %w", err)
	}
	return &SQLiteCatalog{db: db}, nil
}

const sqliteToolColumns = `id, industry_id, tool_name, tool_option_name,
	price_amount, description, homepage_url, priority`

func (c *SQLiteCatalog) LookupTools(ctx context.Context, category int) ([]Tool, error) {
	tools := []Tool{}
	err := c.db.SelectContext(ctx, &tools, `
		SELECT `+sqliteToolColumns+`
		FROM digital_tools_recommendations
		WHERE industry_id = ?
		ORDER BY priority DESC, id ASC`, category)
	if err != nil {
		return nil, fmt.Errorf("lookup tools: %w", err)
	}
	return tools, nil
}

func (c *SQLiteCatalog) ListTools(ctx context.Context, filter Filter) ([]Tool, error) {
	query := `SELECT ` + sqliteToolColumns + ` FROM digital_tools_recommendations WHERE 1=1`
	args := []interface{}{}

	if filter.Category > 0 {
		query += " AND industry_id = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY industry_id ASC, priority DESC, id ASC LIMIT ?"

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	args = append(args, limit)

	tools := []Tool{}
	if err := c.db.SelectContext(ctx, &tools, query, args...); err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}
	return tools, nil
}

// Seed inserts tools in order inside one transaction. Insertion order is the
// tie-break for equal priorities.
func (c *SQLiteCatalog) Seed(ctx context.Context, tools []Tool) error {
	tx, err := c.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	for _, t := range tools {
		if _, err := tx.NamedExecContext(ctx, `
			INSERT INTO digital_tools_recommendations
				(industry_id, tool_name, tool_option_name, price_amount, description, homepage_url, priority)
			VALUES
				(:industry_id, :tool_name, :tool_option_name, :price_amount, :description, :homepage_url, :priority)`, t); err != nil {
			return fmt.Errorf("seed tool %q: %w", t.ToolCategory, err)
		}
	}
	return tx.Commit()
}

// Count returns the number of catalog rows.
func (c *SQLiteCatalog) Count(ctx context.Context) (int, error) {
	var n int
	err := c.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM digital_tools_recommendations`)
	return n, err
}
