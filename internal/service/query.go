package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shoplite/shoplite/internal/model"
)

var (
	// ErrQueryNotReadOnly rejects anything that is not a single SELECT
	// statement: wrong leading keyword, or a second statement smuggled in
	// behind a semicolon.
	ErrQueryNotReadOnly = errors.New("only a single SELECT statement is allowed")
	ErrUnknownTable     = errors.New("unknown table")
)

// QueryGateway executes caller-supplied read-only queries. It is a narrow
// allow-list by construction: the statement must begin with SELECT and must
// be exactly one statement, so destructive verbs and multi-statement
// injection never reach the store.
type QueryGateway struct {
	db      *sql.DB
	timeout time.Duration
}

func NewQueryGateway(db *sql.DB, timeout time.Duration) *QueryGateway {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &QueryGateway{db: db, timeout: timeout}
}

// ValidateReadOnly trims the input, tolerates one trailing semicolon, and
// returns the statement to execute, or ErrQueryNotReadOnly.
func ValidateReadOnly(query string) (string, error) {
	q := strings.TrimSpace(query)
	q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
	if q == "" {
		return "", ErrQueryNotReadOnly
	}
	// Any interior semicolon means a second statement.
	if strings.Contains(q, ";") {
		return "", ErrQueryNotReadOnly
	}
	fields := strings.Fields(q)
	if len(fields) == 0 || !strings.EqualFold(fields[0], "select") {
		return "", ErrQueryNotReadOnly
	}
	return q, nil
}

func (g *QueryGateway) Execute(ctx context.Context, query string) (*model.ResultSet, error) {
	stmt, err := ValidateReadOnly(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	rows, err := g.db.QueryContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// Tables lists the user tables in the store, for the database viewer.
func (g *QueryGateway) Tables(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	rows, err := g.db.QueryContext(ctx,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	return tables, rows.Err()
}

// DumpTable returns the full contents of one table. The name is checked
// against the catalog first and never interpolated from raw caller input.
func (g *QueryGateway) DumpTable(ctx context.Context, name string) (*model.ResultSet, error) {
	tables, err := g.Tables(ctx)
	if err != nil {
		return nil, err
	}
	known := false
	for _, t := range tables {
		if t == name {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownTable)
	}

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	rows, err := g.db.QueryContext(ctx, `SELECT * FROM `+name)
	if err != nil {
		return nil, fmt.Errorf("dump table %s: %w", name, err)
	}
	defer rows.Close()

	return collectRows(rows)
}

func collectRows(rows *sql.Rows) (*model.ResultSet, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}

	result := &model.ResultSet{Columns: columns, Rows: [][]string{}}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		rendered := make([]string, len(columns))
		for i, v := range values {
			rendered[i] = renderValue(v)
		}
		result.Rows = append(result.Rows, rendered)
	}
	return result, rows.Err()
}

func renderValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(val)
	case string:
		return val
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	default:
		return fmt.Sprint(val)
	}
}
