package shared

import (
	"context"
	"database/sql"
	"fmt"
)

// Connection is a wrapper around Go native sql.DB.
// It adds the DmlGenerator interface for use in components that output records to a database.
type Connection struct {
	DbSql  *sql.DB
	Dml    DmlGenerator
	DbType string
}

// Connector:

func (c *Connection) Exec(query string, args ...interface{}) (Result, error) {
	return c.ExecContext(context.Background(), query, args...)
}

func (c *Connection) ExecContext(ctx context.Context, query string, args ...interface{}) (Result, error) {
	return c.DbSql.ExecContext(ctx, query, args...)
}

func (c *Connection) Query(query string, args ...interface{}) (*Rows, error) {
	return c.QueryContext(context.Background(), query, args...)
}

func (c *Connection) QueryContext(ctx context.Context, query string, args ...interface{}) (*Rows, error) {
	r, err := c.DbSql.QueryContext(ctx, query, args...)
	return &Rows{rowsSql: r}, err
}

func (c *Connection) Close() {
	_ = c.DbSql.Close()
}

func (c *Connection) GetDmlGenerator() DmlGenerator {
	return c.Dml
}

func (c *Connection) GetType() string {
	return c.DbType
}

// Rows wraps either a live sql.Rows or a static in-memory result set.
// The static flavour is produced by NewStaticRows and backs MockConnection in tests.
type Rows struct {
	rowsSql    *sql.Rows
	isStatic   bool
	staticCols []string
	staticRows [][]interface{}
	staticIdx  int // index of the row most recently advanced to by Next(); starts at -1.
}

// NewStaticRows returns a Rows backed by the supplied column names and row values.
func NewStaticRows(cols []string, rows [][]interface{}) *Rows {
	return &Rows{
		isStatic:   true,
		staticCols: cols,
		staticRows: rows,
		staticIdx:  -1,
	}
}

func (r *Rows) Columns() ([]string, error) {
	if r.isStatic {
		return r.staticCols, nil
	}
	return r.rowsSql.Columns()
}

func (r *Rows) Next() bool {
	if r.isStatic {
		r.staticIdx++
		return r.staticIdx < len(r.staticRows)
	}
	return r.rowsSql.Next()
}

func (r *Rows) Scan(dest ...interface{}) error {
	if r.isStatic {
		if r.staticIdx < 0 || r.staticIdx >= len(r.staticRows) {
			return fmt.Errorf("scan called without a valid row")
		}
		row := r.staticRows[r.staticIdx]
		if len(dest) != len(row) {
			return fmt.Errorf("expected %v scan destinations; got %v", len(row), len(dest))
		}
		for i, d := range dest {
			switch p := d.(type) {
			case *interface{}:
				*p = row[i]
			case *string:
				switch v := row[i].(type) {
				case string:
					*p = v
				case []byte:
					*p = string(v)
				default:
					*p = fmt.Sprint(v)
				}
			default:
				return fmt.Errorf("unsupported scan destination type %T", d)
			}
		}
		return nil
	}
	return r.rowsSql.Scan(dest...)
}

func (r *Rows) Err() error {
	if r.isStatic {
		return nil
	}
	return r.rowsSql.Err()
}

func (r *Rows) Close() error {
	if r.isStatic {
		return nil
	}
	return r.rowsSql.Close()
}
