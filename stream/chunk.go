package stream

import (
	"fmt"
	"strings"
)

// Chunk is a bounded batch of rows read from a single source table, moved as one unit.
// Chunks are produced by rdbms.ChunkStream as a forward-only sequence and must be fully
// consumed (columns normalised, types cast, written) before the next one is requested.
type Chunk struct {
	Index   int // 0-based position of this chunk within its table's stream.
	Columns []string
	Rows    [][]interface{}
}

func NewChunk(index int, columns []string) *Chunk {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Chunk{Index: index, Columns: cols, Rows: make([][]interface{}, 0)}
}

func (c *Chunk) AppendRow(row []interface{}) {
	c.Rows = append(c.Rows, row)
}

func (c *Chunk) Len() int {
	return len(c.Rows)
}

// UpperCaseColumns converts all column names to upper case in place.
func (c *Chunk) UpperCaseColumns() {
	for i, col := range c.Columns {
		c.Columns[i] = strings.ToUpper(col)
	}
}

// ReorderColumns permutes the chunk's columns (and every row's values) to match the
// supplied target column order. The target must contain exactly the chunk's columns.
// This guards against column-order drift between chunks of the same table scan.
func (c *Chunk) ReorderColumns(target []string) error {
	if len(target) != len(c.Columns) {
		return fmt.Errorf("cannot reorder chunk with %v columns to match %v target columns", len(c.Columns), len(target))
	}
	// Map current column name to its position.
	pos := make(map[string]int, len(c.Columns))
	for i, col := range c.Columns {
		pos[col] = i
	}
	perm := make([]int, len(target))
	for i, col := range target {
		p, ok := pos[col]
		if !ok {
			return fmt.Errorf("target column %q not found in chunk columns %v", col, c.Columns)
		}
		perm[i] = p
	}
	for idx, row := range c.Rows {
		newRow := make([]interface{}, len(row))
		for i, p := range perm {
			newRow[i] = row[p]
		}
		c.Rows[idx] = newRow
	}
	cols := make([]string, len(target))
	copy(cols, target)
	c.Columns = cols
	return nil
}
