package rdbms

import (
	"fmt"

	"github.com/relloyd/snowload/constants"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms/shared"
	"github.com/relloyd/snowload/stream"
	"golang.org/x/net/context"
)

// ChunkStream is a lazy, finite, forward-only sequence of chunks from one table scan.
// It cannot be replayed: each chunk must be fully consumed before the next is requested.
type ChunkStream struct {
	log       logger.Logger
	rows      *shared.Rows
	cols      []string
	chunkSize int
	index     int // index of the next chunk to be produced.
	exhausted bool
}

// StreamTableChunks issues a full-table scan and returns the rows as a ChunkStream of
// at most chunkSize rows per chunk. Supplying a non-positive chunkSize applies
// constants.StreamChunkSizeDefault.
// If the scan cannot be established the error is logged and nil is returned: callers
// must treat nil as a distinct, non-fatal-at-job-level failure mode that requires a
// notification rather than a crash.
func StreamTableChunks(ctx context.Context, log logger.Logger, db shared.Connector, table TableName, chunkSize int) *ChunkStream {
	if chunkSize <= 0 {
		chunkSize = constants.StreamChunkSizeDefault
	}
	query := fmt.Sprintf("select * from %v", table)
	log.Debug("streaming table rows using SQL: ", query)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		log.Error("error fetching table data for ", table, ": ", err)
		return nil
	}
	cols, err := rows.Columns()
	if err != nil {
		log.Error("error fetching result columns for ", table, ": ", err)
		_ = rows.Close()
		return nil
	}
	return &ChunkStream{
		log:       log,
		rows:      rows,
		cols:      cols,
		chunkSize: chunkSize,
	}
}

// Next returns the next chunk, or (nil, nil) once the stream is exhausted.
// A table with zero rows still yields exactly one empty chunk carrying the column
// names, so the destination table ends up with the right column set.
// Errors surfaced mid-scan are returned and terminate the stream.
func (s *ChunkStream) Next() (*stream.Chunk, error) {
	if s.exhausted {
		return nil, nil
	}
	chunk := stream.NewChunk(s.index, s.cols)
	lenCols := len(s.cols)
	for chunk.Len() < s.chunkSize {
		if !s.rows.Next() { // if the scan has no more rows...
			s.exhausted = true
			err := s.rows.Err()
			_ = s.rows.Close()
			if err != nil {
				return nil, fmt.Errorf("error reading table rows: %w", err)
			}
			break
		}
		// Scan the values dynamically (one pointer per column).
		scanVals := make([]interface{}, lenCols)
		scanPtrs := make([]interface{}, lenCols)
		for idx := 0; idx < lenCols; idx++ {
			scanPtrs[idx] = &scanVals[idx]
		}
		if err := s.rows.Scan(scanPtrs...); err != nil {
			s.exhausted = true
			_ = s.rows.Close()
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		chunk.AppendRow(scanVals)
	}
	if chunk.Len() == 0 && s.index > 0 { // if the previous chunk consumed the final row...
		return nil, nil
	}
	s.index++
	return chunk, nil
}

// Close releases the underlying scan early. Safe to call once the stream is exhausted.
func (s *ChunkStream) Close() {
	if !s.exhausted {
		s.exhausted = true
		_ = s.rows.Close()
	}
}
