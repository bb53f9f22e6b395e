package components

import (
	"fmt"
	"strings"

	om "github.com/cevaris/ordered_map"
	"github.com/relloyd/snowload/logger"
	"github.com/relloyd/snowload/rdbms"
	"github.com/relloyd/snowload/rdbms/shared"
	"github.com/relloyd/snowload/stream"
	tabledefinition "github.com/relloyd/snowload/table-definition"
)

type SnowflakeLoaderConfig struct {
	Log         logger.Logger
	Name        string
	Db          shared.Connector  // connection to target Snowflake database abstracted via interface.
	TargetTable rdbms.TableName   // the database.schema.table to load into.
	TypeMap     *om.OrderedMap    // upper-cased column name -> destination data type driving the cast.
}

// TableLoader appends chunks of one source table scan to its destination table.
// The first chunk establishes the destination table with that chunk's column set;
// later chunks have their column order reconciled against the destination before the
// append, guarding against column-order drift between chunks.
type TableLoader struct {
	cfg *SnowflakeLoaderConfig
}

func NewSnowflakeTableLoader(cfg *SnowflakeLoaderConfig) *TableLoader {
	if cfg.Name == "" {
		cfg.Name = fmt.Sprintf("loader for table %v", cfg.TargetTable)
	}
	return &TableLoader{cfg: cfg}
}

// LoadChunk writes one chunk to the destination table in append mode.
// isFirstChunkForTable decides whether the table is created from the chunk's schema
// or the chunk is reordered to match the already-established destination columns.
func (l *TableLoader) LoadChunk(chunk *stream.Chunk, isFirstChunkForTable bool) error {
	cfg := l.cfg
	chunk.UpperCaseColumns()
	if isFirstChunkForTable {
		ddl := l.createTableSql(chunk)
		cfg.Log.Debug(cfg.Name, " executing: ", ddl)
		if _, err := cfg.Db.Exec(ddl); err != nil {
			return fmt.Errorf("error creating table %v: %w", cfg.TargetTable, err)
		}
	} else {
		// Re-read the destination column order and coerce the chunk to match it.
		destCols, err := GetTableColumns(cfg.Log, cfg.Db, cfg.TargetTable)
		if err != nil {
			return err
		}
		if err := chunk.ReorderColumns(destCols); err != nil {
			return fmt.Errorf("error reconciling column order for table %v: %w", cfg.TargetTable, err)
		}
	}
	if chunk.Len() == 0 { // if the chunk only established the schema...
		return nil
	}
	// Build the batched INSERT with a cast per column.
	gen, ok := cfg.Db.GetDmlGenerator().NewInsertGenerator(&shared.SqlStatementGeneratorConfig{
		Log:         cfg.Log,
		OutputTable: cfg.TargetTable.String(),
		TargetCols:  l.chunkTargetCols(chunk),
	}).(shared.SqlStmtTxtBatcher)
	if !ok {
		return fmt.Errorf("unable to cast INSERT generator to SqlStmtTxtBatcher")
	}
	gen.InitBatch(chunk.Len())
	for _, row := range chunk.Rows {
		if _, err := gen.AddValuesToBatch(row); err != nil {
			return fmt.Errorf("error batching row for table %v: %w", cfg.TargetTable, err)
		}
	}
	if _, err := cfg.Db.Exec(gen.GetStatement(), gen.GetValues()...); err != nil {
		return fmt.Errorf("error appending chunk %v to table %v: %w", chunk.Index, cfg.TargetTable, err)
	}
	cfg.Log.Info(cfg.Name, " appended chunk ", chunk.Index, " with ", chunk.Len(), " rows")
	return nil
}

// chunkTargetCols returns the chunk's columns in order mapped to their destination
// data types, defaulting to STRING for columns absent from the type map.
func (l *TableLoader) chunkTargetCols(chunk *stream.Chunk) *om.OrderedMap {
	retval := om.NewOrderedMap()
	for _, col := range chunk.Columns {
		dataType := tabledefinition.DefaultSnowflakeDataType
		if v, ok := l.cfg.TypeMap.Get(col); ok {
			dataType = v.(string)
		}
		retval.Set(col, dataType)
	}
	return retval
}

func (l *TableLoader) createTableSql(chunk *stream.Chunk) string {
	colDefs := make([]string, 0, len(chunk.Columns))
	iter := l.chunkTargetCols(chunk).IterFunc()
	for kv, ok := iter(); ok; kv, ok = iter() {
		colDefs = append(colDefs, fmt.Sprintf("%v %v", kv.Key, kv.Value))
	}
	// "if not exists" keeps the first append implicit: the table materialises with the
	// schema of the first chunk and later runs against a surviving table still append.
	return fmt.Sprintf("create table if not exists %v (%v)", l.cfg.TargetTable, strings.Join(colDefs, ","))
}
